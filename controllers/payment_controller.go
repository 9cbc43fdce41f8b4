package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"tripmoa/config"
	"tripmoa/models"
	"tripmoa/services"
	"tripmoa/store"
	"tripmoa/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentController - страницы возврата провайдеров и история платежей.
// Каждая загрузка страницы возврата получает свой экземпляр реконсилятора:
// защита от двойного подтверждения действует в пределах запроса, гонку двух
// вкладок ловит сам провайдер ответом "уже обрабатывается".
type PaymentController struct {
	db    *gorm.DB
	kv    store.KVStore
	kakao *services.KakaoPayService
	toss  *services.TossPayService
	cfg   *config.Config
}

func NewPaymentController(kv store.KVStore, cfg *config.Config) *PaymentController {
	return &PaymentController{
		db:    utils.GetDB(),
		kv:    kv,
		kakao: services.NewKakaoPayService(cfg),
		toss:  services.NewTossPayService(cfg),
		cfg:   cfg,
	}
}

// runKakao прогоняет реконсиляцию для возврата KakaoPay; tid и aid
// провайдера возвращаются для записи платежа
func (pc *PaymentController) runKakao(c *gin.Context, sessionID, pgToken string) (services.ReconcileOutcome, string, string) {
	var tid, approveRef string
	reconciler := services.NewReconciler(pc.kv, func(p *store.PendingPayment, token string) (*services.ApproveResult, error) {
		tid = p.TID
		result, err := pc.kakao.Approve(p.TID, p.OrderID, p.UserID, token)
		if err != nil {
			return nil, err
		}
		approveRef = result.AID
		return &services.ApproveResult{
			ApproveRef:   result.AID,
			EarnedPoints: result.Amount.Point,
			ApprovedAt:   result.ApprovedAt,
		}, nil
	})
	out := reconciler.Run(c.Request.Context(), sessionID, pgToken)
	return out, tid, approveRef
}

// KakaoSuccess - страница возврата KakaoPay после оплаты
// GET /payment/kakao/success?pg_token=&session_id=
func (pc *PaymentController) KakaoSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	out, tid, approveRef := pc.runKakao(c, sessionID, c.Query("pg_token"))

	switch {
	case out.Expired:
		// Контекст платежа потерян: возвращаем на шаг проверки брони
		c.Redirect(http.StatusFound, pc.cfg.FrontBaseURL+"/reserve/check?alert="+url.QueryEscape("결제 세션이 만료되었습니다"))
	case out.AlreadyProcessing:
		// Дубль прежнего подтверждения: состояние не трогаем
		c.Redirect(http.StatusFound, pc.cfg.FrontBaseURL+"/reserve/receipt")
	case out.State == services.StateConfirmed:
		pc.finalize(c, sessionID, out.Detail, tid, approveRef)
		// Начисленные баллы показываются на странице чека
		c.Redirect(http.StatusFound, fmt.Sprintf("%s/reserve/receipt/%d?points=%d",
			pc.cfg.FrontBaseURL, out.Detail.PlanID, out.Detail.EarnedPoints))
	default:
		c.Redirect(http.StatusFound, pc.cfg.FrontBaseURL+"/payment/fail?message="+url.QueryEscape(out.Reason))
	}
}

type kakaoApproveRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	PgToken   string `json:"pg_token" binding:"required"`
}

// KakaoApprove - JSON-вариант подтверждения для SPA, без редиректа
// POST /payment/approve
func (pc *PaymentController) KakaoApprove(c *gin.Context) {
	var req kakaoApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Неверный запрос", "details": err.Error()})
		return
	}
	out, tid, approveRef := pc.runKakao(c, req.SessionID, req.PgToken)

	switch {
	case out.Expired:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "결제 세션이 만료되었습니다", "redirect": "/reserve/check"})
	case out.AlreadyProcessing:
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"already_processing": true}})
	case out.State == services.StateConfirmed:
		pc.finalize(c, req.SessionID, out.Detail, tid, approveRef)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": out.Detail})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "결제 승인에 실패했습니다", "details": out.Reason})
	}
}

// KakaoCancel - пользователь отменил оплату на странице провайдера.
// Pending-ключ не трогаем: повторный checkout перезапишет его.
// GET /payment/kakao/cancel
func (pc *PaymentController) KakaoCancel(c *gin.Context) {
	c.Redirect(http.StatusFound, pc.cfg.FrontBaseURL+"/payment/fail?message="+url.QueryEscape("결제가 취소되었습니다"))
}

// KakaoFail - провайдер сообщил об ошибке оплаты
// GET /payment/kakao/fail
func (pc *PaymentController) KakaoFail(c *gin.Context) {
	c.Redirect(http.StatusFound, pc.cfg.FrontBaseURL+"/payment/fail?message="+url.QueryEscape("결제에 실패했습니다"))
}

// TossConfirm - подтверждение платежа со страницы успеха Toss SDK
// POST /payment/toss/confirm
func (pc *PaymentController) TossConfirm(c *gin.Context) {
	var req models.TossConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Неверный запрос", "details": err.Error()})
		return
	}

	var approveRef string
	reconciler := services.NewReconciler(pc.kv, func(p *store.PendingPayment, token string) (*services.ApproveResult, error) {
		// Сумма из SDK обязана совпасть с суммой pending-платежа
		if req.Amount != p.Amount || req.OrderID != p.OrderID {
			return nil, services.ErrAmountMismatch
		}
		result, err := pc.toss.Confirm(token, req.OrderID, req.Amount)
		if err != nil {
			return nil, err
		}
		if result.Receipt != nil {
			approveRef = result.Receipt.URL
		}
		return &services.ApproveResult{
			ApproveRef: approveRef,
			ApprovedAt: result.ApprovedAt,
		}, nil
	})
	out := reconciler.Run(c.Request.Context(), req.SessionID, req.PaymentKey)

	switch {
	case out.Expired:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "결제 세션이 만료되었습니다", "redirect": "/reserve/check"})
	case out.AlreadyProcessing:
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"already_processing": true}})
	case out.State == services.StateConfirmed:
		pc.finalize(c, req.SessionID, out.Detail, req.PaymentKey, approveRef)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": out.Detail})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "결제 승인에 실패했습니다", "details": out.Reason})
	}
}

// finalize фиксирует подтвержденный платеж: строка в базе, баллы
// пользователя, результат в сессии мастера, письмо с чеком.
// Повторный вызов с тем же order_id ничего не меняет.
func (pc *PaymentController) finalize(c *gin.Context, sessionID string, d *store.PaymentDetail, tid, approveRef string) {
	// Платеж уже записан - баллы и письмо тоже уже обработаны
	var existing models.Payment
	if err := pc.db.Where("order_id = ?", d.OrderID).First(&existing).Error; err == nil {
		return
	}

	snapshot, err := json.Marshal(d)
	if err != nil {
		utils.LogError(err, "PaymentController.finalize snapshot")
	}
	payment := models.Payment{
		OrderID:      d.OrderID,
		UserID:       d.UserID,
		PlanID:       d.PlanID,
		Provider:     d.Provider,
		Amount:       d.Amount,
		UsedPoints:   d.UsedPoints,
		EarnedPoints: d.EarnedPoints,
		Status:       "confirmed",
		ProviderTID:  tid,
		ApproveRef:   approveRef,
		Snapshot:     datatypes.JSON(snapshot),
	}
	if err := pc.db.Create(&payment).Error; err != nil {
		utils.LogError(err, "PaymentController.finalize create")
	}

	// Списание использованных и начисление заработанных баллов
	delta := d.EarnedPoints - d.UsedPoints
	if delta != 0 {
		if err := pc.db.Model(&models.User{}).Where("id = ?", d.UserID).
			Update("points", gorm.Expr("points + ?", delta)).Error; err != nil {
			utils.LogError(err, "PaymentController.finalize points")
		}
	}

	// Результат реконсиляции - первый ярус данных чека
	if session, err := store.LoadSession(c.Request.Context(), pc.kv, sessionID); err == nil {
		session.LastResult = d
		if err := store.SaveSession(c.Request.Context(), pc.kv, sessionID, session); err != nil {
			utils.LogError(err, "PaymentController.finalize session")
		}
	}

	// Письмо с чеком уходит асинхронно, его сбой не влияет на ответ
	go pc.sendReceiptEmail(d)
}

func (pc *PaymentController) sendReceiptEmail(d *store.PaymentDetail) {
	var user models.User
	if err := pc.db.First(&user, d.UserID).Error; err != nil || user.Email == nil {
		return
	}
	err := utils.SendReceiptEmail(*user.Email, d.RegionName, d.StartDate, d.EndDate,
		d.Amount, d.UsedPoints, d.EarnedPoints,
		pc.cfg.SMTPHost, pc.cfg.SMTPPort, pc.cfg.SMTPUser, pc.cfg.SMTPPass)
	if err != nil {
		utils.LogError(err, "PaymentController.sendReceiptEmail")
	}
}

// GetPayment - платеж по id либо по order_id
// GET /api/payment/:id
func (pc *PaymentController) GetPayment(c *gin.Context) {
	idParam := c.Param("id")
	var payment models.Payment

	if id, err := strconv.ParseUint(idParam, 10, 32); err == nil {
		err = pc.db.First(&payment, uint(id)).Error
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": payment})
			return
		}
		if err != gorm.ErrRecordNotFound {
			utils.LogError(err, "PaymentController.GetPayment")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Ошибка базы данных"})
			return
		}
	}
	if err := pc.db.Where("order_id = ?", idParam).First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Платеж не найден"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": payment})
}

// GetPayments - платежи пользователя с фильтрами
// GET /api/payments?status=&provider=&limit=&offset=
func (pc *PaymentController) GetPayments(c *gin.Context) {
	uid := currentUserID(c)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "로그인이 필요합니다"})
		return
	}

	query := pc.db.Where("user_id = ?", uid)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if provider := c.Query("provider"); provider != "" {
		query = query.Where("provider = ?", provider)
	}

	limit := 20
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	offset := 0
	if o, err := strconv.Atoi(c.Query("offset")); err == nil && o > 0 {
		offset = o
	}

	var payments []models.Payment
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error; err != nil {
		utils.LogError(err, "PaymentController.GetPayments")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Ошибка базы данных"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": payments, "count": len(payments)})
}
