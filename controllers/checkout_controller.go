package controllers

import (
	"fmt"
	"net/http"
	"net/url"

	"tripmoa/config"
	"tripmoa/models"
	"tripmoa/services"
	"tripmoa/store"
	"tripmoa/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Коды способов оплаты для Toss SDK
var tossMethodNames = map[string]string{
	"toss":  "토스페이",
	"card":  "카드",
	"vbank": "가상계좌",
}

// CheckoutController - переход от мастера к провайдеру оплаты.
// Перед передачей управления провайдеру все данные платежа пишутся одной
// единицей pending_payment; страница возврата восстанавливает контекст из нее.
type CheckoutController struct {
	db    *gorm.DB
	kv    store.KVStore
	kakao *services.KakaoPayService
	cfg   *config.Config
}

func NewCheckoutController(kv store.KVStore, cfg *config.Config) *CheckoutController {
	return &CheckoutController{
		db:    utils.GetDB(),
		kv:    kv,
		kakao: services.NewKakaoPayService(cfg),
		cfg:   cfg,
	}
}

// Checkout - создание платежа у провайдера
// POST /trip/checkout
func (cc *CheckoutController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Неверный запрос", "details": err.Error()})
		return
	}

	uid := currentUserID(c)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "로그인이 필요합니다"})
		return
	}

	ctx := c.Request.Context()
	session, err := store.LoadSession(ctx, cc.kv, req.SessionID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "세션이 만료되었습니다. 처음부터 다시 시도해주세요."})
		return
	}
	if err != nil {
		utils.LogError(err, "CheckoutController.Checkout session")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "세션을 불러올 수 없습니다"})
		return
	}
	if session.PlanID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "저장된 일정이 없습니다"})
		return
	}

	total := session.Total()

	// Баллы ограничиваются балансом и итогом, молча
	var user models.User
	if err := cc.db.First(&user, uid).Error; err != nil {
		utils.LogError(err, "CheckoutController.Checkout user")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "사용자 정보를 불러올 수 없습니다"})
		return
	}
	usePoints := utils.ClampUsePoints(req.UsePoints, user.Points, total)
	amount := total - usePoints

	// Нулевой итог без списания баллов - ошибка конфигурации поездки
	if amount == 0 && usePoints == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "결제 금액이 올바르지 않습니다"})
		return
	}

	orderID := fmt.Sprintf("plan%d-%s", session.PlanID, uuid.New().String()[:8])
	session.UsePoints = usePoints
	session.TotalPrice = total

	pending := &store.PendingPayment{
		UserID:    uid,
		PlanID:    session.PlanID,
		OrderID:   orderID,
		Provider:  req.Provider,
		Amount:    amount,
		UsePoints: usePoints,
		Snapshot:  *session,
	}

	switch req.Provider {
	case "kakao":
		itemName := fmt.Sprintf("%s 여행 (%s ~ %s)", session.RegionName, session.StartDate, session.EndDate)
		q := url.Values{}
		q.Set("session_id", req.SessionID)
		// Провайдер возвращает пользователя на наши страницы возврата,
		// оттуда после реконсиляции уходит редирект на фронт
		ready, err := cc.kakao.Ready(orderID, uid, itemName, amount,
			cc.cfg.AppBaseURL+"/payment/kakao/success?"+q.Encode(),
			cc.cfg.AppBaseURL+"/payment/kakao/cancel?"+q.Encode(),
			cc.cfg.AppBaseURL+"/payment/kakao/fail?"+q.Encode())
		if err != nil {
			utils.LogError(err, "CheckoutController.Checkout kakao ready")
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "결제 준비에 실패했습니다. 잠시 후 다시 시도해주세요."})
			return
		}
		pending.TID = ready.TID

		// Единица передачи пишется до редиректа к провайдеру
		if err := store.SavePendingPayment(ctx, cc.kv, req.SessionID, pending); err != nil {
			utils.LogError(err, "CheckoutController.Checkout pending")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "결제 정보를 저장할 수 없습니다"})
			return
		}
		if err := store.SaveSession(ctx, cc.kv, req.SessionID, session); err != nil {
			utils.LogError(err, "CheckoutController.Checkout session save")
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"order_id":     orderID,
			"redirect_url": ready.NextRedirectPCURL,
		}})

	case "toss", "card", "vbank":
		if err := store.SavePendingPayment(ctx, cc.kv, req.SessionID, pending); err != nil {
			utils.LogError(err, "CheckoutController.Checkout pending")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "결제 정보를 저장할 수 없습니다"})
			return
		}
		if err := store.SaveSession(ctx, cc.kv, req.SessionID, session); err != nil {
			utils.LogError(err, "CheckoutController.Checkout session save")
		}
		// Параметры для Toss SDK, подтверждение придет на /payment/toss/confirm
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"order_id":    orderID,
			"order_name":  fmt.Sprintf("%s 여행", session.RegionName),
			"amount":      amount,
			"client_key":  cc.cfg.TossClientKey,
			"method":      tossMethodNames[req.Provider],
			"success_url": cc.cfg.FrontBaseURL + "/payment/toss/success?session_id=" + req.SessionID,
			"fail_url":    cc.cfg.FrontBaseURL + "/payment/toss/fail?session_id=" + req.SessionID,
		}})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "지원하지 않는 결제 수단입니다"})
	}
}
