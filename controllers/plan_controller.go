package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"tripmoa/models"
	"tripmoa/store"
	"tripmoa/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PlanController - контроллер сохраненных планов и чека
type PlanController struct {
	db *gorm.DB
	kv store.KVStore
}

func NewPlanController(kv store.KVStore) *PlanController {
	return &PlanController{db: utils.GetDB(), kv: kv}
}

// savePlanRecord пишет план и его остановки одной транзакцией, возвращает id
func savePlanRecord(db *gorm.DB, req models.SavePlanRequest) (uint, error) {
	if req.PeopleCount < 1 {
		req.PeopleCount = 1
	}
	plan := models.Plan{
		UserID:      req.UserID,
		RegionID:    req.RegionID,
		RegionName:  req.RegionName,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		PeopleCount: req.PeopleCount,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}
		for _, s := range req.Spots {
			if err := tx.Create(&models.PlanSpot{PlanID: plan.ID, SpotID: s.SpotID, Day: s.Day}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return plan.ID, nil
}

// loadPlanSchedule собирает сохраненный план обратно в расписание по дням.
// Остановки грузятся с явной сортировкой, порядок внутри дня - порядок вставки.
func loadPlanSchedule(db *gorm.DB, planID uint) (*models.Plan, models.Schedule, error) {
	var plan models.Plan
	err := db.
		Preload("Spots", func(tx *gorm.DB) *gorm.DB { return tx.Order("day, id") }).
		Preload("Spots.Spot").
		First(&plan, planID).Error
	if err != nil {
		return nil, nil, err
	}
	return &plan, buildSchedule(&plan), nil
}

// buildSchedule группирует остановки плана по дням, сохраняя их порядок
func buildSchedule(plan *models.Plan) models.Schedule {
	schedule := models.Schedule{}
	for _, ps := range plan.Spots {
		key := fmt.Sprintf("day%d", ps.Day)
		schedule[key] = append(schedule[key], models.StopItem{
			SpotID:   ps.SpotID,
			Day:      ps.Day,
			Category: ps.Spot.Category,
			Name:     ps.Spot.Name,
			Address:  ps.Spot.Address,
			Selected: true,
		})
	}
	return schedule
}

// planOwnedBy сверяет владельца плана с userId из запроса.
// Пустой параметр пропускает проверку.
func planOwnedBy(plan *models.Plan, userID string) bool {
	if userID == "" {
		return true
	}
	id, err := strconv.ParseUint(userID, 10, 32)
	if err != nil {
		return false
	}
	return plan.UserID == uint(id)
}

// SavePlan - прямое сохранение плана (вне мастера)
// POST /plans/save
func (pc *PlanController) SavePlan(c *gin.Context) {
	// План сохраняется только под сессией пользователя
	uid := currentUserID(c)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "로그인이 필요합니다"})
		return
	}

	var req models.SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Неверный запрос", "details": err.Error()})
		return
	}
	// Владелец плана - авторизованный пользователь, id из тела не доверяем
	req.UserID = uid
	id, err := savePlanRecord(pc.db, req)
	if err != nil {
		utils.LogError(err, "PlanController.SavePlan")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "일정 저장에 실패했습니다"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"plan_id": id}})
}

// GetPlan - сохраненный план, сгруппированный по дням
// GET /plans/:id
func (pc *PlanController) GetPlan(c *gin.Context) {
	planID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Неверный id плана"})
		return
	}
	plan, schedule, err := loadPlanSchedule(pc.db, uint(planID))
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "일정을 찾을 수 없습니다"})
		return
	}
	if err != nil {
		utils.LogError(err, "PlanController.GetPlan")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "일정을 불러올 수 없습니다"})
		return
	}
	// Чужой план по id с параметром userId не отдаем
	if !planOwnedBy(plan, c.Query("userId")) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "일정을 찾을 수 없습니다"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"plan":     plan,
		"schedule": schedule,
	}})
}

// TrackView - счетчик просмотров плана, сбой счетчика не мешает просмотру
// POST /plans/:id/view
func (pc *PlanController) TrackView(c *gin.Context) {
	planID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Неверный id плана"})
		return
	}
	views, err := pc.kv.Incr(c.Request.Context(), store.ViewKey(uint(planID)))
	if err != nil {
		utils.LogError(err, "PlanController.TrackView")
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"views": views}})
}

// Receipt - страница чека, данные собираются по трем ярусам:
// (a) результат последней реконсиляции в сессии мастера,
// (b) сохраненный payment_detail плана,
// (c) унаследованный одноместный слот temp_plan_data пользователя.
// Найденный чек с пустым расписанием дополняется повторной сборкой из базы.
// GET /trip/receipt/:planId?session_id=
func (pc *PlanController) Receipt(c *gin.Context) {
	planID64, err := strconv.ParseUint(c.Param("planId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Неверный id плана"})
		return
	}
	planID := uint(planID64)
	ctx := c.Request.Context()

	var detail *store.PaymentDetail

	// Ярус (a): сессия мастера еще жива и держит результат реконсиляции
	if sessionID := c.Query("session_id"); sessionID != "" {
		if session, err := store.LoadSession(ctx, pc.kv, sessionID); err == nil {
			if session.LastResult != nil && session.LastResult.PlanID == planID {
				detail = session.LastResult
			}
		}
	}

	// Ярус (b): сохраненный чек под ключом плана
	if detail == nil {
		d, err := store.LoadPaymentDetail(ctx, pc.kv, planID)
		if err == nil {
			detail = d
		} else if err != store.ErrNotFound {
			utils.LogError(err, "PlanController.Receipt detail")
		}
	}

	// Ярус (c): одноместный слот, если план в нем совпадает
	if detail == nil {
		if uid := currentUserID(c); uid > 0 {
			if raw, err := pc.kv.Get(ctx, store.TempPlanKey(uid)); err == nil {
				var d store.PaymentDetail
				if jsonErr := json.Unmarshal([]byte(raw), &d); jsonErr == nil && d.PlanID == planID {
					detail = &d
				}
			}
		}
	}

	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "결제 내역을 찾을 수 없습니다"})
		return
	}

	// Чек без расписания дополняем повторной сборкой из базы
	if len(detail.Schedule) == 0 {
		if _, schedule, err := loadPlanSchedule(pc.db, planID); err == nil {
			detail.Schedule = schedule
		} else if err != gorm.ErrRecordNotFound {
			utils.LogError(err, "PlanController.Receipt reload")
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"receipt":        detail,
		"amount_display": utils.FormatKRW(detail.Amount),
	}})
}
