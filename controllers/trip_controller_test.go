package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tripmoa/models"
	"tripmoa/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// tripTestContext - gin-контекст с пустым запросом, достаточно для savePlanOnce
func tripTestContext() *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/trip/recommend", nil)
	return c
}

func newWizardSession() *store.TripSession {
	return &store.TripSession{
		UserID:      7,
		RegionID:    3,
		RegionName:  "제주",
		StartDate:   "2025-03-01",
		EndDate:     "2025-03-03",
		PeopleCount: 2,
		Schedule: models.Schedule{
			"day1": {{SpotID: 11, Day: 1, Name: "성산일출봉", Price: 5000, Selected: true}},
		},
	}
}

// Повторный проход шага рекомендации берет id плана из метки,
// второго сохранения в базу не происходит
func TestSavePlanOnceSecondPassReusesPlanID(t *testing.T) {
	kv := store.NewMemoryStore()
	saves := 0
	tc := &TripController{
		kv: kv,
		savePlan: func(db *gorm.DB, req models.SavePlanRequest) (uint, error) {
			saves++
			assert.Equal(t, uint(7), req.UserID)
			assert.Equal(t, "제주", req.RegionName)
			return 42, nil
		},
	}

	c := tripTestContext()
	session := newWizardSession()
	tc.savePlanOnce(c, 7, session)
	assert.Equal(t, 1, saves)
	assert.Equal(t, uint(42), session.PlanID)

	// Перезагрузка шага: та же тройка (пользователь, дата, регион)
	again := newWizardSession()
	tc.savePlanOnce(c, 7, again)
	assert.Equal(t, 1, saves)
	assert.Equal(t, uint(42), again.PlanID)
}

// Ошибка сохранения снимает метку, следующая попытка сохраняет заново
func TestSavePlanOnceRollbackAllowsRetry(t *testing.T) {
	kv := store.NewMemoryStore()
	saves := 0
	tc := &TripController{
		kv: kv,
		savePlan: func(db *gorm.DB, req models.SavePlanRequest) (uint, error) {
			saves++
			if saves == 1 {
				return 0, errors.New("db down")
			}
			return 77, nil
		},
	}

	c := tripTestContext()
	session := newWizardSession()
	tc.savePlanOnce(c, 7, session)
	assert.Equal(t, 1, saves)
	assert.Equal(t, uint(0), session.PlanID)

	_, exists, err := store.GetSavedPlanMarker(context.Background(), kv, 7, session.StartDate, session.RegionName)
	assert.NoError(t, err)
	assert.False(t, exists)

	tc.savePlanOnce(c, 7, session)
	assert.Equal(t, 2, saves)
	assert.Equal(t, uint(77), session.PlanID)
}

// Метка с id 0 означает идущее сохранение: повторный вход не сохраняет
func TestSavePlanOnceInFlightMarkerBlocksSave(t *testing.T) {
	kv := store.NewMemoryStore()
	saves := 0
	tc := &TripController{
		kv: kv,
		savePlan: func(db *gorm.DB, req models.SavePlanRequest) (uint, error) {
			saves++
			return 1, nil
		},
	}

	session := newWizardSession()
	assert.NoError(t, store.SetSavedPlanMarker(context.Background(), kv, 7, session.StartDate, session.RegionName, 0))

	tc.savePlanOnce(tripTestContext(), 7, session)
	assert.Equal(t, 0, saves)
	assert.Equal(t, uint(0), session.PlanID)
}

func toggleSpot(t *testing.T, router *gin.Engine, sessionID string, day int, spotID uint) map[string]interface{} {
	body := fmt.Sprintf(`{"session_id":%q,"day":%d,"spot_id":%d}`, sessionID, day, spotID)
	req := httptest.NewRequest(http.MethodPost, "/trip/spots/toggle", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result map[string]interface{} `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Result
}

// Двойное переключение остановки возвращает и выбор, и итоговую сумму
func TestToggleSpotTwiceRestoresState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	kv := store.NewMemoryStore()
	tc := &TripController{kv: kv}
	router := gin.New()
	router.POST("/trip/spots/toggle", tc.ToggleSpot)

	session := &store.TripSession{
		UserID:      7,
		RegionName:  "제주",
		PeopleCount: 2,
		Schedule: models.Schedule{
			"day1": {
				{SpotID: 11, Day: 1, Name: "성산일출봉", Price: 5000, Selected: true},
				{SpotID: 12, Day: 1, Name: "협재해수욕장", Price: 3000, Selected: true},
			},
		},
		Bundle: &models.ProductBundle{
			Ticket: &models.BundleItem{ID: 1, Name: "입장권", Price: 10000},
		},
	}
	originalTotal := session.Total()
	assert.NoError(t, store.SaveSession(context.Background(), kv, "sid-toggle", session))

	result := toggleSpot(t, router, "sid-toggle", 1, 11)
	assert.Equal(t, float64(originalTotal-5000), result["total_price"])

	result = toggleSpot(t, router, "sid-toggle", 1, 11)
	assert.Equal(t, float64(originalTotal), result["total_price"])

	restored, err := store.LoadSession(context.Background(), kv, "sid-toggle")
	assert.NoError(t, err)
	assert.True(t, restored.Schedule["day1"][0].Selected)
	assert.Equal(t, originalTotal, restored.TotalPrice)
}
