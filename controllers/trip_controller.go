package controllers

import (
	"fmt"
	"net/http"

	"tripmoa/config"
	"tripmoa/models"
	"tripmoa/services"
	"tripmoa/store"
	"tripmoa/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Категория по умолчанию для входа "어디든지" - регион выбирает сервер,
// ключевые слова пользователь не выбирает
const surpriseDefaultCategory = "힐링"

// TripController - контроллер мастера планирования поездки.
// Состояние мастера живет в Redis-сессии и мутируется шагами:
// регион -> даты/ключевые слова -> рекомендация -> пакет услуг -> оплата.
type TripController struct {
	db        *gorm.DB
	kv        store.KVStore
	recommend *services.RecommendService
	// Запись плана в базу, подменяется в тестах
	savePlan func(db *gorm.DB, req models.SavePlanRequest) (uint, error)
}

func NewTripController(kv store.KVStore, cfg *config.Config) *TripController {
	return &TripController{
		db:        utils.GetDB(),
		kv:        kv,
		recommend: services.NewRecommendService(cfg),
		savePlan:  savePlanRecord,
	}
}

func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(int); ok && id > 0 {
			return uint(id)
		}
	}
	return 0
}

// loadSession достает сессию мастера либо отвечает 400 и возвращает nil
func (tc *TripController) loadSession(c *gin.Context, sessionID string) *store.TripSession {
	s, err := store.LoadSession(c.Request.Context(), tc.kv, sessionID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "세션이 만료되었습니다. 처음부터 다시 시도해주세요."})
		return nil
	}
	if err != nil {
		utils.LogError(err, "TripController.loadSession")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "세션을 불러올 수 없습니다"})
		return nil
	}
	return s
}

func (tc *TripController) saveSession(c *gin.Context, sessionID string, s *store.TripSession) bool {
	if err := store.SaveSession(c.Request.Context(), tc.kv, sessionID, s); err != nil {
		utils.LogError(err, "TripController.saveSession")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "세션 저장에 실패했습니다"})
		return false
	}
	return true
}

type startRegionRequest struct {
	SessionID  string `json:"session_id"`
	MapID      string `json:"map_id"`
	RegionName string `json:"region_name"`
	SubRegion  string `json:"sub_region"`
	Budget     int64  `json:"budget"`
}

// StartRegion - выбор региона: клик по карте (map_id) либо выпадающий список
// (region_name). Клик по незамапленной области карты игнорируется молча.
// POST /trip/region
func (tc *TripController) StartRegion(c *gin.Context) {
	var req startRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Неверный запрос", "details": err.Error()})
		return
	}

	var regionName string
	var regionID uint
	if req.MapID != "" {
		name, id, ok := resolveMapRegion(req.MapID)
		if !ok {
			// Незамапленная область: состояние не меняем, ошибку не отдаем
			c.JSON(http.StatusOK, gin.H{"success": true, "result": nil})
			return
		}
		regionName, regionID = name, id
	} else {
		if req.RegionName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "지역을 선택해주세요"})
			return
		}
		id, ok := resolveRegionName(req.RegionName)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "지원하지 않는 지역입니다"})
			return
		}
		regionName, regionID = req.RegionName, id
	}

	sessionID := req.SessionID
	var session *store.TripSession
	if sessionID != "" {
		if session = tc.loadSession(c, sessionID); session == nil {
			return
		}
	} else {
		sessionID = uuid.New().String()
		session = &store.TripSession{}
	}

	// Район действителен только внутри своего региона
	if session.RegionID != regionID {
		session.SubRegion = ""
	}
	session.RegionID = regionID
	session.RegionName = regionName
	if req.SubRegion != "" {
		session.SubRegion = req.SubRegion
	}
	if req.Budget > 0 {
		session.Budget = req.Budget
	}
	session.Surprise = false
	session.UserID = currentUserID(c)

	if !tc.saveSession(c, sessionID, session) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{
		"session_id":  sessionID,
		"region_id":   regionID,
		"region_name": regionName,
		"sub_region":  session.SubRegion,
	}})
}

// StartRandomRegion - вход "어디든지": регион выбирает сервер, шаг ключевых
// слов пропускается, вместо них категория по умолчанию
// POST /trip/region/random
func (tc *TripController) StartRandomRegion(c *gin.Context) {
	var region models.Region
	if err := tc.db.Order("RANDOM()").First(&region).Error; err != nil {
		utils.LogError(err, "TripController.StartRandomRegion")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "지역을 불러올 수 없습니다"})
		return
	}

	sessionID := uuid.New().String()
	session := &store.TripSession{
		UserID:          currentUserID(c),
		RegionID:        region.ID,
		RegionName:      region.Name,
		Surprise:        true,
		DefaultCategory: surpriseDefaultCategory,
	}
	if !tc.saveSession(c, sessionID, session) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{
		"session_id":  sessionID,
		"region_id":   region.ID,
		"region_name": region.Name,
		"surprise":    true,
	}})
}

type configRequest struct {
	SessionID   string   `json:"session_id" binding:"required"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	PeopleCount int      `json:"people_count"`
	Keywords    []string `json:"keywords"`
}

// Configure - даты, число человек и ключевые слова. Срок поездки молча
// ограничивается 2 ночами / 3 днями, выбранная пользователем дата конца
// заменяется без предупреждения.
// POST /trip/config
func (tc *TripController) Configure(c *gin.Context) {
	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Неверный запрос", "details": err.Error()})
		return
	}
	session := tc.loadSession(c, req.SessionID)
	if session == nil {
		return
	}

	if req.StartDate == "" || req.EndDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "날짜를 선택해주세요"})
		return
	}
	// Для обычного входа ключевые слова обязательны, для "어디든지" шаг пропущен
	if !session.Surprise && len(req.Keywords) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "키워드를 선택해주세요"})
		return
	}

	session.StartDate = req.StartDate
	session.EndDate = utils.ClampTripDates(req.StartDate, req.EndDate)
	session.PeopleCount = req.PeopleCount
	if session.PeopleCount < 1 {
		session.PeopleCount = 1
	}
	if session.Surprise {
		session.Keywords = []string{session.DefaultCategory}
	} else {
		session.Keywords = req.Keywords
	}

	if !tc.saveSession(c, req.SessionID, session) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{
		"session_id":   req.SessionID,
		"start_date":   session.StartDate,
		"end_date":     session.EndDate,
		"people_count": session.PeopleCount,
		"keywords":     session.Keywords,
	}})
}

type recommendStepRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// Recommend - запрос маршрута у AI-провайдера и сохранение плана не более
// одного раза на тройку (пользователь, дата начала, регион). Метка в Redis
// защищает от повторного сохранения при перезагрузке шага; при ошибке
// сохранения метка снимается, чтобы попытку можно было повторить.
// POST /trip/recommend
func (tc *TripController) Recommend(c *gin.Context) {
	var req recommendStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Неверный запрос", "details": err.Error()})
		return
	}
	session := tc.loadSession(c, req.SessionID)
	if session == nil {
		return
	}
	if session.StartDate == "" || session.EndDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "날짜를 선택해주세요"})
		return
	}

	// Кандидаты из каталога региона; ошибка чтения деградирует до пустого списка
	var candidates []models.Spot
	if err := tc.db.Where("region_id = ?", session.RegionID).Find(&candidates).Error; err != nil {
		utils.LogError(err, "TripController.Recommend candidates")
		candidates = nil
	}

	schedule, err := tc.recommend.RecommendItinerary(models.RecommendRequest{
		Region:           session.RegionName,
		SubRegion:        session.SubRegion,
		SelectedKeywords: session.Keywords,
		PeopleCount:      session.PeopleCount,
		StartDate:        session.StartDate,
		EndDate:          session.EndDate,
	}, candidates)
	if err != nil {
		utils.LogError(err, "TripController.Recommend")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "일정 추천에 실패했습니다. 잠시 후 다시 시도해주세요."})
		return
	}
	session.Schedule = schedule

	// Пустой маршрут не сохраняем и метку не ставим
	uid := currentUserID(c)
	if uid > 0 && len(schedule) > 0 {
		tc.savePlanOnce(c, uid, session)
	}

	if !tc.saveSession(c, req.SessionID, session) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{
		"session_id": req.SessionID,
		"schedule":   schedule,
		"plan_id":    session.PlanID,
	}})
}

// savePlanOnce сохраняет план не более одного раза на тройку
// (пользователь, дата начала, регион). Гарантия действует в пределах
// одной вкладки; гонку двух вкладок не закрываем (см. DESIGN.md).
func (tc *TripController) savePlanOnce(c *gin.Context, uid uint, session *store.TripSession) {
	ctx := c.Request.Context()
	planID, exists, err := store.GetSavedPlanMarker(ctx, tc.kv, uid, session.StartDate, session.RegionName)
	if err != nil {
		utils.LogError(err, "TripController.savePlanOnce marker")
		return
	}
	if exists {
		// Метка уже стоит: либо держит id плана, либо сохранение еще идет.
		// В обоих случаях повторное сохранение не выдаем.
		if planID > 0 {
			session.PlanID = planID
		}
		return
	}

	// Метка с id 0 ставится до сохранения и снимается при ошибке
	if err := store.SetSavedPlanMarker(ctx, tc.kv, uid, session.StartDate, session.RegionName, 0); err != nil {
		utils.LogError(err, "TripController.savePlanOnce set marker")
	}

	var spots []models.SavePlanSpot
	for _, stops := range session.Schedule {
		for _, st := range stops {
			spots = append(spots, models.SavePlanSpot{SpotID: st.SpotID, Day: st.Day})
		}
	}
	id, err := tc.savePlan(tc.db, models.SavePlanRequest{
		UserID:      uid,
		RegionName:  session.RegionName,
		RegionID:    session.RegionID,
		StartDate:   session.StartDate,
		EndDate:     session.EndDate,
		PeopleCount: session.PeopleCount,
		Spots:       spots,
	})
	if err != nil {
		utils.LogError(err, "TripController.savePlanOnce save")
		if rbErr := store.RollbackSavedPlanMarker(ctx, tc.kv, uid, session.StartDate, session.RegionName); rbErr != nil {
			utils.LogError(rbErr, "TripController.savePlanOnce rollback")
		}
		return
	}
	session.PlanID = id
	if err := store.SetSavedPlanMarker(ctx, tc.kv, uid, session.StartDate, session.RegionName, id); err != nil {
		utils.LogError(err, "TripController.savePlanOnce update marker")
	}
}

// RecommendDirect - рекомендация без сессии мастера, для внешних клиентов
// POST /api/plans/recommend
func (tc *TripController) RecommendDirect(c *gin.Context) {
	var req models.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Неверный запрос", "details": err.Error()})
		return
	}
	regionID, ok := resolveRegionName(req.Region)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "지원하지 않는 지역입니다"})
		return
	}
	req.EndDate = utils.ClampTripDates(req.StartDate, req.EndDate)

	var candidates []models.Spot
	if err := tc.db.Where("region_id = ?", regionID).Find(&candidates).Error; err != nil {
		utils.LogError(err, "TripController.RecommendDirect candidates")
		candidates = nil
	}
	schedule, err := tc.recommend.RecommendItinerary(req, candidates)
	if err != nil {
		utils.LogError(err, "TripController.RecommendDirect")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "일정 추천에 실패했습니다. 잠시 후 다시 시도해주세요."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": schedule})
}

type toggleSpotRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Day       int    `json:"day" binding:"required"`
	SpotID    uint   `json:"spot_id" binding:"required"`
}

// ToggleSpot - включение/выключение остановки в маршруте с пересчетом итога
// POST /trip/spots/toggle
func (tc *TripController) ToggleSpot(c *gin.Context) {
	var req toggleSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Неверный запрос", "details": err.Error()})
		return
	}
	session := tc.loadSession(c, req.SessionID)
	if session == nil {
		return
	}

	dayKey := fmt.Sprintf("day%d", req.Day)
	stops, ok := session.Schedule[dayKey]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "잘못된 일차입니다"})
		return
	}
	found := false
	for i := range stops {
		if stops[i].SpotID == req.SpotID {
			stops[i].Selected = !stops[i].Selected
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "일정에 없는 장소입니다"})
		return
	}
	session.Schedule[dayKey] = stops
	session.TotalPrice = session.Total()

	if !tc.saveSession(c, req.SessionID, session) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{
		"schedule":      session.Schedule,
		"total_price":   session.TotalPrice,
		"total_display": utils.FormatKRW(session.TotalPrice),
	}})
}

// GetProducts - подбор пакета услуг (жилье, активность, билет) по пересечению
// тегов с ключевыми словами сессии. Лучший продукт каждой категории - с
// максимальным числом совпадений; при равенстве берется первый; при нуле
// совпадений - первый продукт категории; пустая категория в пакет не входит.
// GET /trip/products?session_id=
func (tc *TripController) GetProducts(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "session_id обязателен"})
		return
	}
	session := tc.loadSession(c, sessionID)
	if session == nil {
		return
	}

	bundle := &models.ProductBundle{}

	var accommodations []models.Accommodation
	if err := tc.db.Where("region_name = ?", session.RegionName).Find(&accommodations).Error; err != nil {
		utils.LogError(err, "TripController.GetProducts accommodations")
	}
	if idx := utils.BestMatchIndex(accommodationTags(accommodations), session.Keywords); idx >= 0 {
		a := accommodations[idx]
		bundle.Accommodation = &models.BundleItem{ID: a.ID, Name: a.Name, Price: a.Price, Tags: a.Tags}
	}

	var activities []models.Activity
	if err := tc.db.Where("region_name = ?", session.RegionName).Find(&activities).Error; err != nil {
		utils.LogError(err, "TripController.GetProducts activities")
	}
	if idx := utils.BestMatchIndex(activityTags(activities), session.Keywords); idx >= 0 {
		a := activities[idx]
		bundle.Activity = &models.BundleItem{ID: a.ID, Name: a.Name, Price: a.Price, Tags: a.Tags}
	}

	var tickets []models.Ticket
	if err := tc.db.Where("region_name = ?", session.RegionName).Find(&tickets).Error; err != nil {
		utils.LogError(err, "TripController.GetProducts tickets")
	}
	if idx := utils.BestMatchIndex(ticketTags(tickets), session.Keywords); idx >= 0 {
		t := tickets[idx]
		bundle.Ticket = &models.BundleItem{ID: t.ID, Name: t.Name, Price: t.Price, Tags: t.Tags}
	}

	session.Bundle = bundle
	session.TotalPrice = session.Total()

	if !tc.saveSession(c, sessionID, session) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{
		"bundle":        bundle,
		"total_price":   session.TotalPrice,
		"total_display": utils.FormatKRW(session.TotalPrice),
	}})
}

func accommodationTags(items []models.Accommodation) []string {
	tags := make([]string, len(items))
	for i, it := range items {
		tags[i] = it.Tags
	}
	return tags
}

func activityTags(items []models.Activity) []string {
	tags := make([]string, len(items))
	for i, it := range items {
		tags[i] = it.Tags
	}
	return tags
}

func ticketTags(items []models.Ticket) []string {
	tags := make([]string, len(items))
	for i, it := range items {
		tags[i] = it.Tags
	}
	return tags
}
