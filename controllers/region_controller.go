package controllers

import (
	"net/http"

	"tripmoa/models"
	"tripmoa/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Параллельные таблицы соответствия: идентификатор области на карте -> короткое
// имя региона и короткое имя -> id в базе. Порядок вставки сидера фиксирован,
// id регионов стабильны.
var mapRegionName = map[string]string{
	"seoul":    "서울",
	"busan":    "부산",
	"jeju":     "제주",
	"gangwon":  "강원",
	"gyeongju": "경주",
	"jeonju":   "전주",
	"yeosu":    "여수",
	"incheon":  "인천",
}

var regionBackendID = map[string]uint{
	"서울": 1,
	"부산": 2,
	"제주": 3,
	"강원": 4,
	"경주": 5,
	"전주": 6,
	"여수": 7,
	"인천": 8,
}

// resolveMapRegion переводит идентификатор области карты в имя региона и id.
// Для незамапленных областей ok == false, клик игнорируется без ошибки.
func resolveMapRegion(mapID string) (string, uint, bool) {
	name, ok := mapRegionName[mapID]
	if !ok {
		return "", 0, false
	}
	id, ok := regionBackendID[name]
	if !ok {
		return "", 0, false
	}
	return name, id, true
}

// resolveRegionName возвращает id региона по короткому имени
func resolveRegionName(name string) (uint, bool) {
	id, ok := regionBackendID[name]
	return id, ok
}

// RegionController - контроллер справочника регионов
type RegionController struct {
	db *gorm.DB
}

func NewRegionController() *RegionController {
	return &RegionController{db: utils.GetDB()}
}

// GetRegions - список регионов
// GET /api/regions
func (rc *RegionController) GetRegions(c *gin.Context) {
	var regions []models.Region
	if err := rc.db.Order("id").Find(&regions).Error; err != nil {
		utils.LogError(err, "RegionController.GetRegions")
		// Справочник не критичен: отдаем пустой список, фронт работает по таблицам
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []models.Region{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": regions})
}

// GetSubRegions - районы внутри региона
// GET /api/regions/:id/sub
func (rc *RegionController) GetSubRegions(c *gin.Context) {
	var subs []models.SubRegion
	if err := rc.db.Where("region_id = ?", c.Param("id")).Order("id").Find(&subs).Error; err != nil {
		utils.LogError(err, "RegionController.GetSubRegions")
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []models.SubRegion{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": subs})
}
