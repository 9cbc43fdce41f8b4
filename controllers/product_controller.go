package controllers

import (
	"net/http"

	"tripmoa/models"
	"tripmoa/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProductController - каталоги продуктов, наполняются кроном парсера
type ProductController struct {
	db *gorm.DB
}

func NewProductController() *ProductController {
	return &ProductController{db: utils.GetDB()}
}

func (p *ProductController) listQuery(c *gin.Context) *gorm.DB {
	query := p.db.Order("id")
	if region := c.Query("regionName"); region != "" {
		query = query.Where("region_name = ?", region)
	}
	if regionID := c.Query("regionId"); regionID != "" {
		query = query.Where("region_id = ?", regionID)
	}
	return query
}

// GetAccommodations - каталог проживания
// GET /api/accommodations?regionName=
func (p *ProductController) GetAccommodations(c *gin.Context) {
	var items []models.Accommodation
	if err := p.listQuery(c).Find(&items).Error; err != nil {
		utils.LogError(err, "ProductController.GetAccommodations")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Ошибка базы данных"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "count": len(items)})
}

// GetActivities - каталог активностей
// GET /api/activities?regionName=
func (p *ProductController) GetActivities(c *gin.Context) {
	var items []models.Activity
	if err := p.listQuery(c).Find(&items).Error; err != nil {
		utils.LogError(err, "ProductController.GetActivities")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Ошибка базы данных"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "count": len(items)})
}

// GetTickets - каталог билетов
// GET /api/tickets?regionName=
func (p *ProductController) GetTickets(c *gin.Context) {
	var items []models.Ticket
	if err := p.listQuery(c).Find(&items).Error; err != nil {
		utils.LogError(err, "ProductController.GetTickets")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Ошибка базы данных"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "count": len(items)})
}
