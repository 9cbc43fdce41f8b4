package routes

import (
	"tripmoa/controllers"
	"tripmoa/middleware"
	"tripmoa/store"

	"github.com/gin-gonic/gin"
)

// SetupPlanRoutes настраивает маршруты сохраненных планов и чека
func SetupPlanRoutes(router *gin.Engine, kv store.KVStore) {
	planCtrl := controllers.NewPlanController(kv)

	plans := router.Group("/plans", middleware.OptionalJWTMiddleware())
	{
		plans.POST("/save", planCtrl.SavePlan)
		plans.GET("/:id", planCtrl.GetPlan)
		plans.POST("/:id/view", planCtrl.TrackView)
	}

	// Чек доступен и после истечения сессии мастера
	router.GET("/trip/receipt/:planId", middleware.OptionalJWTMiddleware(), planCtrl.Receipt)
}
