package routes

import (
	"tripmoa/config"
	"tripmoa/controllers"
	"tripmoa/middleware"
	"tripmoa/store"

	"github.com/gin-gonic/gin"
)

// SetupTripRoutes настраивает маршруты мастера планирования поездки
func SetupTripRoutes(router *gin.Engine, kv store.KVStore) {
	cfg := config.LoadConfig()
	tripCtrl := controllers.NewTripController(kv, cfg)
	checkoutCtrl := controllers.NewCheckoutController(kv, cfg)

	// Мастер доступен анонимно; user_id ставится при наличии токена
	trip := router.Group("/trip", middleware.OptionalJWTMiddleware())
	{
		trip.POST("/region", tripCtrl.StartRegion)
		trip.POST("/region/random", tripCtrl.StartRandomRegion)
		trip.POST("/config", tripCtrl.Configure)
		trip.POST("/recommend", tripCtrl.Recommend)
		trip.POST("/spots/toggle", tripCtrl.ToggleSpot)
		trip.GET("/products", tripCtrl.GetProducts)
		trip.POST("/checkout", checkoutCtrl.Checkout)
	}

	// Рекомендация без сессии мастера
	router.POST("/api/plans/recommend", tripCtrl.RecommendDirect)
}
