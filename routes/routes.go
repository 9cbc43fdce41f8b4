package routes

import (
	"tripmoa/controllers"
	"tripmoa/middleware"
	"tripmoa/store"
	"tripmoa/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter создает gin.Engine и регистрирует все маршруты
func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RecoveryMiddleware())

	// CORS middleware ДО роутов
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://tripmoa.kr", "https://www.tripmoa.kr"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Сессии мастера живут за портом store.KVStore: в проде Redis,
	// в тестах без Redis - хранилище в памяти
	var kv store.KVStore
	if rdb := utils.GetRedis(); rdb != nil {
		kv = store.NewRedisStore(rdb)
	} else {
		kv = store.NewMemoryStore()
	}

	regionController := controllers.NewRegionController()
	productController := controllers.NewProductController()

	// Справочники
	r.GET("/api/regions", regionController.GetRegions)
	r.GET("/api/regions/:id/sub", regionController.GetSubRegions)
	r.GET("/api/accommodations", productController.GetAccommodations)
	r.GET("/api/activities", productController.GetActivities)
	r.GET("/api/tickets", productController.GetTickets)

	SetupTripRoutes(r, kv)
	SetupPlanRoutes(r, kv)
	SetupPaymentRoutes(r, kv)

	return r
}
