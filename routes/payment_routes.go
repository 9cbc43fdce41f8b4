package routes

import (
	"tripmoa/config"
	"tripmoa/controllers"
	"tripmoa/middleware"
	"tripmoa/store"

	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes настраивает маршруты возврата провайдеров и истории платежей
func SetupPaymentRoutes(router *gin.Engine, kv store.KVStore) {
	paymentCtrl := controllers.NewPaymentController(kv, config.LoadConfig())

	// Страницы возврата провайдеров, вызываются редиректом без токена
	payment := router.Group("/payment")
	{
		payment.GET("/kakao/success", paymentCtrl.KakaoSuccess)
		payment.GET("/kakao/cancel", paymentCtrl.KakaoCancel)
		payment.GET("/kakao/fail", paymentCtrl.KakaoFail)
		payment.POST("/approve", paymentCtrl.KakaoApprove)
		payment.POST("/toss/confirm", paymentCtrl.TossConfirm)
	}

	api := router.Group("/api", middleware.JWTAuthMiddleware())
	{
		api.GET("/payment/:id", paymentCtrl.GetPayment)
		api.GET("/payments", paymentCtrl.GetPayments)
	}
}
