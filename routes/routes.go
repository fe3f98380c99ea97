package routes

import (
	"github.com/Deji-py/eco-rider/configs"
	"github.com/Deji-py/eco-rider/controllers"
	"github.com/Deji-py/eco-rider/middlewares"
	"github.com/Deji-py/eco-rider/repository"
	"github.com/Deji-py/eco-rider/services"
	"github.com/Deji-py/eco-rider/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	riderRepo := repository.NewRiderRepository(db)
	vehicleRepo := repository.NewVehicleTypeRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	// Realtime change feed
	hub := ws.NewFeedHub(riderRepo)
	go hub.Run()

	// Services
	authSvc := services.NewAuthService(userRepo, riderRepo, services.LogMailer{}, cfg.JWTSecret, cfg.JWTTTL)
	riderSvc := services.NewRiderService(db, riderRepo, userRepo, vehicleRepo, assignmentRepo)
	assignmentSvc := services.NewAssignmentService(db, assignmentRepo, riderRepo, hub)
	historySvc := services.NewHistoryService(assignmentRepo, riderRepo)
	analyticsSvc := services.NewAnalyticsService(riderRepo, assignmentRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	riderCtrl := controllers.NewRiderController(riderSvc)
	orderCtrl := controllers.NewOrderController(assignmentSvc, historySvc)
	analyticsCtrl := controllers.NewAnalyticsController(analyticsSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.POST("/verify-otp", authCtrl.VerifyOTP)
		a.POST("/resend-otp", authCtrl.ResendOTP)
		a.POST("/forgot-password", authCtrl.ForgotPassword)
		a.POST("/reset-password", authCtrl.ResetPassword)
	}
	a.GET("/session", auth, authCtrl.Session)

	// Public lookups
	r.GET("/vehicle-types", riderCtrl.VehicleTypes)

	// Rider profile
	rider := r.Group("/rider", auth)
	{
		rider.GET("/me", riderCtrl.Me)
		rider.POST("/me", riderCtrl.Submit)
		rider.PATCH("/me", riderCtrl.Update)
		rider.PATCH("/availability", riderCtrl.Availability)
		rider.POST("/location", riderCtrl.Location)
		rider.POST("/push-token", riderCtrl.PushToken)
		rider.GET("/nearby", riderCtrl.Nearby)
	}

	// Assignment lifecycle
	orders := r.Group("/orders", auth)
	{
		orders.GET("/pending", orderCtrl.Pending)
		orders.GET("/active", orderCtrl.Active)
		orders.GET("/history", orderCtrl.HistoryList)
		orders.GET("/:id", orderCtrl.Detail)
		orders.POST("/:id/accept", orderCtrl.Accept)
		orders.POST("/:id/reject", orderCtrl.Reject)
		orders.POST("/:id/transit", orderCtrl.MarkInTransit)
		orders.POST("/:id/confirm", orderCtrl.Confirm)
	}

	// Analytics
	r.GET("/analytics", auth, analyticsCtrl.Stats)

	// Change feed (token via query string for ws clients)
	r.GET("/ws/orders", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
}
