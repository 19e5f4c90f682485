package api

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services bundles everything SetupRoutes needs to wire the handlers.
type Services struct {
	Auth       service.AuthService
	Member     service.MemberService
	Trainer    service.TrainerService
	Class      service.ClassService
	Booking    service.BookingService
	Billing    service.BillingService
	Progress   service.ProgressService
	Workout    service.WorkoutService
	Attendance service.AttendanceService
	Exercise   service.ExerciseService
	Analytics  service.AnalyticsService
}

func SetupRoutes(router *gin.Engine, jwtSecret string, svcs Services) {
	authHandler := NewAuthHandler(svcs.Auth)
	memberHandler := NewMemberHandler(svcs.Member)
	trainerHandler := NewTrainerHandler(svcs.Trainer)
	classHandler := NewClassHandler(svcs.Class)
	bookingHandler := NewBookingHandler(svcs.Booking)
	billingHandler := NewBillingHandler(svcs.Billing)
	progressHandler := NewProgressHandler(svcs.Progress)
	workoutHandler := NewWorkoutHandler(svcs.Workout)
	attendanceHandler := NewAttendanceHandler(svcs.Attendance)
	exerciseHandler := NewExerciseHandler(svcs.Exercise)
	adminHandler := NewAdminHandler(svcs.Analytics)

	authMiddleware := AuthMiddleware(jwtSecret)
	staffOnly := RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		memberGroup := protected.Group("/members")
		{
			memberGroup.GET("", memberHandler.List)
			memberGroup.PUT("/:id", adminOnly, memberHandler.Update)
		}

		protected.GET("/trainers", trainerHandler.List)

		classGroup := protected.Group("/classes")
		{
			classGroup.GET("", classHandler.List)
			classGroup.GET("/:id", classHandler.Get)
			classGroup.POST("", staffOnly, classHandler.Create)
			classGroup.PUT("/:id", staffOnly, classHandler.Update)
			classGroup.DELETE("/:id", staffOnly, classHandler.Delete)
		}

		bookingGroup := protected.Group("/bookings")
		{
			bookingGroup.GET("", bookingHandler.List)
			bookingGroup.GET("/:id", bookingHandler.Get)
			bookingGroup.POST("", bookingHandler.Create)
			bookingGroup.PUT("/:id", bookingHandler.Update)
			bookingGroup.DELETE("/:id", bookingHandler.Delete)
		}

		invoiceGroup := protected.Group("/invoices")
		{
			invoiceGroup.GET("", billingHandler.ListInvoices)
			invoiceGroup.GET("/:id", billingHandler.GetInvoice)
			invoiceGroup.POST("", adminOnly, billingHandler.CreateInvoice)
			invoiceGroup.PUT("/:id", adminOnly, billingHandler.AttachPayment)
		}

		paymentGroup := protected.Group("/payments")
		{
			paymentGroup.GET("/history", billingHandler.PaymentHistory)
			paymentGroup.POST("/renew", billingHandler.RenewMembership)
		}

		progressGroup := protected.Group("/progress")
		{
			progressGroup.GET("", progressHandler.List)
			progressGroup.POST("", progressHandler.Create)
			progressGroup.POST("/photos/upload-url", progressHandler.PhotoUploadURL)
			progressGroup.GET("/photos/download-url", progressHandler.PhotoDownloadURL)
			progressGroup.GET("/:id", progressHandler.Get)
			progressGroup.PUT("/:id", progressHandler.Update)
			progressGroup.DELETE("/:id", progressHandler.Delete)
		}

		planGroup := protected.Group("/workout-plans")
		{
			planGroup.GET("", workoutHandler.ListPlans)
			planGroup.GET("/:id", workoutHandler.GetPlan)
			planGroup.POST("", staffOnly, workoutHandler.CreatePlan)
			planGroup.PUT("/:id", staffOnly, workoutHandler.UpdatePlan)
			planGroup.DELETE("/:id", staffOnly, workoutHandler.DeletePlan)
		}

		sessionGroup := protected.Group("/workout-sessions")
		{
			sessionGroup.GET("", workoutHandler.ListSessions)
			sessionGroup.GET("/:id", workoutHandler.GetSession)
			sessionGroup.POST("", workoutHandler.CreateSession)
			sessionGroup.PUT("/:id", workoutHandler.UpdateSession)
			sessionGroup.DELETE("/:id", workoutHandler.DeleteSession)
		}

		attendanceGroup := protected.Group("/attendance")
		{
			attendanceGroup.GET("", attendanceHandler.List)
			attendanceGroup.POST("/log", attendanceHandler.Log)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.List)
			exerciseGroup.POST("", staffOnly, exerciseHandler.Create)
			exerciseGroup.POST("/seed", adminOnly, exerciseHandler.Seed)
		}

		adminGroup := protected.Group("/admin")
		adminGroup.Use(adminOnly)
		{
			adminGroup.GET("/stats", adminHandler.Stats)
			adminGroup.GET("/analytics", adminHandler.Analytics)
		}
	}
}
