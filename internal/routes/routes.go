package routes

import (
	"clinic-app-server/internal/booking"
	"clinic-app-server/internal/config"
	"clinic-app-server/internal/handlers"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/notify"
	"clinic-app-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, notifier *notify.Notifier, log *zap.Logger) {
	scheduleStore := store.NewScheduleStore(db)
	appointmentStore := store.NewAppointmentStore(db)

	availabilitySvc := booking.NewAvailabilityService(scheduleStore, appointmentStore, cfg.SlotIntervalMinutes, log)
	bookingSvc := booking.NewBookingService(scheduleStore, appointmentStore, notifier, log)
	scheduleSvc := booking.NewScheduleService(scheduleStore, log)

	authHandler := handlers.NewAuthHandler(db, cfg)
	doctorHandler := handlers.NewDoctorHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db, scheduleSvc)
	appointmentHandler := handlers.NewAppointmentHandler(db, bookingSvc, availabilitySvc)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		doctorRoutes := public.Group("/doctors")
		{
			doctorRoutes.GET("", doctorHandler.GetAllDoctors)
			doctorRoutes.GET("/availability", appointmentHandler.GetAvailability)
			doctorRoutes.GET("/:id/schedule", scheduleHandler.GetDoctorSchedule)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Doctor-only: own professional profile and weekly schedule
		doctorRoutes := private.Group("/doctors")
		doctorRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			doctorRoutes.PUT("/profile", doctorHandler.UpdateProfile)
			doctorRoutes.GET("/schedule", scheduleHandler.GetMySchedule)
			doctorRoutes.POST("/schedule", scheduleHandler.AddWindow)
			doctorRoutes.PUT("/schedule/:id", scheduleHandler.UpdateWindow)
			doctorRoutes.DELETE("/schedule/:id", scheduleHandler.DeleteWindow)
		}

		// Patient-only: own medical profile
		patientRoutes := private.Group("/patients")
		patientRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			patientRoutes.GET("/profile", patientHandler.GetMyProfile)
			patientRoutes.PUT("/profile", patientHandler.UpdateMyProfile)
		}

		// Appointments
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("/book", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.BookAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetMyAppointments)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus) // Authorization inside the booking service
		}

		// Medical records
		medicalRecordRoutes := private.Group("/medical-records")
		{
			medicalRecordRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor), medicalRecordHandler.CreateMedicalRecord)
			medicalRecordRoutes.GET("/patient/:patientId", medicalRecordHandler.GetRecordsForPatient) // Auth in handler
			medicalRecordRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), medicalRecordHandler.UpdateMedicalRecord)
			medicalRecordRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), medicalRecordHandler.DeleteMedicalRecord)
		}

		// Admin
		adminRoutes := private.Group("/admin")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.POST("/doctors", adminHandler.CreateDoctor)
			adminRoutes.GET("/stats", adminHandler.GetStats)
		}
	}

	// Operational endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
