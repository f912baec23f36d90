// Package server wires repositories, services and handlers into a gin engine.
package server

import (
	"hospital-management/internal/chat"
	"hospital-management/internal/config"
	"hospital-management/internal/handler"
	"hospital-management/internal/middleware"
	"hospital-management/internal/models"
	"hospital-management/internal/repository"
	"hospital-management/internal/service"
	"hospital-management/internal/session"
	"hospital-management/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	Router *gin.Engine
	Worker *service.WorkerService
}

// New builds the HTTP application on top of db and sessions
func New(cfg *config.Config, db *gorm.DB, sessions *session.Store, log *zap.Logger) *Server {
	// Repositories
	userRepo := repository.NewUserRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	hospitalRepo := repository.NewHospitalRepo(db)
	departmentRepo := repository.NewDepartmentRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// Services
	authService := service.NewAuthService(userRepo, profileRepo, auditRepo, sessions, log)
	hospitalService := service.NewHospitalService(hospitalRepo, userRepo, profileRepo, auditRepo, log)
	departmentService := service.NewDepartmentService(departmentRepo, hospitalRepo, auditRepo, log)
	doctorService := service.NewDoctorService(profileRepo, userRepo, departmentRepo, appointmentRepo, auditRepo, cfg.Appointments, log)
	appointmentService := service.NewAppointmentService(appointmentRepo, hospitalRepo, departmentRepo, profileRepo,
		auditRepo, notificationRepo, cfg.Appointments, log)
	dashboardService := service.NewDashboardService(hospitalRepo, departmentRepo, userRepo, profileRepo,
		appointmentRepo, reviewRepo, notificationRepo)
	reviewService := service.NewReviewService(reviewRepo, profileRepo, appointmentRepo, auditRepo, notificationRepo, cfg.Reviews, log)
	notificationService := service.NewNotificationService(notificationRepo)

	// Handlers
	h := handlers{
		auth:         handler.NewAuthHandler(authService, cfg.IsRelease()),
		hospital:     handler.NewHospitalHandler(hospitalService),
		department:   handler.NewDepartmentHandler(departmentService),
		doctor:       handler.NewDoctorHandler(doctorService),
		appointment:  handler.NewAppointmentHandler(appointmentService),
		dashboard:    handler.NewDashboardHandler(dashboardService),
		review:       handler.NewReviewHandler(reviewService),
		notification: handler.NewNotificationHandler(notificationService),
		chat:         handler.NewChatHandler(chat.NewDefaultResponder()),
	}

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log), middleware.CORS(cfg))
	registerRoutes(r, middleware.NewGate(sessions, log), h)

	return &Server{
		Router: r,
		Worker: service.NewWorkerService(appointmentService, cfg.Appointments.MissedSweepInterval, log),
	}
}

type handlers struct {
	auth         *handler.AuthHandler
	hospital     *handler.HospitalHandler
	department   *handler.DepartmentHandler
	doctor       *handler.DoctorHandler
	appointment  *handler.AppointmentHandler
	dashboard    *handler.DashboardHandler
	review       *handler.ReviewHandler
	notification *handler.NotificationHandler
	chat         *handler.ChatHandler
}

func registerRoutes(r *gin.Engine, gate *middleware.Gate, h handlers) {
	superAdmin := middleware.RequireRole(models.RoleSuperAdmin)
	admins := middleware.RequireRole(models.RoleSuperAdmin, models.RoleHospitalAdmin)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hospital-management",
		})
	})

	// Chat widget (public)
	r.POST("/chat", h.chat.Chat)

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.auth.Register)
		auth.POST("/login", h.auth.Login)

		account := auth.Group("", gate.RequireSession())
		account.POST("/logout", h.auth.Logout)
		account.POST("/refresh", h.auth.Refresh)
		account.GET("/me", h.auth.Me)
		account.PUT("/me", h.auth.UpdateProfile)
	}

	authed := r.Group("", gate.RequireSession())

	// Dashboards
	authed.GET("/dashboard", h.dashboard.Dashboard)
	authed.GET("/super-admin/dashboard", superAdmin, h.dashboard.Dashboard)
	authed.GET("/hospital-admin/dashboard", middleware.RequireRole(models.RoleHospitalAdmin), h.dashboard.Dashboard)
	authed.GET("/doctor/dashboard", middleware.RequireRole(models.RoleDoctor), h.dashboard.Dashboard)
	authed.GET("/patient/dashboard", middleware.RequireRole(models.RolePatient), h.dashboard.Dashboard)

	// Hospitals and their departments, doctors and admins
	hospitals := authed.Group("/hospitals")
	{
		hospitals.GET("", h.hospital.GetAllHospitals)
		hospitals.POST("", superAdmin, h.hospital.CreateHospital)

		hospital := hospitals.Group("/:hospital_id", middleware.RequireHospitalScope())
		hospital.GET("", h.hospital.GetHospital)
		hospital.PUT("", superAdmin, h.hospital.UpdateHospital)
		hospital.PATCH("/status", superAdmin, h.hospital.SetHospitalStatus)
		hospital.GET("/admins", admins, h.hospital.GetHospitalAdmins)
		hospital.POST("/admins", superAdmin, h.hospital.CreateHospitalAdmin)

		hospital.GET("/departments", h.department.GetDepartments)
		hospital.POST("/departments", admins, h.department.CreateDepartment)
		hospital.PUT("/departments/:department_id", admins, h.department.UpdateDepartment)
		hospital.DELETE("/departments/:department_id", admins, h.department.DeleteDepartment)

		hospital.GET("/doctors", h.doctor.GetDoctors)
		hospital.POST("/doctors", admins, h.doctor.CreateDoctor)
	}

	// Doctors
	doctors := authed.Group("/doctors")
	{
		doctors.GET("/:id", h.doctor.GetDoctor)
		doctors.GET("/:id/slots", h.doctor.GetSlots)
		doctors.GET("/:id/reviews", h.review.GetDoctorReviews)
	}

	// Appointments
	appointments := authed.Group("/appointments")
	{
		appointments.POST("", middleware.RequireRole(models.RolePatient, models.RoleHospitalAdmin, models.RoleSuperAdmin),
			h.appointment.CreateAppointment)
		appointments.GET("", h.appointment.GetAppointments)
		appointments.GET("/:id", h.appointment.GetAppointment)
		appointments.PATCH("/:id/status", h.appointment.UpdateStatus)
	}

	// Reviews
	reviews := authed.Group("/reviews")
	{
		reviews.POST("", middleware.RequireRole(models.RolePatient), h.review.CreateReview)
		reviews.GET("/pending", admins, h.review.GetPendingReviews)
		reviews.POST("/:id/approve", admins, h.review.ApproveReview)
		reviews.POST("/:id/reject", admins, h.review.RejectReview)
	}

	// Notifications
	notifications := authed.Group("/notifications")
	{
		notifications.GET("", h.notification.GetNotifications)
		notifications.GET("/unread-count", h.notification.UnreadCount)
	}
}
