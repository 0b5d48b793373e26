package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/exam-portal-service/internal/config"
	"github.com/SAP-F-2025/exam-portal-service/internal/models"
	"github.com/SAP-F-2025/exam-portal-service/internal/services"
	"github.com/SAP-F-2025/exam-portal-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	examHandler      *ExamHandler
	studentHandler   *StudentHandler
	reportingHandler *ReportingHandler
	userHandler      *UserHandler
	authMiddleware   *JWTAuthMiddleware
	serviceManager   services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	jwtConfig config.JWTConfig,
) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), logger),
		examHandler:      NewExamHandler(serviceManager.Exam(), logger),
		studentHandler:   NewStudentHandler(serviceManager.Student(), serviceManager.Scoring(), serviceManager.Monitoring(), logger),
		reportingHandler: NewReportingHandler(serviceManager.Reporting(), serviceManager.Monitoring(), logger),
		userHandler:      NewUserHandler(serviceManager.User(), logger),
		authMiddleware:   NewJWTAuthMiddleware(jwtConfig),
		serviceManager:   serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", hm.authHandler.Register)
		auth.POST("/login", hm.authHandler.Login)
	}

	// Authenticated auth routes
	authSession := v1.Group("/auth")
	authSession.Use(hm.authMiddleware.AuthMiddleware())
	{
		authSession.GET("/me", hm.authHandler.Me)
		authSession.PUT("/me", hm.authHandler.UpdateMe)
		authSession.POST("/logout", hm.authHandler.Logout)
	}

	// Student routes - students only (admins pass role gates)
	student := v1.Group("/student")
	student.Use(hm.authMiddleware.AuthMiddleware())
	student.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent))
	{
		student.GET("/exams", hm.studentHandler.ListExams)
		student.GET("/exams/:id", hm.studentHandler.GetExam)
		student.POST("/exams/submit", hm.studentHandler.SubmitExam)
		student.POST("/exams/monitor", hm.studentHandler.Monitor)
		student.GET("/results", hm.studentHandler.GetResults)
	}

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(hm.authMiddleware.AuthMiddleware())
	admin.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
	{
		exams := admin.Group("/exams")
		{
			exams.POST("", hm.examHandler.CreateExam)
			exams.GET("", hm.examHandler.ListExams)
			exams.GET("/:id", hm.examHandler.GetExam)
			exams.PUT("/:id", hm.examHandler.UpdateExam)
			exams.PATCH("/:id/schedule", hm.examHandler.SetSchedule)
			exams.DELETE("/:id", hm.examHandler.DeleteExam)
		}

		admin.GET("/results", hm.reportingHandler.GetResults)
		admin.GET("/results/export", hm.reportingHandler.ExportResults)
		admin.GET("/dashboard", hm.reportingHandler.GetDashboard)
		admin.GET("/monitoring", hm.reportingHandler.GetMonitoringLogs)

		users := admin.Group("/users")
		{
			users.GET("", hm.userHandler.ListUsers)
			users.DELETE("/:id", hm.userHandler.DeleteUser)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "exam-portal-service",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "exam-portal-service",
	})
}
