package routes

import (
	"github.com/gin-gonic/gin"

	"dental-clinic-server/internal/config"
	"dental-clinic-server/internal/handlers"
	"dental-clinic-server/internal/middleware"
	"dental-clinic-server/internal/models"
	"dental-clinic-server/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, records *store.RecordStore, sessions *store.SessionStore, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(sessions, cfg)
	patientHandler := handlers.NewPatientHandler(records)
	incidentHandler := handlers.NewIncidentHandler(records)
	dashboardHandler := handlers.NewDashboardHandler(records)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
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
		}

		// Patient record routes. Reads of a single record are open to both
		// roles; the handler limits patients to their own record. Everything
		// else is admin-only.
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.GET("/:id/incidents", patientHandler.GetPatientIncidents)

			adminRoutes := patientRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.GET("", patientHandler.ListPatients)
				adminRoutes.POST("", patientHandler.CreatePatient)
				adminRoutes.PUT("/:id", patientHandler.UpdatePatient)
				adminRoutes.DELETE("/:id", patientHandler.DeletePatient)
			}
		}

		// Incident routes. Listing and single reads differentiate by role in
		// the handler; mutations are admin-only.
		incidentRoutes := private.Group("/incidents")
		{
			incidentRoutes.GET("", incidentHandler.ListIncidents)
			incidentRoutes.GET("/:id", incidentHandler.GetIncidentByID)

			adminRoutes := incidentRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", incidentHandler.CreateIncident)
				adminRoutes.PUT("/:id", incidentHandler.UpdateIncident)
				adminRoutes.DELETE("/:id", incidentHandler.DeleteIncident)
				adminRoutes.POST("/:id/files", incidentHandler.AttachFile)
				adminRoutes.DELETE("/:id/files/:index", incidentHandler.RemoveFile)
			}
		}

		// Dashboard routes (admin only)
		dashboardRoutes := private.Group("/dashboard")
		dashboardRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			dashboardRoutes.GET("/stats", dashboardHandler.GetStats)
			dashboardRoutes.GET("/upcoming", dashboardHandler.GetUpcoming)
			dashboardRoutes.GET("/top-patients", dashboardHandler.GetTopPatients)
			dashboardRoutes.GET("/calendar", dashboardHandler.GetCalendar)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
