package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/audit"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/config"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/geocode"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/handlers"
	infraRepo "github.com/Tech-Care-Rwanda/tech-care-sub001/internal/infra/repository"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/middleware"
	ucLocation "github.com/Tech-Care-Rwanda/tech-care-sub001/internal/usecase/location"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	accountRepo := infraRepo.NewAccountGormRepository(db)
	locationRepo := infraRepo.NewLocationGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	geocoder := geocode.NewCachedGeocoder(
		geocode.NewGoogleGeocoder(cfg.MapsAPIKey),
		rdb,
	)

	// ======================================================
	// USE CASES — LOCATIONS
	// ======================================================
	createLocationUC := ucLocation.NewCreateLocation(locationRepo, geocoder, auditDispatcher)
	listLocationsUC := ucLocation.NewListLocations(locationRepo)
	getLocationUC := ucLocation.NewGetLocation(locationRepo)
	updateLocationUC := ucLocation.NewUpdateLocation(locationRepo, geocoder, auditDispatcher)
	deleteLocationUC := ucLocation.NewDeleteLocation(locationRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher)
	locationHandler := handlers.NewLocationHandler(
		createLocationUC,
		listLocationsUC,
		getLocationUC,
		updateLocationUC,
		deleteLocationUC,
	)
	technicianHandler := handlers.NewTechnicianHandler(db, auditDispatcher)
	bookingHandler := handlers.NewBookingHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	authenticate := middleware.Authenticate(cfg, accountRepo)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/technicians", technicianHandler.Browse)
		api.GET("/technicians/:id", technicianHandler.GetByID)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/technician/signup", authHandler.TechnicianSignup)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ANY AUTHENTICATED ACCOUNT
		// ------------------------------
		secured := api.Group("/")
		secured.Use(authenticate)
		{
			secured.GET("/auth/me", authHandler.Me)
			secured.PATCH("/auth/me", authHandler.UpdateMe)

			// Read access is shared with technicians: they need the
			// customer's address to carry out a booking.
			secured.GET("/locations/:id", locationHandler.Get)
		}

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		customer := api.Group("/")
		customer.Use(authenticate, middleware.RequireCustomer())
		{
			customer.POST("/locations", locationHandler.Create)
			customer.GET("/locations", locationHandler.List)
			customer.PUT("/locations/:id", locationHandler.Update)
			customer.DELETE("/locations/:id", locationHandler.Delete)

			customer.POST("/bookings", bookingHandler.Create)
			customer.GET("/bookings", bookingHandler.ListMine)
			customer.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
		}

		// ------------------------------
		// TECHNICIAN
		// ------------------------------
		technician := api.Group("/technician")
		technician.Use(authenticate, middleware.RequireTechnician())
		{
			technician.GET("/bookings", bookingHandler.ListAssigned)
			technician.PATCH("/bookings/:id/confirm", bookingHandler.Confirm)
			technician.PATCH("/bookings/:id/complete", bookingHandler.Complete)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(authenticate, middleware.RequireAdmin())
		{
			admin.GET("/technicians", technicianHandler.AdminList)
			admin.PATCH("/technicians/:id/approve", technicianHandler.Approve)
			admin.PATCH("/technicians/:id/reject", technicianHandler.Reject)
			admin.PATCH("/accounts/:id/deactivate", technicianHandler.Deactivate)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
