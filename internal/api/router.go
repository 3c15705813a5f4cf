package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf24-api/internal/api/handlers"
	"github.com/raf-aleaqarih/raf24-api/internal/api/middleware"
	"github.com/raf-aleaqarih/raf24-api/internal/cache"
	"github.com/raf-aleaqarih/raf24-api/internal/captcha"
	"github.com/raf-aleaqarih/raf24-api/internal/config"
	"github.com/raf-aleaqarih/raf24-api/internal/geo"
	"github.com/raf-aleaqarih/raf24-api/internal/models"
	"github.com/raf-aleaqarih/raf24-api/internal/services"
	"github.com/raf-aleaqarih/raf24-api/internal/storage"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	store storage.IObjectStorage,
	taskClient *asynq.Client,
	logger *zap.Logger,
) *gin.Engine {
	geocoder := geo.NewGeocoder(cfg)

	adminService := services.NewAdminService(db, cfg, logger)
	apartmentService := services.NewApartmentService(db)
	inquiryService := services.NewInquiryService(db)
	featureService := services.NewFeatureService(db)
	warrantyService := services.NewWarrantyService(db)
	locationFeatureService := services.NewLocationFeatureService(db)
	mediaService := services.NewMediaService(db)
	settingsService := services.NewSettingsService(db, geocoder, logger)

	captchaVerifier := captcha.NewTurnstileVerifier(cfg, logger)
	responseCache := cache.NewResponseCache(rdb, "public", cfg.GetCacheTTL)
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg, logger)

	authHandler := handlers.NewRestAuthHandler(adminService)
	adminHandler := handlers.NewRestAdminHandler(adminService)
	apartmentHandler := handlers.NewRestApartmentHandler(apartmentService)
	inquiryHandler := handlers.NewRestInquiryHandler(inquiryService, taskClient, logger)
	featureHandler := handlers.NewRestContentHandler[models.ProjectFeature](featureService, "Feature")
	warrantyHandler := handlers.NewRestContentHandler[models.ProjectWarranty](warrantyService, "Warranty")
	locationFeatureHandler := handlers.NewRestContentHandler[models.LocationFeature](locationFeatureService, "Location feature")
	mediaHandler := handlers.NewRestMediaHandler(mediaService, store, taskClient, cfg, logger)
	settingsHandler := handlers.NewRestSettingsHandler(settingsService, geocoder)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(cfg.CorsAllowedOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.AppName})
	})

	// Local storage fallback serves uploads straight from disk.
	if cfg.AwsAccessKeyID == "" {
		r.Static("/uploads", cfg.UploadDir)
	}

	public := r.Group("/api/public")
	public.Use(middleware.CaptchaMiddleware(captchaVerifier, logger))
	public.Use(rateLimiter.Limit())
	{
		cached := public.Group("")
		cached.Use(middleware.CacheResponse(responseCache, logger))
		{
			cached.GET("/apartments", apartmentHandler.ListPublic)
			cached.GET("/features", featureHandler.ListPublic)
			cached.GET("/warranties", warrantyHandler.ListPublic)
			cached.GET("/location-features", locationFeatureHandler.ListPublic)
			cached.GET("/media", mediaHandler.ListPublic)
			cached.GET("/project", settingsHandler.GetProjectInfo)
			cached.GET("/contact", settingsHandler.GetContactSettings)
		}

		public.POST("/inquiries", inquiryHandler.CreatePublic)
	}

	admin := r.Group("/api/admin")

	// Auth endpoints that work without an access token.
	admin.POST("/auth/login", authHandler.Login)
	admin.POST("/auth/refresh", authHandler.Refresh)

	authed := admin.Group("")
	authed.Use(middleware.AuthMiddleware(cfg.JwtSecret))
	authed.Use(middleware.InvalidateOnWrite(responseCache, logger))
	{
		authed.POST("/auth/logout", authHandler.Logout)
		authed.GET("/auth/me", authHandler.Me)
		authed.PUT("/auth/password", authHandler.ChangePassword)

		content := authed.Group("")
		content.Use(middleware.RequirePermission(models.PermManageContent))
		{
			content.GET("/apartments", apartmentHandler.List)
			content.POST("/apartments", apartmentHandler.Create)
			content.PUT("/apartments/reorder", apartmentHandler.Reorder)
			content.GET("/apartments/:id", apartmentHandler.Get)
			content.PUT("/apartments/:id", apartmentHandler.Update)
			content.DELETE("/apartments/:id", apartmentHandler.Delete)

			registerContentRoutes(content.Group("/features"), featureHandler)
			registerContentRoutes(content.Group("/warranties"), warrantyHandler)
			registerContentRoutes(content.Group("/location-features"), locationFeatureHandler)
		}

		media := authed.Group("/media")
		media.Use(middleware.RequirePermission(models.PermManageMedia))
		{
			media.GET("", mediaHandler.List)
			media.POST("", mediaHandler.Create)
			media.POST("/upload", mediaHandler.Upload)
			media.PUT("/reorder", mediaHandler.Reorder)
			media.GET("/:id", mediaHandler.Get)
			media.PUT("/:id", mediaHandler.Update)
			media.DELETE("/:id", mediaHandler.Delete)
		}

		inquiries := authed.Group("/inquiries")
		inquiries.Use(middleware.RequirePermission(models.PermManageInquiries))
		{
			inquiries.GET("", inquiryHandler.List)
			inquiries.GET("/:id", inquiryHandler.Get)
			inquiries.PATCH("/:id/status", inquiryHandler.UpdateStatus)
			inquiries.POST("/:id/notes", inquiryHandler.AddNote)
			inquiries.POST("/:id/follow-ups", inquiryHandler.AddFollowUp)
			inquiries.DELETE("/:id", inquiryHandler.Delete)
		}

		settings := authed.Group("")
		settings.Use(middleware.RequirePermission(models.PermManageSettings))
		{
			settings.GET("/project", settingsHandler.GetProjectInfo)
			settings.PUT("/project", settingsHandler.UpdateProjectInfo)
			settings.POST("/project/extract-coordinates", settingsHandler.ExtractCoordinates)
			settings.GET("/contact", settingsHandler.GetContactSettings)
			settings.PUT("/contact", settingsHandler.UpdateContactSettings)
		}

		admins := authed.Group("/admins")
		admins.Use(middleware.RequireRole(models.RoleSuperAdmin))
		{
			admins.GET("", adminHandler.List)
			admins.POST("", adminHandler.Create)
			admins.GET("/:id", adminHandler.Get)
			admins.PUT("/:id", adminHandler.Update)
			admins.DELETE("/:id", adminHandler.Delete)
		}
	}

	return r
}

// registerContentRoutes wires the shared CRUD surface of one flat content
// resource.
func registerContentRoutes[T any](g *gin.RouterGroup, h *handlers.RestContentHandler[T]) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/reorder", h.Reorder)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
