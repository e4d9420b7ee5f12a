// internal/router/router.go
package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/herambgvd/gvd-frs/internal/config"
	"github.com/herambgvd/gvd-frs/internal/documents"
	"github.com/herambgvd/gvd-frs/internal/handlers"
	"github.com/herambgvd/gvd-frs/internal/middleware"
	"github.com/herambgvd/gvd-frs/internal/services"
)

// Initialize builds the service graph and mounts both API surfaces: the
// license/tenant management API under /api/v1 (X-API-Key auth) and the FRS
// support API under /api (bearer JWT auth).
func Initialize(db *gorm.DB, store *documents.Store, storageService *services.StorageService, cfg *config.Config) *gin.Engine {
	// Initialize services
	keyStore := services.NewKeyStore(db)
	licenseService := services.NewLicenseService(db, keyStore)
	tenantService := services.NewTenantService(db)
	identityService := services.NewIdentityService(&cfg.Identity)
	groupService := services.NewGroupService(store)
	poiService := services.NewPOIService(store, groupService, storageService)
	mediaService := services.NewMediaService(store, storageService)

	// Initialize handlers
	licenseHandler := handlers.NewLicenseHandler(licenseService)
	tenantHandler := handlers.NewTenantHandler(tenantService)
	demoHandler := handlers.NewDemoHandler(cfg, licenseService, tenantService)
	groupHandler := handlers.NewGroupHandler(groupService)
	poiHandler := handlers.NewPOIHandler(poiService)
	mediaHandler := handlers.NewMediaHandler(mediaService)

	// Initialize Gin router
	r := gin.New()

	limiters := middleware.NewLimiters(cfg.RateLimit)

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(limiters.General())

	// Health check
	r.GET("/health", handlers.Health(cfg))

	// License/tenant management API
	v1 := r.Group("/api/v1")
	{
		licenses := v1.Group("/licenses")
		{
			authed := licenses.Group("")
			authed.Use(middleware.LicenseAuth(keyStore))
			{
				// Inspect path for the queried key; the caller's own key is
				// still consumed by the auth middleware like any other call.
				authed.POST("/validate", limiters.Validate(),
					middleware.RequireLicensePermission("read"), licenseHandler.ValidateLicense)

				authed.GET("/my-info", licenseHandler.GetMyInfo)
				authed.GET("/stats/summary", middleware.RequireLicensePermission("read"), licenseHandler.GetStats)

				admin := authed.Group("")
				admin.Use(middleware.RequireLicensePermission("admin"))
				{
					admin.POST("", licenseHandler.CreateLicense)
					admin.GET("", licenseHandler.ListLicenses)
					admin.GET("/:id", licenseHandler.GetLicense)
					admin.PUT("/:id", licenseHandler.UpdateLicense)
					admin.DELETE("/:id", licenseHandler.DeleteLicense)
					admin.POST("/:id/revoke", licenseHandler.RevokeLicense)
					admin.POST("/:id/activate", licenseHandler.ActivateLicense)
					admin.POST("/:id/reset-usage", licenseHandler.ResetUsage)
				}
			}
		}

		tenants := v1.Group("/tenants")
		tenants.Use(middleware.LicenseAuth(keyStore))
		{
			tenants.GET("", middleware.RequireLicensePermission("read"), tenantHandler.ListTenants)
			tenants.GET("/stats/summary", middleware.RequireLicensePermission("read"), tenantHandler.GetStats)
			tenants.GET("/:id", middleware.RequireLicensePermission("read"), tenantHandler.GetTenant)
			tenants.PUT("/:id", middleware.RequireLicensePermission("write"), tenantHandler.UpdateTenant)
			tenants.POST("/:id/users/increment", middleware.RequireLicensePermission("write"), tenantHandler.IncrementUsers)
			tenants.POST("/:id/users/decrement", middleware.RequireLicensePermission("write"), tenantHandler.DecrementUsers)

			admin := tenants.Group("")
			admin.Use(middleware.RequireLicensePermission("admin"))
			{
				admin.POST("", tenantHandler.CreateTenant)
				admin.DELETE("/:id", tenantHandler.DeleteTenant)
				admin.POST("/:id/activate", tenantHandler.ActivateTenant)
				admin.POST("/:id/deactivate", tenantHandler.DeactivateTenant)
				admin.POST("/:id/suspend", tenantHandler.SuspendTenant)
			}
		}

		demo := v1.Group("/demo")
		{
			demo.GET("/", demoHandler.GetInfo)
			demo.GET("/stats", demoHandler.GetStats)
		}
	}

	// FRS support API
	api := r.Group("/api")
	api.Use(middleware.BearerAuth(identityService))
	{
		groups := api.Group("/groups")
		{
			groups.POST("", middleware.RequirePermission("frs_groups_create"), groupHandler.CreateGroup)
			groups.GET("", middleware.RequirePermission("frs_groups_read"), groupHandler.ListGroups)
			groups.GET("/organization/:orgId", middleware.RequirePermission("frs_groups_read"), groupHandler.GetOrganizationGroups)
			groups.GET("/:id", middleware.RequirePermission("frs_groups_read"), groupHandler.GetGroup)
			groups.PUT("/:id", middleware.RequirePermission("frs_groups_update"), groupHandler.UpdateGroup)
			groups.DELETE("/:id", middleware.RequirePermission("frs_groups_delete"), groupHandler.DeleteGroup)
		}

		poi := api.Group("/poi")
		{
			poi.POST("", middleware.RequirePermission("frs_poi_create"), poiHandler.CreatePOI)
			poi.GET("", middleware.RequirePermission("frs_poi_read"), poiHandler.ListPOIs)
			poi.POST("/bulk", middleware.RequirePermission("frs_poi_update"), poiHandler.BulkOperation)
			poi.GET("/:personId", middleware.RequirePermission("frs_poi_read"), poiHandler.GetPOI)
			poi.PUT("/:personId", middleware.RequirePermission("frs_poi_update"), poiHandler.UpdatePOI)
			poi.DELETE("/:personId", middleware.RequirePermission("frs_poi_delete"), poiHandler.DeletePOI)
			poi.POST("/:personId/image", middleware.RequirePermission("frs_poi_update"), limiters.Upload(), poiHandler.UploadImage)
			poi.GET("/:personId/image", middleware.RequirePermission("frs_poi_read"), poiHandler.GetImage)
			poi.DELETE("/:personId/image", middleware.RequirePermission("frs_poi_update"), poiHandler.DeleteImage)
		}

		media := api.Group("/media")
		{
			media.POST("/upload-multiple", middleware.RequirePermission("frs_media_upload"), limiters.Upload(), mediaHandler.UploadMultiple)
			media.GET("", middleware.RequirePermission("frs_media_read"), mediaHandler.ListUploads)
		}
	}

	return r
}
