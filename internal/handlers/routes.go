package handlers

import "github.com/gin-gonic/gin"

// Handlers groups the route owners mounted under /api/v1.
type Handlers struct {
	Tenants      *TenantHandler
	Jobs         *JobHandler
	Applications *ApplicationHandler
	Wizards      *WizardHandler
}

// RegisterRoutes mounts the API on r. Everything except /health and
// /tenants requires the X-Tenant-ID header.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api/v1")
	api.GET("/health", HealthCheck)
	h.Tenants.RegisterRoutes(api)

	scoped := api.Group("", TenantScope())
	h.Jobs.RegisterRoutes(scoped)
	h.Applications.RegisterRoutes(scoped)
	h.Wizards.RegisterRoutes(scoped)
}
