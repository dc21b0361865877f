package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

// TenantHandler manages workspaces and their users. Its routes take the
// tenant from the path rather than the X-Tenant-ID header.
type TenantHandler struct {
	tenants *services.TenantService
	logger  *zap.Logger
}

func NewTenantHandler(tenants *services.TenantService, logger *zap.Logger) *TenantHandler {
	return &TenantHandler{tenants: tenants, logger: logger}
}

func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.Create)
		tenants.GET("/:id", h.Get)
		tenants.GET("/:id/quota", h.Quota)
		tenants.POST("/:id/users", h.CreateUser)
		tenants.GET("/:id/users", h.ListUsers)
	}
}

func (h *TenantHandler) Create(c *gin.Context) {
	var req dtos.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	t, err := h.tenants.CreateTenant(c.Request.Context(), req.Name, req.Slug, req.JobQuota)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	t, err := h.tenants.GetTenant(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TenantHandler) Quota(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	q, err := h.tenants.Quota(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *TenantHandler) CreateUser(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dtos.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	u := req.User()
	if err := h.tenants.CreateUser(c.Request.Context(), id, u); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *TenantHandler) ListUsers(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	users, err := h.tenants.ListUsers(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
