package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	TenantHeader = "X-Tenant-ID"
	UserHeader   = "X-User-ID"

	tenantKey = "tenant_id"
)

// TenantScope rejects requests without a valid X-Tenant-ID and stores the
// tenant on the context for the handlers below it.
func TenantScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(TenantHeader))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-Tenant-ID header must be a workspace ID"})
			return
		}
		c.Set(tenantKey, id)
		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("tenant_id", c.GetHeader(TenantHeader)))
	}
}

func tenantFrom(c *gin.Context) uuid.UUID {
	id, _ := c.Get(tenantKey)
	tid, _ := id.(uuid.UUID)
	return tid
}

// actorFrom names whoever is acting, for audit trails.
func actorFrom(c *gin.Context) string {
	if a := c.GetHeader(UserHeader); a != "" {
		return a
	}
	return "anonymous"
}

// memberFrom returns the signed-in user's ID, or nil for guests.
func memberFrom(c *gin.Context) (*uint, bool) {
	raw := c.GetHeader(UserHeader)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID must be a user ID"})
		return nil, false
	}
	id := uint(n)
	return &id, true
}

func idParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(n), true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
