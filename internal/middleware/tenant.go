package middleware

import (
	"net/http"

	"comanda/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const TenantHeader = "X-Tenant-ID"

// PublicTenant resolves the tenant of an unauthenticated QR request from the
// X-Tenant-ID header. A missing or malformed header is rejected with 400.
func PublicTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(TenantHeader))
		if err != nil || id == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("tenant no identificado"))
			return
		}
		c.Set(TenantIDKey, id)
		c.Next()
	}
}
