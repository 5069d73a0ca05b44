package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware returns a gin middleware that extracts and validates a Bearer
// JWT from the Authorization header and injects the Principal into the
// request context. Paths listed in allowUnauthenticated bypass authentication
// (e.g., health checks, metrics).
func Middleware(secret string, allowUnauthenticated ...string) gin.HandlerFunc {
	allow := make(map[string]struct{}, len(allowUnauthenticated))
	for _, p := range allowUnauthenticated {
		allow[strings.TrimSpace(p)] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := allow[c.FullPath()]; ok {
			c.Next()
			return
		}
		p, err := ParseBearer(c.GetHeader("Authorization"), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "auth error: " + err.Error()})
			return
		}
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// RequireAdmin aborts the request unless the authenticated principal is an
// admin. Catalog writes are admin-only; cashiers operate carts and orders.
func RequireAdmin(c *gin.Context) {
	p, ok := FromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	if p.Kind != KindAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "only admin can perform this action"})
		return
	}
	c.Next()
}
