package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/config"
	"storefront/pkg/identity"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// IdentityVerifier is the slice of the identity client the middleware needs.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*identity.Identity, error)
}

// AuthRequired extracts the bearer token and resolves it to a verified
// identity. Requests without a valid token never reach the handler.
func AuthRequired(verifier IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing or malformed authorization header"})
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			// Verification detail is not leaked to the client.
			if !errors.Is(err, identity.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"success": false, "message": "Authentication service unavailable"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// AdminRequired gates a route behind the configured admin allowlist. Must
// run after AuthRequired.
func AdminRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := currentIdentity(c)
		if id == nil || !cfg.IsAdmin(id.Email) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin access required"})
			return
		}
		c.Next()
	}
}

func currentIdentity(c *gin.Context) *identity.Identity {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, ok := value.(*identity.Identity)
	if !ok {
		return nil
	}
	return id
}
