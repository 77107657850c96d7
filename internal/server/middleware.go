package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/staffdeck/staffdeck/internal/auth/domain"
)

const (
	sessionCookieName  = "_sid"
	contextIdentityKey = "identity"
)

// AuthRequired resolves the session cookie to an identity and stores it on
// the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || strings.TrimSpace(token) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		identity, err := s.authSvc.Resolve(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextIdentityKey, identity)
		c.Next()
	}
}

// RequireKind restricts a route group to one identity kind.
func (s *Server) RequireKind(kind authdomain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentIdentity(c).Kind != kind {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func currentIdentity(c *gin.Context) authdomain.Identity {
	value, ok := c.Get(contextIdentityKey)
	if !ok {
		return authdomain.Identity{}
	}
	identity, ok := value.(authdomain.Identity)
	if !ok {
		return authdomain.Identity{}
	}
	return identity
}
