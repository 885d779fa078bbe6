package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"chronicle/internal/domain"
	"chronicle/internal/infra/auth/rbac"

	"github.com/gin-gonic/gin"
)

const principalContextKey = "principal"

// authenticate resolves the bearer token, if any, into a request principal.
// It never aborts the request: a missing, expired, malformed, or forged
// token leaves the request anonymous and lets the authorization layer give
// the final answer. Guards decide; this middleware only identifies.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.tokens == nil {
			c.Next()
			return
		}
		raw := extractBearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.Next()
			return
		}
		if s.tokens.IsExpired(raw) {
			// IsExpired also fires on tokens that never parsed; re-parse
			// once so the log line says which case it was.
			logRejectedToken(s.tokens.ParseClaims(raw))
			c.Next()
			return
		}
		claims, err := s.tokens.ParseClaims(raw)
		if err != nil {
			logRejectedToken(domain.Claims{}, err)
			c.Next()
			return
		}
		principal := domain.Principal{
			Subject:     claims.Subject,
			Authorities: append(append([]string(nil), claims.Roles...), claims.Scopes...),
		}
		c.Set(principalContextKey, principal)
		c.Next()
	}
}

func logRejectedToken(_ domain.Claims, err error) {
	switch {
	case err == nil:
		log.Printf("auth: rejected expired token")
	case errors.Is(err, domain.ErrInvalidSignature):
		log.Printf("auth: rejected token with invalid signature")
	case errors.Is(err, domain.ErrTokenMalformed):
		log.Printf("auth: rejected malformed token")
	default:
		log.Printf("auth: rejected token: %v", err)
	}
}

// requireAuthority gates a route on the authorization decision. An empty
// authority admits any authenticated principal.
func (s *Server) requireAuthority(authority string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := getPrincipal(c)
		if err := s.authorizer.Require(principal, authority); err != nil {
			writeAuthzError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractBearerToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(value), "bearer ") {
		return ""
	}
	return strings.TrimSpace(value[len("bearer "):])
}

func getPrincipal(c *gin.Context) (domain.Principal, bool) {
	raw, ok := c.Get(principalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := raw.(domain.Principal)
	return principal, ok
}

func writeAuthzError(c *gin.Context, err error) {
	if authz, ok := rbac.IsAuthzError(err); ok {
		writeErrorCode(c, http.StatusForbidden, authz.Code, "forbidden")
		return
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		writeErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	writeErrorCode(c, http.StatusForbidden, "FORBIDDEN", "forbidden")
}
