package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"payroll-api/internal/core/auth"
	"payroll-api/internal/domain"
	"payroll-api/internal/transport/http/response"
)

const claimsKey = "claims"

// AuthJWT verifies the bearer token and, when roles are given, requires the
// claims role to be one of them. Missing, malformed or expired tokens are 401
// regardless of what the token claims; a role outside the set is 403.
func AuthJWT(j *auth.JWTer, roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			response.Err(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			response.Err(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		if len(roles) > 0 && !roleAllowed(domain.Role(claims.Role), roles) {
			response.Err(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified claims stored by AuthJWT.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(claimsKey); ok {
		if cl, ok := v.(*auth.Claims); ok {
			return cl
		}
	}
	return nil
}

func roleAllowed(r domain.Role, allowed []domain.Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
