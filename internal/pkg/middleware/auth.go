package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/neoenginex/gemsutopia/internal/pkg/config"
	"github.com/neoenginex/gemsutopia/pkg/response"
	"github.com/neoenginex/gemsutopia/pkg/utils"
)

// adminTokenCookie is the fallback transport for dashboard requests that
// cannot set an Authorization header.
const adminTokenCookie = "admin-token"

// RequireAdmin authenticates dashboard routes. The token comes from the
// Bearer header or the admin-token cookie; its claims must carry
// isAdmin=true and an allowlisted email.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			if cookie, err := c.Cookie(adminTokenCookie); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Authentication required")
			c.Abort()
			return
		}

		claims, err := utils.ParseAdminToken(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Invalid or expired token")
			c.Abort()
			return
		}

		if !claims.IsAdmin {
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, "Admin permission required")
			c.Abort()
			return
		}
		if !config.GlobalConfig.IsAdminEmail(claims.Email) {
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, "Email not authorized")
			c.Abort()
			return
		}

		c.Set("adminEmail", claims.Email)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
