package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
	"github.com/andrewsnewton/couplespace-sub003/internal/service"
	"github.com/andrewsnewton/couplespace-sub003/pkg/response"
)

const bearerPrefix = "Bearer "

// Auth middleware validates the access token and stores the caller's
// identity in the request context
func Auth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		if !strings.HasPrefix(header, bearerPrefix) {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, bearerPrefix)

		claims, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				response.Unauthorized(c, "Access token has expired")
			} else {
				response.Unauthorized(c, "Invalid access token")
			}
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		if claims.CoupleID != "" {
			c.Set("couple_id", claims.CoupleID)
		}

		c.Next()
	}
}
