package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"awesome-index/internal/pkg/jwt"
	"awesome-index/pkg/constants"
	"awesome-index/pkg/responses"
)

// AuthMiddleware gates the admin sync surface behind a bearer access token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			responses.ErrorWithCode(c, responses.CodeUnauthorized, "missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			responses.ErrorWithCode(c, responses.CodeUnauthorized, "malformed Authorization header")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)
		claims, err := jwt.ValidateToken(token)
		if err != nil {
			responses.Error(c, err)
			c.Abort()
			return
		}

		if claims.Type != constants.JWTTypeAccess {
			responses.ErrorWithCode(c, responses.CodeUnauthorized, "invalid token type")
			c.Abort()
			return
		}

		c.Set(constants.JWTContextKey, claims)
		c.Set("username", claims.Username)

		c.Next()
	}
}
