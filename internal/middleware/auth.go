package middleware

import (
	"strings"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/config"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/repository"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and rejects tokens revoked by a
// logout.
func AuthMiddleware(cfg *config.Config, tokenRepo *repository.TokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(token, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if tokenRepo != nil {
			revoked, err := tokenRepo.IsRevoked(c.Request.Context(), token)
			if err != nil {
				util.LogInternalError(c, err)
				c.Abort()
				return
			}
			if revoked {
				util.Unauthorized(c)
				c.Abort()
				return
			}
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RoleMiddleware allows only the listed roles through.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		util.Forbidden(c)
		c.Abort()
	}
}
