package middleware

import (
	"net/http"
	"strings"

	"neighborhub/internal/utils"
	"neighborhub/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// AuthRequired validates the bearer token and sets the user id and role on
// the context. The token may also be passed as the "token" query parameter,
// which browsers need for the websocket upgrade.
func AuthRequired(secret string, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Bearer token required")
				c.Abort()
				return
			}
		}

		if tokenString == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			log.LogSecurityEvent("invalid_token", "low", map[string]interface{}{
				"ip":    c.ClientIP(),
				"path":  c.FullPath(),
				"error": err.Error(),
			})
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", utils.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)

		c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), map[string]interface{}{
			"user_id": claims.UserID.Hex(),
		}))

		c.Next()
	}
}

// RoleRequired allows only the given roles through. It must run after
// AuthRequired.
func RoleRequired(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if role == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		if !allowed[role] {
			utils.ForbiddenResponse(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserID returns the authenticated user's id.
func UserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok
}
