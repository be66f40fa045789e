package middleware

import (
	"time"

	"neighborhub/internal/config"
	"neighborhub/internal/utils"
	"neighborhub/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	HeaderRequestID   = "X-Request-ID"
	ContextRequestID  = "request_id"
	corsMaxAge        = 12 * time.Hour
)

// CORS configures cross origin access from the security settings. An empty
// origin list, or one containing "*", allows every origin without credentials.
func CORS(cfg config.SecurityConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", HeaderRequestID},
		MaxAge:        corsMaxAge,
	}

	if allowsAnyOrigin(cfg.CORSAllowedOrigins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsConfig.AllowCredentials = true
	}

	return cors.New(corsConfig)
}

func allowsAnyOrigin(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// RequestID propagates X-Request-ID or assigns a new uuid.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// ClientInfo stores the caller's address, user agent and request id on the
// request context for activity records and log entries.
func ClientInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString(ContextRequestID)

		ctx := utils.WithClientInfo(c.Request.Context(), utils.ClientInfo{
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			RequestID: requestID,
		})
		if requestID != "" {
			ctx = logger.NewContext(ctx, map[string]interface{}{"request_id": requestID})
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Logging writes one structured entry per request.
func Logging(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}

		var userID *primitive.ObjectID
		if id, ok := UserID(c); ok {
			userID = &id
		}

		log.WithRequestID(c.GetString(ContextRequestID)).
			LogAPIRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start), userID)
	}
}
