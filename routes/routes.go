package routes

import (
	"neighborhub/internal/handlers"
	"neighborhub/internal/middleware"
	"neighborhub/pkg/websocket"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Request   *handlers.RequestHandler
	Rating    *handlers.RatingHandler
	Activity  *handlers.ActivityHandler
	Health    *handlers.HealthHandler
	WebSocket *websocket.Handler
}

// SetupRoutes registers the API under /api/v1. auth guards every route except
// the health check.
func SetupRoutes(r *gin.Engine, h Handlers, auth gin.HandlerFunc, wsPath string) {
	r.GET("/health", h.Health.Health)

	v1 := r.Group("/api/v1")
	v1.GET("/health", h.Health.Health)

	SetupRequestRoutes(v1, h.Request, auth)
	SetupRatingRoutes(v1, h.Rating, auth)
	SetupAdminRoutes(v1, h.Rating, auth)

	activities := v1.Group("/activities")
	activities.Use(auth)
	{
		activities.GET("/me", h.Activity.GetMyActivities)
	}

	if h.WebSocket != nil {
		v1.GET(wsPath, auth, h.WebSocket.HandleWebSocket)
	}
}

func SetupRequestRoutes(r *gin.RouterGroup, h *handlers.RequestHandler, auth gin.HandlerFunc) {
	requests := r.Group("/requests")
	requests.Use(auth)
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.ListMyRequests)
		requests.GET("/all", h.ListAllRequests)
		requests.GET("/:id", h.GetRequest)
		requests.PUT("/:id", h.UpdateRequest)
		requests.DELETE("/:id", h.DeleteRequest)
	}
}

func SetupRatingRoutes(r *gin.RouterGroup, h *handlers.RatingHandler, auth gin.HandlerFunc) {
	ratings := r.Group("/ratings")
	ratings.Use(auth)
	{
		ratings.POST("", h.SubmitRating)
		ratings.PUT("/:id", h.UpdateRating)
		ratings.DELETE("/:id", h.DeleteRating)
		ratings.POST("/:id/helpful", h.MarkHelpful)

		ratings.GET("/user/:userId", h.ListUserRatings)
		ratings.GET("/user/:userId/stats", h.GetUserRatingStats)
		ratings.GET("/request/:requestId", h.GetRequestRating)
	}
}

func SetupAdminRoutes(r *gin.RouterGroup, h *handlers.RatingHandler, auth gin.HandlerFunc) {
	admin := r.Group("/admin")
	admin.Use(auth, middleware.RoleRequired("admin", "manager"))
	{
		admin.POST("/users/:userId/rating/reconcile", h.ReconcileUserAggregate)
	}
}
