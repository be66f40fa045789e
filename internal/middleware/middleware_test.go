package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"neighborhub/internal/config"
	"neighborhub/internal/utils"
	"neighborhub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", handlers...)
	return router
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	userID := primitive.NewObjectID()
	tokens, err := utils.GenerateTokenPair(userID, "resident", "a@example.com", testSecret)
	require.NoError(t, err)
	forged, err := utils.GenerateTokenPair(userID, "resident", "a@example.com", "other-secret")
	require.NoError(t, err)

	var gotID primitive.ObjectID
	var gotRole string
	router := newRouter(AuthRequired(testSecret, logger.NewNopLogger()), func(c *gin.Context) {
		gotID, _ = UserID(c)
		gotRole = c.GetString(ContextUserRole)
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name   string
		header string
		query  string
		code   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"not bearer", "Token " + tokens.AccessToken, "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + forged.AccessToken, "", http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", "", http.StatusUnauthorized},
		{"header", "Bearer " + tokens.AccessToken, "", http.StatusOK},
		{"query", "", tokens.AccessToken, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotID, gotRole = primitive.NilObjectID, ""
			target := "/"
			if tc.query != "" {
				target += "?token=" + tc.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			w := serve(router, req)
			assert.Equal(t, tc.code, w.Code)
			if tc.code == http.StatusOK {
				assert.Equal(t, userID, gotID)
				assert.Equal(t, "resident", gotRole)
			} else {
				assert.True(t, gotID.IsZero())
			}
		})
	}
}

func TestRoleRequired(t *testing.T) {
	router := newRouter(func(c *gin.Context) {
		if role := c.Query("role"); role != "" {
			c.Set(ContextUserRole, role)
		}
	}, RoleRequired("admin", "manager"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusUnauthorized, serve(router, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	assert.Equal(t, http.StatusForbidden, serve(router, httptest.NewRequest(http.MethodGet, "/?role=resident", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(router, httptest.NewRequest(http.MethodGet, "/?role=manager", nil)).Code)
}

func TestRequestIDAndClientInfo(t *testing.T) {
	var info utils.ClientInfo
	var fields map[string]interface{}
	router := newRouter(RequestID(), ClientInfo(), func(c *gin.Context) {
		info = utils.ClientInfoFromContext(c.Request.Context())
		fields = logger.FieldsFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "neighborhub-test")
	w := serve(router, req)

	generated := w.Header().Get(HeaderRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, info.RequestID)
	assert.Equal(t, "neighborhub-test", info.UserAgent)
	assert.NotEmpty(t, info.IPAddress)
	assert.Equal(t, generated, fields["request_id"])

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = serve(router, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", info.RequestID)
}

func TestCORS(t *testing.T) {
	restricted := newRouter(CORS(config.SecurityConfig{CORSAllowedOrigins: []string{"https://app.example.com"}}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := serve(restricted, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = serve(restricted, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	open := newRouter(CORS(config.SecurityConfig{CORSAllowedOrigins: []string{"*"}}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anything.example.com")
	w = serve(open, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingPassesThrough(t *testing.T) {
	router := newRouter(Logging(logger.NewNopLogger()), func(c *gin.Context) {
		c.Status(http.StatusTeapot)
	})
	assert.Equal(t, http.StatusTeapot, serve(router, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}
