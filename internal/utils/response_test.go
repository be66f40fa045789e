package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeError(t *testing.T, err error, status int) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	HandleErrorWithStatus(c, err, status)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestHandleErrorWithStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		wantCode int
		wantKind string
	}{
		{"kind status", NewConflictError(ErrAlreadyRated), 0, http.StatusConflict, "CONFLICT"},
		{"override keeps kind", NewConflictError(ErrAlreadyRated), http.StatusBadRequest, http.StatusBadRequest, "CONFLICT"},
		{"override with details", NewValidationError(ErrValidationFailed, map[string]string{"stars": "required"}), http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"internal ignores override", errors.New("boom"), http.StatusBadRequest, http.StatusInternalServerError, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, resp := writeError(t, tc.err, tc.status)
			assert.Equal(t, tc.wantCode, w.Code)
			require.NotNil(t, resp.Error)
			if tc.wantKind != "" {
				assert.Equal(t, tc.wantKind, resp.Error.Code)
			}
			assert.NotContains(t, resp.Error.Message, "boom")
		})
	}
}
