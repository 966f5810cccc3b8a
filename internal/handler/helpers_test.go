package handler_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"carprice/internal/handler"
	"carprice/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setSession(c *gin.Context, sessionID string) {
	c.Set(middleware.ContextKeySessionID, sessionID)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
