package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/studentools/studentools-api/internal/service"
)

func newGPARouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewGPAHandler(service.NewGPAService(nil, nil))
	r := gin.New()
	r.POST("/gpa/calculate", h.Calculate)
	r.GET("/gpa/scales", h.Scales)
	return r
}

func TestGPACalculateEndpoint(t *testing.T) {
	router := newGPARouter(t)

	payload := `{"courses": [{"name": "Math", "grade": "A", "credits": 3}, {"name": "History", "grade": "C", "credits": 1}]}`
	req, _ := http.NewRequest(http.MethodPost, "/gpa/calculate", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"gpa":3.5`)
}

func TestGPACalculateEndpointValidation(t *testing.T) {
	router := newGPARouter(t)

	req, _ := http.NewRequest(http.MethodPost, "/gpa/calculate", bytes.NewReader([]byte(`{"courses": []}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGPAScalesEndpoint(t *testing.T) {
	router := newGPARouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/gpa/scales", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"4.0"`)
	require.Contains(t, w.Body.String(), `"5.0"`)
}
