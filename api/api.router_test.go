// FilePath: api/api.router_test.go
package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eibon93/vcelstva-hub/internal/hubservice"
	"github.com/stretchr/testify/assert"
)

func TestRouterServesHealth(t *testing.T) {
	router := NewRouter(&hubservice.HubService{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouterRejectsUnknownRoute(t *testing.T) {
	router := NewRouter(&hubservice.HubService{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
