package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nivela-brasil/intake-backend/services"
	"github.com/nivela-brasil/intake-backend/store"
	"github.com/nivela-brasil/intake-backend/types"
)

type healthStubPinger struct{ err error }

func (p healthStubPinger) Ping(ctx context.Context) error { return p.err }

func healthRouter(pinger services.Pinger, leads store.LeadStore, distributors store.DistributorStore) *gin.Engine {
	handler := NewHealthHandler(services.NewHealthService(pinger, leads, distributors, "test"))
	return testEngine(func(r *gin.Engine) {
		r.GET("/api/health", handler.GetHealth)
	})
}

func TestGetHealth_Up(t *testing.T) {
	leads := new(mockLeadStore)
	leads.On("Count", mock.Anything).Return(int64(3), nil)
	distributors := new(mockDistributorStore)
	distributors.On("Count", mock.Anything).Return(int64(1), nil)

	r := healthRouter(healthStubPinger{}, leads, distributors)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var health types.HealthCheck
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, types.HealthStatusUp, health.Status)
	assert.Contains(t, health.Components, "database")
	assert.Contains(t, health.Components, "leads_table")
	assert.Contains(t, health.Components, "distributors_table")
}

func TestGetHealth_Down503(t *testing.T) {
	leads := new(mockLeadStore)
	leads.On("Count", mock.Anything).Return(int64(0), context.DeadlineExceeded)
	distributors := new(mockDistributorStore)
	distributors.On("Count", mock.Anything).Return(int64(0), context.DeadlineExceeded)

	r := healthRouter(healthStubPinger{err: context.DeadlineExceeded}, leads, distributors)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var health types.HealthCheck
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, types.HealthStatusDown, health.Status)
}
