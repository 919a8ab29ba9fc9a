package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/nivela-brasil/intake-backend/errors"
	"github.com/nivela-brasil/intake-backend/logger"
	"github.com/nivela-brasil/intake-backend/metrics"
	"github.com/nivela-brasil/intake-backend/services"
	"github.com/nivela-brasil/intake-backend/store"
	"github.com/nivela-brasil/intake-backend/types"
	"github.com/nivela-brasil/intake-backend/validation"
)

// DistributorHandler serves the distributor application endpoint.
type DistributorHandler struct {
	store          store.DistributorStore
	notifier       *services.NotificationService
	metrics        *metrics.IntakeMetrics
	persistTimeout time.Duration
}

// NewDistributorHandler creates a distributor handler. notifier and metrics
// may be nil.
func NewDistributorHandler(distStore store.DistributorStore, notifier *services.NotificationService, m *metrics.IntakeMetrics, persistTimeout time.Duration) *DistributorHandler {
	return &DistributorHandler{
		store:          distStore,
		notifier:       notifier,
		metrics:        m,
		persistTimeout: persistTimeout,
	}
}

// CreateDistributor handles POST /api/distribuidores. The sales notification
// runs after the 201 is committed to; its failure never affects the response.
func (h *DistributorHandler) CreateDistributor(c *gin.Context) {
	log := logger.GetLogger()

	var req types.DistributorCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordSubmission(metrics.EntityDistributor, metrics.OutcomeInvalid)
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	dist, fieldErrs := validation.ValidateDistributor(req, validation.BrazilPhoneRule)
	if len(fieldErrs) > 0 {
		h.metrics.RecordSubmission(metrics.EntityDistributor, metrics.OutcomeInvalid)
		_ = c.Error(apperrors.ValidationFailedFields(fieldErrs))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.persistTimeout)
	defer cancel()

	start := time.Now()
	stored, err := h.store.Insert(ctx, dist)
	h.metrics.ObservePersist(metrics.EntityDistributor, time.Since(start))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			h.metrics.RecordSubmission(metrics.EntityDistributor, metrics.OutcomeDuplicate)
			_ = c.Error(apperrors.DuplicateEmail(dist.Email))
		case errors.Is(err, store.ErrUnavailable):
			h.metrics.RecordSubmission(metrics.EntityDistributor, metrics.OutcomeUnavailable)
			_ = c.Error(apperrors.NewDatabaseError(err))
		default:
			h.metrics.RecordSubmission(metrics.EntityDistributor, metrics.OutcomeError)
			_ = c.Error(apperrors.NewDatabaseError(err))
		}
		return
	}

	h.metrics.RecordSubmission(metrics.EntityDistributor, metrics.OutcomeCreated)
	log.Infow("Distributor application received",
		"id", stored.ID,
		"email", logger.MaskEmail(stored.Email))

	// Best-effort notification, detached from the request lifecycle.
	go func(d types.Distributor) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = h.notifier.NotifyDistributorApplication(ctx, &d)
	}(*stored)

	c.JSON(http.StatusCreated, types.DistributorResponse{
		Success:     true,
		Distributor: stored,
	})
}
