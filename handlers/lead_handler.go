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
	"github.com/nivela-brasil/intake-backend/store"
	"github.com/nivela-brasil/intake-backend/types"
	"github.com/nivela-brasil/intake-backend/validation"
)

// LeadHandler serves the lead capture endpoint.
type LeadHandler struct {
	store          store.LeadStore
	metrics        *metrics.IntakeMetrics
	persistTimeout time.Duration
}

// NewLeadHandler creates a lead handler. metrics may be nil.
func NewLeadHandler(leadStore store.LeadStore, m *metrics.IntakeMetrics, persistTimeout time.Duration) *LeadHandler {
	return &LeadHandler{
		store:          leadStore,
		metrics:        m,
		persistTimeout: persistTimeout,
	}
}

// CreateLead handles POST /api/leads: validate, normalize, persist, respond
// 201 with the stored record. All field errors are collected into a single 400
// so the form can show everything at once.
func (h *LeadHandler) CreateLead(c *gin.Context) {
	log := logger.GetLogger()

	var req types.LeadCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordSubmission(metrics.EntityLead, metrics.OutcomeInvalid)
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	lead, fieldErrs := validation.ValidateLead(req, validation.BrazilPhoneRule)
	if len(fieldErrs) > 0 {
		h.metrics.RecordSubmission(metrics.EntityLead, metrics.OutcomeInvalid)
		_ = c.Error(apperrors.ValidationFailedFields(fieldErrs))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.persistTimeout)
	defer cancel()

	start := time.Now()
	stored, err := h.store.Insert(ctx, lead)
	h.metrics.ObservePersist(metrics.EntityLead, time.Since(start))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			h.metrics.RecordSubmission(metrics.EntityLead, metrics.OutcomeDuplicate)
			_ = c.Error(apperrors.DuplicateEmail(lead.Email))
		case errors.Is(err, store.ErrUnavailable):
			h.metrics.RecordSubmission(metrics.EntityLead, metrics.OutcomeUnavailable)
			_ = c.Error(apperrors.NewDatabaseError(err))
		default:
			h.metrics.RecordSubmission(metrics.EntityLead, metrics.OutcomeError)
			_ = c.Error(apperrors.NewDatabaseError(err))
		}
		return
	}

	h.metrics.RecordSubmission(metrics.EntityLead, metrics.OutcomeCreated)
	log.Infow("Lead captured",
		"id", stored.ID,
		"email", logger.MaskEmail(stored.Email),
		"utmSource", stored.UTMSource)

	c.JSON(http.StatusCreated, types.LeadResponse{
		Success: true,
		Lead:    stored,
	})
}
