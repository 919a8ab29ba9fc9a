// Package store defines the persistence interfaces for intake submissions and
// the sentinel errors callers use to classify failures without inspecting
// driver-specific error text.
package store

import (
	"context"
	"errors"

	"github.com/nivela-brasil/intake-backend/types"
)

var (
	// ErrDuplicateEmail signals a unique-constraint violation on the email
	// column. A repeat submission is an expected business outcome and must stay
	// distinguishable from a generic failure.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUnavailable signals the database could not be reached (network error,
	// timeout, pool exhaustion). The caller decides whether to retry; the store
	// never does.
	ErrUnavailable = errors.New("persistence unavailable")
)

// LeadStore persists lead submissions. Insert writes exactly one row on
// success and zero rows on any failure; the returned record carries the
// server-assigned id and created_at.
type LeadStore interface {
	Insert(ctx context.Context, lead *types.Lead) (*types.Lead, error)
	Count(ctx context.Context) (int64, error)
}

// DistributorStore persists distributor applications with the same contract as
// LeadStore.
type DistributorStore interface {
	Insert(ctx context.Context, dist *types.Distributor) (*types.Distributor, error)
	Count(ctx context.Context) (int64, error)
}
