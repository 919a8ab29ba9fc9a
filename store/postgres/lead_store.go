package postgres

import (
	"context"

	istore "github.com/nivela-brasil/intake-backend/store"
	"github.com/nivela-brasil/intake-backend/types"
)

// Ensure LeadStore implements store.LeadStore.
var _ istore.LeadStore = (*LeadStore)(nil)

// LeadStore persists leads in the leads table.
type LeadStore struct {
	db DB
}

// NewLeadStore creates a new LeadStore on the given pool.
func NewLeadStore(db DB) *LeadStore {
	return &LeadStore{db: db}
}

// Insert writes a single lead row. The id and created_at come back from the
// database so the caller never fabricates them.
func (s *LeadStore) Insert(ctx context.Context, lead *types.Lead) (*types.Lead, error) {
	query := `
		INSERT INTO leads (name, email, phone, establishment_type, utm_source, utm_medium, utm_campaign)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	persisted := *lead
	row := s.db.QueryRow(ctx, query,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.EstablishmentType,
		lead.UTMSource,
		lead.UTMMedium,
		lead.UTMCampaign,
	)

	if err := row.Scan(&persisted.ID, &persisted.CreatedAt); err != nil {
		return nil, classify(err)
	}

	return &persisted, nil
}

// Count returns the number of lead rows, used by the health probe.
func (s *LeadStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&count); err != nil {
		return 0, classify(err)
	}
	return count, nil
}
