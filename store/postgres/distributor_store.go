package postgres

import (
	"context"

	istore "github.com/nivela-brasil/intake-backend/store"
	"github.com/nivela-brasil/intake-backend/types"
)

// Ensure DistributorStore implements store.DistributorStore.
var _ istore.DistributorStore = (*DistributorStore)(nil)

// DistributorStore persists distributor applications.
type DistributorStore struct {
	db DB
}

// NewDistributorStore creates a new DistributorStore on the given pool.
func NewDistributorStore(db DB) *DistributorStore {
	return &DistributorStore{db: db}
}

// Insert writes a single application row.
func (s *DistributorStore) Insert(ctx context.Context, dist *types.Distributor) (*types.Distributor, error) {
	query := `
		INSERT INTO distributors (name, email, phone, company, city, state, experience, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	persisted := *dist
	row := s.db.QueryRow(ctx, query,
		dist.Name,
		dist.Email,
		dist.Phone,
		dist.Company,
		dist.City,
		dist.State,
		dist.Experience,
		dist.Message,
	)

	if err := row.Scan(&persisted.ID, &persisted.CreatedAt); err != nil {
		return nil, classify(err)
	}

	return &persisted, nil
}

// Count returns the number of application rows, used by the health probe.
func (s *DistributorStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM distributors`).Scan(&count); err != nil {
		return 0, classify(err)
	}
	return count, nil
}
