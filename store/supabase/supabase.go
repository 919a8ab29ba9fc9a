// Package supabase implements the intake stores against the Supabase REST API
// (PostgREST). It exists for deployments that only hold a project URL and
// service-role key instead of direct database coordinates.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	supa "github.com/supabase-community/supabase-go"

	"github.com/nivela-brasil/intake-backend/store"
	"github.com/nivela-brasil/intake-backend/types"
)

// Client wraps the Supabase REST client shared by both stores.
type Client struct {
	rest *supa.Client
}

// NewClient builds a REST client authenticated with the service-role key.
func NewClient(projectURL, serviceKey string) (*Client, error) {
	c, err := supa.NewClient(projectURL, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &Client{rest: c}, nil
}

// classifyRESTError maps PostgREST failures onto the store sentinels. PostgREST
// surfaces the SQLSTATE only inside the error string, so the unique-violation
// check has to match on the code text.
func classifyRESTError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	msg := err.Error()
	if strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key value") {
		return store.ErrDuplicateEmail
	}
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "no such host") {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return err
}

type leadRow struct {
	ID                string    `json:"id,omitempty"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	EstablishmentType string    `json:"establishment_type"`
	UTMSource         string    `json:"utm_source"`
	UTMMedium         string    `json:"utm_medium"`
	UTMCampaign       string    `json:"utm_campaign"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

type distributorRow struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Company    string    `json:"company"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Experience string    `json:"experience"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// LeadStore persists leads through the REST API.
type LeadStore struct {
	client *Client
}

var _ store.LeadStore = (*LeadStore)(nil)

// NewLeadStore creates a REST-backed lead store.
func NewLeadStore(client *Client) *LeadStore {
	return &LeadStore{client: client}
}

// Insert writes one row into leads and returns the representation with the
// server-assigned id and created_at.
func (s *LeadStore) Insert(ctx context.Context, lead *types.Lead) (*types.Lead, error) {
	payload := leadRow{
		Name:              lead.Name,
		Email:             lead.Email,
		Phone:             lead.Phone,
		EstablishmentType: lead.EstablishmentType,
		UTMSource:         lead.UTMSource,
		UTMMedium:         lead.UTMMedium,
		UTMCampaign:       lead.UTMCampaign,
	}

	data, _, err := s.client.rest.From("leads").
		Insert(payload, false, "", "representation", "").
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, classifyRESTError(err)
	}

	var rows []leadRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unexpected insert response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert returned no representation")
	}

	persisted := *lead
	persisted.ID = rows[0].ID
	persisted.CreatedAt = rows[0].CreatedAt
	return &persisted, nil
}

// Count returns the row count of the leads table.
func (s *LeadStore) Count(ctx context.Context) (int64, error) {
	_, count, err := s.client.rest.From("leads").
		Select("id", "exact", false).
		Limit(1, "").
		ExecuteWithContext(ctx)
	if err != nil {
		return 0, classifyRESTError(err)
	}
	return count, nil
}

// DistributorStore persists distributor applications through the REST API.
type DistributorStore struct {
	client *Client
}

var _ store.DistributorStore = (*DistributorStore)(nil)

// NewDistributorStore creates a REST-backed distributor store.
func NewDistributorStore(client *Client) *DistributorStore {
	return &DistributorStore{client: client}
}

// Insert writes one row into distributors.
func (s *DistributorStore) Insert(ctx context.Context, dist *types.Distributor) (*types.Distributor, error) {
	payload := distributorRow{
		Name:       dist.Name,
		Email:      dist.Email,
		Phone:      dist.Phone,
		Company:    dist.Company,
		City:       dist.City,
		State:      dist.State,
		Experience: dist.Experience,
		Message:    dist.Message,
	}

	data, _, err := s.client.rest.From("distributors").
		Insert(payload, false, "", "representation", "").
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, classifyRESTError(err)
	}

	var rows []distributorRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unexpected insert response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert returned no representation")
	}

	persisted := *dist
	persisted.ID = rows[0].ID
	persisted.CreatedAt = rows[0].CreatedAt
	return &persisted, nil
}

// Count returns the row count of the distributors table.
func (s *DistributorStore) Count(ctx context.Context) (int64, error) {
	_, count, err := s.client.rest.From("distributors").
		Select("id", "exact", false).
		Limit(1, "").
		ExecuteWithContext(ctx)
	if err != nil {
		return 0, classifyRESTError(err)
	}
	return count, nil
}
