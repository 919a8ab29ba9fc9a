package services

import (
	"context"
	"time"

	"github.com/nivela-brasil/intake-backend/logger"
	"github.com/nivela-brasil/intake-backend/store"
	"github.com/nivela-brasil/intake-backend/types"
)

// Pinger is the connectivity probe of the underlying database. The direct
// Postgres driver satisfies it via pgxpool; the Supabase REST driver has no
// ping, so the table probes double as the connectivity check there.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthService aggregates the health of the intake pipeline's dependencies.
type HealthService struct {
	pinger       Pinger
	leads        store.LeadStore
	distributors store.DistributorStore
	version      string
	probeTimeout time.Duration
}

// NewHealthService creates a health service. pinger may be nil for drivers
// without a connectivity probe.
func NewHealthService(pinger Pinger, leads store.LeadStore, distributors store.DistributorStore, version string) *HealthService {
	return &HealthService{
		pinger:       pinger,
		leads:        leads,
		distributors: distributors,
		version:      version,
		probeTimeout: 5 * time.Second,
	}
}

// CheckHealth probes the database and both intake tables. The overall status
// is DOWN when the database is unreachable, DEGRADED when any table probe
// fails, and UP otherwise.
func (s *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	log := logger.GetLogger()
	ctx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	components := make(map[string]types.HealthComponent)

	dbStatus := types.HealthStatusUp
	if s.pinger != nil {
		if err := s.pinger.Ping(ctx); err != nil {
			log.Errorw("Database ping failed", "error", err)
			dbStatus = types.HealthStatusDown
			components["database"] = types.HealthComponent{
				Status:  types.HealthStatusDown,
				Details: "connection failed",
			}
		} else {
			components["database"] = types.HealthComponent{Status: types.HealthStatusUp}
		}
	}

	leadsComponent := s.probeTable(ctx, "leads", s.leads.Count)
	distributorsComponent := s.probeTable(ctx, "distributors", s.distributors.Count)
	components["leads_table"] = leadsComponent
	components["distributors_table"] = distributorsComponent

	if s.pinger == nil {
		// REST driver: infer database status from the table probes.
		if leadsComponent.Status == types.HealthStatusDown && distributorsComponent.Status == types.HealthStatusDown {
			dbStatus = types.HealthStatusDown
		}
		components["database"] = types.HealthComponent{Status: dbStatus}
	}

	overall := types.HealthStatusUp
	switch {
	case dbStatus == types.HealthStatusDown:
		overall = types.HealthStatusDown
	case leadsComponent.Status == types.HealthStatusDown || distributorsComponent.Status == types.HealthStatusDown:
		overall = types.HealthStatusDegraded
	}

	return types.HealthCheck{
		Status:     overall,
		Components: components,
		Version:    s.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

func (s *HealthService) probeTable(ctx context.Context, table string, count func(context.Context) (int64, error)) types.HealthComponent {
	n, err := count(ctx)
	if err != nil {
		logger.GetLogger().Errorw("Table probe failed", "table", table, "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "count query failed",
		}
	}
	return types.HealthComponent{
		Status: types.HealthStatusUp,
		Count:  &n,
	}
}
