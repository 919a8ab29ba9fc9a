package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivela-brasil/intake-backend/logger"
	"github.com/nivela-brasil/intake-backend/types"
)

func init() {
	logger.IsTest = true
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

type stubLeadStore struct {
	count    int64
	countErr error
}

func (s stubLeadStore) Insert(ctx context.Context, lead *types.Lead) (*types.Lead, error) {
	return lead, nil
}

func (s stubLeadStore) Count(ctx context.Context) (int64, error) {
	return s.count, s.countErr
}

type stubDistributorStore struct {
	count    int64
	countErr error
}

func (s stubDistributorStore) Insert(ctx context.Context, d *types.Distributor) (*types.Distributor, error) {
	return d, nil
}

func (s stubDistributorStore) Count(ctx context.Context) (int64, error) {
	return s.count, s.countErr
}

func TestCheckHealth_AllUp(t *testing.T) {
	svc := NewHealthService(stubPinger{}, stubLeadStore{count: 42}, stubDistributorStore{count: 7}, "1.2.3")

	health := svc.CheckHealth(context.Background())

	assert.Equal(t, types.HealthStatusUp, health.Status)
	assert.Equal(t, "1.2.3", health.Version)
	assert.NotEmpty(t, health.Timestamp)

	assert.Equal(t, types.HealthStatusUp, health.Components["database"].Status)

	leads := health.Components["leads_table"]
	require.NotNil(t, leads.Count)
	assert.Equal(t, int64(42), *leads.Count)

	distributors := health.Components["distributors_table"]
	require.NotNil(t, distributors.Count)
	assert.Equal(t, int64(7), *distributors.Count)
}

func TestCheckHealth_DatabaseDown(t *testing.T) {
	svc := NewHealthService(
		stubPinger{err: errors.New("dial tcp: connection refused")},
		stubLeadStore{countErr: errors.New("unreachable")},
		stubDistributorStore{countErr: errors.New("unreachable")},
		"1.2.3",
	)

	health := svc.CheckHealth(context.Background())

	assert.Equal(t, types.HealthStatusDown, health.Status)
	assert.Equal(t, types.HealthStatusDown, health.Components["database"].Status)
	assert.NotContains(t, health.Components["database"].Details, "dial tcp",
		"raw connection errors must not surface in health output")
}

func TestCheckHealth_OneTableFailingIsDegraded(t *testing.T) {
	svc := NewHealthService(
		stubPinger{},
		stubLeadStore{count: 10},
		stubDistributorStore{countErr: errors.New("relation does not exist")},
		"1.2.3",
	)

	health := svc.CheckHealth(context.Background())

	assert.Equal(t, types.HealthStatusDegraded, health.Status)
	assert.Equal(t, types.HealthStatusUp, health.Components["leads_table"].Status)
	assert.Equal(t, types.HealthStatusDown, health.Components["distributors_table"].Status)
}

func TestCheckHealth_NilPingerInfersFromProbes(t *testing.T) {
	svc := NewHealthService(nil, stubLeadStore{count: 1}, stubDistributorStore{count: 1}, "1.2.3")

	health := svc.CheckHealth(context.Background())
	assert.Equal(t, types.HealthStatusUp, health.Status)
	assert.Equal(t, types.HealthStatusUp, health.Components["database"].Status)
}

func TestCheckHealth_NilPingerAllProbesFailingIsDown(t *testing.T) {
	svc := NewHealthService(nil,
		stubLeadStore{countErr: errors.New("unreachable")},
		stubDistributorStore{countErr: errors.New("unreachable")},
		"1.2.3",
	)

	health := svc.CheckHealth(context.Background())
	assert.Equal(t, types.HealthStatusDown, health.Status)
}
