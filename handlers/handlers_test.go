package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/nivela-brasil/intake-backend/logger"
	"github.com/nivela-brasil/intake-backend/middleware"
	"github.com/nivela-brasil/intake-backend/types"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.IsTest = true
}

type mockLeadStore struct {
	mock.Mock
}

func (m *mockLeadStore) Insert(ctx context.Context, lead *types.Lead) (*types.Lead, error) {
	args := m.Called(ctx, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Lead), args.Error(1)
}

func (m *mockLeadStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockDistributorStore struct {
	mock.Mock
}

func (m *mockDistributorStore) Insert(ctx context.Context, d *types.Distributor) (*types.Distributor, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Distributor), args.Error(1)
}

func (m *mockDistributorStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func testEngine(register func(*gin.Engine)) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	register(r)
	return r
}
