package mocks

import (
	"context"
	"time"

	"rankings-api/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockSeriesCache is a mock implementation of seriesCache.Service
type MockSeriesCache struct {
	mock.Mock
}

// Get mocks the Get method of seriesCache.Service
func (m *MockSeriesCache) Get(ctx context.Context, domain string) (*models.TimeSeries, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimeSeries), args.Error(1)
}

// Set mocks the Set method of seriesCache.Service
func (m *MockSeriesCache) Set(ctx context.Context, domain string, series *models.TimeSeries, ttl time.Duration) error {
	args := m.Called(ctx, domain, series, ttl)
	return args.Error(0)
}

// Delete mocks the Delete method of seriesCache.Service
func (m *MockSeriesCache) Delete(ctx context.Context, domain string) error {
	args := m.Called(ctx, domain)
	return args.Error(0)
}
