package mocks

import (
	"context"
	"time"

	"rankings-api/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of store.Service
type MockStore struct {
	mock.Mock
}

// FindLatestPerDomain mocks the FindLatestPerDomain method of store.Service
func (m *MockStore) FindLatestPerDomain(ctx context.Context, domains []string) (map[string]time.Time, error) {
	args := m.Called(ctx, domains)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]time.Time), args.Error(1)
}

// FindAllRecords mocks the FindAllRecords method of store.Service
func (m *MockStore) FindAllRecords(ctx context.Context, domains []string) ([]models.RankingRecord, error) {
	args := m.Called(ctx, domains)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RankingRecord), args.Error(1)
}

// ReplaceAll mocks the ReplaceAll method of store.Service
func (m *MockStore) ReplaceAll(ctx context.Context, domain string, records []models.RankingRecord) error {
	args := m.Called(ctx, domain, records)
	return args.Error(0)
}

// Ping mocks the Ping method of store.Service
func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks the Close method of store.Service
func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
