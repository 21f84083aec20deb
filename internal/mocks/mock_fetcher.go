package mocks

import (
	"context"

	"rankings-api/internal/fetcher"

	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock implementation of fetcher.Service
type MockFetcher struct {
	mock.Mock
}

// FetchRanking mocks the FetchRanking method of fetcher.Service
func (m *MockFetcher) FetchRanking(ctx context.Context, domain string) fetcher.Result {
	args := m.Called(ctx, domain)
	return args.Get(0).(fetcher.Result)
}
