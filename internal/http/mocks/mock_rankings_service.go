package mocks

import (
	"context"

	"rankings-api/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockRankingsService is a mock implementation of rankings.RankingsService
type MockRankingsService struct {
	mock.Mock
}

// GetRankings mocks the GetRankings method of rankings.RankingsService
func (m *MockRankingsService) GetRankings(ctx context.Context, rawDomains string) (map[string]models.TimeSeries, error) {
	args := m.Called(ctx, rawDomains)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.TimeSeries), args.Error(1)
}
