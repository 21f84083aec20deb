package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockNormalizer is a mock implementation of normalizer.Service
type MockNormalizer struct {
	mock.Mock
}

// Normalize mocks the Normalize method of normalizer.Service
func (m *MockNormalizer) Normalize(raw string) (string, error) {
	args := m.Called(raw)
	return args.String(0), args.Error(1)
}
