package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/benmeehan/wifi-location/pkg/location"
)

// MockProvider is a mock implementation of the location.Provider interface
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GetLocation(ctx context.Context, ap location.AccessPoint) (*location.Location, error) {
	args := m.Called(ctx, ap)
	loc, _ := args.Get(0).(*location.Location)
	return loc, args.Error(1)
}

// MockAPIKeyReader is a mock implementation of the APIKeyReader interface
type MockAPIKeyReader struct {
	mock.Mock
}

func (m *MockAPIKeyReader) ReadAPIKey() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
