package search

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider using testify/mock.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Search(ctx context.Context, query string) Result {
	args := m.Called(ctx, query)
	return args.Get(0).(Result)
}

// MockEngine is a mock implementation of Engine using testify/mock.
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Name() string {
	return "mock"
}

func (m *MockEngine) Query(ctx context.Context, query string, limit int) ([]Hit, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Hit), args.Error(1)
}
