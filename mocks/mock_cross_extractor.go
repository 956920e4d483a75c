package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rachunki/internal/domain"
)

// MockCrossExtractor is a mock implementation of port.CrossExtractor.
type MockCrossExtractor struct {
	mock.Mock
}

func (m *MockCrossExtractor) Extract(ctx context.Context, text string) (*domain.CrossExtraction, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CrossExtraction), args.Error(1)
}
