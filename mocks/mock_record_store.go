package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rachunki/internal/domain"
)

// MockRecordStore is a mock implementation of port.RecordStore.
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Save(ctx context.Context, doc domain.SourceDocument, rec *domain.ParsedRecord) (uuid.UUID, error) {
	args := m.Called(ctx, doc, rec)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRecordStore) FindByDocument(ctx context.Context, name string) (*domain.ParsedRecord, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedRecord), args.Error(1)
}
