package mocks

import (
	"context"

	"docregistro/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) List(ctx context.Context, categoryID string) ([]model.DocumentDefinition, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentDefinition), args.Error(1)
}

func (m *MockCatalogRepository) Assign(ctx context.Context, definitionID int) (model.DocumentAssignment, error) {
	args := m.Called(ctx, definitionID)
	return args.Get(0).(model.DocumentAssignment), args.Error(1)
}
