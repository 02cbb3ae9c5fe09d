package mocks

import (
	"context"

	"docregistro/internal/model"
	"docregistro/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, req service.UploadRequest) (*service.UploadResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockDocumentService) ListRequestDocuments(ctx context.Context, requestID string) ([]model.GeneratedDocument, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GeneratedDocument), args.Error(1)
}

func (m *MockDocumentService) ListRequestPhotos(ctx context.Context, requestID string) ([]model.GeneratedPhoto, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GeneratedPhoto), args.Error(1)
}

func (m *MockDocumentService) GetPhoto(ctx context.Context, photoID string) (*model.GeneratedPhoto, error) {
	args := m.Called(ctx, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GeneratedPhoto), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, entity service.Entity, id string) (string, error) {
	args := m.Called(ctx, entity, id)
	return args.String(0), args.Error(1)
}
