package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vidtube/internal/model"
	"vidtube/internal/service"
)

type MockVideoService struct {
	mock.Mock
}

func (m *MockVideoService) Upload(ctx context.Context, ownerID string, in service.VideoUploadInput) (*model.Video, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *MockVideoService) Get(ctx context.Context, id string) (*model.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *MockVideoService) List(ctx context.Context, limit, offset int) (*service.VideoListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VideoListResult), args.Error(1)
}

func (m *MockVideoService) Delete(ctx context.Context, id, actingUser string) error {
	args := m.Called(ctx, id, actingUser)
	return args.Error(0)
}
