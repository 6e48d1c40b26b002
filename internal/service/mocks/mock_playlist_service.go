package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vidtube/internal/model"
	"vidtube/internal/service"
)

type MockPlaylistService struct {
	mock.Mock
}

func (m *MockPlaylistService) Create(ctx context.Context, ownerID, name, description string) (*model.Playlist, error) {
	args := m.Called(ctx, ownerID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistService) ListByUser(ctx context.Context, userID string) ([]model.Playlist, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Playlist), args.Error(1)
}

func (m *MockPlaylistService) Get(ctx context.Context, id string) (*model.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistService) Update(ctx context.Context, id, actingUser string, upd service.PlaylistUpdate) (*model.Playlist, error) {
	args := m.Called(ctx, id, actingUser, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistService) Delete(ctx context.Context, id, actingUser string) error {
	args := m.Called(ctx, id, actingUser)
	return args.Error(0)
}

func (m *MockPlaylistService) AddVideo(ctx context.Context, playlistID, videoID, actingUser string) (*model.Playlist, error) {
	args := m.Called(ctx, playlistID, videoID, actingUser)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, actingUser string) (*model.Playlist, error) {
	args := m.Called(ctx, playlistID, videoID, actingUser)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}
