package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vidtube/internal/model"
)

type MockPlaylistRepository struct {
	mock.Mock
}

func (m *MockPlaylistRepository) Create(ctx context.Context, p *model.Playlist) (*model.Playlist, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) FindByID(ctx context.Context, id string) (*model.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Playlist, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) Update(ctx context.Context, p *model.Playlist) (*model.Playlist, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	args := m.Called(ctx, playlistID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	args := m.Called(ctx, playlistID, videoID)
	return args.Bool(0), args.Error(1)
}
