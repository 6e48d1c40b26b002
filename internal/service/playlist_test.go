package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vidtube/internal/apierror"
	"vidtube/internal/model"
	repoMocks "vidtube/internal/repository/mocks"
)

func assertAPIError(t *testing.T, err error, status int) {
	t.Helper()
	e := apierror.From(err)
	require.NotNil(t, e, "expected a structured error, got %v", err)
	assert.Equal(t, status, e.StatusCode)
}

func TestPlaylistService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		ownerID     string
		playlist    string
		setupMocks  func(mRepo *repoMocks.MockPlaylistRepository)
		wantStatus  int
		checkResult func(t *testing.T, p *model.Playlist)
	}{
		{
			name:     "happy path",
			ownerID:  "u1",
			playlist: "Favorites",
			setupMocks: func(mRepo *repoMocks.MockPlaylistRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Playlist) bool {
					return p.ID != "" && p.OwnerID == "u1" && p.Name == "Favorites" && len(p.Videos) == 0
				})).Return(&model.Playlist{ID: "pl-1", OwnerID: "u1", Name: "Favorites", Videos: []model.VideoRef{}}, nil)
			},
			checkResult: func(t *testing.T, p *model.Playlist) {
				assert.Equal(t, "u1", p.OwnerID)
				assert.Empty(t, p.Videos)
			},
		},
		{
			name:       "validation - empty name",
			ownerID:    "u1",
			playlist:   "   ",
			setupMocks: func(mRepo *repoMocks.MockPlaylistRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:     "repository error",
			ownerID:  "u1",
			playlist: "Favorites",
			setupMocks: func(mRepo *repoMocks.MockPlaylistRepository) {
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockPlaylistRepository)
			svc := NewPlaylistService(mRepo, nil, nil)

			tt.setupMocks(mRepo)

			p, err := svc.Create(ctx, tt.ownerID, tt.playlist, "")

			if tt.wantStatus != 0 {
				assertAPIError(t, err, tt.wantStatus)
				assert.Nil(t, p)
			} else {
				assert.NoError(t, err)
				tt.checkResult(t, p)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestPlaylistService_ListByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)
		mRepo.On("ListByOwner", ctx, "u1").
			Return([]model.Playlist{{ID: "pl-1"}, {ID: "pl-2"}}, nil)

		svc := NewPlaylistService(mRepo, nil, nil)
		items, err := svc.ListByUser(ctx, "u1")

		assert.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("empty sequence is valid", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)
		mRepo.On("ListByOwner", ctx, "u2").Return([]model.Playlist{}, nil)

		svc := NewPlaylistService(mRepo, nil, nil)
		items, err := svc.ListByUser(ctx, "u2")

		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("empty user id", func(t *testing.T) {
		svc := NewPlaylistService(new(repoMocks.MockPlaylistRepository), nil, nil)
		_, err := svc.ListByUser(ctx, "")
		assertAPIError(t, err, http.StatusBadRequest)
	})
}

func TestPlaylistService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)
		mRepo.On("FindByID", ctx, "pl-1").Return(&model.Playlist{ID: "pl-1"}, nil)

		svc := NewPlaylistService(mRepo, nil, nil)
		p, err := svc.Get(ctx, "pl-1")

		assert.NoError(t, err)
		assert.Equal(t, "pl-1", p.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := NewPlaylistService(mRepo, nil, nil)
		_, err := svc.Get(ctx, "missing")

		assertAPIError(t, err, http.StatusNotFound)
	})
}

func TestPlaylistService_Update(t *testing.T) {
	ctx := context.Background()
	name := "Renamed"
	empty := "  "

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)
		mRepo.On("FindByID", ctx, "pl-1").
			Return(&model.Playlist{ID: "pl-1", OwnerID: "u1", Name: "Old"}, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(p *model.Playlist) bool {
			return p.Name == "Renamed"
		})).Return(&model.Playlist{ID: "pl-1", OwnerID: "u1", Name: "Renamed"}, nil)

		svc := NewPlaylistService(mRepo, nil, nil)
		out, err := svc.Update(ctx, "pl-1", "u1", PlaylistUpdate{Name: &name})

		assert.NoError(t, err)
		assert.Equal(t, "Renamed", out.Name)
		mRepo.AssertExpectations(t)
	})

	t.Run("not owner - playlist unchanged", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)
		mRepo.On("FindByID", ctx, "pl-1").
			Return(&model.Playlist{ID: "pl-1", OwnerID: "u1"}, nil)

		svc := NewPlaylistService(mRepo, nil, nil)
		_, err := svc.Update(ctx, "pl-1", "intruder", PlaylistUpdate{Name: &name})

		assertAPIError(t, err, http.StatusForbidden)
		mRepo.AssertNotCalled(t, "Update")
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := NewPlaylistService(mRepo, nil, nil)
		_, err := svc.Update(ctx, "missing", "u1", PlaylistUpdate{Name: &name})

		assertAPIError(t, err, http.StatusNotFound)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)
		mRepo.On("FindByID", ctx, "pl-1").
			Return(&model.Playlist{ID: "pl-1", OwnerID: "u1"}, nil)

		svc := NewPlaylistService(mRepo, nil, nil)
		_, err := svc.Update(ctx, "pl-1", "u1", PlaylistUpdate{Name: &empty})

		assertAPIError(t, err, http.StatusBadRequest)
		mRepo.AssertNotCalled(t, "Update")
	})
}

func TestPlaylistService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)
		mRepo.On("FindByID", ctx, "pl-1").
			Return(&model.Playlist{ID: "pl-1", OwnerID: "u1"}, nil)
		mRepo.On("Delete", ctx, "pl-1").Return(nil)

		svc := NewPlaylistService(mRepo, nil, nil)
		assert.NoError(t, svc.Delete(ctx, "pl-1", "u1"))
		mRepo.AssertExpectations(t)
	})

	t.Run("not owner", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)
		mRepo.On("FindByID", ctx, "pl-1").
			Return(&model.Playlist{ID: "pl-1", OwnerID: "u1"}, nil)

		svc := NewPlaylistService(mRepo, nil, nil)
		err := svc.Delete(ctx, "pl-1", "intruder")

		assertAPIError(t, err, http.StatusForbidden)
		mRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := NewPlaylistService(mRepo, nil, nil)
		assertAPIError(t, svc.Delete(ctx, "missing", "u1"), http.StatusNotFound)
	})
}

func TestPlaylistService_AddVideo(t *testing.T) {
	ctx := context.Background()

	t.Run("appends absent video", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)
		mVideos := new(repoMocks.MockVideoRepository)

		mRepo.On("FindByID", ctx, "pl-1").
			Return(&model.Playlist{ID: "pl-1", OwnerID: "u1", Videos: []model.VideoRef{}}, nil).Once()
		mVideos.On("FindByID", ctx, "v1").Return(&model.Video{ID: "v1"}, nil)
		mRepo.On("AddVideo", ctx, "pl-1", "v1").Return(true, nil)
		mRepo.On("FindByID", ctx, "pl-1").
			Return(&model.Playlist{ID: "pl-1", OwnerID: "u1", Videos: []model.VideoRef{{ID: "v1"}}}, nil).Once()

		svc := NewPlaylistService(mRepo, mVideos, nil)
		out, err := svc.AddVideo(ctx, "pl-1", "v1", "u1")

		require.NoError(t, err)
		assert.Len(t, out.Videos, 1)
		mRepo.AssertExpectations(t)
	})

	t.Run("duplicate add is a no-op", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)
		mVideos := new(repoMocks.MockVideoRepository)

		mRepo.On("FindByID", ctx, "pl-1").
			Return(&model.Playlist{ID: "pl-1", OwnerID: "u1", Videos: []model.VideoRef{{ID: "v1"}}}, nil)
		mVideos.On("FindByID", ctx, "v1").Return(&model.Video{ID: "v1"}, nil)

		svc := NewPlaylistService(mRepo, mVideos, nil)
		out, err := svc.AddVideo(ctx, "pl-1", "v1", "u1")

		require.NoError(t, err)
		assert.Len(t, out.Videos, 1)
		mRepo.AssertNotCalled(t, "AddVideo")
	})

	t.Run("video missing", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)
		mVideos := new(repoMocks.MockVideoRepository)

		mRepo.On("FindByID", ctx, "pl-1").
			Return(&model.Playlist{ID: "pl-1", OwnerID: "u1"}, nil)
		mVideos.On("FindByID", ctx, "ghost").Return(nil, sql.ErrNoRows)

		svc := NewPlaylistService(mRepo, mVideos, nil)
		_, err := svc.AddVideo(ctx, "pl-1", "ghost", "u1")

		assertAPIError(t, err, http.StatusNotFound)
	})

	t.Run("not owner", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)

		mRepo.On("FindByID", ctx, "pl-1").
			Return(&model.Playlist{ID: "pl-1", OwnerID: "u1"}, nil)

		svc := NewPlaylistService(mRepo, new(repoMocks.MockVideoRepository), nil)
		_, err := svc.AddVideo(ctx, "pl-1", "v1", "intruder")

		assertAPIError(t, err, http.StatusForbidden)
		mRepo.AssertNotCalled(t, "AddVideo")
	})
}

func TestPlaylistService_RemoveVideo(t *testing.T) {
	ctx := context.Background()

	t.Run("removes present video", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)

		mRepo.On("FindByID", ctx, "pl-1").
			Return(&model.Playlist{ID: "pl-1", OwnerID: "u1", Videos: []model.VideoRef{{ID: "v1"}}}, nil).Once()
		mRepo.On("RemoveVideo", ctx, "pl-1", "v1").Return(true, nil)
		mRepo.On("FindByID", ctx, "pl-1").
			Return(&model.Playlist{ID: "pl-1", OwnerID: "u1", Videos: []model.VideoRef{}}, nil).Once()

		svc := NewPlaylistService(mRepo, nil, nil)
		out, err := svc.RemoveVideo(ctx, "pl-1", "v1", "u1")

		require.NoError(t, err)
		assert.Empty(t, out.Videos)
		mRepo.AssertExpectations(t)
	})

	t.Run("absent video is a no-op", func(t *testing.T) {
		mRepo := new(repoMocks.MockPlaylistRepository)

		mRepo.On("FindByID", ctx, "pl-1").
			Return(&model.Playlist{ID: "pl-1", OwnerID: "u1", Videos: []model.VideoRef{{ID: "v1"}}}, nil)

		svc := NewPlaylistService(mRepo, nil, nil)
		out, err := svc.RemoveVideo(ctx, "pl-1", "v9", "u1")

		require.NoError(t, err)
		assert.Len(t, out.Videos, 1)
		mRepo.AssertNotCalled(t, "RemoveVideo")
	})
}
