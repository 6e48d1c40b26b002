package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"vidtube/internal/apierror"
	"vidtube/internal/events"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// PlaylistUpdate carries the mutable playlist fields; nil means "leave as is".
type PlaylistUpdate struct {
	Name        *string
	Description *string
}

// PlaylistService defines the use cases for the playlist aggregate. Reads are
// open; every mutation checks the acting user against the stored owner, never
// trusting the caller-supplied payload.
type PlaylistService interface {
	// Create makes a new, empty playlist owned by ownerID.
	Create(ctx context.Context, ownerID, name, description string) (*model.Playlist, error)

	// ListByUser returns the user's playlists, most recently created first.
	ListByUser(ctx context.Context, userID string) ([]model.Playlist, error)

	// Get returns one playlist with resolved video metadata.
	Get(ctx context.Context, id string) (*model.Playlist, error)

	// Update applies the provided field changes. Owner only.
	Update(ctx context.Context, id, actingUser string, upd PlaylistUpdate) (*model.Playlist, error)

	// Delete removes the playlist. Owner only. Referenced videos are untouched.
	Delete(ctx context.Context, id, actingUser string) error

	// AddVideo appends the video if absent; adding a present video is a no-op.
	AddVideo(ctx context.Context, playlistID, videoID, actingUser string) (*model.Playlist, error)

	// RemoveVideo drops the video if present; removing an absent video is a no-op.
	RemoveVideo(ctx context.Context, playlistID, videoID, actingUser string) (*model.Playlist, error)
}

type playlistService struct {
	repo   repository.PlaylistRepository
	videos repository.VideoRepository
	pub    *events.Publisher
}

// NewPlaylistService constructs a new PlaylistService.
func NewPlaylistService(repo repository.PlaylistRepository, videos repository.VideoRepository, pub *events.Publisher) PlaylistService {
	return &playlistService{repo: repo, videos: videos, pub: pub}
}

func (s *playlistService) Create(ctx context.Context, ownerID, name, description string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierror.BadRequest("name is required")
	}

	p := &model.Playlist{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Videos:      []model.VideoRef{},
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, apierror.Upstream("playlist could not be saved", err)
	}

	s.pub.Publish(ctx, "playlist.created", stored)
	return stored, nil
}

func (s *playlistService) ListByUser(ctx context.Context, userID string) ([]model.Playlist, error) {
	if userID == "" {
		return nil, apierror.BadRequest("user id is required")
	}
	items, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apierror.Upstream("playlists could not be loaded", err)
	}
	return items, nil
}

func (s *playlistService) Get(ctx context.Context, id string) (*model.Playlist, error) {
	return s.find(ctx, id)
}

func (s *playlistService) Update(ctx context.Context, id, actingUser string, upd PlaylistUpdate) (*model.Playlist, error) {
	p, err := s.findOwned(ctx, id, actingUser)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apierror.BadRequest("name cannot be empty")
		}
		p.Name = name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}

	out, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, apierror.Upstream("playlist could not be updated", err)
	}

	s.pub.Publish(ctx, "playlist.updated", out)
	return out, nil
}

func (s *playlistService) Delete(ctx context.Context, id, actingUser string) error {
	p, err := s.findOwned(ctx, id, actingUser)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return apierror.Upstream("playlist could not be deleted", err)
	}

	s.pub.Publish(ctx, "playlist.deleted", map[string]string{"id": p.ID, "owner_id": p.OwnerID})
	return nil
}

func (s *playlistService) AddVideo(ctx context.Context, playlistID, videoID, actingUser string) (*model.Playlist, error) {
	p, err := s.findOwned(ctx, playlistID, actingUser)
	if err != nil {
		return nil, err
	}

	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierror.NotFound("video not found")
		}
		return nil, apierror.Upstream("video could not be loaded", err)
	}

	// Adding an already-present video is a no-op, not an error.
	if p.Contains(videoID) {
		return p, nil
	}

	// The repository's insert is idempotent under concurrency; the membership
	// check above only avoids a needless round trip.
	if _, err := s.repo.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, apierror.Upstream("video could not be added to playlist", err)
	}

	out, err := s.find(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, "playlist.video_added", map[string]string{"playlist_id": playlistID, "video_id": videoID})
	return out, nil
}

func (s *playlistService) RemoveVideo(ctx context.Context, playlistID, videoID, actingUser string) (*model.Playlist, error) {
	p, err := s.findOwned(ctx, playlistID, actingUser)
	if err != nil {
		return nil, err
	}

	// Removing an absent video is a no-op: return the playlist unchanged.
	if !p.Contains(videoID) {
		return p, nil
	}

	if _, err := s.repo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, apierror.Upstream("video could not be removed from playlist", err)
	}

	out, err := s.find(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, "playlist.video_removed", map[string]string{"playlist_id": playlistID, "video_id": videoID})
	return out, nil
}

// find loads a playlist, mapping a missing row to a 404 structured error.
func (s *playlistService) find(ctx context.Context, id string) (*model.Playlist, error) {
	if id == "" {
		return nil, apierror.BadRequest("playlist id is required")
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierror.NotFound("playlist not found")
		}
		return nil, apierror.Upstream("playlist could not be loaded", err)
	}
	return p, nil
}

// findOwned loads a playlist and verifies the acting user is its owner.
func (s *playlistService) findOwned(ctx context.Context, id, actingUser string) (*model.Playlist, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actingUser {
		return nil, apierror.Forbidden("only the owner can modify this playlist")
	}
	return p, nil
}
