package repository

import (
	"context"

	"vidtube/internal/model"
)

// PlaylistRepository defines persistence for the playlist aggregate and its
// ordered video membership. No business logic here — ownership checks and
// status mapping live in the service layer.
type PlaylistRepository interface {
	// Create inserts a new playlist row and returns the stored record.
	Create(ctx context.Context, p *model.Playlist) (*model.Playlist, error)

	// FindByID returns one playlist with its video references resolved in
	// playback order. Returns sql.ErrNoRows if the playlist does not exist.
	FindByID(ctx context.Context, id string) (*model.Playlist, error)

	// ListByOwner returns the owner's playlists, most recently created first,
	// each with video references resolved. An empty slice is a valid result.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Playlist, error)

	// Update persists name/description changes and refreshes updated_at.
	Update(ctx context.Context, p *model.Playlist) (*model.Playlist, error)

	// Delete removes a playlist by ID. Membership rows go with it. It returns
	// nil if the row did not exist.
	Delete(ctx context.Context, id string) error

	// AddVideo appends the video to the playlist's membership if absent.
	// Reports whether a row was actually inserted; a duplicate add is a no-op
	// even under concurrent callers.
	AddVideo(ctx context.Context, playlistID, videoID string) (bool, error)

	// RemoveVideo drops the video from the playlist's membership if present.
	// Reports whether a row was actually removed.
	RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error)
}
