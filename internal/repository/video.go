package repository

import (
	"context"

	"vidtube/internal/model"
)

// VideoRepository defines data access for videos using SQL queries only.
type VideoRepository interface {
	// Create inserts a new video record and returns the stored document.
	Create(ctx context.Context, v *model.Video) (*model.Video, error)

	// FindByID returns a video by its ID. Returns sql.ErrNoRows if missing.
	FindByID(ctx context.Context, id string) (*model.Video, error)

	// List returns a paginated list of videos and a total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Video], error)

	// Delete removes a video by ID. Playlist membership rows referencing it
	// are removed as well. Returns nil if the row did not exist.
	Delete(ctx context.Context, id string) error
}
