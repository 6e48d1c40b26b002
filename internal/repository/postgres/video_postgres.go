package postgres

import (
	"context"
	"database/sql"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// VideoPostgres is a PostgreSQL implementation of repository.VideoRepository.
type VideoPostgres struct {
	db *sql.DB
}

// NewVideoPostgres creates a new VideoPostgres repository.
func NewVideoPostgres(db *sql.DB) *VideoPostgres {
	return &VideoPostgres{db: db}
}

var _ repository.VideoRepository = (*VideoPostgres)(nil)

const videoColumns = `id, owner_id, title, description, video_url, video_key, thumbnail_url, thumbnail_key, duration, size, created_at`

func scanVideo(row interface{ Scan(dest ...any) error }) (*model.Video, error) {
	var v model.Video
	if err := row.Scan(
		&v.ID,
		&v.OwnerID,
		&v.Title,
		&v.Description,
		&v.VideoURL,
		&v.VideoKey,
		&v.ThumbnailURL,
		&v.ThumbnailKey,
		&v.Duration,
		&v.Size,
		&v.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new video row and returns the stored record.
func (r *VideoPostgres) Create(ctx context.Context, v *model.Video) (*model.Video, error) {
	const q = `
		INSERT INTO videos (id, owner_id, title, description, video_url, video_key, thumbnail_url, thumbnail_key, duration, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + videoColumns
	row := r.db.QueryRowContext(ctx, q,
		v.ID,
		v.OwnerID,
		v.Title,
		v.Description,
		v.VideoURL,
		v.VideoKey,
		v.ThumbnailURL,
		v.ThumbnailKey,
		v.Duration,
		v.Size,
		v.CreatedAt,
	)
	return scanVideo(row)
}

// FindByID fetches a single video by its ID.
func (r *VideoPostgres) FindByID(ctx context.Context, id string) (*model.Video, error) {
	const q = `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`
	return scanVideo(r.db.QueryRowContext(ctx, q, id))
}

// List returns videos using LIMIT/OFFSET pagination and a total count.
func (r *VideoPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Video], error) {
	const qCount = `SELECT COUNT(*) FROM videos`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + videoColumns + `
		FROM videos
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Video]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a video by ID. Playlist membership rows cascade, so no
// playlist is left holding a dangling reference.
func (r *VideoPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM videos WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
