package postgres

import (
	"context"
	"database/sql"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// PlaylistPostgres is a PostgreSQL implementation of repository.PlaylistRepository.
// Membership idempotence is enforced by the playlist_videos composite primary
// key plus ON CONFLICT DO NOTHING, so concurrent duplicate adds stay no-ops
// without any higher-level lock.
type PlaylistPostgres struct {
	db *sql.DB
}

// NewPlaylistPostgres creates a new PlaylistPostgres repository.
func NewPlaylistPostgres(db *sql.DB) *PlaylistPostgres {
	return &PlaylistPostgres{db: db}
}

var _ repository.PlaylistRepository = (*PlaylistPostgres)(nil)

// Create inserts a new playlist row and returns the stored record.
func (r *PlaylistPostgres) Create(ctx context.Context, p *model.Playlist) (*model.Playlist, error) {
	const q = `
		INSERT INTO playlists (id, owner_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, owner_id, name, description, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.OwnerID,
		p.Name,
		p.Description,
		p.CreatedAt,
	)
	var out model.Playlist
	if err := row.Scan(
		&out.ID,
		&out.OwnerID,
		&out.Name,
		&out.Description,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	out.Videos = []model.VideoRef{}
	return &out, nil
}

// FindByID fetches a single playlist and resolves its video references.
func (r *PlaylistPostgres) FindByID(ctx context.Context, id string) (*model.Playlist, error) {
	const q = `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var p model.Playlist
	if err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	videos, err := r.loadVideos(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Videos = videos
	return &p, nil
}

// ListByOwner returns the owner's playlists, most recently created first.
func (r *PlaylistPostgres) ListByOwner(ctx context.Context, ownerID string) ([]model.Playlist, error) {
	const q = `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Playlist, 0)
	for rows.Next() {
		var p model.Playlist
		if err := rows.Scan(
			&p.ID,
			&p.OwnerID,
			&p.Name,
			&p.Description,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		videos, err := r.loadVideos(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Videos = videos
	}
	return items, nil
}

// Update persists name/description changes and refreshes updated_at.
func (r *PlaylistPostgres) Update(ctx context.Context, p *model.Playlist) (*model.Playlist, error) {
	const q = `
		UPDATE playlists
		SET name = $2, description = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, owner_id, name, description, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q, p.ID, p.Name, p.Description)
	var out model.Playlist
	if err := row.Scan(
		&out.ID,
		&out.OwnerID,
		&out.Name,
		&out.Description,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	out.Videos = p.Videos
	return &out, nil
}

// Delete removes a playlist by ID; playlist_videos rows cascade.
func (r *PlaylistPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM playlists WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// AddVideo appends the video at the next position if it is not already a
// member. The conflict target is the composite primary key, so the duplicate
// check and the insert are one atomic statement.
func (r *PlaylistPostgres) AddVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	const q = `
		INSERT INTO playlist_videos (playlist_id, video_id, position)
		SELECT $1, $2, COALESCE(MAX(position) + 1, 0)
		FROM playlist_videos
		WHERE playlist_id = $1
		ON CONFLICT (playlist_id, video_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, q, playlistID, videoID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	return true, r.touch(ctx, playlistID)
}

// RemoveVideo drops the membership row if present. Surviving rows keep their
// positions, so playback order of the remaining elements is preserved.
func (r *PlaylistPostgres) RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	const q = `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`
	res, err := r.db.ExecContext(ctx, q, playlistID, videoID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	return true, r.touch(ctx, playlistID)
}

// touch refreshes updated_at after a membership change.
func (r *PlaylistPostgres) touch(ctx context.Context, playlistID string) error {
	const q = `UPDATE playlists SET updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, playlistID)
	return err
}

// loadVideos resolves a playlist's membership with denormalized video
// metadata, ordered by position. Concurrent adds of different videos can land
// on the same position, so added_at breaks ties and keeps playback order
// deterministic.
func (r *PlaylistPostgres) loadVideos(ctx context.Context, playlistID string) ([]model.VideoRef, error) {
	const q = `
		SELECT v.id, v.title, v.thumbnail_url, v.duration
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		WHERE pv.playlist_id = $1
		ORDER BY pv.position, pv.added_at
	`
	rows, err := r.db.QueryContext(ctx, q, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make([]model.VideoRef, 0)
	for rows.Next() {
		var ref model.VideoRef
		if err := rows.Scan(&ref.ID, &ref.Title, &ref.ThumbnailURL, &ref.Duration); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
