package model

import "time"

// Video represents an uploaded video and its remote storage references.
// VideoKey/ThumbnailKey are the object storage keys; the URLs are
// dereferenceable without credentials.
type Video struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	VideoKey     string    `json:"-"`
	ThumbnailURL string    `json:"thumbnail_url"`
	ThumbnailKey string    `json:"-"`
	Duration     float64   `json:"duration"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

// Ref returns the denormalized reference held by playlists.
func (v *Video) Ref() VideoRef {
	return VideoRef{
		ID:           v.ID,
		Title:        v.Title,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
	}
}
