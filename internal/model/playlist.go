package model

import "time"

// Playlist is an ordered, owner-scoped collection of video references.
// This is a pure domain model with no database-specific dependencies or tags.
// Videos holds denormalized metadata so a listing renders without a second
// fetch; the playlist does not own the referenced videos' lifecycle.
type Playlist struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Videos      []VideoRef `json:"videos"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// VideoRef is a playlist membership entry. Order of appearance is playback
// order (insertion order of surviving elements).
type VideoRef struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Duration     float64 `json:"duration"`
}

// Contains reports whether the playlist already references the given video.
func (p *Playlist) Contains(videoID string) bool {
	for _, v := range p.Videos {
		if v.ID == videoID {
			return true
		}
	}
	return false
}
