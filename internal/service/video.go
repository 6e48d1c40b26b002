package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"vidtube/internal/apierror"
	"vidtube/internal/events"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/internal/storage"
	"vidtube/internal/upload"
)

// Uploader commits one staged local file to remote storage. A nil result
// means no artifact was created; the staged file is gone either way.
type Uploader interface {
	Upload(ctx context.Context, localPath string) *upload.RemoteReference
}

// VideoUploadInput carries the staged file paths and metadata for one upload.
// The paths are consumed: whatever the outcome, the staged files no longer
// exist after Upload returns.
type VideoUploadInput struct {
	Title         string
	Description   string
	Duration      float64
	VideoPath     string
	ThumbnailPath string
}

// VideoListResult is the service-level DTO for paginated videos.
type VideoListResult struct {
	Items []model.Video `json:"data"`
	Total int           `json:"total"`
}

// VideoService defines the use cases for handling videos.
type VideoService interface {
	// Upload commits the staged video (and optional thumbnail) to remote
	// storage, records the video, and rolls back storage if the record fails.
	Upload(ctx context.Context, ownerID string, in VideoUploadInput) (*model.Video, error)

	// Get returns a single video by its ID.
	Get(ctx context.Context, id string) (*model.Video, error)

	// List returns videos using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*VideoListResult, error)

	// Delete removes a video from storage and the repository. Owner only.
	// Playlists referencing it are reconciled by the membership cascade.
	Delete(ctx context.Context, id, actingUser string) error
}

type videoService struct {
	uploader Uploader
	store    storage.Storage
	repo     repository.VideoRepository
	pub      *events.Publisher
}

// NewVideoService constructs a new VideoService.
func NewVideoService(uploader Uploader, store storage.Storage, repo repository.VideoRepository, pub *events.Publisher) VideoService {
	return &videoService{uploader: uploader, store: store, repo: repo, pub: pub}
}

func (s *videoService) Upload(ctx context.Context, ownerID string, in VideoUploadInput) (*model.Video, error) {
	if strings.TrimSpace(in.Title) == "" {
		discardStaged(in.VideoPath, in.ThumbnailPath)
		return nil, apierror.BadRequest("title is required")
	}
	if in.VideoPath == "" {
		discardStaged(in.ThumbnailPath)
		return nil, apierror.BadRequest("video file is required")
	}

	videoRef := s.uploader.Upload(ctx, in.VideoPath)
	if videoRef == nil {
		// No artifact was created and the staged video is already cleaned up;
		// the thumbnail never entered the pipeline.
		discardStaged(in.ThumbnailPath)
		return nil, apierror.Upstream("video could not be stored", nil)
	}

	var thumbURL, thumbKey string
	if thumbRef := s.uploader.Upload(ctx, in.ThumbnailPath); thumbRef != nil {
		thumbURL = thumbRef.URL
		thumbKey = thumbRef.Key
	}

	v := &model.Video{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		VideoURL:     videoRef.URL,
		VideoKey:     videoRef.Key,
		ThumbnailURL: thumbURL,
		ThumbnailKey: thumbKey,
		Duration:     in.Duration,
		Size:         videoRef.Size,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, v)
	if err != nil {
		// Rollback: drop the remote artifacts so storage and record agree.
		if delErr := s.store.Delete(ctx, videoRef.Key); delErr != nil {
			log.Printf("video upload rollback: delete %s: %v", videoRef.Key, delErr)
		}
		if thumbKey != "" {
			if delErr := s.store.Delete(ctx, thumbKey); delErr != nil {
				log.Printf("video upload rollback: delete %s: %v", thumbKey, delErr)
			}
		}
		return nil, apierror.Upstream("video metadata could not be saved", err)
	}

	s.pub.Publish(ctx, "video.created", stored)
	return stored, nil
}

func (s *videoService) Get(ctx context.Context, id string) (*model.Video, error) {
	if id == "" {
		return nil, apierror.BadRequest("video id is required")
	}
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierror.NotFound("video not found")
		}
		return nil, apierror.Upstream("video could not be loaded", err)
	}
	return v, nil
}

func (s *videoService) List(ctx context.Context, limit, offset int) (*VideoListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, apierror.Upstream("videos could not be loaded", err)
	}
	return &VideoListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *videoService) Delete(ctx context.Context, id, actingUser string) error {
	v, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if v.OwnerID != actingUser {
		return apierror.Forbidden("only the owner can delete this video")
	}

	// Delete from storage first; if this fails, keep the record so the
	// remote artifact stays reachable.
	if err := s.store.Delete(ctx, v.VideoKey); err != nil {
		return apierror.Upstream("video could not be removed from storage", err)
	}
	if v.ThumbnailKey != "" {
		if err := s.store.Delete(ctx, v.ThumbnailKey); err != nil {
			log.Printf("video delete: thumbnail %s: %v", v.ThumbnailKey, err)
		}
	}

	if err := s.repo.Delete(ctx, v.ID); err != nil {
		return apierror.Upstream("video record could not be deleted", err)
	}

	s.pub.Publish(ctx, "video.deleted", map[string]string{"id": v.ID, "owner_id": v.OwnerID})
	return nil
}

// discardStaged removes staged files that will not enter the upload pipeline,
// so validation failures cannot leak the staging area.
func discardStaged(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Printf("discard staged file %s: %v", p, err)
		}
	}
}
