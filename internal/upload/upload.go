// Package upload moves one staged binary from local disk into object storage.
// Its contract: for every call with a non-empty local path, the staged file no
// longer exists after Upload returns, whatever the outcome. Failures are
// absorbed into a nil result — a failed upload with successful cleanup is an
// expected outcome the caller branches on, not an error it propagates.
package upload

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"vidtube/internal/storage"
)

// RemoteReference identifies a committed object: a dereferenceable URL plus
// the storage key it was stored under.
type RemoteReference struct {
	URL  string
	Key  string
	Size int64
}

// Uploader is the staged-upload pipeline. Safe for concurrent use; each call
// operates on its own staged file.
type Uploader struct {
	store         storage.Storage
	prefix        string
	presignExpiry time.Duration
	logw          io.Writer
}

// New constructs an Uploader committing objects under the given key prefix.
func New(store storage.Storage, prefix string, presignExpiry time.Duration) *Uploader {
	return &Uploader{store: store, prefix: prefix, presignExpiry: presignExpiry, logw: os.Stdout}
}

// NewWithLogWriter is New with log output redirected, for tests.
func NewWithLogWriter(store storage.Storage, prefix string, presignExpiry time.Duration, w io.Writer) *Uploader {
	u := New(store, prefix, presignExpiry)
	u.logw = w
	return u
}

// Upload commits the file at localPath to object storage and returns its
// remote reference, or nil if no artifact was created.
//
// An empty localPath returns nil immediately with no filesystem or network
// side effect. Otherwise the remote upload is attempted exactly once; the
// staged file is removed before returning on success and on every failure
// path. Removal failure after a committed upload is logged, not surfaced.
func (u *Uploader) Upload(ctx context.Context, localPath string) *RemoteReference {
	if localPath == "" {
		return nil
	}

	f, err := os.Open(localPath)
	if err != nil {
		u.logEvent("upload_stage_invalid", localPath, err)
		u.removeStaged(localPath)
		return nil
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		u.logEvent("upload_stage_invalid", localPath, err)
		u.removeStaged(localPath)
		return nil
	}

	ext := filepath.Ext(localPath)
	key := filepath.ToSlash(filepath.Join(u.prefix, uuid.New().String()+ext))

	ct := mime.TypeByExtension(ext)
	if ct == "" {
		ct = "application/octet-stream"
	}

	info, err := u.store.Put(ctx, key, f, storage.PutObjectOptions{
		Size:        st.Size(),
		ContentType: ct,
		Metadata:    map[string]string{"staged-name": filepath.Base(localPath)},
	})
	f.Close()
	if err != nil {
		u.logEvent("upload_remote_failed", localPath, err)
		u.removeStaged(localPath)
		return nil
	}

	// Committed: the remote artifact exists, so local removal is advisory.
	u.removeStaged(localPath)

	url, err := u.store.PresignGet(ctx, key, u.presignExpiry)
	if err != nil {
		// Without a dereferenceable URL the reference is unusable; drop the
		// remote object rather than leave one the caller cannot record.
		u.logEvent("upload_presign_failed", localPath, err)
		if delErr := u.store.Delete(ctx, key); delErr != nil {
			u.logEvent("upload_orphan_delete_failed", key, delErr)
		}
		return nil
	}

	return &RemoteReference{URL: url, Key: key, Size: info.Size}
}

// removeStaged deletes the staged file. A removal failure is logged only; the
// pipeline's outcome has already been decided by the remote call.
func (u *Uploader) removeStaged(localPath string) {
	if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
		u.logEvent("staged_file_remove_failed", localPath, err)
	}
}

func (u *Uploader) logEvent(event, subject string, err error) {
	entry := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     "warn",
		"component": "upload",
		"event":     event,
		"subject":   subject,
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	b, mErr := json.Marshal(entry)
	if mErr != nil {
		log.Printf("failed to marshal upload log: %v", mErr)
		return
	}
	b = append(b, '\n')
	_, _ = u.logw.Write(b)
}
