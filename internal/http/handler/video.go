package handler

import (
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"vidtube/internal/apierror"
	"vidtube/internal/service"
)

// UploadVideo handles POST /videos (multipart/form-data).
// Fields: videoFile (required), thumbnail (optional), title (required),
// description and duration (optional). The parts are staged under stagingDir
// before the service takes over; the service owns their cleanup from there.
func UploadVideo(svc service.VideoService, stagingDir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := actingUser(c)
		if err != nil {
			return err
		}

		title := strings.TrimSpace(c.FormValue("title"))
		if title == "" {
			return apierror.BadRequest("title is required")
		}

		fh, err := c.FormFile("videoFile")
		if err != nil {
			return apierror.BadRequest("video file is required")
		}
		videoPath, err := stagePart(c, fh, stagingDir)
		if err != nil {
			return apierror.Upstream("video could not be staged", err)
		}

		var thumbPath string
		if th, err := c.FormFile("thumbnail"); err == nil {
			if thumbPath, err = stagePart(c, th, stagingDir); err != nil {
				// The video part is already on disk but will never reach the
				// service, so it has to be cleaned up here.
				removeStaged(videoPath)
				return apierror.Upstream("thumbnail could not be staged", err)
			}
		}

		duration, _ := strconv.ParseFloat(c.FormValue("duration"), 64)

		v, err := svc.Upload(c.UserContext(), user, service.VideoUploadInput{
			Title:         title,
			Description:   c.FormValue("description"),
			Duration:      duration,
			VideoPath:     videoPath,
			ThumbnailPath: thumbPath,
		})
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusCreated, v, "video uploaded")
	}
}

// stagePart saves one multipart part under dir with a fresh name, keeping the
// client's extension so content types survive the trip through staging.
func stagePart(c *fiber.Ctx, fh *multipart.FileHeader, dir string) (string, error) {
	dst := filepath.Join(dir, uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveFile(fh, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// removeStaged deletes a staged file that will not be handed to the service.
func removeStaged(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("remove staged file %s: %v", path, err)
	}
}

// GetVideo handles GET /videos/:videoId.
func GetVideo(svc service.VideoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("videoId")
		if _, err := uuid.Parse(id); err != nil {
			return apierror.BadRequest("invalid video id")
		}
		v, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, v, "video fetched")
	}
}

// ListVideos handles GET /videos with limit/offset pagination.
func ListVideos(svc service.VideoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		offset, _ := strconv.Atoi(c.Query("offset", "0"))

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, res, "videos fetched")
	}
}

// DeleteVideo handles DELETE /videos/:videoId.
func DeleteVideo(svc service.VideoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := actingUser(c)
		if err != nil {
			return err
		}
		id := c.Params("videoId")
		if _, err := uuid.Parse(id); err != nil {
			return apierror.BadRequest("invalid video id")
		}
		if err := svc.Delete(c.UserContext(), id, user); err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, fiber.Map{"id": id}, "video deleted")
	}
}
