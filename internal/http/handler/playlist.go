package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"vidtube/internal/apierror"
	"vidtube/internal/http/middleware"
	"vidtube/internal/service"
)

// actingUser returns the verified identity stored by the auth middleware.
// The route group guarantees it is present; an empty value means the handler
// was mounted outside the authenticated group, which is a wiring bug.
func actingUser(c *fiber.Ctx) (string, error) {
	if v, ok := c.Locals(middleware.UserIDLocalKey).(string); ok && v != "" {
		return v, nil
	}
	return "", apierror.Unauthenticated("missing user identity")
}

func playlistID(c *fiber.Ctx) (string, error) {
	id := c.Params("playlistId")
	if _, err := uuid.Parse(id); err != nil {
		return "", apierror.BadRequest("invalid playlist id")
	}
	return id, nil
}

// CreatePlaylist handles POST /playlists.
func CreatePlaylist(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := actingUser(c)
		if err != nil {
			return err
		}

		var body struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := c.BodyParser(&body); err != nil {
			return apierror.BadRequest("invalid JSON body")
		}

		p, err := svc.Create(c.UserContext(), user, body.Name, body.Description)
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusCreated, p, "playlist created")
	}
}

// ListUserPlaylists handles GET /playlists/user/:userId.
func ListUserPlaylists(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListByUser(c.UserContext(), c.Params("userId"))
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, items, "playlists fetched")
	}
}

// GetPlaylist handles GET /playlists/:playlistId. Reads are not owner-restricted.
func GetPlaylist(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := playlistID(c)
		if err != nil {
			return err
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, p, "playlist fetched")
	}
}

// UpdatePlaylist handles PATCH /playlists/:playlistId.
func UpdatePlaylist(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := actingUser(c)
		if err != nil {
			return err
		}
		id, err := playlistID(c)
		if err != nil {
			return err
		}

		var body struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
		}
		if err := c.BodyParser(&body); err != nil {
			return apierror.BadRequest("invalid JSON body")
		}

		p, err := svc.Update(c.UserContext(), id, user, service.PlaylistUpdate{
			Name:        body.Name,
			Description: body.Description,
		})
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, p, "playlist updated")
	}
}

// DeletePlaylist handles DELETE /playlists/:playlistId.
func DeletePlaylist(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := actingUser(c)
		if err != nil {
			return err
		}
		id, err := playlistID(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), id, user); err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, fiber.Map{"id": id}, "playlist deleted")
	}
}

// AddPlaylistVideo handles POST /playlists/:playlistId/video/:videoId.
// Adding an already-present video succeeds without changing the playlist.
func AddPlaylistVideo(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := actingUser(c)
		if err != nil {
			return err
		}
		id, err := playlistID(c)
		if err != nil {
			return err
		}
		p, err := svc.AddVideo(c.UserContext(), id, c.Params("videoId"), user)
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, p, "video added to playlist")
	}
}

// RemovePlaylistVideo handles DELETE /playlists/:playlistId/video/:videoId.
// Removing an absent video succeeds without changing the playlist.
func RemovePlaylistVideo(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := actingUser(c)
		if err != nil {
			return err
		}
		id, err := playlistID(c)
		if err != nil {
			return err
		}
		p, err := svc.RemoveVideo(c.UserContext(), id, c.Params("videoId"), user)
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, p, "video removed from playlist")
	}
}
