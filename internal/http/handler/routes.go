package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"vidtube/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Every route
// except the health check sits behind the auth middleware, and every handler
// runs inside Resilient so panics surface through the error pipeline like any
// other failure.
func RegisterRoutes(app *fiber.App, db *sql.DB, playlists service.PlaylistService, videos service.VideoService, auth fiber.Handler, stagingDir string) {
	app.Get("/healthcheck", Resilient(HealthCheck(db)))

	pl := app.Group("/playlists", auth)
	pl.Post("/", Resilient(CreatePlaylist(playlists)))
	pl.Get("/user/:userId", Resilient(ListUserPlaylists(playlists)))
	pl.Get("/:playlistId", Resilient(GetPlaylist(playlists)))
	pl.Patch("/:playlistId", Resilient(UpdatePlaylist(playlists)))
	pl.Delete("/:playlistId", Resilient(DeletePlaylist(playlists)))
	pl.Post("/:playlistId/video/:videoId", Resilient(AddPlaylistVideo(playlists)))
	pl.Delete("/:playlistId/video/:videoId", Resilient(RemovePlaylistVideo(playlists)))

	vd := app.Group("/videos", auth)
	vd.Post("/", Resilient(UploadVideo(videos, stagingDir)))
	vd.Get("/", Resilient(ListVideos(videos)))
	vd.Get("/:videoId", Resilient(GetVideo(videos)))
	vd.Delete("/:videoId", Resilient(DeleteVideo(videos)))
}
