package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"vidtube/internal/apierror"
)

// HealthCheck reports service health, verifying persistent-store connectivity.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return apierror.Upstream("dependency unavailable", err)
		}
		return respond(c, fiber.StatusOK, "OK", "health check passed")
	}
}
