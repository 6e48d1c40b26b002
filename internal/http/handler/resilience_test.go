package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/internal/apierror"
)

func TestResilient(t *testing.T) {
	t.Run("passes through success", func(t *testing.T) {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
		app.Get("/ok", Resilient(func(c *fiber.Ctx) error {
			return c.SendString("fine")
		}))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("returned error reaches the central handler once", func(t *testing.T) {
		var reports int32
		app := fiber.New(fiber.Config{
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				atomic.AddInt32(&reports, 1)
				return ErrorHandler()(c, err)
			},
		})
		app.Get("/fail", Resilient(func(c *fiber.Ctx) error {
			return apierror.NotFound("gone")
		}))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, int32(1), atomic.LoadInt32(&reports))
	})

	t.Run("panic with error value becomes a 500", func(t *testing.T) {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
		app.Get("/panic", Resilient(func(c *fiber.Ctx) error {
			panic(errors.New("handler exploded"))
		}))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		body := decodeError(t, resp)
		assert.False(t, body.Success)
		assert.Equal(t, "something went wrong", body.Message)
	})

	t.Run("panic with non-error value becomes a 500", func(t *testing.T) {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
		app.Get("/panic", Resilient(func(c *fiber.Ctx) error {
			panic("string panic")
		}))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("double wrapping reports exactly once", func(t *testing.T) {
		var reports int32
		app := fiber.New(fiber.Config{
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				atomic.AddInt32(&reports, 1)
				return ErrorHandler()(c, err)
			},
		})
		app.Get("/panic", Resilient(Resilient(func(c *fiber.Ctx) error {
			panic(errors.New("handler exploded"))
		})))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, int32(1), atomic.LoadInt32(&reports))
	})

	t.Run("structured error survives double wrapping unchanged", func(t *testing.T) {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
		app.Get("/forbidden", Resilient(Resilient(func(c *fiber.Ctx) error {
			return apierror.Forbidden("not yours")
		})))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/forbidden", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "not yours", body.Message)
	})
}
