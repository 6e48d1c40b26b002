package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"vidtube/internal/apierror"
)

// Resilient adapts a handler so every failure reaches the centralized error
// handler through one channel, exactly once. A returned error is that channel
// already; a panic is folded into it here instead of killing the process.
//
// Wrapping is idempotent: an inner Resilient has already converted any panic
// to an error return by the time an outer one observes the call, so double
// wrapping cannot double-report.
func Resilient(h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if e, ok := r.(error); ok {
					err = apierror.Internal("something went wrong", e)
					return
				}
				err = apierror.Internal("something went wrong", fmt.Errorf("%v", r))
			}
		}()
		return h(c)
	}
}
