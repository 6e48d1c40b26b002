package handler

import (
	"github.com/gofiber/fiber/v2"

	"vidtube/internal/apierror"
	"vidtube/internal/http/middleware"
)

// errorPayload defines the standardized error response body. Stack traces and
// wrapped causes never appear here.
type errorPayload struct {
	RequestID  string   `json:"request_id,omitempty"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
	Success    bool     `json:"success"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func writeError(c *fiber.Ctx, e *apierror.Error) error {
	return c.Status(e.StatusCode).JSON(errorPayload{
		RequestID:  requestIDFromCtx(c),
		StatusCode: e.StatusCode,
		Message:    e.Error(),
		Errors:     e.Details,
		Success:    false,
	})
}

// ErrorHandler returns the Fiber global error handler: the one centralized
// reporter every handler failure funnels into. It serializes structured
// errors as-is, maps Fiber's own routing errors into the shared envelope, and
// degrades anything else to an opaque 500.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e := apierror.From(err); e != nil {
			return writeError(c, e)
		}

		if fe, ok := err.(*fiber.Error); ok {
			switch fe.Code {
			case fiber.StatusBadRequest:
				return writeError(c, apierror.BadRequest("bad request"))
			case fiber.StatusNotFound:
				return writeError(c, apierror.NotFound("resource not found"))
			case fiber.StatusMethodNotAllowed:
				return writeError(c, &apierror.Error{
					Kind:       apierror.KindValidation,
					StatusCode: fe.Code,
					Message:    "method not allowed",
				})
			}
		}

		return writeError(c, apierror.Internal("internal server error", err))
	}
}
