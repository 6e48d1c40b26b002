package handler

import "github.com/gofiber/fiber/v2"

// envelope is the single success shape crossing the API boundary. Success is
// derived from the status code and can never disagree with it.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// respond writes the standardized success envelope.
func respond(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < 400,
	})
}
