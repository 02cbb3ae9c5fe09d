package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"docregistro/internal/http/middleware"
	"docregistro/internal/logging"
	"docregistro/internal/upload"
)

// failurePayload is the body of every non-2xx response.
type failurePayload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
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

// writeFailure writes {success:false, message} with the given status.
func writeFailure(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(failurePayload{Success: false, Message: message})
}

// funnel turns the outcome of the upload stage into the response, exactly once.
// nil runs ok untouched; a *upload.Rejection is answered here with its own status;
// anything else is handed to the global ErrorHandler as an unhandled failure.
func funnel(c *fiber.Ctx, err error, ok func() error) error {
	if err == nil {
		return ok()
	}
	var rej *upload.Rejection
	if errors.As(err, &rej) {
		return writeFailure(c, rej.Status(), rej.Reason)
	}
	return err
}

// ErrorHandler returns a Fiber global error handler that keeps the failure shape uniform.
// Server errors are logged with the request id and answered with a generic message.
func ErrorHandler(log *logging.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logging.Default()
	}
	return func(c *fiber.Ctx, err error) error {
		var rej *upload.Rejection
		if errors.As(err, &rej) {
			return writeFailure(c, rej.Status(), rej.Reason)
		}

		status := fiber.StatusInternalServerError
		message := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}

		switch {
		case status == fiber.StatusRequestEntityTooLarge:
			message = fmt.Sprintf("File too large: limit is %d MiB", upload.MaxFileSize>>20)
		case status >= fiber.StatusInternalServerError:
			log.Error("request_failed", map[string]any{
				"request_id": requestIDFromCtx(c),
				"method":     c.Method(),
				"path":       c.Path(),
				"error":      err.Error(),
			})
			message = "Internal server error"
		}
		return writeFailure(c, status, message)
	}
}
