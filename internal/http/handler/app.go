package handler

import (
	"github.com/gofiber/fiber/v2"

	"docregistro/internal/logging"
	"docregistro/internal/upload"
)

// multipartSlack covers boundaries, part headers and small form fields around the file.
const multipartSlack = 1 << 20

// BodyLimit is the largest request body the app reads, in bytes.
func BodyLimit() int {
	return int(upload.MaxFileSize) + multipartSlack
}

// NewApp returns a Fiber app with the uniform error handler and a body limit
// just above the upload ceiling, so oversized files reach the gatekeeper.
func NewApp(log *logging.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "docregistro",
		ErrorHandler: ErrorHandler(log),
		BodyLimit:    BodyLimit(),
	})
}
