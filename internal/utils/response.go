package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse writes the standard success envelope.
func SuccessResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// ErrorResponse writes the standard error envelope with the given status.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(status).JSON(body)
}

// GetCurrentTimestamp returns the current unix time in seconds.
func GetCurrentTimestamp() int64 {
	return time.Now().Unix()
}
