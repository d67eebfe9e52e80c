package utils

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/resthub/account_service/internal/apperr"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

// ResponseFromError reduces any error to a response: taxonomy errors keep
// their status and message, everything else becomes a generic 500.
func ResponseFromError(ctx *fiber.Ctx, err error) error {
	if ae, ok := apperr.From(err); ok {
		// 304 must not carry a body
		if ae.Status == fiber.StatusNotModified {
			return ctx.SendStatus(fiber.StatusNotModified)
		}
		return ResponseError(ctx, ae.Status, ae.Message)
	}

	log.Printf("unhandled error: %v", err)
	return ResponseError(ctx, fiber.StatusInternalServerError, "something went wrong")
}
