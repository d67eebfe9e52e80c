package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/resthub/account_service/internal/helper"
)

func tokenFromRequest(ctx *fiber.Ctx) string {
	// cookie first, Authorization header as fallback
	token := strings.TrimSpace(ctx.Cookies("access_token"))
	if token == "" {
		token = strings.TrimSpace(ctx.Get("Authorization"))
	}
	return token
}

// AuthMiddleware requires a valid access token and stashes the caller's
// identity in Locals.
func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, err := auth.VerifyToken(tokenFromRequest(ctx))
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("userID", user.UserID)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

// GuestOnly rejects callers that already hold a valid session; register,
// login and the password-reset flow are guest endpoints.
func GuestOnly(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if _, err := auth.VerifyToken(tokenFromRequest(ctx)); err == nil {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "already authenticated",
			})
		}
		return ctx.Next()
	}
}
