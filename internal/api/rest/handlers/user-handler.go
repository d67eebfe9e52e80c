package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/resthub/account_service/internal/dto"
	"github.com/resthub/account_service/internal/helper/utils"
	"github.com/resthub/account_service/internal/services"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) SetupRoutes(api fiber.Router, authRequired fiber.Handler) {
	api.Get("/users", h.GetUser)
	api.Get("/user/verify", h.Verify)

	api.Get("/user", authRequired, h.Me)
	api.Put("/user", authRequired, h.UpdateProfile)
	api.Delete("/user", authRequired, h.Delete)
}

// GetUser looks a user up by ?id= or ?email= and returns the sanitized
// record.
func (h *UserHandler) GetUser(ctx *fiber.Ctx) error {
	if id := ctx.QueryInt("id"); id > 0 {
		user, err := h.svc.GetUserByID(uint(id))
		if err != nil {
			return utils.ResponseFromError(ctx, err)
		}
		return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
	}

	if email := ctx.Query("email"); email != "" {
		user, err := h.svc.GetUserByEmail(email)
		if err != nil {
			return utils.ResponseFromError(ctx, err)
		}
		return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
	}

	return utils.ResponseError(ctx, fiber.StatusBadRequest, "id or email query parameter is required")
}

func (h *UserHandler) Me(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.svc.GetUserByID(userID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.UpdateUserProfile
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	user, err := h.svc.UpdateProfile(userID, requestBody)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *UserHandler) Delete(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.svc.DeleteUser(userID); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"success": true})
}

func (h *UserHandler) Verify(ctx *fiber.Ctx) error {
	if err := h.svc.VerifyUser(ctx.Query("token")); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"success": true})
}
