package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/resthub/account_service/internal/dto"
	"github.com/resthub/account_service/internal/helper/utils"
	"github.com/resthub/account_service/internal/services"
)

type AuthHandler struct {
	svc  services.AuthService
	prod bool
}

func NewAuthHandler(svc services.AuthService, env string) *AuthHandler {
	return &AuthHandler{svc: svc, prod: env == "prod"}
}

func (h *AuthHandler) SetupRoutes(api fiber.Router, authRequired, guestOnly fiber.Handler) {
	api.Post("/users", guestOnly, h.Register)
	api.Post("/user/login", guestOnly, h.Login)
	api.Delete("/user/logout", h.Logout)
	api.Post("/user/forgot-password", guestOnly, h.ForgotPassword)
	api.Post("/user/reset-password/:resetToken", guestOnly, h.ResetPassword)
	api.Post("/user/refresh-token", h.RefreshToken)
	api.Put("/user/change-password", authRequired, h.ChangePassword)
}

func (h *AuthHandler) setCookie(ctx *fiber.Ctx, name, value string) {
	sameSite := fiber.CookieSameSiteLaxMode
	if h.prod {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	ctx.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   h.prod,
		SameSite: sameSite,
	})
}

func (h *AuthHandler) clearCookie(ctx *fiber.Ctx, name string) {
	sameSite := fiber.CookieSameSiteLaxMode
	if h.prod {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	ctx.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.prod,
		SameSite: sameSite,
	})
}

func (h *AuthHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	resp, err := h.svc.Register(requestBody, ctx.Get("Origin"))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	result, err := h.svc.Login(requestBody.EmailAddress, requestBody.Password)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	h.setCookie(ctx, "access_token", result.AccessToken)
	h.setCookie(ctx, "refresh_token", result.RefreshToken)
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"success": true})
}

func (h *AuthHandler) Logout(ctx *fiber.Ctx) error {
	if err := h.svc.Logout(ctx.Cookies("refresh_token")); err != nil {
		log.Printf("logout error: %v", err)
	}

	h.clearCookie(ctx, "access_token")
	h.clearCookie(ctx, "refresh_token")
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) ForgotPassword(ctx *fiber.Ctx) error {
	var requestBody dto.ForgotPasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide a valid email address")
	}

	resp, err := h.svc.ForgotPasswordRequest(requestBody.EmailAddress, ctx.Get("Origin"))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	// unknown accounts get the same 200 with an empty body
	if resp == nil {
		return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{})
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AuthHandler) ResetPassword(ctx *fiber.Ctx) error {
	var requestBody dto.ResetPasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	err := h.svc.ResetPassword(
		ctx.Params("resetToken"),
		requestBody.Password,
		requestBody.PasswordConfirm,
	)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"success": true})
}

// RefreshToken reads the refresh cookie and sets a new access cookie, or
// forces logout with 403 when the token is unknown.
func (h *AuthHandler) RefreshToken(ctx *fiber.Ctx) error {
	refreshToken := ctx.Cookies("refresh_token")

	accessToken, err := h.svc.RefreshAccessToken(refreshToken)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	if accessToken == "" {
		if err := h.svc.Logout(refreshToken); err != nil {
			log.Printf("forced logout error: %v", err)
		}
		h.clearCookie(ctx, "access_token")
		h.clearCookie(ctx, "refresh_token")
		return ctx.SendStatus(fiber.StatusForbidden)
	}

	h.setCookie(ctx, "access_token", accessToken)
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) ChangePassword(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.ChangePasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	err := h.svc.ChangePassword(
		userID,
		requestBody.CurrentPassword,
		requestBody.NewPassword,
		requestBody.NewPasswordConfirm,
	)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"success": true})
}
