package handler

import (
	"github.com/RespawnSociety/MesinKasir/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user authentication
// POST /api/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	response, err := h.authService.Login(req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(response)
}

// Logout revokes the token used for this request.
// POST /api/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(principal(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me returns the caller's account.
// GET /api/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Me(principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "OK", "data": user})
}
