package handler

import (
	"github.com/RespawnSociety/MesinKasir/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SettingHandler struct {
	service service.SettingService
}

func NewSettingHandler(s service.SettingService) *SettingHandler {
	return &SettingHandler{service: s}
}

func (h *SettingHandler) Show(c *fiber.Ctx) error {
	setting, err := h.service.Show(principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": setting})
}

func (h *SettingHandler) Update(c *fiber.Ctx) error {
	var req service.StoreSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	setting, err := h.service.Update(principal(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Store settings updated", "data": setting})
}
