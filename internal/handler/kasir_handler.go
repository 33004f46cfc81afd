package handler

import (
	"github.com/RespawnSociety/MesinKasir/internal/service"

	"github.com/gofiber/fiber/v2"
)

type KasirHandler struct {
	service service.KasirService
}

func NewKasirHandler(s service.KasirService) *KasirHandler {
	return &KasirHandler{service: s}
}

func (h *KasirHandler) List(c *fiber.Ctx) error {
	kasirs, err := h.service.List(principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "OK", "data": kasirs})
}

func (h *KasirHandler) Create(c *fiber.Ctx) error {
	var req service.CreateKasirRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	kasir, err := h.service.Create(principal(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Kasir account created", "data": kasir})
}

func (h *KasirHandler) SetActive(c *fiber.Ctx) error {
	var req service.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	kasir, err := h.service.SetActive(principal(c), c.Params("username"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Kasir status updated", "data": kasir})
}

func (h *KasirHandler) ResetPin(c *fiber.Ctx) error {
	var req service.ResetPinRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	kasir, err := h.service.ResetPin(principal(c), c.Params("username"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Kasir PIN updated", "data": kasir})
}

func (h *KasirHandler) Delete(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := h.service.Delete(principal(c), username); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Kasir deleted", "username": username})
}
