package handler

import (
	"github.com/RespawnSociety/MesinKasir/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

func (h *StockHandler) List(c *fiber.Ctx) error {
	stocks, err := h.service.List(principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "OK", "data": stocks})
}

func (h *StockHandler) Create(c *fiber.Ctx) error {
	var req service.StockRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	stock, err := h.service.Create(principal(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Stock created", "data": stock})
}

func (h *StockHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req service.UpdateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	stock, err := h.service.Update(principal(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock updated", "data": stock})
}

func (h *StockHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(principal(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock deleted"})
}

func (h *StockHandler) ProductStocks(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	links, err := h.service.ProductStocks(principal(c), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "OK", "data": links})
}

func (h *StockHandler) Attach(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req service.AttachStockRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	link, err := h.service.Attach(principal(c), productID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Attached", "data": link})
}

func (h *StockHandler) UpdateLink(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	stockID, err := paramID(c, "stockId")
	if err != nil {
		return respondError(c, err)
	}
	var req service.UpdateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	link, err := h.service.UpdateLink(principal(c), productID, stockID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Updated", "data": link})
}

func (h *StockHandler) Detach(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	stockID, err := paramID(c, "stockId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Detach(principal(c), productID, stockID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Detached"})
}
