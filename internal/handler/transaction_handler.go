package handler

import (
	"github.com/RespawnSociety/MesinKasir/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service service.SaleService
}

func NewTransactionHandler(s service.SaleService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

func transactionQuery(c *fiber.Ctx) service.TransactionQuery {
	return service.TransactionQuery{
		From: c.Query("from"),
		To:   c.Query("to"),
		Page: c.QueryInt("page", 1),
	}
}

// Create records a sale for the caller.
// POST /api/kasir/transactions
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	trx, err := h.service.Record(principal(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Transaction recorded", "data": trx})
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	page, err := h.service.List(principal(c), transactionQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": page})
}

func (h *TransactionHandler) Show(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	trx, err := h.service.Show(principal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": trx})
}

func (h *TransactionHandler) History(c *fiber.Ctx) error {
	page, err := h.service.History(principal(c), transactionQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": page})
}

func (h *TransactionHandler) HistoryShow(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	history, err := h.service.HistoryShow(principal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": history})
}

// AdminList shows every cashier's sales, optionally filtered by cashier_id.
// GET /api/admin/transactions
func (h *TransactionHandler) AdminList(c *fiber.Ctx) error {
	q := transactionQuery(c)
	cashierID, err := queryUint(c, "cashier_id")
	if err != nil {
		return respondError(c, err)
	}
	q.CashierID = cashierID

	page, err := h.service.AdminList(principal(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": page})
}
