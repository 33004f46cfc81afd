package handler

import (
	"github.com/RespawnSociety/MesinKasir/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

func productQuery(c *fiber.Ctx) (service.ProductQuery, error) {
	categoryID, err := queryUint(c, "category_id")
	if err != nil {
		return service.ProductQuery{}, err
	}
	return service.ProductQuery{
		Search:     c.Query("search"),
		CategoryID: categoryID,
		Active:     queryBool(c, "active"),
		Page:       c.QueryInt("page", 1),
		PerPage:    c.QueryInt("per_page", 0),
	}, nil
}

// --- categories (admin) ---

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	activeOnly := queryBool(c, "active_only")
	categories, err := h.service.ListCategories(principal(c), activeOnly != nil && *activeOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "OK", "data": categories})
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	category, err := h.service.CreateCategory(principal(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Category created", "data": category})
}

func (h *CatalogHandler) RenameCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	category, err := h.service.RenameCategory(principal(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category updated", "data": category})
}

func (h *CatalogHandler) SetCategoryActive(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req service.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	category, err := h.service.SetCategoryActive(principal(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category updated", "data": category})
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteCategory(principal(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// --- POS screen ---

func (h *CatalogHandler) PosCategories(c *fiber.Ctx) error {
	categories, err := h.service.PosCategories(principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "OK", "data": categories})
}

func (h *CatalogHandler) PosProducts(c *fiber.Ctx) error {
	q, err := productQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.service.PosProducts(principal(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "OK", "data": page})
}

func (h *CatalogHandler) PosProductCount(c *fiber.Ctx) error {
	q, err := productQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	count, err := h.service.PosProductCount(principal(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "OK", "data": fiber.Map{"count": count}})
}

// --- products ---

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	q, err := productQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.service.ListProducts(principal(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "OK", "data": page})
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.service.GetProduct(principal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "OK", "data": product})
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	product, err := h.service.CreateProduct(principal(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	product, err := h.service.UpdateProduct(principal(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteProduct(principal(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
