package handler

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/RespawnSociety/MesinKasir/internal/middleware"
	"github.com/RespawnSociety/MesinKasir/internal/service"
	"github.com/RespawnSociety/MesinKasir/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type errorKind struct {
	target error
	status int
	code   string
}

var errorKinds = []errorKind{
	{service.ErrUnauthenticated, fiber.StatusUnauthorized, "Unauthenticated"},
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized, "InvalidCredentials"},
	{service.ErrForbidden, fiber.StatusForbidden, "Forbidden"},
	{service.ErrAccountDisabled, fiber.StatusForbidden, "AccountDisabled"},
	{service.ErrNotFound, fiber.StatusNotFound, "NotFound"},
	{service.ErrConflict, fiber.StatusUnprocessableEntity, "Conflict"},
	{service.ErrInvalidReference, fiber.StatusUnprocessableEntity, "InvalidReference"},
	{service.ErrValidationFailed, fiber.StatusUnprocessableEntity, "ValidationFailed"},
	{service.ErrInsufficientPayment, fiber.StatusUnprocessableEntity, "InsufficientPayment"},
	{service.ErrInvalidState, fiber.StatusUnprocessableEntity, "InvalidState"},
}

// respondError maps a service error onto the JSON error body.
func respondError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  verr.Error(),
			"code":   "ValidationFailed",
			"fields": verr.Fields,
		})
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return c.Status(k.status).JSON(fiber.Map{"error": err.Error(), "code": k.code})
		}
	}
	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error", "code": "Internal"})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON", "code": "ValidationFailed"})
}

// principal returns the caller stored by middleware.RequireAuth, or nil.
func principal(c *fiber.Ctx) *service.Principal {
	p, _ := c.Locals(middleware.PrincipalKey).(*service.Principal)
	return p
}

// paramID parses a numeric path parameter. A malformed id cannot name any
// row, so it is reported as not found.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || v == 0 {
		return 0, service.ErrNotFound
	}
	return uint(v), nil
}

// queryUint reads an optional unsigned filter; absent or empty means nil.
func queryUint(c *fiber.Ctx, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, &service.ValidationError{Fields: []*validator.ErrorResponse{{FailedField: name, Tag: "integer"}}}
	}
	u := uint(v)
	return &u, nil
}

// queryBool reads an optional boolean filter accepting 1/0, true/false,
// on/off and yes/no.
func queryBool(c *fiber.Ctx, name string) *bool {
	raw := strings.ToLower(strings.TrimSpace(c.Query(name)))
	var v bool
	switch raw {
	case "1", "true", "on", "yes":
		v = true
	case "0", "false", "off", "no", "":
		if raw == "" && !c.Context().QueryArgs().Has(name) {
			return nil
		}
		v = false
	default:
		return nil
	}
	return &v
}
