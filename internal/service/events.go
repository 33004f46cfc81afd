package service

import (
	"errors"
	"fmt"

	"github.com/RespawnSociety/MesinKasir/internal/model"

	"gorm.io/gorm"
)

// EventPublisher pushes a named event to connected back-office screens.
// *ws.Hub satisfies it.
type EventPublisher interface {
	Publish(event string, data interface{})
}

// Telemetry receives business counters. *observability.Metrics satisfies it.
type Telemetry interface {
	SaleRecorded(method model.PayMethod, total int64)
	LoginAttempt(success bool)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, interface{}) {}

type nopTelemetry struct{}

func (nopTelemetry) SaleRecorded(model.PayMethod, int64) {}
func (nopTelemetry) LoginAttempt(bool)                   {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

func telemetryOrNop(t Telemetry) Telemetry {
	if t == nil {
		return nopTelemetry{}
	}
	return t
}

// dbError maps gorm errors onto the service taxonomy. what names the entity
// in the message ("product", "stock").
func dbError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s not found", ErrNotFound, what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s already exists", ErrConflict, what)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %s is still referenced", ErrConflict, what)
	default:
		return err
	}
}
