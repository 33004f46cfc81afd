package service

import (
	"encoding/json"

	"github.com/RespawnSociety/MesinKasir/pkg/validator"
)

// Patch is a JSON field that remembers whether it was present in the body,
// so an explicit null can be told apart from an absent key.
type Patch[T any] struct {
	Set   bool
	Value *T
}

func (p *Patch[T]) UnmarshalJSON(b []byte) error {
	p.Set = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

// PatchOf is a present, non-null field.
func PatchOf[T any](v T) Patch[T] {
	return Patch[T]{Set: true, Value: &v}
}

func fieldError(field, tag, param string) *ValidationError {
	return &ValidationError{Fields: []*validator.ErrorResponse{{FailedField: field, Tag: tag, Value: param}}}
}
