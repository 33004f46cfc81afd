package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDBErrorTranslation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"missing row", gorm.ErrRecordNotFound, ErrNotFound},
		{"unique violation", gorm.ErrDuplicatedKey, ErrConflict},
		{"foreign key violation", gorm.ErrForeignKeyViolated, ErrConflict},
		{"wrapped", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, dbError(tt.err, "stock"), tt.want)
		})
	}

	assert.NoError(t, dbError(nil, "stock"))
	boom := errors.New("connection reset")
	assert.Same(t, boom, dbError(boom, "stock"))
}
