package repository

import (
	"testing"

	"github.com/RespawnSociety/MesinKasir/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUpsertPivotOverwritesExistingPair(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStockRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(sqlLike(
		`INSERT INTO "product_stock"`,
		`ON CONFLICT ("product_id","stock_id") DO UPDATE SET "qty"="excluded"."qty","active"="excluded"."active","updated_at"="excluded"."updated_at"`,
		`RETURNING "id"`,
	)).WillReturnRows(idRows(5))
	mock.ExpectCommit()

	pivot := &model.ProductStock{ProductID: 7, StockID: 3, Qty: 4, Active: true}
	require.NoError(t, repo.UpsertPivot(pivot))
	require.Equal(t, uint(5), pivot.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePivotMissingRowIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStockRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(sqlLike(`DELETE FROM "product_stock"`, `product_id = $1 AND stock_id = $2`)).
		WithArgs(7, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.ErrorIs(t, repo.DeletePivot(7, 3), gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
