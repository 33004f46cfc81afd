package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/RespawnSociety/MesinKasir/internal/model"
	"github.com/RespawnSociety/MesinKasir/pkg/pagination"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newSale() *model.Transaction {
	return &model.Transaction{
		CashierID: 2,
		Items: datatypes.JSONSlice[model.SaleItem]{
			{ProductID: 7, Name: "Es Teh", Qty: 2, UnitPrice: 5000, LineTotal: 10000},
		},
		PayMethod:    model.PayCash,
		TotalAmount:  10000,
		PaidAmount:   20000,
		ChangeAmount: 10000,
		PaidAt:       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateWithHistoryCommitsBothRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(sqlLike(`INSERT INTO "transactions"`, `RETURNING "id"`)).WillReturnRows(idRows(41))
	mock.ExpectQuery(sqlLike(`INSERT INTO "transaction_histories"`, `RETURNING "id"`)).WillReturnRows(idRows(7))
	mock.ExpectCommit()

	trx := newSale()
	history, err := repo.CreateWithHistory(trx)
	require.NoError(t, err)

	assert.Equal(t, uint(41), trx.ID)
	assert.NotEmpty(t, trx.GroupID)
	assert.Equal(t, uint(7), history.ID)
	assert.Equal(t, trx.GroupID, history.GroupID)
	require.NotNil(t, history.SourceTransactionID)
	assert.Equal(t, uint(41), *history.SourceTransactionID)
	assert.Equal(t, int64(10000), history.TotalAmount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithHistoryRollsBackWhenHistoryFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(sqlLike(`INSERT INTO "transactions"`)).WillReturnRows(idRows(41))
	mock.ExpectQuery(sqlLike(`INSERT INTO "transaction_histories"`)).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	history, err := repo.CreateWithHistory(newSale())
	require.Error(t, err)
	assert.Nil(t, history)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithHistoryTranslatesForeignKeyViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(sqlLike(`INSERT INTO "transactions"`)).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})
	mock.ExpectRollback()

	_, err := repo.CreateWithHistory(newSale())
	require.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListTransactionsScopesAndPages(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepo(db)
	cashier := uint(2)

	mock.ExpectQuery(sqlLike(`SELECT count(*) FROM "transactions"`, `cashier_id = $1`)).
		WithArgs(cashier).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(sqlLike(`SELECT * FROM "transactions"`, `cashier_id = $1`, `ORDER BY paid_at DESC,id DESC`, `LIMIT $2 OFFSET $3`)).
		WithArgs(cashier, 20, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cashier_id", "total_amount"}).AddRow(3, 2, 5000))

	rows, total, err := repo.List(TransactionFilter{CashierID: &cashier}, pagination.NewParams(2, 20, 20, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(5000), rows[0].TotalAmount)
	require.NoError(t, mock.ExpectationsWereMet())
}
