package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCheckPassword(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	require.NoError(t, admin.SetPassword("rahasia123"))
	assert.True(t, admin.CheckPassword("rahasia123"))
	assert.False(t, admin.CheckPassword("rahasia124"))

	kasir := &User{Role: RoleKasir}
	require.NoError(t, kasir.SetPin("123456"))
	require.NotNil(t, kasir.PinHash)
	assert.Equal(t, kasir.Password, *kasir.PinHash)
	assert.True(t, kasir.CheckPassword("123456"))

	t.Run("kasir without pin hash", func(t *testing.T) {
		k := &User{Role: RoleKasir, Password: kasir.Password}
		assert.False(t, k.CheckPassword("123456"))
	})

	t.Run("unknown role", func(t *testing.T) {
		u := &User{Role: Role("owner"), Password: admin.Password}
		assert.False(t, u.CheckPassword("rahasia123"))
	})

	t.Run("malformed hash", func(t *testing.T) {
		u := &User{Role: RoleAdmin, Password: "not-a-bcrypt-hash"}
		assert.False(t, u.CheckPassword("rahasia123"))
	})
}

func TestUserResponseHidesCredentials(t *testing.T) {
	u := &User{Name: "Budi", Email: "budi@toko1.com", Role: RoleKasir, Active: true}
	require.NoError(t, u.SetPin("123456"))

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), u.Password)

	resp := u.ToResponse()
	assert.Equal(t, "budi@toko1.com", resp.Email)
	assert.True(t, resp.Active)
}

func TestPayMethod(t *testing.T) {
	assert.True(t, PayCash.Valid())
	assert.True(t, PayTransfer.Valid())
	assert.False(t, PayMethod(0).Valid())
	assert.False(t, PayMethod(4).Valid())
	assert.Equal(t, "qris", PayQRIS.String())
	assert.Equal(t, "unknown", PayMethod(9).String())
}

func TestTransactionBeforeCreateFillsGroupID(t *testing.T) {
	trx := &Transaction{}
	require.NoError(t, trx.BeforeCreate(nil))
	_, err := uuid.Parse(trx.GroupID)
	assert.NoError(t, err)

	fixed := &Transaction{GroupID: "keep-me"}
	require.NoError(t, fixed.BeforeCreate(nil))
	assert.Equal(t, "keep-me", fixed.GroupID)
}

func TestHistoryOfCopiesSale(t *testing.T) {
	paidAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	trx := &Transaction{
		BaseModel: BaseModel{ID: 42},
		GroupID:   "g-1",
		CashierID: 2,
		Items: datatypes.JSONSlice[SaleItem]{
			{ProductID: 7, Name: "Es Teh", Qty: 2, UnitPrice: 5000, LineTotal: 10000},
		},
		PayMethod:    PayCash,
		TotalAmount:  10000,
		PaidAmount:   20000,
		ChangeAmount: 10000,
		PaidAt:       paidAt,
	}

	h := HistoryOf(trx)
	require.NotNil(t, h.SourceTransactionID)
	assert.Equal(t, uint(42), *h.SourceTransactionID)
	assert.Equal(t, "g-1", h.GroupID)
	assert.Equal(t, uint(2), h.CashierID)
	assert.Equal(t, int64(10000), h.ChangeAmount)
	assert.True(t, h.PaidAt.Equal(paidAt))
	assert.Zero(t, h.ID)

	// the history owns its own item slice
	trx.Items[0].Qty = 99
	assert.Equal(t, int64(2), h.Items[0].Qty)
}

func TestDefaultStoreSetting(t *testing.T) {
	s := DefaultStoreSetting()
	assert.Equal(t, StoreSettingID, s.ID)
	assert.Equal(t, "Toko", s.StoreName)
	assert.Nil(t, s.StoreAddress)
	assert.Zero(t, s.TaxPercent)
}
