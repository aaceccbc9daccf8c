package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/affiliatepro/internal/client/models"
	"github.com/dmitrijs2005/affiliatepro/internal/client/repositories/documents"
	"github.com/dmitrijs2005/affiliatepro/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Defaults(t *testing.T) {
	ctx := context.Background()
	s := NewSettingsService(setupDB(t), nopLogger)

	bank, err := s.Bank(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.BankInfo{BankName: "BCA", BankAccount: "1234567890", AdminName: "Admin AffiliatePro"}, bank)

	contact, err := s.ContactURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/628123456789", contact)

	p, err := s.WithdrawPolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawPolicy{Enabled: true, Minimum: 50000}, p)
}

func TestSettings_SaveBankAndContact(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := NewSettingsService(db, nopLogger)

	want := models.BankInfo{BankName: "Mandiri", BankAccount: "9988776655", AdminName: "Sari"}
	require.NoError(t, s.SaveBank(ctx, want))
	got, err := s.Bank(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := documents.NewSQLiteRepository(db).Get(ctx, documents.KeyBankAccount)
	require.NoError(t, err)
	assert.Equal(t, "9988776655", string(raw), "plain strings are stored as raw bytes")

	require.ErrorIs(t, s.SaveBank(ctx, models.BankInfo{BankName: "X"}), common.ErrValidation)

	require.NoError(t, s.SetContactURL(ctx, "https://wa.me/62811"))
	contact, err := s.ContactURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/62811", contact)
	require.ErrorIs(t, s.SetContactURL(ctx, "nope"), common.ErrValidation)
}

func TestSettings_WithdrawPolicy(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := NewSettingsService(db, nopLogger)

	require.NoError(t, s.SetWithdrawPolicy(ctx, models.WithdrawPolicy{Enabled: false, Minimum: 75000}))
	p, err := s.WithdrawPolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawPolicy{Enabled: false, Minimum: 75000}, p)

	repo := documents.NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, documents.KeyWithdrawEnabled, []byte("no")))
	require.NoError(t, repo.Set(ctx, documents.KeyMinWithdraw, []byte("abc")))
	p, err = s.WithdrawPolicy(ctx)
	require.NoError(t, err)
	assert.True(t, p.Enabled, "only the literal \"false\" disables withdrawals")
	assert.Equal(t, int64(50000), p.Minimum)

	require.ErrorIs(t, s.SetWithdrawPolicy(ctx, models.WithdrawPolicy{Minimum: -1}), common.ErrValidation)
}

func TestSettings_SaveBankRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO documents").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO documents").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	s := NewSettingsService(db, nopLogger)
	err = s.SaveBank(context.Background(), models.BankInfo{BankName: "BRI", BankAccount: "1", AdminName: "A"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}
