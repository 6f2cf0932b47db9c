package walletrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tanacoin/platform/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func TestRepository_GetByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    *domain.Wallet
	}{
		{
			name:   "Valid userID returns wallet",
			userID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "balance", "created_at"}).
					AddRow(1, 1, "150.5", createdAt)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, balance::text, created_at FROM tnc_wallets WHERE user_id = $1`)).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Wallet{
				ID:        1,
				UserID:    1,
				Balance:   decimal.RequireFromString("150.5"),
				CreatedAt: createdAt,
			},
		},
		{
			name:   "Non-existing userID returns nil",
			userID: 99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, balance::text, created_at FROM tnc_wallets WHERE user_id = $1`)).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name:   "Database error",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, balance::text, created_at FROM tnc_wallets WHERE user_id = $1`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByUserID(context.Background(), tt.userID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.result == nil {
				assert.Nil(t, result)
			} else {
				assert.NotNil(t, result)
				assert.True(t, tt.result.Balance.Equal(result.Balance))
				assert.Equal(t, tt.result.UserID, result.UserID)
			}
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Successfully creates wallet", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO tnc_wallets (user_id, balance)
			VALUES ($1, 0)
			RETURNING id, user_id, balance::text, created_at`)).
			WithArgs(1).
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "balance", "created_at"}).
				AddRow(1, 1, "0", createdAt))

		wallet, err := repo.Create(context.Background(), 1)
		assert.NoError(t, err)
		assert.NotNil(t, wallet)
		assert.True(t, wallet.Balance.IsZero())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO tnc_wallets (user_id, balance)
			VALUES ($1, 0)
			RETURNING id, user_id, balance::text, created_at`)).
			WithArgs(1).
			WillReturnError(errors.New("database error"))

		wallet, err := repo.Create(context.Background(), 1)
		assert.Error(t, err)
		assert.Nil(t, wallet)
	})
}

func TestRepository_Credit(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		wantErr   error
	}{
		{
			name: "Credits an existing wallet",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE tnc_wallets SET balance = balance + $1::numeric WHERE user_id = $2`)).
					WithArgs("100", 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			wantErr: nil,
		},
		{
			name: "Unknown wallet reports not found",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE tnc_wallets SET balance = balance + $1::numeric WHERE user_id = $2`)).
					WithArgs("100", 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantErr: ErrWalletNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Credit(context.Background(), 1, decimal.NewFromInt(100))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_Debit(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		debited   bool
	}{
		{
			name: "Sufficient balance debits",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE tnc_wallets SET balance = balance - $1::numeric WHERE user_id = $2 AND balance >= $1::numeric`)).
					WithArgs("25.5", 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			debited: true,
		},
		{
			name: "Insufficient balance leaves the row untouched",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE tnc_wallets SET balance = balance - $1::numeric WHERE user_id = $2 AND balance >= $1::numeric`)).
					WithArgs("25.5", 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			debited: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE tnc_wallets SET balance = balance - $1::numeric WHERE user_id = $2 AND balance >= $1::numeric`)).
					WithArgs("25.5", 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			debited, err := repo.Debit(context.Background(), 1, decimal.RequireFromString("25.5"))

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.debited, debited)
			}
		})
	}
}
