package paymentrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
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

const insertQuery = `
	INSERT INTO crypto_payments (user_id, amount, crypto_type, crypto_precision, transaction_hash, tanacoin_quantity, status)
	VALUES ($1, $2::numeric, $3, $4, $5, $6::numeric, $7)
	RETURNING id, payment_date`

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	paymentDate := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	payment := func() *domain.Payment {
		return &domain.Payment{
			UserID:     1,
			Amount:     decimal.RequireFromString("0.5"),
			CryptoType: "ETH",
			Precision:  18,
			TxHash:     "0xabc",
			Tokens:     decimal.RequireFromString("2000"),
			Status:     domain.PaymentStatusConfirmed,
		}
	}

	tests := []struct {
		name      string
		mockSetup func()
		wantErr   error
		expectErr bool
	}{
		{
			name: "Successfully records payment",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(insertQuery)).
					WithArgs(1, "0.5", "ETH", 18, "0xabc", "2000", domain.PaymentStatusConfirmed).
					WillReturnRows(pgxmock.NewRows([]string{"id", "payment_date"}).AddRow(1, paymentDate))
			},
		},
		{
			name: "Duplicate transaction hash",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(insertQuery)).
					WithArgs(1, "0.5", "ETH", 18, "0xabc", "2000", domain.PaymentStatusConfirmed).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			wantErr:   ErrDuplicateTransaction,
			expectErr: true,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(insertQuery)).
					WithArgs(1, "0.5", "ETH", 18, "0xabc", "2000", domain.PaymentStatusConfirmed).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Create(context.Background(), payment())

			if tt.expectErr {
				assert.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_FindPending(t *testing.T) {
	repo, mock := NewMock(t)
	paymentDate := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	query := `
		SELECT id, user_id, amount::text, crypto_type, crypto_precision, transaction_hash, tanacoin_quantity::text, status, payment_date
		FROM crypto_payments
		WHERE status = 'pending'
		ORDER BY payment_date
		LIMIT $1`

	t.Run("Returns pending rows oldest first", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "user_id", "amount", "crypto_type", "crypto_precision", "transaction_hash", "tanacoin_quantity", "status", "payment_date"}).
			AddRow(1, 1, "0.5", "ETH", 18, "0xaaa", "2000", domain.PaymentStatusPending, paymentDate).
			AddRow(2, 3, "1.2", "ETH", 18, "0xbbb", "4800", domain.PaymentStatusPending, paymentDate.Add(time.Minute))
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(uint32(100)).
			WillReturnRows(rows)

		payments, err := repo.FindPending(context.Background(), 100)
		assert.NoError(t, err)
		assert.Len(t, payments, 2)
		assert.Equal(t, "0xaaa", payments[0].TxHash)
		assert.True(t, payments[1].Tokens.Equal(decimal.RequireFromString("4800")))
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(uint32(100)).
			WillReturnError(errors.New("database error"))

		payments, err := repo.FindPending(context.Background(), 100)
		assert.Error(t, err)
		assert.Nil(t, payments)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)
	query := `UPDATE crypto_payments SET status = $2 WHERE transaction_hash = $1`

	t.Run("Successfully updates status", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs("0xabc", domain.PaymentStatusConfirmed).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.UpdateStatus(context.Background(), "0xabc", domain.PaymentStatusConfirmed))
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs("0xabc", domain.PaymentStatusFailed).
			WillReturnError(errors.New("database error"))

		assert.Error(t, repo.UpdateStatus(context.Background(), "0xabc", domain.PaymentStatusFailed))
	})
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	paymentDate := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	query := `
		SELECT id, user_id, amount::text, crypto_type, crypto_precision, transaction_hash, tanacoin_quantity::text, status, payment_date
		FROM crypto_payments
		WHERE user_id = $1
		ORDER BY payment_date DESC`

	t.Run("Returns user payments", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "user_id", "amount", "crypto_type", "crypto_precision", "transaction_hash", "tanacoin_quantity", "status", "payment_date"}).
			AddRow(1, 1, "0.5", "ETH", 18, "0xaaa", "2000", domain.PaymentStatusConfirmed, paymentDate)
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(1).
			WillReturnRows(rows)

		payments, err := repo.FindByUserID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Len(t, payments, 1)
		assert.Equal(t, "ETH", payments[0].CryptoType)
	})

	t.Run("No payments returns empty slice", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(2).
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "amount", "crypto_type", "crypto_precision", "transaction_hash", "tanacoin_quantity", "status", "payment_date"}))

		payments, err := repo.FindByUserID(context.Background(), 2)
		assert.NoError(t, err)
		assert.Empty(t, payments)
	})
}
