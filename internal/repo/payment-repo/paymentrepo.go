package paymentrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/pg"
)

// ErrDuplicateTransaction marks a tx_hash that has already been settled. The
// unique index on transaction_hash is the idempotency boundary.
var ErrDuplicateTransaction = errors.New("transaction already recorded")

const uniqueViolation = "23505"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO crypto_payments (user_id, amount, crypto_type, crypto_precision, transaction_hash, tanacoin_quantity, status)
		VALUES ($1, $2::numeric, $3, $4, $5, $6::numeric, $7)
		RETURNING id, payment_date
	`
	err := r.db.QueryRow(ctx, query,
		payment.UserID, payment.Amount.String(), payment.CryptoType, payment.Precision,
		payment.TxHash, payment.Tokens.String(), payment.Status,
	).Scan(&payment.ID, &payment.PaymentDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateTransaction
		}
		zap.L().Error("can't save payment", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Payment, error) {
	query := `
		SELECT id, user_id, amount::text, crypto_type, crypto_precision, transaction_hash, tanacoin_quantity::text, status, payment_date
		FROM crypto_payments
		WHERE user_id = $1
		ORDER BY payment_date DESC
	`
	return r.queryPayments(ctx, query, userID)
}

// FindPending feeds the payment watcher.
func (r *Repository) FindPending(ctx context.Context, limit uint32) ([]domain.Payment, error) {
	query := `
		SELECT id, user_id, amount::text, crypto_type, crypto_precision, transaction_hash, tanacoin_quantity::text, status, payment_date
		FROM crypto_payments
		WHERE status = 'pending'
		ORDER BY payment_date
		LIMIT $1
	`
	return r.queryPayments(ctx, query, limit)
}

func (r *Repository) UpdateStatus(ctx context.Context, txHash, status string) error {
	_, err := r.db.Exec(ctx, `UPDATE crypto_payments SET status = $2 WHERE transaction_hash = $1`, txHash, status)
	if err != nil {
		zap.L().Error("can't update payment status", zap.String("txHash", txHash), zap.Error(err))
	}
	return err
}

func (r *Repository) queryPayments(ctx context.Context, query string, arg any) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		zap.L().Error("can't list payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		payment, err := r.scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}
	return payments, rows.Err()
}

func (r *Repository) scanPayment(row pgx.Row) (*domain.Payment, error) {
	var payment domain.Payment
	var amount, tokens string
	err := row.Scan(&payment.ID, &payment.UserID, &amount, &payment.CryptoType, &payment.Precision,
		&payment.TxHash, &tokens, &payment.Status, &payment.PaymentDate)
	if err != nil {
		return nil, err
	}
	if payment.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}
	if payment.Tokens, err = decimal.NewFromString(tokens); err != nil {
		return nil, err
	}
	return &payment, nil
}
