package walletrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/pg"
)

var ErrWalletNotFound = errors.New("wallet not found")

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, userID int) (*domain.Wallet, error) {
	query := `
		INSERT INTO tnc_wallets (user_id, balance)
		VALUES ($1, 0)
		RETURNING id, user_id, balance::text, created_at
	`
	wallet, err := r.scanWallet(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		zap.L().Error("can't create wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

func (r *Repository) GetByUserID(ctx context.Context, userID int) (*domain.Wallet, error) {
	query := `
		SELECT id, user_id, balance::text, created_at
		FROM tnc_wallets
		WHERE user_id = $1
	`
	wallet, err := r.scanWallet(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't get wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

// Credit adds amount to the wallet balance in a single guarded statement.
// Balances are never read-modified-written outside the database.
func (r *Repository) Credit(ctx context.Context, userID int, amount decimal.Decimal) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE tnc_wallets
		SET balance = balance + $1::numeric
		WHERE user_id = $2
	`, amount.String(), userID)
	if err != nil {
		zap.L().Error("can't credit wallet", zap.Int("userID", userID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWalletNotFound
	}
	return nil
}

// Debit subtracts amount; the balance check is part of the statement so two
// concurrent debits cannot overdraw.
func (r *Repository) Debit(ctx context.Context, userID int, amount decimal.Decimal) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE tnc_wallets
		SET balance = balance - $1::numeric
		WHERE user_id = $2 AND balance >= $1::numeric
	`, amount.String(), userID)
	if err != nil {
		zap.L().Error("can't debit wallet", zap.Int("userID", userID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var wallet domain.Wallet
	var balance string
	if err := row.Scan(&wallet.ID, &wallet.UserID, &balance, &wallet.CreatedAt); err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(balance)
	if err != nil {
		return nil, err
	}
	wallet.Balance = value
	return &wallet, nil
}
