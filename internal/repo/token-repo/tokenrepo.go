package tokenrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/pg"
)

var ErrTokenInfoMissing = errors.New("tanacoin info not found")

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// GetInfo returns the single ledger row holding supply, EUR rate and sold
// counter.
func (r *Repository) GetInfo(ctx context.Context) (*domain.TokenInfo, error) {
	query := `
		SELECT total_balance::text, tanacoin_rate::text, tanacoins_sold::text
		FROM tanacoin_info
		ORDER BY id
		LIMIT 1
	`
	var totalBalance, rate, sold string
	err := r.db.QueryRow(ctx, query).Scan(&totalBalance, &rate, &sold)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrTokenInfoMissing
		}
		zap.L().Error("can't get tanacoin info", zap.Error(err))
		return nil, err
	}

	info := &domain.TokenInfo{}
	if info.TotalBalance, err = decimal.NewFromString(totalBalance); err != nil {
		return nil, err
	}
	if info.Rate, err = decimal.NewFromString(rate); err != nil {
		return nil, err
	}
	if info.Sold, err = decimal.NewFromString(sold); err != nil {
		return nil, err
	}
	return info, nil
}

func (r *Repository) AddSold(ctx context.Context, amount decimal.Decimal) error {
	_, err := r.db.Exec(ctx, `
		UPDATE tanacoin_info
		SET tanacoins_sold = tanacoins_sold + $1::numeric,
		    total_balance = total_balance - $1::numeric
	`, amount.String())
	if err != nil {
		zap.L().Error("can't update sold counter", zap.Error(err))
	}
	return err
}
