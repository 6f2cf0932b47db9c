package transferrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, transfer *domain.Transfer) error {
	query := `
		INSERT INTO tnc_transactions (sender_id, recipient_tnc_wallet_id, amount, status, transaction_hash)
		VALUES ($1, $2, $3::numeric, $4, $5)
		RETURNING id, transaction_date
	`
	err := r.db.QueryRow(ctx, query,
		transfer.SenderID, transfer.RecipientWalletID, transfer.Amount.String(),
		transfer.Status, transfer.TxHash,
	).Scan(&transfer.ID, &transfer.TransferDate)
	if err != nil {
		zap.L().Error("can't save transfer", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindBySenderID(ctx context.Context, senderID int) ([]domain.Transfer, error) {
	query := `
		SELECT id, sender_id, recipient_tnc_wallet_id, amount::text, status, transaction_hash, transaction_date
		FROM tnc_transactions
		WHERE sender_id = $1
		ORDER BY transaction_date DESC
	`
	rows, err := r.db.Query(ctx, query, senderID)
	if err != nil {
		zap.L().Error("can't list transfers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transfers []domain.Transfer
	for rows.Next() {
		transfer, err := r.scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, *transfer)
	}
	return transfers, rows.Err()
}

func (r *Repository) scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	var transfer domain.Transfer
	var amount string
	err := row.Scan(&transfer.ID, &transfer.SenderID, &transfer.RecipientWalletID, &amount,
		&transfer.Status, &transfer.TxHash, &transfer.TransferDate)
	if err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	transfer.Amount = value
	return &transfer, nil
}
