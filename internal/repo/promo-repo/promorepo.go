package promorepo

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

func (r *Repository) Create(ctx context.Context, promo *domain.PromoCode) error {
	query := `
		INSERT INTO promo_codes (code, added_tnc_percentage, start_date, end_date, creator_id)
		VALUES ($1, $2::numeric, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		promo.Code, promo.Percentage.String(), promo.StartDate, promo.EndDate, promo.CreatorID,
	).Scan(&promo.ID, &promo.CreatedAt)
	if err != nil {
		zap.L().Error("can't create promo code", zap.Error(err))
		return err
	}
	return nil
}

// FindByCode returns nil when the code is unknown. Date-window and spent
// checks stay with the service so self-use is reported before expiry.
func (r *Repository) FindByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	query := `
		SELECT id, code, added_tnc_percentage::text, start_date, end_date, creator_id, spender_id, created_at
		FROM promo_codes
		WHERE code = $1
	`
	promo, err := r.scanPromo(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find promo code", zap.Error(err))
		return nil, err
	}
	return promo, nil
}

func (r *Repository) FindByCreator(ctx context.Context, creatorID int) ([]domain.PromoCode, error) {
	query := `
		SELECT id, code, added_tnc_percentage::text, start_date, end_date, creator_id, spender_id, created_at
		FROM promo_codes
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`
	return r.queryPromos(ctx, query, creatorID)
}

func (r *Repository) FindBySpender(ctx context.Context, spenderID int) ([]domain.PromoCode, error) {
	query := `
		SELECT id, code, added_tnc_percentage::text, start_date, end_date, creator_id, spender_id, created_at
		FROM promo_codes
		WHERE spender_id = $1
		ORDER BY created_at DESC
	`
	return r.queryPromos(ctx, query, spenderID)
}

// MarkSpent assigns the spender only when the code is still unspent. The
// guard makes first-redemption-wins the database's decision, not ours.
func (r *Repository) MarkSpent(ctx context.Context, code string, spenderID int) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE promo_codes
		SET spender_id = $2
		WHERE code = $1 AND spender_id IS NULL
	`, code, spenderID)
	if err != nil {
		zap.L().Error("can't mark promo code spent", zap.String("code", code), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) queryPromos(ctx context.Context, query string, arg any) ([]domain.PromoCode, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		zap.L().Error("can't list promo codes", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var promos []domain.PromoCode
	for rows.Next() {
		promo, err := r.scanPromo(rows)
		if err != nil {
			return nil, err
		}
		promos = append(promos, *promo)
	}
	return promos, rows.Err()
}

func (r *Repository) scanPromo(row pgx.Row) (*domain.PromoCode, error) {
	var promo domain.PromoCode
	var percentage string
	err := row.Scan(&promo.ID, &promo.Code, &percentage, &promo.StartDate, &promo.EndDate,
		&promo.CreatorID, &promo.SpenderID, &promo.CreatedAt)
	if err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(percentage)
	if err != nil {
		return nil, err
	}
	promo.Percentage = value
	return &promo, nil
}
