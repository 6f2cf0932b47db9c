package promorepo

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

const promoColumns = `SELECT id, code, added_tnc_percentage::text, start_date, end_date, creator_id, spender_id, created_at FROM promo_codes WHERE code = $1`

func TestRepository_FindByCode(t *testing.T) {
	repo, mock := NewMock(t)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	createdAt := start

	tests := []struct {
		name      string
		code      string
		mockSetup func()
		expectErr bool
		result    *domain.PromoCode
	}{
		{
			name: "Known code returns the promo",
			code: "SPRING10",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "code", "added_tnc_percentage", "start_date", "end_date", "creator_id", "spender_id", "created_at"}).
					AddRow(1, "SPRING10", "10", start, end, 5, (*int)(nil), createdAt)
				mock.ExpectQuery(regexp.QuoteMeta(promoColumns)).
					WithArgs("SPRING10").
					WillReturnRows(rows)
			},
			result: &domain.PromoCode{
				ID:         1,
				Code:       "SPRING10",
				Percentage: decimal.RequireFromString("10"),
				StartDate:  start,
				EndDate:    end,
				CreatorID:  5,
			},
		},
		{
			name: "Unknown code returns nil",
			code: "NOPE",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(promoColumns)).
					WithArgs("NOPE").
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			code: "SPRING10",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(promoColumns)).
					WithArgs("SPRING10").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByCode(context.Background(), tt.code)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.result == nil {
				assert.Nil(t, result)
			} else {
				assert.NotNil(t, result)
				assert.Equal(t, tt.result.Code, result.Code)
				assert.True(t, tt.result.Percentage.Equal(result.Percentage))
				assert.Nil(t, result.SpenderID)
			}
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	t.Run("Successfully creates promo code", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO promo_codes (code, added_tnc_percentage, start_date, end_date, creator_id)
			VALUES ($1, $2::numeric, $3, $4, $5)
			RETURNING id, created_at`)).
			WithArgs("SPRING10", "10", start, end, 5).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, start))

		promo := &domain.PromoCode{
			Code:       "SPRING10",
			Percentage: decimal.RequireFromString("10"),
			StartDate:  start,
			EndDate:    end,
			CreatorID:  5,
		}
		err := repo.Create(context.Background(), promo)
		assert.NoError(t, err)
		assert.Equal(t, 1, promo.ID)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO promo_codes (code, added_tnc_percentage, start_date, end_date, creator_id)
			VALUES ($1, $2::numeric, $3, $4, $5)
			RETURNING id, created_at`)).
			WithArgs("SPRING10", "10", start, end, 5).
			WillReturnError(errors.New("database error"))

		promo := &domain.PromoCode{
			Code:       "SPRING10",
			Percentage: decimal.RequireFromString("10"),
			StartDate:  start,
			EndDate:    end,
			CreatorID:  5,
		}
		assert.Error(t, repo.Create(context.Background(), promo))
	})
}

func TestRepository_MarkSpent(t *testing.T) {
	repo, mock := NewMock(t)
	query := `UPDATE promo_codes SET spender_id = $2 WHERE code = $1 AND spender_id IS NULL`

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		spent     bool
	}{
		{
			name: "Unspent code is claimed",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(query)).
					WithArgs("SPRING10", 7).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			spent: true,
		},
		{
			name: "Already spent code is not claimed again",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(query)).
					WithArgs("SPRING10", 7).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			spent: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(query)).
					WithArgs("SPRING10", 7).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			spent, err := repo.MarkSpent(context.Background(), "SPRING10", 7)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.spent, spent)
			}
		})
	}
}

func TestRepository_FindByCreator(t *testing.T) {
	repo, mock := NewMock(t)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	spender := 9

	t.Run("Returns codes newest first", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "code", "added_tnc_percentage", "start_date", "end_date", "creator_id", "spender_id", "created_at"}).
			AddRow(2, "SUMMER5", "5", start, start.AddDate(0, 2, 0), 5, &spender, start.AddDate(0, 0, 1)).
			AddRow(1, "SPRING10", "10", start, start.AddDate(0, 1, 0), 5, (*int)(nil), start)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, code, added_tnc_percentage::text, start_date, end_date, creator_id, spender_id, created_at FROM promo_codes WHERE creator_id = $1 ORDER BY created_at DESC`)).
			WithArgs(5).
			WillReturnRows(rows)

		promos, err := repo.FindByCreator(context.Background(), 5)
		assert.NoError(t, err)
		assert.Len(t, promos, 2)
		assert.Equal(t, "SUMMER5", promos[0].Code)
		assert.Equal(t, &spender, promos[0].SpenderID)
		assert.Nil(t, promos[1].SpenderID)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, code, added_tnc_percentage::text, start_date, end_date, creator_id, spender_id, created_at FROM promo_codes WHERE creator_id = $1 ORDER BY created_at DESC`)).
			WithArgs(5).
			WillReturnError(errors.New("database error"))

		promos, err := repo.FindByCreator(context.Background(), 5)
		assert.Error(t, err)
		assert.Nil(t, promos)
	})
}
