package promoservice

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/pg"
	"github.com/tanacoin/platform/internal/service/purchase"
)

type PromoRepo interface {
	Create(ctx context.Context, promo *domain.PromoCode) error
	FindByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	FindByCreator(ctx context.Context, creatorID int) ([]domain.PromoCode, error)
	MarkSpent(ctx context.Context, code string, spenderID int) (bool, error)
}

type WalletRepo interface {
	Credit(ctx context.Context, userID int, amount decimal.Decimal) error
}

type Service struct {
	promoRepo  PromoRepo
	walletRepo WalletRepo
	txManager  pg.TXManager
}

func New(promoRepo PromoRepo, walletRepo WalletRepo, txManager pg.TXManager) *Service {
	return &Service{
		promoRepo:  promoRepo,
		walletRepo: walletRepo,
		txManager:  txManager,
	}
}

var (
	ErrPromoAlreadyUsed = errors.New("promo code already used")
)

const (
	StatusValid   = "valid"
	StatusInvalid = "invalid"
	StatusError   = "error"

	selfUseMessage = "Le créateur du code promo ne peut pas l'utiliser."
	invalidMessage = "Promo code is either expired or not found."
)

// CheckResult reports whether a code may be redeemed by a given user.
// Percentage and CreatorID are meaningful only when Status is valid.
type CheckResult struct {
	Status     string
	Percentage decimal.Decimal
	CreatorID  int
	Message    string
}

// CheckStatus applies the redemption rules in order: self-use is an error even
// for a code outside its window, everything else non-redeemable is invalid.
// Validation never mutates the code; redemption is a separate call.
func (s *Service) CheckStatus(ctx context.Context, code string, userID int) (*CheckResult, error) {
	promo, err := s.promoRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return &CheckResult{Status: StatusInvalid, Message: invalidMessage}, nil
	}
	if promo.CreatorID == userID {
		return &CheckResult{Status: StatusError, Message: selfUseMessage}, nil
	}

	now := time.Now()
	if promo.SpenderID != nil || now.Before(promo.StartDate) || now.After(promo.EndDate) {
		return &CheckResult{Status: StatusInvalid, Message: invalidMessage}, nil
	}

	return &CheckResult{
		Status:     StatusValid,
		Percentage: promo.Percentage,
		CreatorID:  promo.CreatorID,
	}, nil
}

const (
	codeLength  = 8
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Create issues a fresh single-use code for the creator: 10% bonus, one-year
// window starting now.
func (s *Service) Create(ctx context.Context, creatorID int) (*domain.PromoCode, error) {
	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	promo := &domain.PromoCode{
		Code:       code,
		Percentage: decimal.RequireFromString("10.00"),
		StartDate:  now,
		EndDate:    now.AddDate(1, 0, 0),
		CreatorID:  creatorID,
	}
	if err := s.promoRepo.Create(ctx, promo); err != nil {
		zap.L().Error("failed to create promo code", zap.Int("creatorID", creatorID), zap.Error(err))
		return nil, err
	}
	return promo, nil
}

func (s *Service) ListByCreator(ctx context.Context, creatorID int) ([]domain.PromoCode, error) {
	promos, err := s.promoRepo.FindByCreator(ctx, creatorID)
	if err != nil {
		zap.L().Error("failed to list promo codes", zap.Int("creatorID", creatorID), zap.Error(err))
		return nil, err
	}
	return promos, nil
}

// Redeem consumes the code and credits the creator's bonus in one
// transaction. The guarded spender update decides first-redemption-wins;
// losing a concurrent race surfaces as ErrPromoAlreadyUsed and rolls the
// bonus credit back with it.
func (s *Service) Redeem(ctx context.Context, code string, spenderID int, purchased decimal.Decimal) error {
	promo, err := s.promoRepo.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if promo == nil {
		return ErrPromoAlreadyUsed
	}

	bonus := purchase.CreatorBonus(purchased, promo.Percentage)

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		spent, err := s.promoRepo.MarkSpent(ctx, code, spenderID)
		if err != nil {
			return err
		}
		if !spent {
			return ErrPromoAlreadyUsed
		}
		if bonus.IsPositive() {
			if err := s.walletRepo.Credit(ctx, promo.CreatorID, bonus); err != nil {
				zap.L().Error("failed to credit creator bonus",
					zap.Int("creatorID", promo.CreatorID),
					zap.String("bonus", bonus.String()),
					zap.Error(err))
				return err
			}
		}
		return nil
	})
}

func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		if err != nil {
			return "", err
		}
		buf[i] = codeCharset[n.Int64()]
	}
	return string(buf), nil
}
