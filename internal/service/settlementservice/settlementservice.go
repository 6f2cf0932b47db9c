package settlementservice

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/pg"
)

type UserRepo interface {
	FindByWalletAddress(ctx context.Context, walletAddress string) (*domain.User, error)
}

type PaymentRepo interface {
	Create(ctx context.Context, payment *domain.Payment) error
}

type WalletRepo interface {
	Credit(ctx context.Context, userID int, amount decimal.Decimal) error
}

type TokenRepo interface {
	AddSold(ctx context.Context, amount decimal.Decimal) error
}

type Service struct {
	userRepo    UserRepo
	paymentRepo PaymentRepo
	walletRepo  WalletRepo
	tokenRepo   TokenRepo
	txManager   pg.TXManager
}

func New(userRepo UserRepo, paymentRepo PaymentRepo, walletRepo WalletRepo, tokenRepo TokenRepo, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		walletRepo:  walletRepo,
		tokenRepo:   tokenRepo,
		txManager:   txManager,
	}
}

var ErrNoUserForWallet = errors.New("no user found with provided wallet address")

// precisionFor is the decimal count of each accepted currency's smallest unit.
func precisionFor(currency string) int {
	switch currency {
	case "BTC":
		return 8
	case "USDT":
		return 6
	default:
		return 18
	}
}

// Record settles a confirmed purchase: it resolves the sender address to a
// platform user, then writes the payment row, credits the buyer's wallet and
// bumps the sold counter in one transaction. The unique transaction hash makes
// a replayed submission fail the insert and roll everything back.
func (s *Service) Record(ctx context.Context, txHash string, value decimal.Decimal, currency, sender string, tokens decimal.Decimal) error {
	user, err := s.userRepo.FindByWalletAddress(ctx, sender)
	if err != nil {
		return err
	}
	if user == nil {
		zap.L().Warn("settlement for unknown wallet address", zap.String("sender", sender))
		return ErrNoUserForWallet
	}

	payment := &domain.Payment{
		UserID:     user.ID,
		Amount:     value,
		CryptoType: currency,
		Precision:  precisionFor(currency),
		TxHash:     txHash,
		Tokens:     tokens,
		Status:     domain.PaymentStatusConfirmed,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		if err := s.walletRepo.Credit(ctx, user.ID, tokens); err != nil {
			return err
		}
		return s.tokenRepo.AddSold(ctx, tokens)
	})
	if err != nil {
		zap.L().Error("failed to settle purchase",
			zap.String("txHash", txHash),
			zap.Int("userID", user.ID),
			zap.Error(err))
		return err
	}
	return nil
}

// RecordPending stores a purchase that is visible on chain but not yet mined.
// Nothing is credited here; the payment watcher finalizes the row once the
// receipt lands, using the token quantity quoted at submission time.
func (s *Service) RecordPending(ctx context.Context, txHash string, value decimal.Decimal, currency, sender string, tokens decimal.Decimal) error {
	user, err := s.userRepo.FindByWalletAddress(ctx, sender)
	if err != nil {
		return err
	}
	if user == nil {
		zap.L().Warn("pending settlement for unknown wallet address", zap.String("sender", sender))
		return ErrNoUserForWallet
	}

	return s.paymentRepo.Create(ctx, &domain.Payment{
		UserID:     user.ID,
		Amount:     value,
		CryptoType: currency,
		Precision:  precisionFor(currency),
		TxHash:     txHash,
		Tokens:     tokens,
		Status:     domain.PaymentStatusPending,
	})
}
