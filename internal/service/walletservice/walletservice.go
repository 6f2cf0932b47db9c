package walletservice

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/pg"
)

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByTNCWalletID(ctx context.Context, tncWalletID string) (*domain.User, error)
}

type WalletRepo interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Wallet, error)
	Credit(ctx context.Context, userID int, amount decimal.Decimal) error
	Debit(ctx context.Context, userID int, amount decimal.Decimal) (bool, error)
}

type TransferRepo interface {
	Create(ctx context.Context, transfer *domain.Transfer) error
	FindBySenderID(ctx context.Context, senderID int) ([]domain.Transfer, error)
}

type PaymentRepo interface {
	FindByUserID(ctx context.Context, userID int) ([]domain.Payment, error)
}

type Service struct {
	userRepo     UserRepo
	walletRepo   WalletRepo
	transferRepo TransferRepo
	paymentRepo  PaymentRepo
	txManager    pg.TXManager
}

func New(userRepo UserRepo, walletRepo WalletRepo, transferRepo TransferRepo, paymentRepo PaymentRepo, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:     userRepo,
		walletRepo:   walletRepo,
		transferRepo: transferRepo,
		paymentRepo:  paymentRepo,
		txManager:    txManager,
	}
}

var (
	ErrInvalidAmount       = errors.New("transfer amount must be positive")
	ErrRecipientNotFound   = errors.New("recipient wallet not found")
	ErrSelfTransfer        = errors.New("cannot transfer to own wallet")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Transfer moves tokens between two platform wallets. Debit, credit and the
// transfer record commit together or not at all; the guarded debit enforces
// the balance check inside the transaction.
func (s *Service) Transfer(ctx context.Context, senderID int, recipientWalletID string, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", ErrInvalidAmount
	}

	recipient, err := s.userRepo.FindByTNCWalletID(ctx, recipientWalletID)
	if err != nil {
		return "", err
	}
	if recipient == nil {
		return "", ErrRecipientNotFound
	}
	if recipient.ID == senderID {
		return "", ErrSelfTransfer
	}

	txHash := strings.ReplaceAll(uuid.NewString(), "-", "")

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		debited, err := s.walletRepo.Debit(ctx, senderID, amount)
		if err != nil {
			return err
		}
		if !debited {
			return ErrInsufficientBalance
		}
		if err := s.walletRepo.Credit(ctx, recipient.ID, amount); err != nil {
			return err
		}
		return s.transferRepo.Create(ctx, &domain.Transfer{
			SenderID:          senderID,
			RecipientWalletID: recipientWalletID,
			Amount:            amount,
			Status:            "completed",
			TxHash:            txHash,
		})
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientBalance) {
			zap.L().Error("transfer failed",
				zap.Int("senderID", senderID),
				zap.String("recipientWalletID", recipientWalletID),
				zap.Error(err))
		}
		return "", err
	}

	zap.L().Info("transfer completed",
		zap.Int("senderID", senderID),
		zap.String("txHash", txHash))
	return txHash, nil
}

// DashboardData is everything the dashboard endpoints render for one user.
type DashboardData struct {
	User      *domain.User
	Wallet    *domain.Wallet
	Transfers []domain.Transfer
	Payments  []domain.Payment
}

func (s *Service) GetDashboardData(ctx context.Context, userID int) (*DashboardData, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("can't load wallet", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	transfers, err := s.transferRepo.FindBySenderID(ctx, userID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		User:      user,
		Wallet:    wallet,
		Transfers: transfers,
		Payments:  payments,
	}, nil
}
