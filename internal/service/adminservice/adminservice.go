package adminservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
)

type UserRepo interface {
	FindAll(ctx context.Context) ([]domain.User, error)
}

type WalletRepo interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Wallet, error)
}

type PaymentRepo interface {
	FindByUserID(ctx context.Context, userID int) ([]domain.Payment, error)
}

type PromoRepo interface {
	FindByCreator(ctx context.Context, creatorID int) ([]domain.PromoCode, error)
	FindBySpender(ctx context.Context, spenderID int) ([]domain.PromoCode, error)
}

type KYCService interface {
	Status(ctx context.Context, userID int) (string, []domain.KYCDocument, error)
}

type Service struct {
	userRepo    UserRepo
	walletRepo  WalletRepo
	paymentRepo PaymentRepo
	promoRepo   PromoRepo
	kycService  KYCService
}

func New(userRepo UserRepo, walletRepo WalletRepo, paymentRepo PaymentRepo, promoRepo PromoRepo, kycService KYCService) *Service {
	return &Service{
		userRepo:    userRepo,
		walletRepo:  walletRepo,
		paymentRepo: paymentRepo,
		promoRepo:   promoRepo,
		kycService:  kycService,
	}
}

// UserOverview bundles everything the platform knows about one user for the
// superuser dashboard.
type UserOverview struct {
	User              domain.User
	Wallet            *domain.Wallet
	Payments          []domain.Payment
	PromoCodesCreated []domain.PromoCode
	PromoCodesSpent   []domain.PromoCode
	KYCStatus         string
}

// ListUsers dumps every user with their wallet, payments and promo history.
func (s *Service) ListUsers(ctx context.Context) ([]UserOverview, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		zap.L().Error("can't list users", zap.Error(err))
		return nil, err
	}

	overviews := make([]UserOverview, 0, len(users))
	for _, user := range users {
		wallet, err := s.walletRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		payments, err := s.paymentRepo.FindByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		created, err := s.promoRepo.FindByCreator(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		spent, err := s.promoRepo.FindBySpender(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		kycStatus, _, err := s.kycService.Status(ctx, user.ID)
		if err != nil {
			return nil, err
		}

		overviews = append(overviews, UserOverview{
			User:              user,
			Wallet:            wallet,
			Payments:          payments,
			PromoCodesCreated: created,
			PromoCodesSpent:   spent,
			KYCStatus:         kycStatus,
		})
	}
	return overviews, nil
}
