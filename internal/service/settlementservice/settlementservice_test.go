package settlementservice

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/pg"
	paymentrepo "github.com/tanacoin/platform/internal/repo/payment-repo"
)

func NewMock(t *testing.T) (*Service, *MockUserRepo, *MockPaymentRepo, *MockWalletRepo, *MockTokenRepo, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	userRepo := NewMockUserRepo(ctrl)
	paymentRepo := NewMockPaymentRepo(ctrl)
	walletRepo := NewMockWalletRepo(ctrl)
	tokenRepo := NewMockTokenRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	service := New(userRepo, paymentRepo, walletRepo, tokenRepo, txManager)
	defer ctrl.Finish()
	return service, userRepo, paymentRepo, walletRepo, tokenRepo, txManager
}

func TestRecord(t *testing.T) {
	service, userRepo, paymentRepo, walletRepo, tokenRepo, txManager := NewMock(t)
	value := decimal.RequireFromString("0.05")
	tokens := decimal.RequireFromString("2000")
	tests := []struct {
		name        string
		currency    string
		prepareMock func()
		wantErr     error
	}{
		{
			name:     "Settles a confirmed ETH purchase",
			currency: "ETH",
			prepareMock: func() {
				userRepo.EXPECT().FindByWalletAddress(gomock.Any(), "0xsender").Return(&domain.User{ID: 7}, nil)
				txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, fn func(context.Context) error) error {
						return fn(ctx)
					})
				paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, payment *domain.Payment) error {
						assert.Equal(t, 7, payment.UserID)
						assert.Equal(t, "ETH", payment.CryptoType)
						assert.Equal(t, 18, payment.Precision)
						assert.Equal(t, domain.PaymentStatusConfirmed, payment.Status)
						return nil
					})
				walletRepo.EXPECT().Credit(gomock.Any(), 7, tokens).Return(nil)
				tokenRepo.EXPECT().AddSold(gomock.Any(), tokens).Return(nil)
			},
		},
		{
			name:     "BTC precision",
			currency: "BTC",
			prepareMock: func() {
				userRepo.EXPECT().FindByWalletAddress(gomock.Any(), "0xsender").Return(&domain.User{ID: 7}, nil)
				txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, fn func(context.Context) error) error {
						return fn(ctx)
					})
				paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, payment *domain.Payment) error {
						assert.Equal(t, 8, payment.Precision)
						return nil
					})
				walletRepo.EXPECT().Credit(gomock.Any(), 7, tokens).Return(nil)
				tokenRepo.EXPECT().AddSold(gomock.Any(), tokens).Return(nil)
			},
		},
		{
			name:     "Unknown sender wallet fails closed",
			currency: "ETH",
			prepareMock: func() {
				userRepo.EXPECT().FindByWalletAddress(gomock.Any(), "0xsender").Return(nil, nil)
			},
			wantErr: ErrNoUserForWallet,
		},
		{
			name:     "Duplicate transaction hash rolls back",
			currency: "ETH",
			prepareMock: func() {
				userRepo.EXPECT().FindByWalletAddress(gomock.Any(), "0xsender").Return(&domain.User{ID: 7}, nil)
				txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, fn func(context.Context) error) error {
						return fn(ctx)
					})
				paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(paymentrepo.ErrDuplicateTransaction)
			},
			wantErr: paymentrepo.ErrDuplicateTransaction,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			err := service.Record(context.Background(), "0xabc", value, tt.currency, "0xsender", tokens)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecordPending(t *testing.T) {
	service, userRepo, paymentRepo, _, _, _ := NewMock(t)
	value := decimal.RequireFromString("0.05")
	tokens := decimal.RequireFromString("2000")

	t.Run("Stores the row without crediting", func(t *testing.T) {
		userRepo.EXPECT().FindByWalletAddress(gomock.Any(), "0xsender").Return(&domain.User{ID: 7}, nil)
		paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payment *domain.Payment) error {
				assert.Equal(t, domain.PaymentStatusPending, payment.Status)
				assert.True(t, tokens.Equal(payment.Tokens))
				return nil
			})

		assert.NoError(t, service.RecordPending(context.Background(), "0xabc", value, "ETH", "0xsender", tokens))
	})

	t.Run("Unknown sender wallet fails closed", func(t *testing.T) {
		userRepo.EXPECT().FindByWalletAddress(gomock.Any(), "0xsender").Return(nil, nil)

		err := service.RecordPending(context.Background(), "0xabc", value, "ETH", "0xsender", tokens)
		assert.ErrorIs(t, err, ErrNoUserForWallet)
	})
}
