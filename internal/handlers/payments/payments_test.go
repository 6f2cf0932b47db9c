package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/dto"
	"github.com/tanacoin/platform/internal/service/promoservice"
	"github.com/tanacoin/platform/internal/service/verifyservice"
	"github.com/tanacoin/platform/pkg/auth"
)

type mocks struct {
	promo  *MockPromoService
	verify *MockVerifyService
}

func NewMock(t *testing.T) (*PaymentsHandler, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		promo:  NewMockPromoService(ctrl),
		verify: NewMockVerifyService(ctrl),
	}
	handler := New(m.promo, m.verify)
	defer ctrl.Finish()
	return handler, m
}

func authedRequest(target, body string) *http.Request {
	req := httptest.NewRequest("POST", target, bytes.NewReader([]byte(body)))
	ctx := context.WithValue(req.Context(), auth.UserIDKey, 7)
	return req.WithContext(ctx)
}

func TestCheckPromoCode(t *testing.T) {
	handler, m := NewMock(t)

	tests := []struct {
		name            string
		body            string
		prepareMock     func()
		expectedCode    int
		expectedStatus  string
		expectedMessage string
	}{
		{
			name: "Valid promo code",
			body: `{"promo_code":"AB12CD34"}`,
			prepareMock: func() {
				m.promo.EXPECT().CheckStatus(gomock.Any(), "AB12CD34", 7).Return(&promoservice.CheckResult{
					Status:     promoservice.StatusValid,
					Percentage: decimal.RequireFromString("10.00"),
					CreatorID:  3,
				}, nil)
			},
			expectedCode:    http.StatusOK,
			expectedStatus:  "valid",
			expectedMessage: "Promo code applied successfully",
		},
		{
			name: "Expired promo code",
			body: `{"promo_code":"OLD1OLD1"}`,
			prepareMock: func() {
				m.promo.EXPECT().CheckStatus(gomock.Any(), "OLD1OLD1", 7).Return(&promoservice.CheckResult{
					Status:  promoservice.StatusInvalid,
					Message: "Promo code is either expired or not found.",
				}, nil)
			},
			expectedCode:    http.StatusBadRequest,
			expectedStatus:  "invalid",
			expectedMessage: "Promo code is either expired or not found.",
		},
		{
			name: "Creator checking own code",
			body: `{"promo_code":"MINE1234"}`,
			prepareMock: func() {
				m.promo.EXPECT().CheckStatus(gomock.Any(), "MINE1234", 7).Return(&promoservice.CheckResult{
					Status:  promoservice.StatusError,
					Message: "Le créateur du code promo ne peut pas l'utiliser.",
				}, nil)
			},
			expectedCode:    http.StatusBadRequest,
			expectedStatus:  "invalid",
			expectedMessage: "Le créateur du code promo ne peut pas l'utiliser.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rr := httptest.NewRecorder()
			handler.CheckPromoCode(rr, authedRequest("/api/check_promo_code", tt.body))

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp dto.CheckPromoCodeResponseDTO
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedStatus, resp.Status)
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}
}

func TestTransactionStatus(t *testing.T) {
	handler, m := NewMock(t)

	confirmed := &domain.TransactionResult{
		Status: domain.TxStatusConfirmed,
		From:   "0xsender",
		Value:  decimal.RequireFromString("0.05"),
		Tokens: decimal.NewFromInt(2200),
		Type:   "ETH",
	}

	tests := []struct {
		name            string
		body            string
		prepareMock     func()
		expectedCode    int
		expectedStatus  string
		expectedMessage string
	}{
		{
			name: "Confirmed purchase without promo code",
			body: `{"tx_hash":"0xdead","payment_method":"ETH"}`,
			prepareMock: func() {
				m.verify.EXPECT().
					Verify(gomock.Any(), "0xdead", verifyservice.MethodETH, decimal.Zero).
					Return(confirmed, nil)
			},
			expectedCode:   http.StatusOK,
			expectedStatus: domain.TxStatusConfirmed,
		},
		{
			name: "Confirmed purchase redeems the promo code",
			body: `{"tx_hash":"0xdead","payment_method":"eth","promo_code":"AB12CD34"}`,
			prepareMock: func() {
				m.promo.EXPECT().CheckStatus(gomock.Any(), "AB12CD34", 7).Return(&promoservice.CheckResult{
					Status:     promoservice.StatusValid,
					Percentage: decimal.RequireFromString("10.00"),
					CreatorID:  3,
				}, nil)
				m.verify.EXPECT().
					Verify(gomock.Any(), "0xdead", verifyservice.MethodETH, decimal.RequireFromString("10.00")).
					Return(confirmed, nil)
				m.promo.EXPECT().
					Redeem(gomock.Any(), "AB12CD34", 7, decimal.NewFromInt(2200)).
					Return(nil)
			},
			expectedCode:   http.StatusOK,
			expectedStatus: domain.TxStatusConfirmed,
		},
		{
			name: "Lost redemption race keeps the purchase confirmed",
			body: `{"tx_hash":"0xdead","payment_method":"ETH","promo_code":"AB12CD34"}`,
			prepareMock: func() {
				m.promo.EXPECT().CheckStatus(gomock.Any(), "AB12CD34", 7).Return(&promoservice.CheckResult{
					Status:     promoservice.StatusValid,
					Percentage: decimal.RequireFromString("10.00"),
					CreatorID:  3,
				}, nil)
				m.verify.EXPECT().
					Verify(gomock.Any(), "0xdead", verifyservice.MethodETH, decimal.RequireFromString("10.00")).
					Return(confirmed, nil)
				m.promo.EXPECT().
					Redeem(gomock.Any(), "AB12CD34", 7, decimal.NewFromInt(2200)).
					Return(promoservice.ErrPromoAlreadyUsed)
			},
			expectedCode:   http.StatusOK,
			expectedStatus: domain.TxStatusConfirmed,
		},
		{
			name: "Invalid promo code blocks verification",
			body: `{"tx_hash":"0xdead","payment_method":"ETH","promo_code":"OLD1OLD1"}`,
			prepareMock: func() {
				m.promo.EXPECT().CheckStatus(gomock.Any(), "OLD1OLD1", 7).Return(&promoservice.CheckResult{
					Status:  promoservice.StatusInvalid,
					Message: "Promo code is either expired or not found.",
				}, nil)
			},
			expectedCode:    http.StatusBadRequest,
			expectedStatus:  domain.TxStatusError,
			expectedMessage: "Promo code is either expired or not found.",
		},
		{
			name: "Pending transaction consumes the promo code",
			body: `{"tx_hash":"0xdead","payment_method":"ETH","promo_code":"AB12CD34"}`,
			prepareMock: func() {
				m.promo.EXPECT().CheckStatus(gomock.Any(), "AB12CD34", 7).Return(&promoservice.CheckResult{
					Status:     promoservice.StatusValid,
					Percentage: decimal.RequireFromString("10.00"),
					CreatorID:  3,
				}, nil)
				m.verify.EXPECT().
					Verify(gomock.Any(), "0xdead", verifyservice.MethodETH, decimal.RequireFromString("10.00")).
					Return(&domain.TransactionResult{
						Status: domain.TxStatusPending,
						Tokens: decimal.NewFromInt(2200),
						Type:   "ETH",
					}, nil)
				m.promo.EXPECT().
					Redeem(gomock.Any(), "AB12CD34", 7, decimal.NewFromInt(2200)).
					Return(nil)
			},
			expectedCode:   http.StatusOK,
			expectedStatus: domain.TxStatusPending,
		},
		{
			name: "Pending transaction without promo code",
			body: `{"tx_hash":"0xdead","payment_method":"ETH"}`,
			prepareMock: func() {
				m.verify.EXPECT().
					Verify(gomock.Any(), "0xdead", verifyservice.MethodETH, decimal.Zero).
					Return(&domain.TransactionResult{Status: domain.TxStatusPending}, nil)
			},
			expectedCode:   http.StatusOK,
			expectedStatus: domain.TxStatusPending,
		},
		{
			name:            "Missing transaction hash",
			body:            `{"payment_method":"ETH"}`,
			prepareMock:     func() {},
			expectedCode:    http.StatusBadRequest,
			expectedStatus:  domain.TxStatusError,
			expectedMessage: "Transaction hash is required",
		},
		{
			name:            "Missing payment method",
			body:            `{"tx_hash":"0xdead"}`,
			prepareMock:     func() {},
			expectedCode:    http.StatusBadRequest,
			expectedStatus:  domain.TxStatusError,
			expectedMessage: "Payment method is required",
		},
		{
			name:            "Unsupported payment method",
			body:            `{"tx_hash":"0xdead","payment_method":"DOGE"}`,
			prepareMock:     func() {},
			expectedCode:    http.StatusBadRequest,
			expectedStatus:  domain.TxStatusError,
			expectedMessage: "Unsupported payment method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rr := httptest.NewRecorder()
			handler.TransactionStatus(rr, authedRequest("/api/transaction-status", tt.body))

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp domain.TransactionResult
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedStatus, resp.Status)
			if tt.expectedMessage != "" {
				assert.Equal(t, tt.expectedMessage, resp.Message)
			}
		})
	}
}
