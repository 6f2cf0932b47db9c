package dashboard

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/dto"
	"github.com/tanacoin/platform/internal/service/walletservice"
	"github.com/tanacoin/platform/pkg/auth"
)

type mocks struct {
	wallet  *MockWalletService
	promo   *MockPromoService
	profile *MockProfileService
}

func NewMock(t *testing.T) (*DashboardHandler, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		wallet:  NewMockWalletService(ctrl),
		promo:   NewMockPromoService(ctrl),
		profile: NewMockProfileService(ctrl),
	}
	handler := New(m.wallet, m.promo, m.profile)
	defer ctrl.Finish()
	return handler, m
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	ctx := context.WithValue(req.Context(), auth.UserIDKey, 1)
	return req.WithContext(ctx)
}

func TestGetDashboard(t *testing.T) {
	handler, m := NewMock(t)

	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	data := &walletservice.DashboardData{
		User: &domain.User{
			ID:          1,
			FirstName:   "Alice",
			LastName:    "Martin",
			Email:       "alice@example.com",
			TNCWalletID: "wallet-uuid",
			CreatedAt:   created,
		},
		Wallet: &domain.Wallet{ID: 5, UserID: 1, Balance: decimal.NewFromInt(250), CreatedAt: created},
		Transfers: []domain.Transfer{
			{ID: 9, SenderID: 1, RecipientWalletID: "other-wallet", Amount: decimal.NewFromInt(10), Status: "completed", TxHash: "abc", TransferDate: created},
		},
		Payments: []domain.Payment{
			{ID: 3, UserID: 1, Amount: decimal.RequireFromString("0.05"), CryptoType: "ETH", Precision: 18, TxHash: "0xdead", Status: domain.PaymentStatusConfirmed, PaymentDate: created},
		},
	}
	m.wallet.EXPECT().GetDashboardData(gomock.Any(), 1).Return(data, nil)

	rr := httptest.NewRecorder()
	handler.GetDashboard(rr, authedRequest("GET", "/dashboard", ""))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp dto.DashboardResponseDTO
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp.UserData, 1)
	assert.Equal(t, "wallet-uuid", resp.UserData[0].TNCWalletID)
	assert.Equal(t, "250", resp.WalletData[0].Balance)
	assert.Equal(t, "2025-03-10 12:00:00", resp.WalletData[0].CreatedAt)
	assert.Len(t, resp.Transactions, 1)
	assert.Equal(t, "ETH", resp.Payments[0].CryptoType)
}

func TestGetDashboard_UnknownUser(t *testing.T) {
	handler, m := NewMock(t)

	m.wallet.EXPECT().GetDashboardData(gomock.Any(), 1).Return(nil, nil)

	rr := httptest.NewRecorder()
	handler.GetDashboard(rr, authedRequest("GET", "/dashboard", ""))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPostAction_Transfer(t *testing.T) {
	handler, m := NewMock(t)

	tests := []struct {
		name            string
		body            string
		prepareMock     func()
		expectedCode    int
		expectedMessage string
	}{
		{
			name: "Successful transfer",
			body: `{"action":"transfer","recipient_tnc_wallet_id":"other-wallet","amount":"25.5"}`,
			prepareMock: func() {
				m.wallet.EXPECT().
					Transfer(gomock.Any(), 1, "other-wallet", decimal.RequireFromString("25.5")).
					Return("deadbeef", nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "Transaction effectuée avec succès",
		},
		{
			name: "Insufficient balance",
			body: `{"action":"transfer","recipient_tnc_wallet_id":"other-wallet","amount":"9999"}`,
			prepareMock: func() {
				m.wallet.EXPECT().
					Transfer(gomock.Any(), 1, "other-wallet", decimal.NewFromInt(9999)).
					Return("", walletservice.ErrInsufficientBalance)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: walletservice.ErrInsufficientBalance.Error(),
		},
		{
			name:            "Non-numeric amount",
			body:            `{"action":"transfer","recipient_tnc_wallet_id":"other-wallet","amount":"lots"}`,
			prepareMock:     func() {},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Invalid input for transfer.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rr := httptest.NewRecorder()
			handler.PostAction(rr, authedRequest("POST", "/dashboard", tt.body))

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]any
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedMessage, resp["message"])
		})
	}
}

func TestPostAction_PromoCodes(t *testing.T) {
	handler, m := NewMock(t)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	promo := &domain.PromoCode{
		Code:       "AB12CD34",
		Percentage: decimal.RequireFromString("10.00"),
		StartDate:  start,
		EndDate:    start.AddDate(1, 0, 0),
		CreatorID:  1,
		CreatedAt:  start,
	}

	t.Run("Create promo code", func(t *testing.T) {
		m.promo.EXPECT().Create(gomock.Any(), 1).Return(promo, nil)

		rr := httptest.NewRecorder()
		handler.PostAction(rr, authedRequest("POST", "/dashboard", `{"action":"add_promo_code"}`))

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.CreatePromoCodeResponseDTO
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "Promo code AB12CD34 crée avec succée!", resp.Message)
		assert.Equal(t, "AB12CD34", resp.PromoCode)
	})

	t.Run("List promo codes", func(t *testing.T) {
		m.promo.EXPECT().ListByCreator(gomock.Any(), 1).Return([]domain.PromoCode{*promo}, nil)

		rr := httptest.NewRecorder()
		handler.PostAction(rr, authedRequest("POST", "/dashboard", `{"action":"get_promo_codes"}`))

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.GetPromoCodesResponseDTO
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Len(t, resp.PromoCodes, 1)
		assert.Equal(t, "2025-01-01 00:00:00", resp.PromoCodes[0].StartDate)
	})

	t.Run("Unknown action", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.PostAction(rr, authedRequest("POST", "/dashboard", `{"action":"mint_tokens"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateProfile(t *testing.T) {
	handler, m := NewMock(t)

	picture := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	tests := []struct {
		name            string
		body            string
		prepareMock     func()
		expectedCode    int
		expectedMessage string
		expectedErrors  []string
	}{
		{
			name: "All fields updated",
			body: `{"profilePicture":"` + picture + `","email":"new@example.com","newPassword":"secret99"}`,
			prepareMock: func() {
				m.profile.EXPECT().UploadProfilePicture(gomock.Any(), 1, []byte("png-bytes")).Return(nil)
				m.profile.EXPECT().ChangeEmail(gomock.Any(), 1, "new@example.com").Return(nil)
				m.profile.EXPECT().ChangePassword(gomock.Any(), 1, "secret99").Return(nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "User details updated successfully.",
		},
		{
			name:            "Short password collects an error",
			body:            `{"newPassword":"abc"}`,
			prepareMock:     func() {},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Errors occurred",
			expectedErrors:  []string{"New password must be at least 6 characters long."},
		},
		{
			name: "Partial success still reports success",
			body: `{"email":"bad-email","newPassword":"secret99"}`,
			prepareMock: func() {
				m.profile.EXPECT().ChangePassword(gomock.Any(), 1, "secret99").Return(nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "User details updated successfully.",
		},
		{
			name:            "Empty body makes no changes",
			body:            `{}`,
			prepareMock:     func() {},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "No changes were made.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rr := httptest.NewRecorder()
			handler.UpdateProfile(rr, authedRequest("PUT", "/dashboard/data", tt.body))

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp dto.UpdateProfileResponseDTO
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedMessage, resp.Message)
			if tt.expectedErrors != nil {
				assert.Equal(t, tt.expectedErrors, resp.Errors)
			}
		})
	}
}
