package admin

import (
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
	"github.com/tanacoin/platform/internal/service/adminservice"
)

func NewMock(t *testing.T) (*AdminHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestSuperuserDashboard(t *testing.T) {
	handler, service := NewMock(t)

	created := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
	overviews := []adminservice.UserOverview{
		{
			User: domain.User{
				ID:          1,
				FirstName:   "Alice",
				LastName:    "Martin",
				Email:       "alice@example.com",
				TNCWalletID: "wallet-a",
				CreatedAt:   created,
			},
			Wallet: &domain.Wallet{UserID: 1, Balance: decimal.NewFromInt(120), CreatedAt: created},
			Payments: []domain.Payment{
				{ID: 4, Amount: decimal.RequireFromString("0.001"), CryptoType: "BTC", Precision: 8, TxHash: "btc-hash", Status: domain.PaymentStatusConfirmed, PaymentDate: created},
			},
			PromoCodesCreated: []domain.PromoCode{
				{Code: "AB12CD34", Percentage: decimal.RequireFromString("10.00"), StartDate: created, EndDate: created.AddDate(1, 0, 0), CreatedAt: created},
			},
			KYCStatus: "approved",
		},
		{
			User:      domain.User{ID: 2, FirstName: "Bob", Email: "bob@example.com", TNCWalletID: "wallet-b", CreatedAt: created},
			Wallet:    &domain.Wallet{UserID: 2, Balance: decimal.Zero, CreatedAt: created},
			KYCStatus: "not_started",
		},
	}
	service.EXPECT().ListUsers(gomock.Any()).Return(overviews, nil)

	req := httptest.NewRequest("GET", "/api/superuser-dashboard", nil)
	rr := httptest.NewRecorder()

	handler.SuperuserDashboard(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp dto.AdminDashboardResponseDTO
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 2, resp.TotalUsers)
	assert.Equal(t, "120", resp.Users[0].TNCWalletBalance)
	assert.Len(t, resp.Users[0].Payments, 1)
	assert.Equal(t, "BTC", resp.Users[0].Payments[0].CryptoType)
	assert.Len(t, resp.Users[0].PromoCodesCreated, 1)
	assert.Equal(t, "approved", resp.Users[0].KYCStatus)
	assert.Empty(t, resp.Users[1].Payments)
}

func TestSuperuserDashboard_Error(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().ListUsers(gomock.Any()).Return(nil, assert.AnError)

	req := httptest.NewRequest("GET", "/api/superuser-dashboard", nil)
	rr := httptest.NewRecorder()

	handler.SuperuserDashboard(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
