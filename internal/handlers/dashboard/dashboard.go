package dashboard

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/dto"
	"github.com/tanacoin/platform/internal/service/walletservice"
	"github.com/tanacoin/platform/pkg/auth"
	"github.com/tanacoin/platform/pkg/utils"
)

const dateLayout = "2006-01-02 15:04:05"

type WalletService interface {
	Transfer(ctx context.Context, senderID int, recipientWalletID string, amount decimal.Decimal) (string, error)
	GetDashboardData(ctx context.Context, userID int) (*walletservice.DashboardData, error)
}

type PromoService interface {
	Create(ctx context.Context, creatorID int) (*domain.PromoCode, error)
	ListByCreator(ctx context.Context, creatorID int) ([]domain.PromoCode, error)
}

type ProfileService interface {
	UploadProfilePicture(ctx context.Context, userID int, picture []byte) error
	ChangeEmail(ctx context.Context, userID int, newEmail string) error
	ChangePassword(ctx context.Context, userID int, newPassword string) error
}

type DashboardHandler struct {
	walletService  WalletService
	promoService   PromoService
	profileService ProfileService
}

func New(walletService WalletService, promoService PromoService, profileService ProfileService) *DashboardHandler {
	return &DashboardHandler{
		walletService:  walletService,
		promoService:   promoService,
		profileService: profileService,
	}
}

// GetDashboard godoc
//
//	@Summary		Dashboard data
//	@Description	User profile, wallet, transfers and crypto payments
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	dto.DashboardResponseDTO
//	@Failure		404	{object}	utils.Response	"User data could not be retrieved"
//	@Security		BearerAuth
//	@Router			/dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.UserIDKey).(int)

	data, err := h.walletService.GetDashboardData(r.Context(), userID)
	if err != nil || data == nil {
		utils.RespondWithError(w, http.StatusNotFound, "User data could not be retrieved.")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dashboardResponse(data))
}

// PostAction godoc
//
//	@Summary		Dashboard action
//	@Description	Dispatch a dashboard action: transfer, add_promo_code or get_promo_codes
//	@Tags			Dashboard
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.DashboardActionRequestDTO	true	"Action request body"
//	@Success		200		{object}	dto.TransferResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid input"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Security		BearerAuth
//	@Router			/dashboard [post]
func (h *DashboardHandler) PostAction(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.UserIDKey).(int)

	var req dto.DashboardActionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch req.Action {
	case "transfer":
		h.transfer(w, r, userID, &req)
	case "add_promo_code":
		h.createPromoCode(w, r, userID)
	case "get_promo_codes":
		h.listPromoCodes(w, r, userID)
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown action")
	}
}

func (h *DashboardHandler) transfer(w http.ResponseWriter, r *http.Request, userID int, req *dto.DashboardActionRequestDTO) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input for transfer.")
		return
	}
	txHash, err := h.walletService.Transfer(r.Context(), userID, req.RecipientTNCWalletID, amount)
	if err != nil {
		switch {
		case errors.Is(err, walletservice.ErrInvalidAmount),
			errors.Is(err, walletservice.ErrRecipientNotFound),
			errors.Is(err, walletservice.ErrSelfTransfer),
			errors.Is(err, walletservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "An error occurred during the transfer.")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.TransferResponseDTO{
		Message:         "Transaction effectuée avec succès",
		TransactionHash: txHash,
	})
}

func (h *DashboardHandler) createPromoCode(w http.ResponseWriter, r *http.Request, userID int) {
	promo, err := h.promoService.Create(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "An error occurred while creating promo code.")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CreatePromoCodeResponseDTO{
		Message:    fmt.Sprintf("Promo code %s crée avec succée!", promo.Code),
		PromoCode:  promo.Code,
		Percentage: promo.Percentage.String(),
	})
}

func (h *DashboardHandler) listPromoCodes(w http.ResponseWriter, r *http.Request, userID int) {
	promos, err := h.promoService.ListByCreator(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "An error occurred while retrieving promo codes.")
		return
	}
	list := make([]dto.PromoCodeDTO, 0, len(promos))
	for _, p := range promos {
		list = append(list, dto.PromoCodeDTO{
			Code:       p.Code,
			Percentage: p.Percentage.String(),
			StartDate:  p.StartDate.Format(dateLayout),
			EndDate:    p.EndDate.Format(dateLayout),
			CreatedAt:  p.CreatedAt.Format(dateLayout),
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.GetPromoCodesResponseDTO{PromoCodes: list})
}

// UpdateProfile godoc
//
//	@Summary		Update profile
//	@Description	Apply any of: base64 profile picture, new email, new password
//	@Tags			Dashboard
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.UpdateProfileRequestDTO	true	"Profile update body"
//	@Success		200		{object}	dto.UpdateProfileResponseDTO
//	@Failure		400		{object}	dto.UpdateProfileResponseDTO	"Errors occurred or no changes"
//	@Security		BearerAuth
//	@Router			/dashboard/data [put]
func (h *DashboardHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.UserIDKey).(int)

	var req dto.UpdateProfileRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var changed bool
	var errs []string

	if req.ProfilePicture != "" {
		picture, err := base64.StdEncoding.DecodeString(req.ProfilePicture)
		if err != nil {
			errs = append(errs, "Invalid profile picture format.")
		} else if err := h.profileService.UploadProfilePicture(r.Context(), userID, picture); err != nil {
			errs = append(errs, "Failed to upload profile picture.")
		} else {
			changed = true
		}
	}

	if req.Email != "" {
		if !strings.Contains(req.Email, "@") {
			errs = append(errs, "Invalid email format.")
		} else if err := h.profileService.ChangeEmail(r.Context(), userID, req.Email); err != nil {
			errs = append(errs, "Failed to update email.")
		} else {
			changed = true
		}
	}

	if req.NewPassword != "" {
		if len(req.NewPassword) < 6 {
			errs = append(errs, "New password must be at least 6 characters long.")
		} else if err := h.profileService.ChangePassword(r.Context(), userID, req.NewPassword); err != nil {
			errs = append(errs, "Failed to update password.")
		} else {
			changed = true
		}
	}

	switch {
	case changed:
		utils.RespondWithJSON(w, http.StatusOK, dto.UpdateProfileResponseDTO{Message: "User details updated successfully."})
	case len(errs) > 0:
		utils.RespondWithJSON(w, http.StatusBadRequest, dto.UpdateProfileResponseDTO{Message: "Errors occurred", Errors: errs})
	default:
		utils.RespondWithJSON(w, http.StatusBadRequest, dto.UpdateProfileResponseDTO{Message: "No changes were made."})
	}
}

func dashboardResponse(data *walletservice.DashboardData) dto.DashboardResponseDTO {
	resp := dto.DashboardResponseDTO{
		UserData:     []dto.UserDataDTO{},
		WalletData:   []dto.WalletDataDTO{},
		Transactions: []dto.TransactionDataDTO{},
		Payments:     []dto.PaymentDataDTO{},
	}
	if data.User != nil {
		u := dto.UserDataDTO{
			UserID:      data.User.ID,
			FirstName:   data.User.FirstName,
			LastName:    data.User.LastName,
			Email:       data.User.Email,
			TNCWalletID: data.User.TNCWalletID,
			CreatedAt:   data.User.CreatedAt.Format(dateLayout),
		}
		if len(data.User.ProfilePicture) > 0 {
			u.ProfilePicture = base64.StdEncoding.EncodeToString(data.User.ProfilePicture)
		}
		resp.UserData = append(resp.UserData, u)
	}
	if data.Wallet != nil && data.User != nil {
		resp.WalletData = append(resp.WalletData, dto.WalletDataDTO{
			TNCWalletID: data.User.TNCWalletID,
			Balance:     data.Wallet.Balance.String(),
			CreatedAt:   data.Wallet.CreatedAt.Format(dateLayout),
		})
	}
	for _, t := range data.Transfers {
		resp.Transactions = append(resp.Transactions, dto.TransactionDataDTO{
			TransactionID:        t.ID,
			SenderID:             t.SenderID,
			RecipientTNCWalletID: t.RecipientWalletID,
			Amount:               t.Amount.String(),
			TransactionDate:      t.TransferDate.Format(dateLayout),
			Status:               t.Status,
			TransactionHash:      t.TxHash,
		})
	}
	for _, p := range data.Payments {
		resp.Payments = append(resp.Payments, dto.PaymentDataDTO{
			PaymentID:       p.ID,
			PaymentAmount:   p.Amount.String(),
			CryptoType:      p.CryptoType,
			CryptoPrecision: p.Precision,
			TransactionHash: p.TxHash,
			PaymentDate:     p.PaymentDate.Format(dateLayout),
			PaymentStatus:   p.Status,
		})
	}
	return resp
}
