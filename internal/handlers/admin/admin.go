package admin

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/dto"
	"github.com/tanacoin/platform/internal/service/adminservice"
	"github.com/tanacoin/platform/pkg/utils"
)

const dateLayout = "2006-01-02 15:04:05"

type Service interface {
	ListUsers(ctx context.Context) ([]adminservice.UserOverview, error)
}

type AdminHandler struct {
	adminService Service
}

func New(adminService Service) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// SuperuserDashboard godoc
//
//	@Summary		Superuser dashboard
//	@Description	Every user with wallet, payment and promo code history
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	dto.AdminDashboardResponseDTO
//	@Failure		403	{object}	utils.Response	"Not a superuser"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/superuser-dashboard [get]
func (h *AdminHandler) SuperuserDashboard(w http.ResponseWriter, r *http.Request) {
	overviews, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "An error occurred.")
		return
	}

	users := make([]dto.AdminUserDTO, 0, len(overviews))
	for _, o := range overviews {
		users = append(users, adminUser(o))
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AdminDashboardResponseDTO{
		Users:      users,
		TotalUsers: len(users),
	})
}

func adminUser(o adminservice.UserOverview) dto.AdminUserDTO {
	u := dto.AdminUserDTO{
		UserID:            o.User.ID,
		FirstName:         o.User.FirstName,
		LastName:          o.User.LastName,
		Email:             o.User.Email,
		UserCreatedAt:     o.User.CreatedAt.Format(dateLayout),
		TNCWalletID:       o.User.TNCWalletID,
		KYCStatus:         o.KYCStatus,
		Payments:          []dto.PaymentDataDTO{},
		PromoCodesCreated: []dto.PromoCodeDTO{},
		PromoCodesSpent:   []dto.PromoCodeDTO{},
	}
	if len(o.User.ProfilePicture) > 0 {
		u.ProfilePicture = base64.StdEncoding.EncodeToString(o.User.ProfilePicture)
	}
	if o.Wallet != nil {
		u.TNCWalletBalance = o.Wallet.Balance.String()
		u.TNCWalletCreatedAt = o.Wallet.CreatedAt.Format(dateLayout)
	}
	for _, p := range o.Payments {
		u.Payments = append(u.Payments, dto.PaymentDataDTO{
			PaymentID:       p.ID,
			PaymentAmount:   p.Amount.String(),
			CryptoType:      p.CryptoType,
			CryptoPrecision: p.Precision,
			TransactionHash: p.TxHash,
			PaymentDate:     p.PaymentDate.Format(dateLayout),
			PaymentStatus:   p.Status,
		})
	}
	u.PromoCodesCreated = appendPromos(u.PromoCodesCreated, o.PromoCodesCreated)
	u.PromoCodesSpent = appendPromos(u.PromoCodesSpent, o.PromoCodesSpent)
	return u
}

func appendPromos(list []dto.PromoCodeDTO, promos []domain.PromoCode) []dto.PromoCodeDTO {
	for _, p := range promos {
		list = append(list, dto.PromoCodeDTO{
			Code:       p.Code,
			Percentage: p.Percentage.String(),
			StartDate:  p.StartDate.Format(dateLayout),
			EndDate:    p.EndDate.Format(dateLayout),
			CreatedAt:  p.CreatedAt.Format(dateLayout),
		})
	}
	return list
}
