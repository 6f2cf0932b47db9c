package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/dto"
	"github.com/tanacoin/platform/internal/service/promoservice"
	"github.com/tanacoin/platform/internal/service/verifyservice"
	"github.com/tanacoin/platform/pkg/auth"
	"github.com/tanacoin/platform/pkg/utils"
)

type PromoService interface {
	CheckStatus(ctx context.Context, code string, userID int) (*promoservice.CheckResult, error)
	Redeem(ctx context.Context, code string, spenderID int, purchased decimal.Decimal) error
}

type VerifyService interface {
	Verify(ctx context.Context, txHash string, method verifyservice.PaymentMethod, bonusPct decimal.Decimal) (*domain.TransactionResult, error)
}

type PaymentsHandler struct {
	promoService  PromoService
	verifyService VerifyService
}

func New(promoService PromoService, verifyService VerifyService) *PaymentsHandler {
	return &PaymentsHandler{
		promoService:  promoService,
		verifyService: verifyService,
	}
}

// CheckPromoCode godoc
//
//	@Summary		Validate a promo code
//	@Description	Check redeemability of a promo code for the current user
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CheckPromoCodeRequestDTO	true	"Promo code body"
//	@Success		200		{object}	dto.CheckPromoCodeResponseDTO
//	@Failure		400		{object}	dto.CheckPromoCodeResponseDTO	"Invalid, expired or self-use"
//	@Security		BearerAuth
//	@Router			/api/check_promo_code [post]
func (h *PaymentsHandler) CheckPromoCode(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CheckPromoCodeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.promoService.CheckStatus(r.Context(), req.PromoCode, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "An error occurred while checking the promo code.")
		return
	}
	if result.Status != promoservice.StatusValid {
		utils.RespondWithJSON(w, http.StatusBadRequest, dto.CheckPromoCodeResponseDTO{
			Status:  promoservice.StatusInvalid,
			Message: result.Message,
		})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CheckPromoCodeResponseDTO{
		Status:     promoservice.StatusValid,
		Percentage: result.Percentage.String(),
		Message:    "Promo code applied successfully",
	})
}

// TransactionStatus godoc
//
//	@Summary		Confirm a crypto payment
//	@Description	Verify an on-chain transaction, credit purchased tokens and redeem an optional promo code
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.TransactionStatusRequestDTO	true	"Transaction status body"
//	@Success		200		{object}	domain.TransactionResult
//	@Failure		400		{object}	domain.TransactionResult	"Missing fields, bad promo code or unsupported method"
//	@Failure		500		{object}	domain.TransactionResult	"Verification failure"
//	@Security		BearerAuth
//	@Router			/api/transaction-status [post]
func (h *PaymentsHandler) TransactionStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.UserIDKey).(int)

	var req dto.TransactionStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondStatusError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TxHash == "" {
		respondStatusError(w, http.StatusBadRequest, "Transaction hash is required")
		return
	}
	if req.PaymentMethod == "" {
		respondStatusError(w, http.StatusBadRequest, "Payment method is required")
		return
	}

	method, err := verifyservice.ParseMethod(req.PaymentMethod)
	if err != nil {
		respondStatusError(w, http.StatusBadRequest, "Unsupported payment method")
		return
	}

	bonusPct := decimal.Zero
	if req.PromoCode != "" {
		promo, err := h.promoService.CheckStatus(r.Context(), req.PromoCode, userID)
		if err != nil {
			respondStatusError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if promo.Status != promoservice.StatusValid {
			respondStatusError(w, http.StatusBadRequest, promo.Message)
			return
		}
		bonusPct = promo.Percentage
	}

	result, err := h.verifyService.Verify(r.Context(), req.TxHash, method, bonusPct)
	if err != nil {
		if errors.Is(err, verifyservice.ErrUnsupportedMethod) {
			respondStatusError(w, http.StatusBadRequest, "Unsupported payment method")
			return
		}
		respondStatusError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// A pending payment already locked the bonus-adjusted token quote, so the
	// code is consumed as soon as the purchase is recorded, not when the
	// transaction is mined. A lost redemption race only costs the creator
	// bonus, so it must not fail the purchase.
	if (result.Status == domain.TxStatusConfirmed || result.Status == domain.TxStatusPending) && bonusPct.IsPositive() {
		if err := h.promoService.Redeem(r.Context(), req.PromoCode, userID, result.Tokens); err != nil {
			zap.L().Warn("promo code redemption failed after purchase",
				zap.String("code", req.PromoCode),
				zap.Int("userID", userID),
				zap.Error(err))
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func respondStatusError(w http.ResponseWriter, code int, message string) {
	utils.RespondWithJSON(w, code, domain.TransactionResult{
		Status:  domain.TxStatusError,
		Message: message,
	})
}
