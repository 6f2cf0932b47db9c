package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/dto"
	"github.com/tanacoin/platform/internal/service/authservice"
	"github.com/tanacoin/platform/pkg/utils"
)

type Service interface {
	Register(ctx context.Context, req *dto.SignupRequestDTO) (*domain.User, string, error)
	Login(ctx context.Context, identifier, password string) (*domain.User, string, error)
	ConnectWallet(ctx context.Context, walletAddress, chainID string) (*domain.User, string, bool, error)
	ForgotPassword(ctx context.Context, email string) error
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup godoc
//
//	@Summary		Register a new user
//	@Description	Create a user account with a personal TNC wallet and return a JWT
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SignupRequestDTO	true	"Signup request body"
//	@Success		201		{object}	dto.AuthResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body or duplicate account"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate.Struct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields.")
		return
	}
	user, token, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, authservice.ErrEmailTaken) {
			utils.RespondWithError(w, http.StatusBadRequest, "Email is already registered.")
			return
		}
		if errors.Is(err, authservice.ErrUsernameTaken) {
			utils.RespondWithError(w, http.StatusBadRequest, "Username is already taken.")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "An error occurred during registration.")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, authResponse("Signup successful!", user, token))
}

// Login godoc
//
//	@Summary		Authenticate user
//	@Description	Log in with username or email and receive a JWT
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.AuthResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Router			/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate.Struct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Username/Email and password are required.")
		return
	}
	user, token, err := h.authService.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, authResponse("Login successful!", user, token))
}

// ConnectWallet godoc
//
//	@Summary		Wallet login-or-register
//	@Description	Authenticate by wallet address, creating a stub account on first connect
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ConnectWalletRequestDTO	true	"Connect wallet request body"
//	@Success		200		{object}	dto.AuthResponseDTO	"Existing account"
//	@Success		201		{object}	dto.AuthResponseDTO	"New stub account"
//	@Failure		400		{object}	utils.Response	"Wallet address missing"
//	@Router			/connect_wallet [post]
func (h *AuthHandler) ConnectWallet(w http.ResponseWriter, r *http.Request) {
	var req dto.ConnectWalletRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.WalletAddress == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Wallet address is required.")
		return
	}
	user, token, created, err := h.authService.ConnectWallet(r.Context(), req.WalletAddress, req.ChainID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "An error occurred during registration.")
		return
	}
	message, code := "Login successful!", http.StatusOK
	if created {
		message, code = "Signup successful!", http.StatusCreated
	}
	utils.RespondWithJSON(w, code, authResponse(message, user, token))
}

// ForgotPassword godoc
//
//	@Summary		Reset a forgotten password
//	@Description	Generate a new password and mail it to the account's address
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ForgotPasswordRequestDTO	true	"Forgot password request body"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.Response	"Email missing"
//	@Failure		500		{object}	utils.Response	"Unknown email or mail failure"
//	@Router			/api/forgot-password [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate.Struct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}
	if err := h.authService.ForgotPassword(r.Context(), req.Email); err != nil {
		if errors.Is(err, authservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusInternalServerError, "User Not Found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send password reset email")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Password reset email sent successfully"})
}

func authResponse(message string, user *domain.User, token string) dto.AuthResponseDTO {
	return dto.AuthResponseDTO{
		Message: message,
		Token:   token,
		User: dto.UserDTO{
			UserID:      user.ID,
			Username:    user.Username,
			Email:       user.Email,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			IsSuperuser: user.IsSuperuser,
			Role:        user.Role(),
		},
		IsSuperuser: user.IsSuperuser,
		Role:        user.Role(),
	}
}
