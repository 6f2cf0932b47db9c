package support

import (
	"encoding/json"
	"net/http"

	"github.com/tanacoin/platform/internal/dto"
	"github.com/tanacoin/platform/pkg/utils"
)

type Mailer interface {
	SendContactMessage(name, email, message string) error
}

type SupportHandler struct {
	mailer Mailer
}

func New(mailer Mailer) *SupportHandler {
	return &SupportHandler{
		mailer: mailer,
	}
}

// ContactUs godoc
//
//	@Summary		Contact form
//	@Description	Forward a visitor message to the support mailbox
//	@Tags			Support
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ContactUsRequestDTO	true	"Contact form body"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.Response	"Missing fields"
//	@Failure		500		{object}	utils.Response	"Mail failure"
//	@Router			/api/contact-us [post]
func (h *SupportHandler) ContactUs(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactUsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No input data provided.")
		return
	}
	if err := dto.Validate.Struct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email, and message are required.")
		return
	}
	if err := h.mailer.SendContactMessage(req.Name, req.Email, req.Message); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send your message. Please try again later.")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Your message has been sent successfully!"})
}

// Logout godoc
//
//	@Summary	Log out
//	@Tags		Support
//	@Produce	json
//	@Success	200	{object}	utils.Response
//	@Router		/logout [get]
func (h *SupportHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// Auth is stateless JWT, so logout is a client-side token drop.
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Logged out successfully"})
}

// AboutUs godoc
//
//	@Summary	About the platform
//	@Tags		Support
//	@Produce	json
//	@Success	200	{object}	utils.Response
//	@Router		/about_us [get]
func (h *SupportHandler) AboutUs(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "About us information goes here"})
}
