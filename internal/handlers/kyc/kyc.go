package kyc

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/tanacoin/platform/internal/dto"
	"github.com/tanacoin/platform/internal/service/kycservice"
	"github.com/tanacoin/platform/pkg/utils"
)

// Multipart uploads are buffered to this many bytes in memory before
// spilling to disk.
const maxUploadMemory = 10 << 20

type Service interface {
	Upload(ctx context.Context, userID int, documentType, filename string, file io.Reader) error
}

type KYCHandler struct {
	kycService Service
}

func New(kycService Service) *KYCHandler {
	return &KYCHandler{
		kycService: kycService,
	}
}

// Upload godoc
//
//	@Summary		Upload a KYC document
//	@Description	Accept a multipart identity document and queue it for review
//	@Tags			KYC
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			user_id			formData	string	true	"User ID"
//	@Param			document_type	formData	string	true	"Document type"
//	@Param			file			formData	file	true	"Document file"
//	@Success		200				{object}	dto.KYCUploadResponseDTO
//	@Failure		400				{object}	dto.KYCUploadResponseDTO
//	@Router			/kyc/upload [post]
func (h *KYCHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, dto.KYCUploadResponseDTO{
			Success: false,
			Message: "Missing required fields.",
		})
		return
	}

	userID, err := strconv.Atoi(r.FormValue("user_id"))
	documentType := r.FormValue("document_type")
	file, header, fileErr := r.FormFile("file")
	if fileErr == nil {
		defer file.Close()
	}
	if err != nil || documentType == "" || fileErr != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, dto.KYCUploadResponseDTO{
			Success: false,
			Message: "Missing required fields.",
		})
		return
	}

	if err := h.kycService.Upload(r.Context(), userID, documentType, header.Filename, file); err != nil {
		message := "Database error."
		if errors.Is(err, kycservice.ErrInvalidFileType) || errors.Is(err, kycservice.ErrInvalidDocumentType) {
			message = err.Error()
		}
		utils.RespondWithJSON(w, http.StatusBadRequest, dto.KYCUploadResponseDTO{
			Success: false,
			Message: message,
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.KYCUploadResponseDTO{
		Success: true,
		Message: "Document uploaded successfully",
	})
}
