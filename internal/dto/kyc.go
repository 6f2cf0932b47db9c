package dto

type KYCUploadResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ContactUsRequestDTO struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}
