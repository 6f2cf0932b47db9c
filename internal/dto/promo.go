package dto

type CheckPromoCodeRequestDTO struct {
	PromoCode string `json:"promo_code" validate:"required"`
}

type CheckPromoCodeResponseDTO struct {
	Status     string `json:"status"`
	Percentage string `json:"added_tnc_percentage,omitempty"`
	Message    string `json:"message"`
}

type PromoCodeDTO struct {
	Code       string `json:"code"`
	Percentage string `json:"added_tnc_percentage"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	CreatedAt  string `json:"created_at"`
}

type CreatePromoCodeResponseDTO struct {
	Message    string `json:"message"`
	PromoCode  string `json:"promo_code"`
	Percentage string `json:"added_tnc_percentage"`
}

type GetPromoCodesResponseDTO struct {
	PromoCodes []PromoCodeDTO `json:"promocodes"`
}
