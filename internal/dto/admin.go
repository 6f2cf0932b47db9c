package dto

type AdminUserDTO struct {
	UserID         int    `json:"user_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	UserCreatedAt  string `json:"user_created_at"`

	TNCWalletID        string `json:"tnc_wallet_id"`
	TNCWalletBalance   string `json:"tnc_wallet_balance"`
	TNCWalletCreatedAt string `json:"tnc_wallet_created_at"`

	KYCStatus string `json:"kyc_status"`

	Payments          []PaymentDataDTO `json:"payments"`
	PromoCodesCreated []PromoCodeDTO   `json:"promo_codes_created"`
	PromoCodesSpent   []PromoCodeDTO   `json:"promo_codes_spent"`
}

type AdminDashboardResponseDTO struct {
	Users      []AdminUserDTO `json:"users"`
	TotalUsers int            `json:"total_users"`
}
