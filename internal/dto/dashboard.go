package dto

type DashboardActionRequestDTO struct {
	Action               string `json:"action" validate:"required"`
	RecipientTNCWalletID string `json:"recipient_tnc_wallet_id"`
	Amount               string `json:"amount"`
}

type UserDataDTO struct {
	UserID         int    `json:"user_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	TNCWalletID    string `json:"tnc_wallet_id"`
	CreatedAt      string `json:"created_at"`
}

type WalletDataDTO struct {
	TNCWalletID string `json:"tnc_wallet_id"`
	Balance     string `json:"balance"`
	CreatedAt   string `json:"created_at"`
}

type TransactionDataDTO struct {
	TransactionID        int    `json:"transaction_id"`
	SenderID             int    `json:"sender_id"`
	RecipientTNCWalletID string `json:"recipient_tnc_wallet_id"`
	Amount               string `json:"amount"`
	TransactionDate      string `json:"transaction_date"`
	Status               string `json:"status"`
	TransactionHash      string `json:"transaction_hash"`
}

type PaymentDataDTO struct {
	PaymentID       int    `json:"payment_id"`
	PaymentAmount   string `json:"payment_amount"`
	CryptoType      string `json:"crypto_type"`
	CryptoPrecision int    `json:"crypto_precision"`
	TransactionHash string `json:"payment_transaction_hash"`
	PaymentDate     string `json:"payment_date"`
	PaymentStatus   string `json:"payment_status"`
}

type DashboardResponseDTO struct {
	UserData     []UserDataDTO        `json:"user_data"`
	WalletData   []WalletDataDTO      `json:"wallet_data"`
	Transactions []TransactionDataDTO `json:"transactions"`
	Payments     []PaymentDataDTO     `json:"payments"`
}

type UpdateProfileRequestDTO struct {
	ProfilePicture string `json:"profilePicture"`
	Email          string `json:"email"`
	NewPassword    string `json:"newPassword"`
}

type UpdateProfileResponseDTO struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
