package dto

type TransactionStatusRequestDTO struct {
	TxHash        string `json:"tx_hash" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	PromoCode     string `json:"promo_code"`
}

type TransferRequestDTO struct {
	RecipientTNCWalletID string `json:"recipient_tnc_wallet_id" validate:"required,uuid"`
	Amount               string `json:"amount" validate:"required"`
}

type TransferResponseDTO struct {
	Message         string `json:"message"`
	TransactionHash string `json:"transaction_hash,omitempty"`
}
