package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID             int       `db:"id"`
	Username       string    `db:"username"`
	Email          string    `db:"email"`
	PasswordHash   string    `db:"password_hash"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	DateOfBirth    string    `db:"date_of_birth"`
	PhoneNumber    string    `db:"phone_number"`
	Country        string    `db:"country"`
	AddressLine1   string    `db:"address_line1"`
	AddressLine2   string    `db:"address_line2"`
	City           string    `db:"city"`
	State          string    `db:"state"`
	PostalCode     string    `db:"postal_code"`
	WalletAddress  string    `db:"wallet_address"`
	ChainID        string    `db:"chain_id"`
	TNCWalletID    string    `db:"tnc_wallet_id"`
	ProfilePicture []byte    `db:"profile_picture"`
	IsSuperuser    bool      `db:"is_superuser"`
	CreatedAt      time.Time `db:"created_at"`
}

// Role derived from the superuser flag, carried in JWT claims.
func (u *User) Role() string {
	if u.IsSuperuser {
		return "superuser"
	}
	return "user"
}

type Wallet struct {
	ID        int             `db:"id"`
	UserID    int             `db:"user_id"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
}

type PromoCode struct {
	ID         int             `db:"id"`
	Code       string          `db:"code"`
	Percentage decimal.Decimal `db:"added_tnc_percentage"`
	StartDate  time.Time       `db:"start_date"`
	EndDate    time.Time       `db:"end_date"`
	CreatorID  int             `db:"creator_id"`
	SpenderID  *int            `db:"spender_id"`
	CreatedAt  time.Time       `db:"created_at"`
}

const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusFailed    = "failed"
)

type Payment struct {
	ID          int             `db:"id"`
	UserID      int             `db:"user_id"`
	Amount      decimal.Decimal `db:"amount"`
	CryptoType  string          `db:"crypto_type"`
	Precision   int             `db:"crypto_precision"`
	TxHash      string          `db:"transaction_hash"`
	Tokens      decimal.Decimal `db:"tanacoin_quantity"`
	Status      string          `db:"status"`
	PaymentDate time.Time       `db:"payment_date"`
}

type Transfer struct {
	ID                int             `db:"id"`
	SenderID          int             `db:"sender_id"`
	RecipientWalletID string          `db:"recipient_tnc_wallet_id"`
	Amount            decimal.Decimal `db:"amount"`
	Status            string          `db:"status"`
	TxHash            string          `db:"transaction_hash"`
	TransferDate      time.Time       `db:"transaction_date"`
}

type KYCDocument struct {
	ID              int       `db:"id"`
	UserID          int       `db:"user_id"`
	DocumentType    string    `db:"document_type"`
	FilePath        string    `db:"file_path"`
	Status          string    `db:"status"`
	RejectionReason *string   `db:"rejection_reason"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// TokenInfo is the single platform ledger row: total supply, EUR rate and
// amount sold so far.
type TokenInfo struct {
	TotalBalance decimal.Decimal `db:"total_balance"`
	Rate         decimal.Decimal `db:"tanacoin_rate"`
	Sold         decimal.Decimal `db:"tanacoins_sold"`
}

// RateQuote is a point-in-time snapshot of the token rate in EUR and the
// derived rates in each accepted cryptocurrency. Never persisted.
type RateQuote struct {
	TokenEUR  decimal.Decimal
	TokenETH  decimal.Decimal
	TokenUSDT decimal.Decimal
	TokenBTC  decimal.Decimal
}

const (
	TxStatusConfirmed = "confirmed"
	TxStatusPending   = "pending"
	TxStatusFailed    = "failed"
	TxStatusError     = "error"
)

// TransactionResult is the verifier's answer for a submitted transaction hash.
// Error branches are carried in Status/Message, not as Go errors.
type TransactionResult struct {
	Status  string          `json:"status"`
	From    string          `json:"from,omitempty"`
	To      string          `json:"to,omitempty"`
	Value   decimal.Decimal `json:"value,omitempty"`
	Tokens  decimal.Decimal `json:"tanacoin_purchased,omitempty"`
	Type    string          `json:"type,omitempty"`
	Message string          `json:"message,omitempty"`
}
