package dto

import "github.com/go-playground/validator/v10"

var Validate = validator.New()

type SignupRequestDTO struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	DateOfBirth  string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Email        string `json:"email" validate:"required,email"`
	PhoneNumber  string `json:"phone_number" validate:"required"`
	Country      string `json:"country" validate:"required"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code" validate:"required"`
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Password     string `json:"password" validate:"required,min=6"`
}

type LoginRequestDTO struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type ConnectWalletRequestDTO struct {
	WalletAddress string `json:"wallet_address" validate:"required"`
	ChainID       string `json:"chain_id"`
}

type UserDTO struct {
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsSuperuser bool   `json:"is_superuser"`
	Role        string `json:"role"`
}

type AuthResponseDTO struct {
	Message     string  `json:"message"`
	Token       string  `json:"token"`
	User        UserDTO `json:"user"`
	IsSuperuser bool    `json:"is_superuser"`
	Role        string  `json:"role"`
}

type ForgotPasswordRequestDTO struct {
	Email string `json:"email" validate:"required,email"`
}
