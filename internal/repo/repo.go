package repo

import (
	"github.com/tanacoin/platform/internal/pg"
	kycrepo "github.com/tanacoin/platform/internal/repo/kyc-repo"
	paymentrepo "github.com/tanacoin/platform/internal/repo/payment-repo"
	promorepo "github.com/tanacoin/platform/internal/repo/promo-repo"
	tokenrepo "github.com/tanacoin/platform/internal/repo/token-repo"
	transferrepo "github.com/tanacoin/platform/internal/repo/transfer-repo"
	userrepo "github.com/tanacoin/platform/internal/repo/user-repo"
	walletrepo "github.com/tanacoin/platform/internal/repo/wallet-repo"
)

type Repositories struct {
	UserRepo     *userrepo.Repository
	WalletRepo   *walletrepo.Repository
	PromoRepo    *promorepo.Repository
	PaymentRepo  *paymentrepo.Repository
	TransferRepo *transferrepo.Repository
	KYCRepo      *kycrepo.Repository
	TokenRepo    *tokenrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:     userrepo.New(conn),
		WalletRepo:   walletrepo.New(conn),
		PromoRepo:    promorepo.New(conn),
		PaymentRepo:  paymentrepo.New(conn),
		TransferRepo: transferrepo.New(conn),
		KYCRepo:      kycrepo.New(conn),
		TokenRepo:    tokenrepo.New(conn),
	}
}
