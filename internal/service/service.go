package service

import (
	"github.com/tanacoin/platform/internal/config"
	"github.com/tanacoin/platform/internal/explorer"
	"github.com/tanacoin/platform/internal/pg"
	"github.com/tanacoin/platform/internal/repo"
	"github.com/tanacoin/platform/internal/service/adminservice"
	"github.com/tanacoin/platform/internal/service/authservice"
	"github.com/tanacoin/platform/internal/service/kycservice"
	"github.com/tanacoin/platform/internal/service/promoservice"
	"github.com/tanacoin/platform/internal/service/rateservice"
	"github.com/tanacoin/platform/internal/service/settlementservice"
	"github.com/tanacoin/platform/internal/service/verifyservice"
	"github.com/tanacoin/platform/internal/service/walletservice"
	"github.com/tanacoin/platform/pkg/auth"
	"github.com/tanacoin/platform/pkg/clients"
	"github.com/tanacoin/platform/pkg/mailer"
)

type Services struct {
	AuthService       *authservice.Service
	WalletService     *walletservice.Service
	PromoService      *promoservice.Service
	RateService       *rateservice.Service
	SettlementService *settlementservice.Service
	VerifyService     *verifyservice.Service
	KYCService        *kycservice.Service
	AdminService      *adminservice.Service

	JWTService auth.JWTServiceInterface
	Mailer     mailer.Mailer
}

func New(cfg *config.Config, repos *repo.Repositories, txManager pg.TXManager) *Services {
	httpClient := clients.NewHTTPClient()
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	smtpMailer := mailer.New(cfg)

	ethClient := explorer.NewEthClient(cfg.EthRPCURL, httpClient)
	btcClient := explorer.NewBtcClient(cfg.BtcAPIURL, httpClient)

	rateService := rateservice.New(cfg.RatesAPIURL, httpClient, repos.TokenRepo)
	kycService := kycservice.New(repos.KYCRepo, cfg.UploadDir)
	settlementService := settlementservice.New(repos.UserRepo, repos.PaymentRepo, repos.WalletRepo, repos.TokenRepo, txManager)
	verifyService := verifyservice.New(ethClient, btcClient, rateService, settlementService, verifyservice.Receivers{
		ETH:  cfg.ReceiverETHAddress,
		BTC:  cfg.ReceiverBTCAddress,
		USDT: cfg.ReceiverUSDTAddress,
	}, cfg.USDTContractAddress)

	return &Services{
		AuthService:       authservice.New(repos.UserRepo, repos.WalletRepo, &auth.HashService{}, jwtService, smtpMailer, txManager),
		WalletService:     walletservice.New(repos.UserRepo, repos.WalletRepo, repos.TransferRepo, repos.PaymentRepo, txManager),
		PromoService:      promoservice.New(repos.PromoRepo, repos.WalletRepo, txManager),
		RateService:       rateService,
		SettlementService: settlementService,
		VerifyService:     verifyService,
		KYCService:        kycService,
		AdminService:      adminservice.New(repos.UserRepo, repos.WalletRepo, repos.PaymentRepo, repos.PromoRepo, kycService),

		JWTService: jwtService,
		Mailer:     smtpMailer,
	}
}
