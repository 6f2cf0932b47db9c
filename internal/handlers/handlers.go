package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/tanacoin/platform/docs"
	adminhandlers "github.com/tanacoin/platform/internal/handlers/admin"
	authhandlers "github.com/tanacoin/platform/internal/handlers/auth"
	dashboardhandlers "github.com/tanacoin/platform/internal/handlers/dashboard"
	kychandlers "github.com/tanacoin/platform/internal/handlers/kyc"
	paymenthandlers "github.com/tanacoin/platform/internal/handlers/payments"
	supporthandlers "github.com/tanacoin/platform/internal/handlers/support"
	"github.com/tanacoin/platform/internal/service"
	"github.com/tanacoin/platform/pkg/auth"
)

type AuthHandler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	ConnectWallet(w http.ResponseWriter, r *http.Request)
	ForgotPassword(w http.ResponseWriter, r *http.Request)
}

type DashboardHandler interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
	PostAction(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
}

type PaymentsHandler interface {
	CheckPromoCode(w http.ResponseWriter, r *http.Request)
	TransactionStatus(w http.ResponseWriter, r *http.Request)
}

type KYCHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	SuperuserDashboard(w http.ResponseWriter, r *http.Request)
}

type SupportHandler interface {
	ContactUs(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	AboutUs(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler      AuthHandler
	DashboardHandler DashboardHandler
	PaymentsHandler  PaymentsHandler
	KYCHandler       KYCHandler
	AdminHandler     AdminHandler
	SupportHandler   SupportHandler

	jwtService auth.JWTServiceInterface
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:      authhandlers.New(s.AuthService),
		DashboardHandler: dashboardhandlers.New(s.WalletService, s.PromoService, s.AuthService),
		PaymentsHandler:  paymenthandlers.New(s.PromoService, s.VerifyService),
		KYCHandler:       kychandlers.New(s.KYCService),
		AdminHandler:     adminhandlers.New(s.AdminService),
		SupportHandler:   supporthandlers.New(s.Mailer),
		jwtService:       s.JWTService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}),
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Post("/signup", h.AuthHandler.Signup)
	r.Post("/login", h.AuthHandler.Login)
	r.Post("/connect_wallet", h.AuthHandler.ConnectWallet)
	r.Post("/api/forgot-password", h.AuthHandler.ForgotPassword)
	r.Post("/api/contact-us", h.SupportHandler.ContactUs)
	r.Get("/logout", h.SupportHandler.Logout)
	r.Get("/about_us", h.SupportHandler.AboutUs)
	r.Post("/kyc/upload", h.KYCHandler.Upload)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(h.jwtService))
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", h.DashboardHandler.GetDashboard)
			r.Post("/", h.DashboardHandler.PostAction)
			r.Get("/data", h.DashboardHandler.GetDashboard)
			r.Put("/data", h.DashboardHandler.UpdateProfile)
		})
		r.Post("/api/check_promo_code", h.PaymentsHandler.CheckPromoCode)
		r.Post("/api/transaction-status", h.PaymentsHandler.TransactionStatus)
		r.Get("/api/transaction-status", h.PaymentsHandler.TransactionStatus)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSuperuser)
			r.Get("/api/superuser-dashboard", h.AdminHandler.SuperuserDashboard)
		})
	})

	return r
}
