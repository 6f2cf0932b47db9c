package authservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/dto"
	"github.com/tanacoin/platform/internal/pg"
	userrepo "github.com/tanacoin/platform/internal/repo/user-repo"
	"github.com/tanacoin/platform/pkg/auth"
	"github.com/tanacoin/platform/pkg/mailer"
)

type UserRepo interface {
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByWalletAddress(ctx context.Context, walletAddress string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateEmail(ctx context.Context, userID int, email string) error
	UpdatePassword(ctx context.Context, userID int, passwordHash string) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
	UpdateProfilePicture(ctx context.Context, userID int, picture []byte) error
}

type WalletRepo interface {
	Create(ctx context.Context, userID int) (*domain.Wallet, error)
}

type Service struct {
	userRepo    UserRepo
	walletRepo  WalletRepo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	mailer      mailer.Mailer
	txManager   pg.TXManager
}

func New(userRepo UserRepo, walletRepo WalletRepo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, mailer mailer.Mailer, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:    userRepo,
		walletRepo:  walletRepo,
		hashService: hashService,
		jwtService:  jwtService,
		mailer:      mailer,
		txManager:   txManager,
	}
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = userrepo.ErrEmailTaken
	ErrUsernameTaken      = userrepo.ErrUsernameTaken
	ErrPictureTooLarge    = errors.New("file size exceeds the 50MB limit")
)

const (
	tokenTTL       = time.Hour
	maxPictureSize = 50 * 1024 * 1024

	resetPasswordLength  = 16
	walletPasswordLength = 24
)

// Register creates the user and their token wallet in one transaction.
func (s *Service) Register(ctx context.Context, req *dto.SignupRequestDTO) (*domain.User, string, error) {
	hashedPassword, err := s.hashService.HashPassword(req.Password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, "", err
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DateOfBirth:  req.DateOfBirth,
		PhoneNumber:  req.PhoneNumber,
		Country:      req.Country,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		TNCWalletID:  uuid.NewString(),
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		created, err := s.userRepo.Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		_, err = s.walletRepo.Create(ctx, created.ID)
		return err
	})
	if err != nil {
		zap.L().Error("can't register user", zap.String("username", req.Username), zap.Error(err))
		return nil, "", err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	zap.L().Info("user successfully registered", zap.String("username", user.Username))
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, identifier, password string) (*domain.User, string, error) {
	user, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil || user == nil {
		zap.L().Warn("login for unknown identifier", zap.String("identifier", identifier))
		return nil, "", ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	zap.L().Info("user successfully authenticated", zap.Int("userID", user.ID))
	return user, token, nil
}

// ConnectWallet logs the wallet's owner in, registering a stub account on
// first contact. The created flag tells the handler which status to answer.
func (s *Service) ConnectWallet(ctx context.Context, walletAddress, chainID string) (*domain.User, string, bool, error) {
	user, err := s.userRepo.FindByWalletAddress(ctx, walletAddress)
	if err != nil {
		return nil, "", false, err
	}
	if user != nil {
		token, err := s.GenerateToken(user)
		return user, token, false, err
	}

	password, err := auth.GeneratePassword(walletPasswordLength)
	if err != nil {
		return nil, "", false, err
	}
	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		return nil, "", false, err
	}

	walletID := uuid.NewString()
	user = &domain.User{
		Username:      "wallet_" + walletID[:8],
		Email:         walletID + "@wallet.tanacoin.io",
		PasswordHash:  hashedPassword,
		WalletAddress: walletAddress,
		ChainID:       chainID,
		TNCWalletID:   walletID,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		created, err := s.userRepo.Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		_, err = s.walletRepo.Create(ctx, created.ID)
		return err
	})
	if err != nil {
		zap.L().Error("can't register wallet user", zap.String("walletAddress", walletAddress), zap.Error(err))
		return nil, "", false, err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", false, err
	}
	zap.L().Info("wallet user registered", zap.Int("userID", user.ID))
	return user, token, true, nil
}

// ForgotPassword rotates the password to a random one and mails it out. The
// old password stops working immediately.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	newPassword, err := auth.GeneratePassword(resetPasswordLength)
	if err != nil {
		return err
	}
	hashedPassword, err := s.hashService.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePasswordByEmail(ctx, email, hashedPassword); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(email, newPassword); err != nil {
		zap.L().Error("can't send password reset email", zap.String("email", email), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) ChangeEmail(ctx context.Context, userID int, newEmail string) error {
	existing, err := s.userRepo.FindByEmail(ctx, newEmail)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != userID {
		return ErrEmailTaken
	}
	return s.userRepo.UpdateEmail(ctx, userID, newEmail)
}

func (s *Service) ChangePassword(ctx context.Context, userID int, newPassword string) error {
	hashedPassword, err := s.hashService.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashedPassword)
}

func (s *Service) UploadProfilePicture(ctx context.Context, userID int, picture []byte) error {
	if len(picture) > maxPictureSize {
		return ErrPictureTooLarge
	}
	return s.userRepo.UpdateProfilePicture(ctx, userID, picture)
}

func (s *Service) GetUser(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("can't find user", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *Service) GenerateToken(user *domain.User) (string, error) {
	token, err := s.jwtService.GenerateJWT(user.ID, user.IsSuperuser, user.Role(), time.Now().Add(tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}
