package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/pg"
)

var (
	ErrUsernameTaken = errors.New("username is already taken")
	ErrEmailTaken    = errors.New("email is already registered")
)

const uniqueViolation = "23505"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const userColumns = `id, username, email, password_hash, first_name, last_name,
	COALESCE(date_of_birth::text, ''), phone_number, country, address_line1, address_line2,
	city, state, postal_code, wallet_address, chain_id, tnc_wallet_id, is_superuser, created_at`

func (repo *Repository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.DateOfBirth, &user.PhoneNumber, &user.Country, &user.AddressLine1, &user.AddressLine2,
		&user.City, &user.State, &user.PostalCode, &user.WalletAddress, &user.ChainID,
		&user.TNCWalletID, &user.IsSuperuser, &user.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// FindByIdentifier matches either username or email.
func (repo *Repository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1`
	return repo.scanUser(repo.db.QueryRow(ctx, query, identifier))
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return repo.scanUser(repo.db.QueryRow(ctx, query, email))
}

func (repo *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return repo.scanUser(repo.db.QueryRow(ctx, query, id))
}

func (repo *Repository) FindByWalletAddress(ctx context.Context, walletAddress string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(wallet_address) = LOWER($1)`
	return repo.scanUser(repo.db.QueryRow(ctx, query, walletAddress))
}

func (repo *Repository) FindByTNCWalletID(ctx context.Context, tncWalletID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tnc_wallet_id = $1`
	return repo.scanUser(repo.db.QueryRow(ctx, query, tncWalletID))
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, first_name, last_name, date_of_birth,
			phone_number, country, address_line1, address_line2, city, state, postal_code,
			wallet_address, chain_id, tnc_wallet_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::date, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.DateOfBirth,
		user.PhoneNumber, user.Country, user.AddressLine1, user.AddressLine2, user.City, user.State,
		user.PostalCode, user.WalletAddress, user.ChainID, user.TNCWalletID,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == "users_email_key" {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) UpdateEmail(ctx context.Context, userID int, email string) error {
	tag, err := repo.db.Exec(ctx, `UPDATE users SET email = $1 WHERE id = $2`, email, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		zap.L().Error("can't update email", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (repo *Repository) UpdatePassword(ctx context.Context, userID int, passwordHash string) error {
	_, err := repo.db.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		zap.L().Error("can't update password", zap.Error(err))
	}
	return err
}

func (repo *Repository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	_, err := repo.db.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE email = $2`, passwordHash, email)
	if err != nil {
		zap.L().Error("can't update password", zap.Error(err))
	}
	return err
}

func (repo *Repository) UpdateProfilePicture(ctx context.Context, userID int, picture []byte) error {
	_, err := repo.db.Exec(ctx, `UPDATE users SET profile_picture = $1 WHERE id = $2`, picture, userID)
	if err != nil {
		zap.L().Error("can't update profile picture", zap.Error(err))
	}
	return err
}

func (repo *Repository) GetProfilePicture(ctx context.Context, userID int) ([]byte, error) {
	var picture []byte
	err := repo.db.QueryRow(ctx, `SELECT profile_picture FROM users WHERE id = $1`, userID).Scan(&picture)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return picture, nil
}

func (repo *Repository) FindAll(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := repo.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't list users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
			&user.DateOfBirth, &user.PhoneNumber, &user.Country, &user.AddressLine1, &user.AddressLine2,
			&user.City, &user.State, &user.PostalCode, &user.WalletAddress, &user.ChainID,
			&user.TNCWalletID, &user.IsSuperuser, &user.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
