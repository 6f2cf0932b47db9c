package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/tanacoin/platform/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

var userRows = []string{
	"id", "username", "email", "password_hash", "first_name", "last_name",
	"date_of_birth", "phone_number", "country", "address_line1", "address_line2",
	"city", "state", "postal_code", "wallet_address", "chain_id", "tnc_wallet_id",
	"is_superuser", "created_at",
}

func userRow(id int, username, email string) []any {
	return []any{
		id, username, email, "hash", "John", "Doe",
		"1990-01-01", "+331234567", "FR", "1 rue de Rivoli", "",
		"Paris", "", "75001", "0xwallet", "1", "TNC-0001",
		false, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

const findByIdentifierQuery = `SELECT id, username, email, password_hash, first_name, last_name,
	COALESCE(date_of_birth::text, ''), phone_number, country, address_line1, address_line2,
	city, state, postal_code, wallet_address, chain_id, tnc_wallet_id, is_superuser, created_at
	FROM users WHERE username = $1 OR email = $1`

func TestRepository_FindByIdentifier(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name       string
		identifier string
		mockSetup  func()
		expectErr  bool
		result     *domain.User
	}{
		{
			name:       "Matches by username or email",
			identifier: "john",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(findByIdentifierQuery)).
					WithArgs("john").
					WillReturnRows(pgxmock.NewRows(userRows).AddRow(userRow(1, "john", "john@example.com")...))
			},
			result: &domain.User{ID: 1, Username: "john", Email: "john@example.com"},
		},
		{
			name:       "Unknown identifier returns nil",
			identifier: "nobody",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(findByIdentifierQuery)).
					WithArgs("nobody").
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:       "Database error",
			identifier: "john",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(findByIdentifierQuery)).
					WithArgs("john").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByIdentifier(context.Background(), tt.identifier)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.result == nil {
				assert.Nil(t, result)
			} else {
				assert.NotNil(t, result)
				assert.Equal(t, tt.result.Username, result.Username)
				assert.Equal(t, tt.result.Email, result.Email)
			}
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	newUser := func() *domain.User {
		return &domain.User{
			Username:      "john",
			Email:         "john@example.com",
			PasswordHash:  "hash",
			FirstName:     "John",
			LastName:      "Doe",
			DateOfBirth:   "1990-01-01",
			PhoneNumber:   "+331234567",
			Country:       "FR",
			AddressLine1:  "1 rue de Rivoli",
			City:          "Paris",
			PostalCode:    "75001",
			WalletAddress: "0xwallet",
			ChainID:       "1",
			TNCWalletID:   "TNC-0001",
		}
	}

	tests := []struct {
		name      string
		mockSetup func()
		wantErr   error
	}{
		{
			name: "Successfully creates user",
			mockSetup: func() {
				mock.ExpectQuery("INSERT INTO users").
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, createdAt))
			},
		},
		{
			name: "Duplicate email",
			mockSetup: func() {
				mock.ExpectQuery("INSERT INTO users").
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
			},
			wantErr: ErrEmailTaken,
		},
		{
			name: "Duplicate username",
			mockSetup: func() {
				mock.ExpectQuery("INSERT INTO users").
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
			},
			wantErr: ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), newUser())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, 1, result.ID)
				assert.Equal(t, createdAt, result.CreatedAt)
			}
		})
	}
}

func TestRepository_UpdateEmail(t *testing.T) {
	repo, mock := NewMock(t)
	query := `UPDATE users SET email = $1 WHERE id = $2`

	tests := []struct {
		name      string
		mockSetup func()
		wantErr   error
	}{
		{
			name: "Successfully updates email",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(query)).
					WithArgs("new@example.com", 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Email already registered",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(query)).
					WithArgs("new@example.com", 1).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			wantErr: ErrEmailTaken,
		},
		{
			name: "Unknown user",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(query)).
					WithArgs("new@example.com", 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantErr: pgx.ErrNoRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.UpdateEmail(context.Background(), 1, "new@example.com")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_FindAll(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Returns all users ordered by id", func(t *testing.T) {
		rows := pgxmock.NewRows(userRows).
			AddRow(userRow(1, "john", "john@example.com")...).
			AddRow(userRow(2, "jane", "jane@example.com")...)
		mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id").
			WillReturnRows(rows)

		users, err := repo.FindAll(context.Background())
		assert.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, "jane", users[1].Username)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id").
			WillReturnError(errors.New("database error"))

		users, err := repo.FindAll(context.Background())
		assert.Error(t, err)
		assert.Nil(t, users)
	})
}
