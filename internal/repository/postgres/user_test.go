package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egalea504/LightBnB/internal/domain"
	apperrors "github.com/egalea504/LightBnB/pkg/errors"
)

func newUserTestFixture(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewUserRepository(mock), mock
}

func userRow(u domain.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "email", "password"}).
		AddRow(u.ID, u.Name, u.Email, u.Password)
}

// ---------------------------------------------------------------------------
// GetByEmail
// ---------------------------------------------------------------------------

func TestUserRepository_GetByEmail_Success(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	want := domain.User{ID: 1, Name: "Eva Stanley", Email: "sebastianguerra@ymail.com", Password: "$2a$10$FB"}

	mock.ExpectQuery(`SELECT id, name, email, password\s+FROM users\s+WHERE email =`).
		WithArgs(want.Email).
		WillReturnRows(userRow(want))

	got, err := repo.GetByEmail(context.Background(), want.Email)
	require.NoError(t, err)
	assert.Equal(t, &want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM users\s+WHERE email =`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.False(t, errors.Is(err, apperrors.ErrStore))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_StoreFailure(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	cause := errors.New("connection refused")
	mock.ExpectQuery(`FROM users\s+WHERE email =`).
		WithArgs("ada@example.com").
		WillReturnError(cause)

	got, err := repo.GetByEmail(context.Background(), "ada@example.com")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrStore))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// GetByID
// ---------------------------------------------------------------------------

func TestUserRepository_GetByID_Success(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	want := domain.User{ID: 42, Name: "Ada", Email: "ada@example.com", Password: "x"}

	mock.ExpectQuery(`FROM users\s+WHERE id =`).
		WithArgs(int64(42)).
		WillReturnRows(userRow(want))

	got, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "Ada", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM users\s+WHERE id =`).
		WithArgs(int64(999)).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), 999)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestUserRepository_Create_Success(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	nu := domain.NewUser{Name: "Ada", Email: "ada@example.com", Password: "x"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(nu.Name, nu.Email, nu.Password).
		WillReturnRows(userRow(domain.User{ID: 1001, Name: nu.Name, Email: nu.Email, Password: nu.Password}))

	got, err := repo.Create(context.Background(), nu)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), got.ID)
	assert.Equal(t, nu.Name, got.Name)
	assert.Equal(t, nu.Email, got.Email)
	assert.Equal(t, nu.Password, got.Password)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	nu := domain.NewUser{Name: "Ada", Email: "ada@example.com", Password: "x"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(nu.Name, nu.Email, nu.Password).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	got, err := repo.Create(context.Background(), nu)
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_StoreFailure(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Ada", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("server closed the connection"))

	got, err := repo.Create(context.Background(), domain.NewUser{Name: "Ada"})
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrStore))
	assert.NoError(t, mock.ExpectationsWereMet())
}
