package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/egalea504/LightBnB/internal/domain"
	"github.com/egalea504/LightBnB/pkg/database"
	apperrors "github.com/egalea504/LightBnB/pkg/errors"
)

const (
	selectUserByEmail = `
		SELECT id, name, email, password
		FROM users
		WHERE email = $1`

	selectUserByID = `
		SELECT id, name, email, password
		FROM users
		WHERE id = $1`

	insertUser = `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password`
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail retrieves the first user with the given email. Matching follows
// the column collation; the email is not normalized.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (u *domain.User, err error) {
	ctx, end := database.TraceQuery(ctx, "GetUserWithEmail", selectUserByEmail)
	defer func() { end(err) }()

	u, err = scanUser(r.db.QueryRow(ctx, selectUserByEmail, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user", email)
		}
		return nil, apperrors.Store("get user by email", err)
	}
	return u, nil
}

// GetByID retrieves a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (u *domain.User, err error) {
	ctx, end := database.TraceQuery(ctx, "GetUserWithID", selectUserByID)
	defer func() { end(err) }()

	u, err = scanUser(r.db.QueryRow(ctx, selectUserByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user", id)
		}
		return nil, apperrors.Store("get user by id", err)
	}
	return u, nil
}

// Create inserts a user and returns the stored row. There is no uniqueness
// pre-check; a duplicate email is rejected by the users_email_key constraint.
func (r *UserRepository) Create(ctx context.Context, nu domain.NewUser) (u *domain.User, err error) {
	ctx, end := database.TraceQuery(ctx, "AddUser", insertUser)
	defer func() { end(err) }()

	u, err = scanUser(r.db.QueryRow(ctx, insertUser, nu.Name, nu.Email, nu.Password))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("user", "email", nu.Email)
		}
		return nil, apperrors.Store("insert user", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password); err != nil {
		return nil, err
	}
	return &u, nil
}
