package postgres

import (
	"context"
	"errors"

	"github.com/anilvs/casetrack/internal/errs"
	"github.com/anilvs/casetrack/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, name, role, email, phone, district, badge_number, department, pwd_hash, pwd_salt, created_at`

// Create inserts a new user row.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, name, role, email, phone, district, badge_number, department, pwd_hash, pwd_salt)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	var badge *string
	if u.BadgeNumber != "" {
		badge = &u.BadgeNumber
	}
	_, err := r.db.Pool.Exec(ctx, q,
		u.ID, u.Name, string(u.Role), u.Email, u.Phone, u.District, badge, u.Department, u.PwdHash, u.PwdSalt)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

// GetByEmail selects a user by unique email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

// GetByBadge selects an officer by badge number.
func (r *UserRepo) GetByBadge(ctx context.Context, badge string) (*model.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE badge_number=$1`, badge)
}

func (r *UserRepo) getBy(ctx context.Context, q string, arg any) (*model.User, error) {
	row := r.db.Pool.QueryRow(ctx, q, arg)
	var (
		u     model.User
		role  string
		badge *string
	)
	err := row.Scan(&u.ID, &u.Name, &role, &u.Email, &u.Phone, &u.District, &badge, &u.Department, &u.PwdHash, &u.PwdSalt, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	u.Role = model.Role(role)
	if badge != nil {
		u.BadgeNumber = *badge
	}
	return &u, nil
}
