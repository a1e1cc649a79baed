package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implements the UserRepository port over PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository builds the persistence adapter for users.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persists a new user.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.CompanyID, user.Email, user.PasswordHash, user.Name, user.Role, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns a user by ID, or nil when none exists.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `
		SELECT id, company_id, email, password_hash, name, role, status, created_at, updated_at
		FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id), "get user by id")
}

// GetByEmail returns a user by email (any company), or nil when none exists.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `
		SELECT id, company_id, email, password_hash, name, role, status, created_at, updated_at
		FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, email), "get user by email")
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// Update rewrites a user's mutable fields.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, name = $4, role = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.Status, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListByCompany lists users of a company with pagination.
func (r *UserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT id, company_id, email, password_hash, name, role, status, created_at, updated_at
		FROM users WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete removes a user by ID.
func (r *UserRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
