package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"blog_nest/internal/common"
	"blog_nest/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateActive(ctx context.Context, id string, active bool) error
	UpdateRoles(ctx context.Context, id string, roles []string) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, username, email, hashed_password, roles, active, created_at, updated_at`

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	roles, err := json.Marshal(user.Roles)
	if err != nil {
		return fmt.Errorf("pgUserRepository.Create: marshal roles: %w", err)
	}

	query := `INSERT INTO users (id, username, email, hashed_password, roles, active)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.db.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.HashedPassword, roles, user.Active)
	if err != nil {
		// The unique indexes are the authority on uniqueness; the pre-check in
		// the registration flow only exists for the aggregated error list.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_username_key":
				return common.ErrDuplicateUsername
			case "users_email_key":
				return common.ErrDuplicateEmail
			}
			return fmt.Errorf("user already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username), "FindByUsername")
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email), "FindByEmail")
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), "FindByID")
}

func (r *pgUserRepository) scanOne(row *sql.Row, op string) (*model.User, error) {
	user := &model.User{}
	var roles []byte
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword, &roles,
		&user.Active, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.%s: %w", op, err)
	}
	if err := json.Unmarshal(roles, &user.Roles); err != nil {
		return nil, fmt.Errorf("pgUserRepository.%s: unmarshal roles: %w", op, err)
	}
	return user, nil
}

func (r *pgUserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.List: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		var roles []byte
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.HashedPassword, &roles,
			&user.Active, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgUserRepository.List: %w", err)
		}
		if err := json.Unmarshal(roles, &user.Roles); err != nil {
			return nil, fmt.Errorf("pgUserRepository.List: unmarshal roles: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.List: %w", err)
	}
	return users, nil
}

func (r *pgUserRepository) UpdateActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE users SET active = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateActive: %w", err)
	}
	return requireRowAffected(res, "UpdateActive")
}

func (r *pgUserRepository) UpdateRoles(ctx context.Context, id string, roles []string) error {
	rolesJSON, err := json.Marshal(roles)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateRoles: marshal roles: %w", err)
	}
	query := `UPDATE users SET roles = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, rolesJSON)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateRoles: %w", err)
	}
	return requireRowAffected(res, "UpdateRoles")
}

func requireRowAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgUserRepository.%s: %w", op, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
