package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	dbtx "slackvault/db/tx"
	"slackvault/models"
)

type UsersRepository struct {
	db *sqlx.DB
}

func NewUsersRepository(db *sqlx.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// CreateUsers inserts the full user list as a single bulk insert. A unique
// violation means some of these rows already exist from a previous run; the
// caller decides whether that is expected.
func (r *UsersRepository) CreateUsers(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	e := dbtx.GetTransactional(ctx, r.db)

	query := `
		INSERT INTO users (id, team_id, name, real_name)
		VALUES (:id, :team_id, :name, :real_name)`

	if _, err := sqlx.NamedExecContext(ctx, e, query, users); err != nil {
		return fmt.Errorf("failed to insert users: %w", err)
	}
	return nil
}

// ListUsers returns users matching the filter, ordered by name.
func (r *UsersRepository) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	e := dbtx.GetTransactional(ctx, r.db)

	query := `SELECT id, team_id, name, real_name FROM users`
	var args []any
	if realName, ok := filter.RealName.Get(); ok {
		query += ` WHERE real_name = ?`
		args = append(args, realName)
	}
	query += ` ORDER BY name ASC`

	users := []models.User{}
	if err := sqlx.SelectContext(ctx, e, &users, e.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
