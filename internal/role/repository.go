package role

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"account-service/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	FindByName(ctx context.Context, name string) (Role, error)
	List(ctx context.Context) ([]Role, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// FindByName matches the name exactly; ErrNotFound wraps the name.
func (r *repository) FindByName(ctx context.Context, name string) (Role, error) {
	var rl Role
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name FROM roles WHERE name = $1",
		name,
	).Scan(&rl.ID, &rl.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return Role{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to find role",
			zap.String("role", name),
			zap.Error(err),
		)
		return Role{}, err
	}

	return rl, nil
}

func (r *repository) List(ctx context.Context) ([]Role, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM roles ORDER BY id")
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list roles", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	roles := []Role{}
	for rows.Next() {
		var rl Role
		if err := rows.Scan(&rl.ID, &rl.Name); err != nil {
			return nil, err
		}
		roles = append(roles, rl)
	}

	return roles, rows.Err()
}
