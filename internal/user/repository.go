package user

import (
	"context"
	"database/sql"
	"errors"

	"account-service/internal/db"
	"account-service/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p CreateParams) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	ListWithRoles(ctx context.Context) ([]UserView, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Create inserts the user in its own transaction. A duplicate email is
// reported as ErrEmailExists and nothing is written.
func (r *repository) Create(ctx context.Context, p CreateParams) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("db: failed to begin transaction", zap.Error(err))
		return User{}, err
	}
	defer tx.Rollback()

	u := User{
		FullName:    p.FullName,
		Email:       p.Email,
		Password:    p.PasswordHash,
		PhoneNumber: p.PhoneNumber,
		Country:     p.Country,
		RoleID:      p.RoleID,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (full_name, email, password, phone_number, country, role_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		p.FullName, p.Email, p.PasswordHash, p.PhoneNumber, p.Country, p.RoleID,
	).Scan(&u.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Info("db: email already registered")
			return User{}, ErrEmailExists
		}
		log.Error("db: failed to insert user", zap.Error(err))
		return User{}, err
	}

	if err := tx.Commit(); err != nil {
		if db.IsUniqueViolation(err) {
			return User{}, ErrEmailExists
		}
		log.Error("db: failed to commit user", zap.Error(err))
		return User{}, err
	}

	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.full_name, u.email, u.password, u.phone_number, u.country, u.role_id, r.name
		FROM users u
		INNER JOIN roles r ON r.id = u.role_id
		WHERE u.email = $1`,
		email,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.Password, &u.PhoneNumber, &u.Country, &u.RoleID, &u.RoleName)

	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to find user by email", zap.Error(err))
		return User{}, err
	}

	return u, nil
}

// ListWithRoles returns every user in primary-key order.
func (r *repository) ListWithRoles(ctx context.Context) ([]UserView, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.full_name, u.email, u.phone_number, u.country, u.role_id, r.name
		FROM users u
		INNER JOIN roles r ON r.id = u.role_id
		ORDER BY u.id`)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	users := []UserView{}
	for rows.Next() {
		var v UserView
		if err := rows.Scan(&v.ID, &v.FullName, &v.Email, &v.PhoneNumber, &v.Country, &v.RoleID, &v.RoleName); err != nil {
			return nil, err
		}
		users = append(users, v)
	}

	return users, rows.Err()
}
