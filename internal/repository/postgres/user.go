package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"equiphire-backend/internal/domain"
	"equiphire-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, phone_number, name, role, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now().Format(time.RFC3339)
	return r.db.QueryRowContext(ctx, query, user.Email, user.PhoneNumber, user.Name, user.Role, now, now).Scan(&user.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT id, email, phone_number, name, role, created_on, updated_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Email, &user.PhoneNumber,
		&user.Name, &user.Role, &user.CreatedOn, &user.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT id, email, phone_number, name, role, created_on, updated_on FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &user.PhoneNumber,
		&user.Name, &user.Role, &user.CreatedOn, &user.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET email=$1, phone_number=$2, name=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, user.Email, user.PhoneNumber, user.Name,
		time.Now().Format(time.RFC3339), user.ID)
	return err
}
