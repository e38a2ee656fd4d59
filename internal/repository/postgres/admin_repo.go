package postgres

import (
	"context"
	"database/sql"
	"errors"

	"festregistration/internal/domain"
)

type adminRepository struct {
	DB *sql.DB
}

// NewAdminRepository returns an AdminRepository backed by the admin_users table.
func NewAdminRepository(db *sql.DB) domain.AdminRepository {
	return &adminRepository{
		DB: db,
	}
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, password_salt, created_at
		FROM admin_users
		WHERE email = $1
	`
	admin := &domain.AdminUser{}
	err := r.DB.QueryRowContext(ctx, query, email).
		Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.PasswordSalt, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return admin, nil
}
