package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"crane-backend/internal/authz"
	"crane-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.Role == "" {
		u.Role = authz.RoleDataEntry
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO users(email, full_name, password_hash, role, is_active)
         VALUES($1, $2, $3, $4, TRUE)
         RETURNING id, is_active, created_at`,
		u.Email, u.FullName, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash, role, is_active,
		 COALESCE(totp_secret, ''), totp_enabled, created_at, last_login
         FROM users WHERE id=$1`, id)

	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.FullName, &user.PasswordHash,
		&user.Role, &user.IsActive, &user.TOTPSecret, &user.TOTPEnabled,
		&user.CreatedAt, &user.LastLogin)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash, role, is_active,
		 COALESCE(totp_secret, ''), totp_enabled, created_at, last_login
         FROM users WHERE LOWER(email)=LOWER($1)`, email)

	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.FullName, &user.PasswordHash,
		&user.Role, &user.IsActive, &user.TOTPSecret, &user.TOTPEnabled,
		&user.CreatedAt, &user.LastLogin)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users, newest first
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, email, full_name, role, is_active, totp_enabled, created_at, last_login
         FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.Email, &user.FullName, &user.Role,
			&user.IsActive, &user.TOTPEnabled, &user.CreatedAt, &user.LastLogin)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// Update updates profile fields; the password has its own setter
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET email=$1, full_name=$2, role=$3, is_active=$4
         WHERE id=$5`,
		u.Email, u.FullName, u.Role, u.IsActive, u.ID)
	return err
}

// SetPassword replaces a user's password hash
func (r *UserRepository) SetPassword(ctx context.Context, userID int, passwordHash string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET password_hash=$1 WHERE id=$2`,
		passwordHash, userID)
	return err
}

// TouchLastLogin records a successful login
func (r *UserRepository) TouchLastLogin(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET last_login=NOW() WHERE id=$1`, userID)
	return err
}

// SetTOTPSecret stores the TOTP secret during 2FA enrollment
func (r *UserRepository) SetTOTPSecret(ctx context.Context, userID int, secret string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_secret=$1 WHERE id=$2`, secret, userID)
	return err
}

// EnableTOTP marks 2FA as enabled after the first successful verification
func (r *UserRepository) EnableTOTP(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_enabled=TRUE WHERE id=$1`, userID)
	return err
}

// DisableTOTP disables 2FA and clears the secret
func (r *UserRepository) DisableTOTP(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_enabled=FALSE, totp_secret=NULL WHERE id=$1`, userID)
	return err
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}
