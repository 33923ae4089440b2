package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils"
	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, verificationToken string) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	VerifyEmail(ctx context.Context, token string) (uuid.UUID, error)
}

type userRepository struct {
	DB DBTX
}

func NewUserRepo(db DBTX) UserRepository {
	return &userRepository{DB: db}
}

// CreateUser inserts the user and its profile in a single statement.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User, verificationToken string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		WITH new_user AS (
			INSERT INTO users (username, email, password, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			RETURNING id, created_at, updated_at
		), new_profile AS (
			INSERT INTO profiles (user_id, verification_token)
			SELECT id, $4 FROM new_user
		)
		SELECT id, created_at, updated_at FROM new_user`

	return r.DB.QueryRowContext(dbCtx, query, user.Username, user.Email, user.Password, verificationToken).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}
	query := `SELECT id, username, email, password, created_at, updated_at FROM users WHERE LOWER(email) = LOWER($1)`

	err := r.DB.QueryRowContext(dbCtx, query, email).Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}
	query := `SELECT id, username, email, password, created_at, updated_at FROM users WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return expectAffected(result)
}

func (r *userRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	profile := &models.Profile{User: &models.UserInfo{}}

	query := `
		SELECT p.user_id, u.username, u.email, p.address, p.phone, p.email_verified, p.verification_token
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&profile.UserID, &profile.User.Username, &profile.User.Email, &profile.Address, &profile.Phone, &profile.EmailVerified, &profile.VerificationToken)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	profile.User.ID = profile.UserID

	return profile, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, profile *models.Profile) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE profiles SET address = $1, phone = $2 WHERE user_id = $3`, profile.Address, profile.Phone, profile.UserID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return expectAffected(result)
}

// VerifyEmail marks the profile holding token as verified and clears the
// token, so each token works once. Unknown tokens return sql.ErrNoRows.
func (r *userRepository) VerifyEmail(ctx context.Context, token string) (uuid.UUID, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var userID uuid.UUID

	query := `
		UPDATE profiles
		SET email_verified = TRUE, verification_token = ''
		WHERE verification_token = $1 AND verification_token <> ''
		RETURNING user_id
	`

	if err := r.DB.QueryRowContext(dbCtx, query, token).Scan(&userID); err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}
