package repositories

import (
	"database/sql"
	"errors"
	"time"

	"alumnihub/internal/models"
)

type OTPRepository interface {
	Create(userID int, email, otpHash string, expiresAt time.Time) (*models.OTPVerification, error)
	// FindAny returns the newest outstanding record regardless of owner,
	// or nil when the ledger is empty.
	FindAny() (*models.OTPVerification, error)
	DeleteAllForUser(userID int) error
}

type otpRepository struct {
	DB *sql.DB
}

func NewOTPRepository(db *sql.DB) OTPRepository {
	return &otpRepository{DB: db}
}

func (r *otpRepository) Create(userID int, email, otpHash string, expiresAt time.Time) (*models.OTPVerification, error) {
	const q = `
		INSERT INTO otp_verifications (user_id, email, otp_hash, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	rec := &models.OTPVerification{UserID: userID, Email: email, OTPHash: otpHash, ExpiresAt: expiresAt}
	if err := r.DB.QueryRow(q, userID, email, otpHash, expiresAt).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *otpRepository) FindAny() (*models.OTPVerification, error) {
	const q = `
		SELECT id, user_id, email, otp_hash, created_at, expires_at
		FROM otp_verifications
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	rec := &models.OTPVerification{}
	err := r.DB.QueryRow(q).Scan(&rec.ID, &rec.UserID, &rec.Email, &rec.OTPHash, &rec.CreatedAt, &rec.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *otpRepository) DeleteAllForUser(userID int) error {
	_, err := r.DB.Exec(`DELETE FROM otp_verifications WHERE user_id = $1`, userID)
	return err
}
