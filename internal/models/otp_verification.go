package models

import "time"

// OTPVerification is one issued passcode. Only the bcrypt hash of the code
// is stored; records are purged in bulk per user, never updated in place.
type OTPVerification struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"user_id"`
	Email     string    `json:"email"`
	OTPHash   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (o *OTPVerification) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
