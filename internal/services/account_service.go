package services

import (
	"log"
	"strings"
	"time"

	"alumnihub/internal/apperr"
	"alumnihub/internal/authz"
	"alumnihub/internal/models"
	"alumnihub/internal/repositories"
	"alumnihub/internal/utils"
)

const (
	minPasswordLength = 8
	otpDigits         = 6
	defaultOTPTTL     = 10 * time.Minute
)

// AccountService owns the credential lifecycle: registration, login and the
// four-step password recovery flow (request -> verify -> temp token -> reset).
type AccountService interface {
	// Register creates a new account, or restores a soft-deleted one when
	// the email matches; restored reports which happened.
	Register(req *models.RegisterRequest) (user *models.User, restored bool, err error)
	Login(email, password string) (*models.User, string, error)
	ForgotPassword(email string) error
	VerifyOTP(code string) (string, error)
	ResetPassword(resetToken, newPassword string) error
}

type accountService struct {
	userRepo repositories.UserRepository
	otpRepo  repositories.OTPRepository
	auth     AuthService
	tokens   TokenService
	emails   EmailService
	otpTTL   time.Duration
}

func NewAccountService(
	userRepo repositories.UserRepository,
	otpRepo repositories.OTPRepository,
	auth AuthService,
	tokens TokenService,
	emails EmailService,
	otpTTL time.Duration,
) AccountService {
	if otpTTL == 0 {
		otpTTL = defaultOTPTTL
	}
	return &accountService{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		auth:     auth,
		tokens:   tokens,
		emails:   emails,
		otpTTL:   otpTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *accountService) Register(req *models.RegisterRequest) (*models.User, bool, error) {
	if req.FullName == "" || req.Email == "" || req.Password == "" || req.StudentStatus == "" {
		return nil, false, apperr.Validation("Full Name, Email, Student Status, Password are required")
	}
	if req.UserName == "" {
		return nil, false, apperr.Validation("Username is required and must be unique")
	}
	if len(req.Password) < minPasswordLength {
		return nil, false, apperr.Validation("Password must be at least 8 characters long")
	}

	role := authz.RoleUser
	if req.Role != "" {
		parsed, err := authz.ParseRole(req.Role)
		if err != nil {
			return nil, false, apperr.Validation("Invalid role")
		}
		role = parsed
	}

	// username is unconditionally unique, soft-deleted records included
	if existing, err := s.userRepo.GetByUsername(req.UserName); err != nil {
		return nil, false, apperr.Internal("failed to look up username", err)
	} else if existing != nil {
		return nil, false, apperr.Conflict("Username already taken")
	}

	email := normalizeEmail(req.Email)
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, false, apperr.Internal("failed to look up email", err)
	}
	if existing != nil {
		if existing.IsAccountDeleted {
			existing.IsAccountDeleted = false
			if err := s.userRepo.Update(existing); err != nil {
				return nil, false, apperr.Internal("failed to restore account", err)
			}
			log.Printf("[account][register] restored soft-deleted account userID=%d", existing.ID)
			return existing, true, nil
		}
		return nil, false, apperr.Conflict("User already exists, try logging in.")
	}

	hash, err := s.auth.HashSecret(req.Password)
	if err != nil {
		return nil, false, err
	}

	user := &models.User{
		FullName:         req.FullName,
		UserName:         req.UserName,
		Email:            email,
		PasswordHash:     hash,
		Role:             role,
		StudentStatus:    req.StudentStatus,
		YearGroup:        req.YearGroup,
		Occupation:       req.Occupation,
		YearClass:        req.YearClass,
		Residency:        req.Residency,
		Hall:             req.Hall,
		AffiliatedGroups: req.AffiliatedGroups,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, false, apperr.Internal("failed to create user", err)
	}

	if s.emails != nil {
		// warn but do not fail registration
		if err := s.emails.SendWelcomeEmail(user.Email, user.FullName); err != nil {
			log.Printf("[account][register] warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}
	return user, false, nil
}

func (s *accountService) Login(email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperr.Validation("All fields are required")
	}

	user, err := s.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return nil, "", apperr.Internal("failed to look up user", err)
	}
	if user == nil {
		return nil, "", apperr.NotFound("User not found, please sign up")
	}
	if user.IsAccountDeleted {
		return nil, "", apperr.Forbidden("Account has been deleted, please sign up again.")
	}

	ok, err := s.auth.CompareSecret(user.PasswordHash, password)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", apperr.Authentication("Invalid credentials")
	}

	token, err := s.tokens.IssueSession(user)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[account][login] success userID=%d role=%s", user.ID, user.Role)
	return user, token, nil
}

// ForgotPassword issues an OTP for the account behind email. An unknown
// email is reported as success so callers cannot probe for accounts.
func (s *accountService) ForgotPassword(email string) error {
	if email == "" {
		return apperr.Validation("Email is required to reset your password")
	}

	user, err := s.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return apperr.Internal("failed to look up user", err)
	}
	if user == nil {
		log.Printf("[account][forgot] request for unknown email, reporting success")
		return nil
	}

	code, err := utils.GenerateOTP(otpDigits)
	if err != nil {
		return apperr.Internal("failed to generate OTP", err)
	}
	hash, err := s.auth.HashSecret(code)
	if err != nil {
		return err
	}
	if _, err := s.otpRepo.Create(user.ID, user.Email, hash, time.Now().Add(s.otpTTL)); err != nil {
		return apperr.Internal("failed to store OTP", err)
	}

	// delivery is part of the contract; a failed send fails the request
	if err := s.emails.SendPasswordResetOTP(user.Email, user.FullName, code); err != nil {
		return apperr.Internal("failed to send OTP email", err)
	}
	log.Printf("[account][forgot] OTP issued userID=%d", user.ID)
	return nil
}

// VerifyOTP checks code against the outstanding ledger record and trades it
// for a short-lived reset token. The whole batch for the owning user is
// purged on success and on expiry: every code is single-use.
func (s *accountService) VerifyOTP(code string) (string, error) {
	if code == "" {
		return "", apperr.Validation("OTP is required")
	}

	rec, err := s.otpRepo.FindAny()
	if err != nil {
		return "", apperr.Internal("failed to look up OTP", err)
	}
	if rec == nil {
		return "", apperr.NotFound("OTP not found or already used")
	}

	if rec.Expired(time.Now()) {
		if err := s.otpRepo.DeleteAllForUser(rec.UserID); err != nil {
			return "", apperr.Internal("failed to purge expired OTPs", err)
		}
		return "", apperr.Expired("OTP has expired. Request a new one.")
	}

	user, err := s.userRepo.GetByID(rec.UserID)
	if err != nil {
		return "", apperr.Internal("failed to look up user", err)
	}
	if user == nil {
		return "", apperr.NotFound("User not found")
	}

	ok, err := s.auth.CompareSecret(rec.OTPHash, code)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.Authentication("Invalid OTP")
	}

	token, err := s.tokens.IssueReset(user.ID)
	if err != nil {
		return "", err
	}
	if err := s.otpRepo.DeleteAllForUser(user.ID); err != nil {
		return "", apperr.Internal("failed to purge OTPs", err)
	}
	log.Printf("[account][verify-otp] success userID=%d", user.ID)
	return token, nil
}

func (s *accountService) ResetPassword(resetToken, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperr.Validation("New Password is required and must be at least 8 characters")
	}
	if resetToken == "" {
		return apperr.Authentication("Unauthorized request. Please verify OTP first.")
	}

	claims, err := s.tokens.Verify(resetToken)
	if err != nil {
		if apperr.Is(err, apperr.KindExpired) {
			return apperr.Expired("Reset token has expired. Please request a new OTP.")
		}
		return apperr.Authentication("Invalid reset token.")
	}
	if claims.Scope != ScopePasswordReset {
		return apperr.Authentication("Invalid reset token.")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return apperr.Internal("failed to look up user", err)
	}
	if user == nil {
		return apperr.NotFound("User not found")
	}

	hash, err := s.auth.HashSecret(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, hash, time.Now()); err != nil {
		return apperr.Internal("failed to update password", err)
	}
	log.Printf("[account][reset] password changed userID=%d", user.ID)

	// the password change is already committed at this point; a failed
	// confirmation send still fails the request
	if err := s.emails.SendPasswordChangedEmail(user.Email, user.FullName); err != nil {
		return apperr.Internal("failed to send confirmation email", err)
	}
	return nil
}
