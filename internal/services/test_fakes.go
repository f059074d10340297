package services

import (
	"errors"
	"sync"
	"time"

	"alumnihub/internal/models"
)

// In-memory fakes implementing the repository and notifier contracts.
// Error fields allow behavior injection from tests.

var errSMTPDown = errors.New("smtp: connection refused")

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*models.User

	getErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*models.User{}}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.UserName == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[user.ID]
	if !ok {
		return errors.New("user not found")
	}
	cp := *user
	cp.PasswordHash = stored.PasswordHash
	cp.UpdatedAt = time.Now()
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdatePassword(userID int, hash string, changedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = hash
	t := changedAt
	u.PasswordChangedAt = &t
	u.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) SetAccountDeleted(userID int, deleted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.IsAccountDeleted = deleted
	u.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func (f *fakeUserRepo) remove(userID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, userID)
}

type fakeOTPRepo struct {
	mu      sync.Mutex
	nextID  int64
	records []*models.OTPVerification
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{}
}

func (f *fakeOTPRepo) Create(userID int, email, otpHash string, expiresAt time.Time) (*models.OTPVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	rec := &models.OTPVerification{
		ID:        f.nextID,
		UserID:    userID,
		Email:     email,
		OTPHash:   otpHash,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeOTPRepo) FindAny() (*models.OTPVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.records) == 0 {
		return nil, nil
	}
	// newest first, matching the repository query
	rec := f.records[len(f.records)-1]
	cp := *rec
	return &cp, nil
}

func (f *fakeOTPRepo) DeleteAllForUser(userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []*models.OTPVerification
	for _, rec := range f.records {
		if rec.UserID != userID {
			kept = append(kept, rec)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeOTPRepo) countForUser(userID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, rec := range f.records {
		if rec.UserID == userID {
			n++
		}
	}
	return n
}

func (f *fakeOTPRepo) expireAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		rec.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

type fakeRideRepo struct {
	mu     sync.Mutex
	nextID int
	rides  map[int]*models.Ride
}

func newFakeRideRepo() *fakeRideRepo {
	return &fakeRideRepo{rides: map[int]*models.Ride{}}
}

func (f *fakeRideRepo) Create(ride *models.Ride) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ride.ID = f.nextID
	ride.CreatedAt = time.Now()
	ride.UpdatedAt = ride.CreatedAt
	cp := *ride
	f.rides[ride.ID] = &cp
	return nil
}

func (f *fakeRideRepo) GetByID(id int) (*models.Ride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rides[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRideRepo) ListByStatus(status models.RideStatus) ([]*models.Ride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Ride
	for _, r := range f.rides {
		if r.Status == status {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRideRepo) ListForUser(userID int) ([]*models.Ride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Ride
	for _, r := range f.rides {
		if r.RiderID == userID || (r.DriverID != nil && *r.DriverID == userID) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRideRepo) UpdateStatus(id int, status models.RideStatus, driverID *int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rides[id]
	if !ok {
		return errors.New("ride not found")
	}
	r.Status = status
	if driverID != nil {
		d := *driverID
		r.DriverID = &d
	}
	r.UpdatedAt = time.Now()
	return nil
}

type sentEmail struct {
	to      string
	subject string
	code    string
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []sentEmail

	otpErr     error
	changedErr error
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{}
}

func (f *fakeEmailService) SendWelcomeEmail(email, fullName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{to: email, subject: "welcome"})
	return nil
}

func (f *fakeEmailService) SendPasswordResetOTP(email, fullName, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.otpErr != nil {
		return f.otpErr
	}
	f.sent = append(f.sent, sentEmail{to: email, subject: "otp", code: code})
	return nil
}

func (f *fakeEmailService) SendPasswordChangedEmail(email, fullName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.changedErr != nil {
		return f.changedErr
	}
	f.sent = append(f.sent, sentEmail{to: email, subject: "changed"})
	return nil
}

// lastOTPCode returns the passcode from the most recent OTP email.
func (f *fakeEmailService) lastOTPCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if f.sent[i].subject == "otp" {
			return f.sent[i].code
		}
	}
	return ""
}

func (f *fakeEmailService) countBySubject(subject string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.sent {
		if m.subject == subject {
			n++
		}
	}
	return n
}
