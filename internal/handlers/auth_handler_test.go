package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"alumnihub/internal/apperr"
	"alumnihub/internal/authz"
	"alumnihub/internal/handlers"
	"alumnihub/internal/models"
	"alumnihub/internal/routes"
	"alumnihub/internal/services"
)

type stubAccounts struct {
	user     *models.User
	restored bool
	token    string
	err      error

	gotResetToken  string
	gotNewPassword string
}

func (s *stubAccounts) Register(req *models.RegisterRequest) (*models.User, bool, error) {
	return s.user, s.restored, s.err
}

func (s *stubAccounts) Login(email, password string) (*models.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubAccounts) ForgotPassword(email string) error { return s.err }

func (s *stubAccounts) VerifyOTP(code string) (string, error) { return s.token, s.err }

// ResetPassword mirrors the real service's precondition order: payload
// validation first, then the credential check.
func (s *stubAccounts) ResetPassword(resetToken, newPassword string) error {
	s.gotResetToken = resetToken
	s.gotNewPassword = newPassword
	if s.err != nil {
		return s.err
	}
	if len(newPassword) < 8 {
		return apperr.Validation("New Password is required and must be at least 8 characters")
	}
	if resetToken == "" {
		return apperr.Authentication("Unauthorized request. Please verify OTP first.")
	}
	return nil
}

type stubUsers struct {
	user *models.User
	err  error
}

func (s *stubUsers) GetProfile(userID int) (*models.User, error) { return s.user, s.err }
func (s *stubUsers) GetPublicProfile(username string) (*models.PublicProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user.Public(), nil
}
func (s *stubUsers) UpdateProfile(userID int, patch *models.ProfilePatch) (*models.User, error) {
	return s.user, s.err
}
func (s *stubUsers) ChangePassword(userID int, oldPassword, newPassword string) error {
	return s.err
}
func (s *stubUsers) DeleteAccount(userID int) error { return s.err }

type stubRides struct {
	ride *models.Ride
	err  error
}

func (s *stubRides) RequestRide(riderID int, pickup, dropOff string) (*models.Ride, error) {
	return s.ride, s.err
}
func (s *stubRides) ListPending() ([]*models.Ride, error)              { return nil, s.err }
func (s *stubRides) Accept(rideID, driverID int) (*models.Ride, error) { return s.ride, s.err }
func (s *stubRides) Start(rideID, driverID int) (*models.Ride, error)  { return s.ride, s.err }
func (s *stubRides) Complete(rideID, driverID int) (*models.Ride, error) {
	return s.ride, s.err
}
func (s *stubRides) MyTrips(userID int) ([]*models.Ride, error) { return nil, s.err }

type testEnv struct {
	router   *gin.Engine
	accounts *stubAccounts
	users    *stubUsers
	rides    *stubRides
	tokens   services.TokenService
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	env := &testEnv{
		accounts: &stubAccounts{},
		users:    &stubUsers{},
		rides:    &stubRides{},
		tokens:   services.NewTokenService("test-secret", 15*time.Minute, 10*time.Minute),
	}
	router := gin.New()
	routes.SetupRoutes(router,
		env.tokens,
		handlers.NewAuthHandler(env.accounts),
		handlers.NewUserHandler(env.users),
		handlers.NewRideHandler(env.rides),
	)
	env.router = router
	return env
}

func (env *testEnv) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv()
	env.accounts.user = &models.User{ID: 1, UserName: "alice", Email: "alice@x.test"}

	w := env.do(http.MethodPost, "/api/v1/auth/register",
		`{"full_name":"Alice","user_name":"alice","email":"alice@x.test","password":"password123","student_status":"Alumni"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	require.Equal(t, true, body["success"])
	require.Equal(t, "User registered successfully", body["message"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	require.NotContains(t, data, "password_hash")
}

func TestRegisterRestoredEndpoint(t *testing.T) {
	env := newTestEnv()
	env.accounts.user = &models.User{ID: 1}
	env.accounts.restored = true

	w := env.do(http.MethodPost, "/api/v1/auth/register", `{"email":"alice@x.test"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.Equal(t, "Account restored successfully. Please log in.", body["message"])
	require.NotContains(t, body, "data")
}

func TestRegisterConflictEndpoint(t *testing.T) {
	env := newTestEnv()
	env.accounts.err = apperr.Conflict("User already exists, try logging in.")

	w := env.do(http.MethodPost, "/api/v1/auth/register", `{"email":"alice@x.test"}`, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	require.Equal(t, false, body["success"])
	require.Equal(t, "User already exists, try logging in.", body["message"])
}

func TestLoginEndpointReturnsToken(t *testing.T) {
	env := newTestEnv()
	env.accounts.user = &models.User{ID: 1, Email: "alice@x.test"}
	env.accounts.token = "signed-token"

	w := env.do(http.MethodPost, "/api/v1/auth/login",
		`{"email":"alice@x.test","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.Equal(t, "signed-token", body["accessToken"])
}

func TestResetPasswordRequiresBearerHeader(t *testing.T) {
	env := newTestEnv()

	for name, headers := range map[string]map[string]string{
		"missing header":   nil,
		"not bearer":       {"Authorization": "Basic abc"},
		"empty credential": {"Authorization": "Bearer "},
	} {
		t.Run(name, func(t *testing.T) {
			w := env.do(http.MethodPut, "/api/v1/auth/otp/reset",
				`{"new_password":"newpassword1"}`, headers)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			body := decode(t, w)
			require.Equal(t, "Unauthorized request. Please verify OTP first.", body["message"])
		})
	}
}

func TestResetPasswordValidationBeforeCredential(t *testing.T) {
	env := newTestEnv()

	// both defects at once: the payload failure wins over the missing header
	w := env.do(http.MethodPut, "/api/v1/auth/otp/reset",
		`{"new_password":"short"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	require.Equal(t, "New Password is required and must be at least 8 characters", body["message"])
}

func TestResetPasswordPassesTokenThrough(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodPut, "/api/v1/auth/otp/reset",
		`{"new_password":"newpassword1"}`,
		map[string]string{"Authorization": "Bearer the-temp-token"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "the-temp-token", env.accounts.gotResetToken)
	require.Equal(t, "newpassword1", env.accounts.gotNewPassword)
}

func TestResetPasswordExpiredTokenStatus(t *testing.T) {
	env := newTestEnv()
	env.accounts.err = apperr.Expired("Reset token has expired. Please request a new OTP.")

	w := env.do(http.MethodPut, "/api/v1/auth/otp/reset",
		`{"new_password":"newpassword1"}`,
		map[string]string{"Authorization": "Bearer stale"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	require.Equal(t, "Reset token has expired. Please request a new OTP.", body["message"])
}

func TestProtectedRoutesRejectResetToken(t *testing.T) {
	env := newTestEnv()
	env.users.user = &models.User{ID: 7, UserName: "alice"}

	resetToken, err := env.tokens.IssueReset(7)
	require.NoError(t, err)

	// a reset-scoped credential authorizes the reset call only
	w := env.do(http.MethodGet, "/api/v1/status/profile", "",
		map[string]string{"Authorization": "Bearer " + resetToken})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	sessionToken, err := env.tokens.IssueSession(&models.User{ID: 7, Role: authz.RoleUser})
	require.NoError(t, err)
	w = env.do(http.MethodGet, "/api/v1/status/profile", "",
		map[string]string{"Authorization": "Bearer " + sessionToken})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRideRoutesEnforceRoles(t *testing.T) {
	env := newTestEnv()
	env.rides.ride = &models.Ride{ID: 1, RiderID: 7, Status: models.RidePending}

	riderToken, err := env.tokens.IssueSession(&models.User{ID: 7, Role: authz.RoleRider})
	require.NoError(t, err)
	driverToken, err := env.tokens.IssueSession(&models.User{ID: 8, Role: authz.RoleDriver})
	require.NoError(t, err)

	// riders request, drivers don't
	w := env.do(http.MethodPost, "/api/v1/rides/request",
		`{"pickup_location":"Campus","drop_off_location":"Airport"}`,
		map[string]string{"Authorization": "Bearer " + riderToken})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPost, "/api/v1/rides/request",
		`{"pickup_location":"Campus","drop_off_location":"Airport"}`,
		map[string]string{"Authorization": "Bearer " + driverToken})
	require.Equal(t, http.StatusForbidden, w.Code)

	// drivers accept, riders don't
	w = env.do(http.MethodPatch, "/api/v1/rides/1/accept", "",
		map[string]string{"Authorization": "Bearer " + driverToken})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPatch, "/api/v1/rides/1/accept", "",
		map[string]string{"Authorization": "Bearer " + riderToken})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv()
	w := env.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "OK")
}
