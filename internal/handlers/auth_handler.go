package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alumnihub/internal/apperr"
	"alumnihub/internal/middleware"
	"alumnihub/internal/models"
	"alumnihub/internal/services"
)

type AuthHandler struct {
	accounts services.AccountService
}

func NewAuthHandler(accounts services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// @Summary      Register a new account
// @Description  Creates a user with a hashed password, or restores a soft-deleted account with the same email
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.RegisterRequest  true  "Registration payload"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Failure      409   {object}  map[string]interface{}
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation(err.Error()))
		return
	}

	user, restored, err := h.accounts.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	if restored {
		respondOK(c, http.StatusOK, "Account restored successfully. Please log in.", nil)
		return
	}
	respondOK(c, http.StatusCreated, "User registered successfully", gin.H{"data": user})
}

// @Summary      Log in
// @Description  Authenticates a user and returns a session access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.LoginRequest  true  "Login payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation(err.Error()))
		return
	}

	user, token, err := h.accounts.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "User logged in successfully", gin.H{
		"accessToken": token,
		"data":        user,
	})
}

// @Summary      Request a password reset OTP
// @Description  Emails a one-time passcode; the response does not reveal whether the account exists
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.ForgotPasswordRequest  true  "Account email"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation(err.Error()))
		return
	}

	if err := h.accounts.ForgotPassword(req.Email); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK,
		"A password reset OTP has been sent to your email. Please check your inbox.", nil)
}

// @Summary      Verify a password reset OTP
// @Description  Trades a valid OTP for a short-lived reset token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.VerifyOTPRequest  true  "OTP code"
// @Success      200   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Router       /auth/otp/verify [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation(err.Error()))
		return
	}

	tempToken, err := h.accounts.VerifyOTP(req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK,
		"OTP verified successfully. You can now reset your password.",
		gin.H{"tempToken": tempToken})
}

// @Summary      Reset password
// @Description  Sets a new password; requires the reset token from OTP verification as a Bearer credential
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        Authorization  header    string                       true  "Bearer reset token"
// @Param        body           body      models.ResetPasswordRequest  true  "New password"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Router       /auth/otp/reset [put]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation(err.Error()))
		return
	}

	// the token may be absent; the service checks it after validating the
	// new password so a bad payload reports Validation, not Authentication
	token, _ := middleware.BearerToken(c)

	if err := h.accounts.ResetPassword(token, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK,
		"Password reset successfully. You can now log in with your new password.", nil)
}
