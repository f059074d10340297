package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alumnihub/internal/apperr"
	"alumnihub/internal/models"
	"alumnihub/internal/services"
)

type UserHandler struct {
	users services.UserService
}

func NewUserHandler(users services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// @Summary      Get own profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /status/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperr.Authentication("Unauthorized"))
		return
	}

	user, err := h.users.GetProfile(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "User profile fetched successfully.", gin.H{"data": user})
}

// @Summary      View another member's public profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /status/users/{username} [get]
func (h *UserHandler) ViewPublicProfile(c *gin.Context) {
	profile, err := h.users.GetPublicProfile(c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "User profile fetched successfully.", gin.H{"data": profile})
}

// @Summary      Update own profile
// @Description  Partial update; omitted fields keep their current values
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.ProfilePatch  true  "Fields to update"
// @Success      200   {object}  map[string]interface{}
// @Failure      409   {object}  map[string]interface{}
// @Router       /status/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperr.Authentication("Unauthorized"))
		return
	}

	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, apperr.Validation(err.Error()))
		return
	}

	user, err := h.users.UpdateProfile(userID, &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "User profile updated successfully.", gin.H{"data": user})
}

// @Summary      Change password
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.ChangePasswordRequest  true  "Old and new password"
// @Success      200   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Router       /status/update/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperr.Authentication("Unauthorized"))
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation(err.Error()))
		return
	}

	if err := h.users.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Password updated successfully.", nil)
}

// @Summary      Delete own account (soft delete)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /status/account/delete [delete]
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperr.Authentication("Unauthorized"))
		return
	}

	if err := h.users.DeleteAccount(userID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Account deleted successfully.", nil)
}
