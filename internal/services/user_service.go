package services

import (
	"log"
	"time"

	"alumnihub/internal/apperr"
	"alumnihub/internal/models"
	"alumnihub/internal/repositories"
)

type UserService interface {
	GetProfile(userID int) (*models.User, error)
	GetPublicProfile(username string) (*models.PublicProfile, error)
	UpdateProfile(userID int, patch *models.ProfilePatch) (*models.User, error)
	ChangePassword(userID int, oldPassword, newPassword string) error
	DeleteAccount(userID int) error
}

type userService struct {
	repo repositories.UserRepository
	auth AuthService
}

func NewUserService(repo repositories.UserRepository, auth AuthService) UserService {
	return &userService{repo: repo, auth: auth}
}

func (s *userService) getUser(userID int) (*models.User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, apperr.Internal("failed to look up user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

func (s *userService) GetProfile(userID int) (*models.User, error) {
	return s.getUser(userID)
}

func (s *userService) GetPublicProfile(username string) (*models.PublicProfile, error) {
	if username == "" {
		return nil, apperr.Validation("Username is required")
	}
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		return nil, apperr.Internal("failed to look up user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user.Public(), nil
}

func (s *userService) UpdateProfile(userID int, patch *models.ProfilePatch) (*models.User, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	if patch.UserName != nil && *patch.UserName != user.UserName {
		taken, err := s.repo.GetByUsername(*patch.UserName)
		if err != nil {
			return nil, apperr.Internal("failed to look up username", err)
		}
		if taken != nil {
			return nil, apperr.Conflict("Username already taken")
		}
	}

	patch.Merge(user)
	if err := s.repo.Update(user); err != nil {
		return nil, apperr.Internal("failed to update profile", err)
	}
	return user, nil
}

func (s *userService) ChangePassword(userID int, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperr.Validation("Old password and new password are required")
	}
	if len(newPassword) < minPasswordLength {
		return apperr.Validation("New Password is required and must be at least 8 characters")
	}

	user, err := s.getUser(userID)
	if err != nil {
		return err
	}

	ok, err := s.auth.CompareSecret(user.PasswordHash, oldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Authentication("Invalid old password")
	}

	hash, err := s.auth.HashSecret(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(user.ID, hash, time.Now()); err != nil {
		return apperr.Internal("failed to update password", err)
	}
	log.Printf("[user][change-password] password changed userID=%d", user.ID)
	return nil
}

func (s *userService) DeleteAccount(userID int) error {
	user, err := s.getUser(userID)
	if err != nil {
		return err
	}
	if err := s.repo.SetAccountDeleted(user.ID, true); err != nil {
		return apperr.Internal("failed to delete account", err)
	}
	log.Printf("[user][delete] account soft-deleted userID=%d", user.ID)
	return nil
}
