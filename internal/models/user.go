package models

import (
	"time"

	"alumnihub/internal/authz"
)

type User struct {
	ID               int        `json:"id"`
	FullName         string     `json:"full_name"`
	UserName         string     `json:"user_name"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"` // never serialized
	Role             authz.Role `json:"role"`
	StudentStatus    string     `json:"student_status"`
	YearGroup        string     `json:"year_group,omitempty"`
	Occupation       string     `json:"occupation,omitempty"`
	YearClass        string     `json:"year_class,omitempty"`
	Residency        string     `json:"residency,omitempty"`
	Hall             string     `json:"hall,omitempty"`
	About            string     `json:"about,omitempty"`
	ProfileImage     string     `json:"profile_image,omitempty"`
	BackgroundImage  string     `json:"background_image,omitempty"`
	AffiliatedGroups []string   `json:"affiliated_groups,omitempty"`

	PasswordChangedAt *time.Time `json:"password_changed_at,omitempty"`
	IsAccountDeleted  bool       `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PublicProfile is the subset of a user another member may see.
type PublicProfile struct {
	FullName         string   `json:"full_name"`
	UserName         string   `json:"user_name"`
	YearGroup        string   `json:"year_group,omitempty"`
	Occupation       string   `json:"occupation,omitempty"`
	About            string   `json:"about,omitempty"`
	ProfileImage     string   `json:"profile_image,omitempty"`
	BackgroundImage  string   `json:"background_image,omitempty"`
	AffiliatedGroups []string `json:"affiliated_groups,omitempty"`
}

func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		FullName:         u.FullName,
		UserName:         u.UserName,
		YearGroup:        u.YearGroup,
		Occupation:       u.Occupation,
		About:            u.About,
		ProfileImage:     u.ProfileImage,
		BackgroundImage:  u.BackgroundImage,
		AffiliatedGroups: u.AffiliatedGroups,
	}
}

// ProfilePatch carries the updatable profile fields. A nil field means
// "keep the current value"; Merge applies the patch onto a full record.
type ProfilePatch struct {
	FullName         *string   `json:"full_name"`
	UserName         *string   `json:"user_name"`
	YearGroup        *string   `json:"year_group"`
	Occupation       *string   `json:"occupation"`
	About            *string   `json:"about"`
	ProfileImage     *string   `json:"profile_image"`
	BackgroundImage  *string   `json:"background_image"`
	AffiliatedGroups *[]string `json:"affiliated_groups"`
}

func (p *ProfilePatch) Merge(u *User) {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.UserName != nil {
		u.UserName = *p.UserName
	}
	if p.YearGroup != nil {
		u.YearGroup = *p.YearGroup
	}
	if p.Occupation != nil {
		u.Occupation = *p.Occupation
	}
	if p.About != nil {
		u.About = *p.About
	}
	if p.ProfileImage != nil {
		u.ProfileImage = *p.ProfileImage
	}
	if p.BackgroundImage != nil {
		u.BackgroundImage = *p.BackgroundImage
	}
	if p.AffiliatedGroups != nil {
		u.AffiliatedGroups = *p.AffiliatedGroups
	}
}

type RegisterRequest struct {
	FullName         string   `json:"full_name"`
	UserName         string   `json:"user_name"`
	Email            string   `json:"email"`
	Password         string   `json:"password"`
	Role             string   `json:"role"`
	StudentStatus    string   `json:"student_status"`
	YearGroup        string   `json:"year_group"`
	Occupation       string   `json:"occupation"`
	YearClass        string   `json:"year_class"`
	Residency        string   `json:"residency"`
	Hall             string   `json:"hall"`
	AffiliatedGroups []string `json:"affiliated_groups"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
