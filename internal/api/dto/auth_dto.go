package dto

import (
	"time"

	"github.com/spec-kit/mood-journal/internal/domain"
)

// MinPasswordLength is enforced at signup and login.
const MinPasswordLength = 6

// SignupRequest payload for new users. Name is optional.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest payload for PATCH /profile.
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public view of a signed-in user.
type UserResponse struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// ProfileResponse is returned by GET /profile.
type ProfileResponse struct {
	User         UserResponse `json:"user"`
	TotalEntries int          `json:"total_entries"`
	TotalMoods   int          `json:"total_moods"`
}

func (r SignupRequest) Validate() error {
	errs := fieldErrors{}
	validateCredentials(errs, r.Email, r.Password)
	return errs.err()
}

func (r LoginRequest) Validate() error {
	errs := fieldErrors{}
	validateCredentials(errs, r.Email, r.Password)
	return errs.err()
}

func (r UpdateProfileRequest) Validate() error {
	errs := fieldErrors{}
	if blank(r.Name) {
		errs.add("name", "Name is required.")
	}
	return errs.err()
}

func validateCredentials(errs fieldErrors, email, password string) {
	if !validEmail(email) {
		errs.add("email", "Please enter a valid email.")
	}
	if len(password) < MinPasswordLength {
		errs.add("password", "Password must be at least 6 characters.")
	}
}

// ToUserResponse maps a domain user.
func ToUserResponse(u domain.User) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name, DisplayName: u.DisplayName()}
}
