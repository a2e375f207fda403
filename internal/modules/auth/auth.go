package auth

import "context"

// Service defines the interface for PIN-based staff authentication.
type Service interface {
	// Login verifies a staff member's PIN and returns a signed session token
	// plus the user's display profile.
	Login(ctx context.Context, phoneNumber, pin string) (*LoginResult, error)
}

// LoginResult is the successful login payload. The token carries the staff
// id; order requests pass it back explicitly as staffId for attribution.
type LoginResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// UserProfile is the client-facing slice of a staff account.
type UserProfile struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}
