package auth

import (
	"context"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
	"github.com/sweetoven/bakepos-backend/internal/modules/staff"
)

type service struct {
	staffRepo staff.Repository
	jwtKey    []byte
}

// NewService creates a new auth service. The signing key comes from
// JWT_SECRET; the fallback exists only for local development.
func NewService(staffRepo staff.Repository) Service {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "supersecretkey"
	}
	return &service{staffRepo: staffRepo, jwtKey: []byte(secret)}
}

func (s *service) Login(ctx context.Context, phoneNumber, pin string) (*LoginResult, error) {
	if phoneNumber == "" || pin == "" {
		return nil, apperr.Validationf("phone number and PIN are required")
	}

	user, err := s.staffRepo.GetUserByPhone(ctx, phoneNumber)
	if err != nil {
		// A missing account and a wrong PIN look the same to the caller.
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Validationf("invalid phone number or PIN")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.Validationf("invalid phone number or PIN")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(pin)); err != nil {
		return nil, apperr.Validationf("invalid phone number or PIN")
	}

	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, apperr.Dependency(err, "sign token")
	}

	return &LoginResult{
		Token: signed,
		User: UserProfile{
			ID:          user.ID.String(),
			FullName:    user.FullName,
			PhoneNumber: user.PhoneNumber,
			Role:        user.Role,
		},
	}, nil
}
