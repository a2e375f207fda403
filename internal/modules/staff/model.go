package staff

import (
	"time"

	"github.com/google/uuid"
)

// AppUser is a staff member who can log into the register with a PIN.
type AppUser struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber"`
	PinHash     string    `json:"-"`
	Role        string    `json:"role"` // admin, employee
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
