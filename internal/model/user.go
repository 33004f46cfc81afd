package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of principals the POS knows about.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleKasir Role = "kasir"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleKasir:
		return true
	default:
		return false
	}
}

// User is either the store owner (admin) or a cashier account (kasir).
type User struct {
	BaseModel
	Username *string `gorm:"type:varchar(50);uniqueIndex" json:"username"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Email    string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string  `gorm:"type:varchar(255);not null" json:"-"`
	PinHash  *string `gorm:"type:varchar(255)" json:"-"`
	Role     Role    `gorm:"type:varchar(10);not null;index" json:"role"`
	Active   bool    `gorm:"not null" json:"active"`
}

// HashSecret bcrypt-hashes a password or PIN.
func HashSecret(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashed, err := HashSecret(password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}

// SetPin stores one hash of the PIN in both credential fields.
func (u *User) SetPin(pin string) error {
	hashed, err := HashSecret(pin)
	if err != nil {
		return err
	}
	u.Password = hashed
	u.PinHash = &hashed
	return nil
}

// CheckPassword verifies the supplied secret against the stored credential.
// Kasir accounts must also carry a PIN hash. A malformed hash is a mismatch.
func (u *User) CheckPassword(password string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	switch u.Role {
	case RoleKasir:
		if u.PinHash == nil || *u.PinHash == "" {
			return false
		}
	case RoleAdmin:
	default:
		return false
	}
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  *string   `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
