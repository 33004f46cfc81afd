package model

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken is a named bearer token issued to one device at login.
// Its ID doubles as the JWT "jti"; deleting the row revokes the token.
type AccessToken struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name       string     `gorm:"type:varchar(255);not null" json:"name"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (AccessToken) TableName() string {
	return "personal_access_tokens"
}
