package model

import "time"

// BaseModel handles the auto-increment ID and timestamps shared by every table.
// Deletes are hard deletes, so there is no DeletedAt column.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
