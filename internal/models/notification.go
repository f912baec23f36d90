package models

import "time"

// Notification is addressed to a user (users.id, not a profile id)
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Message   string     `gorm:"type:text" json:"message"`
	Link      string     `gorm:"size:255" json:"link,omitempty"`
	IsRead    bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name for Notification model
func (Notification) TableName() string {
	return "notifications"
}
