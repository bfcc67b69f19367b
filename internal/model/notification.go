package model

import "time"

// NotificationAudience distinguishes admin-facing from user-facing messages.
type NotificationAudience string

const (
	AudienceAdmin NotificationAudience = "admin"
	AudienceUser  NotificationAudience = "user"
)

// Notification is an in-app message delivered by polling, created as a
// side effect of booking creation or an admin decision.
type Notification struct {
	ID        string               `gorm:"primaryKey;size:36" json:"id"`
	UserEmail string               `gorm:"index;size:256;not null" json:"user_email"`
	Message   string               `gorm:"type:text;not null" json:"message"`
	Type      NotificationAudience `gorm:"size:16;not null" json:"type"`
	IsRead    bool                 `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time            `gorm:"not null" json:"created_at"`
}
