package model

import "time"

// User is a regular account that can request bookings. Credentials are
// stored as bcrypt hashes, never as plaintext.
type User struct {
	Email        string    `gorm:"primaryKey;size:256" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// Admin is a reviewer account. The admin roster doubles as the fan-out
// target list for booking-request notifications.
type Admin struct {
	Email        string    `gorm:"primaryKey;size:256" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
