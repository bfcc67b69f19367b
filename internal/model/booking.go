package model

import "time"

// BookingStatus is the lifecycle state of a booking request.
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusRejected  BookingStatus = "Rejected"
	StatusCancelled BookingStatus = "Cancelled"
)

// Terminal reports whether no further status transition is permitted.
func (s BookingStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusRejected || s == StatusCancelled
}

// Blocking reports whether a booking in this status occupies its room
// for overlap purposes. Rejected and Cancelled requests never block.
func (s BookingStatus) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking represents a reservation request for a meeting room.
type Booking struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserEmail string    `gorm:"index;size:256;not null" json:"user_email"`
	RoomID    string    `gorm:"index;size:64;not null" json:"room_id"`
	RoomName  string    `gorm:"size:256;not null" json:"room_name"`
	StartTime time.Time `gorm:"index;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Status    BookingStatus `gorm:"size:16;not null;default:'Pending'" json:"status"`
	// UserNote travels from the requester to the reviewing admin.
	UserNote string `gorm:"type:text" json:"user_note"`
	// AdminNote is set once, at the moment of the admin decision.
	AdminNote string    `gorm:"type:text" json:"admin_note"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
