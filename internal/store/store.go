package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roombook-backend/internal/model"
)

var (
	// ErrNotFound is returned when the referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyDecided is returned when a status transition targets a
	// booking that has already left the Pending state.
	ErrAlreadyDecided = errors.New("booking already decided")
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	ActiveBookings(ctx context.Context) ([]model.Booking, error)
	AllBookings(ctx context.Context) ([]model.Booking, error)
	BookingsByUser(ctx context.Context, email string) ([]model.Booking, error)
	GetBooking(ctx context.Context, id string) (model.Booking, error)
	CreateBooking(ctx context.Context, b *model.Booking) error
	DecideBooking(ctx context.Context, id string, status model.BookingStatus, adminNote string) (model.Booking, error)
	CancelBooking(ctx context.Context, id, ownerEmail string) (model.Booking, error)

	CreateNotifications(ctx context.Context, ns []model.Notification) error
	NotificationsFor(ctx context.Context, email string, limit int) ([]model.Notification, error)
	MarkNotificationsRead(ctx context.Context, email string) error

	AdminEmails(ctx context.Context) ([]string, error)
	GetUser(ctx context.Context, email string) (model.User, error)
	GetAdmin(ctx context.Context, email string) (model.Admin, error)
	CreateUser(ctx context.Context, email, passwordHash string) error
	EnsureAdmin(ctx context.Context, email, passwordHash string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ActiveBookings returns every booking that can block a room: anything
// not Cancelled, ordered by start time. Rejected rows are included here
// and filtered by the availability service, which owns the blocking rule.
func (s *gormStore) ActiveBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Where("status <> ?", model.StatusCancelled).
		Order("start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active bookings: %w", err)
	}
	return bookings, nil
}

// AllBookings returns every booking, newest start first, for the admin
// review table.
func (s *gormStore) AllBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Order("start_time DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return bookings, nil
}

// BookingsByUser returns one user's booking history, newest start first.
func (s *gormStore) BookingsByUser(ctx context.Context, email string) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("start_time DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for %s: %w", email, err)
	}
	return bookings, nil
}

func (s *gormStore) GetBooking(ctx context.Context, id string) (model.Booking, error) {
	var b model.Booking
	err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Booking{}, ErrNotFound
	}
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return b, nil
}

// CreateBooking inserts a new request. The id is assigned here and the
// status always starts as Pending regardless of the caller's value.
func (s *gormStore) CreateBooking(ctx context.Context, b *model.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Status = model.StatusPending
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// DecideBooking applies the admin decision exactly once. The update is
// conditional on the row still being Pending, so a concurrent decision
// loses cleanly instead of overwriting a terminal state.
func (s *gormStore) DecideBooking(ctx context.Context, id string, status model.BookingStatus, adminNote string) (model.Booking, error) {
	if status != model.StatusConfirmed && status != model.StatusRejected {
		return model.Booking{}, fmt.Errorf("invalid decision status %q", status)
	}

	res := s.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]any{"status": status, "admin_note": adminNote})
	if res.Error != nil {
		return model.Booking{}, fmt.Errorf("failed to update booking %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetBooking(ctx, id); err != nil {
			return model.Booking{}, err
		}
		return model.Booking{}, ErrAlreadyDecided
	}
	return s.GetBooking(ctx, id)
}

// CancelBooking lets the owner withdraw a still-Pending request.
func (s *gormStore) CancelBooking(ctx context.Context, id, ownerEmail string) (model.Booking, error) {
	res := s.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ? AND user_email = ? AND status = ?", id, ownerEmail, model.StatusPending).
		Update("status", model.StatusCancelled)
	if res.Error != nil {
		return model.Booking{}, fmt.Errorf("failed to cancel booking %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		b, err := s.GetBooking(ctx, id)
		if err != nil {
			return model.Booking{}, err
		}
		if b.UserEmail != ownerEmail {
			return model.Booking{}, ErrNotFound
		}
		return model.Booking{}, ErrAlreadyDecided
	}
	return s.GetBooking(ctx, id)
}

// CreateNotifications inserts a batch of notifications in one statement.
func (s *gormStore) CreateNotifications(ctx context.Context, ns []model.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	for i := range ns {
		if ns[i].ID == "" {
			ns[i].ID = uuid.NewString()
		}
	}
	if err := s.db.WithContext(ctx).Create(&ns).Error; err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}
	return nil
}

// NotificationsFor returns a recipient's most recent notifications.
func (s *gormStore) NotificationsFor(ctx context.Context, email string, limit int) ([]model.Notification, error) {
	var ns []model.Notification
	q := s.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&ns).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications for %s: %w", email, err)
	}
	return ns, nil
}

// MarkNotificationsRead flips every unread notification of the recipient.
func (s *gormStore) MarkNotificationsRead(ctx context.Context, email string) error {
	err := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_email = ? AND is_read = ?", email, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications read for %s: %w", email, err)
	}
	return nil
}

// AdminEmails returns the administrator roster used for notification
// fan-out on booking creation.
func (s *gormStore) AdminEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := s.db.WithContext(ctx).
		Model(&model.Admin{}).
		Order("email ASC").
		Pluck("email", &emails).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admin roster: %w", err)
	}
	return emails, nil
}

func (s *gormStore) GetUser(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to fetch user %s: %w", email, err)
	}
	return u, nil
}

func (s *gormStore) GetAdmin(ctx context.Context, email string) (model.Admin, error) {
	var a model.Admin
	err := s.db.WithContext(ctx).First(&a, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Admin{}, ErrNotFound
	}
	if err != nil {
		return model.Admin{}, fmt.Errorf("failed to fetch admin %s: %w", email, err)
	}
	return a, nil
}

func (s *gormStore) CreateUser(ctx context.Context, email, passwordHash string) error {
	u := model.User{Email: email, PasswordHash: passwordHash}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return fmt.Errorf("failed to create user %s: %w", email, err)
	}
	return nil
}

// EnsureAdmin upserts a roster account, refreshing its credential hash.
func (s *gormStore) EnsureAdmin(ctx context.Context, email, passwordHash string) error {
	a := model.Admin{Email: email, PasswordHash: passwordHash}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
	}).Create(&a).Error
	if err != nil {
		return fmt.Errorf("failed to ensure admin %s: %w", email, err)
	}
	return nil
}
