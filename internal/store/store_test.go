package store

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"roombook-backend/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func bookingColumns() []string {
	return []string{"id", "user_email", "room_id", "room_name", "start_time", "end_time", "status", "user_note", "admin_note", "created_at", "updated_at"}
}

func TestGormStore_ActiveBookings(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "bookings" WHERE status <> $1 ORDER BY start_time ASC`)).
		WithArgs(string(model.StatusCancelled)).
		WillReturnRows(sqlmock.NewRows(bookingColumns()).
			AddRow("bk-1", "alice@example.com", "rm-a-4f", "Meeting Room A - 4F", now, now.Add(time.Hour), "Pending", "", "", now, now).
			AddRow("bk-2", "bob@example.com", "rm-b-4f", "Meeting room B - 4F", now, now.Add(time.Hour), "Confirmed", "", "", now, now))

	bookings, err := s.ActiveBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, model.StatusPending, bookings[0].Status)
	assert.Equal(t, model.StatusConfirmed, bookings[1].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_DecideBooking(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name             string
		status           model.BookingStatus
		mockExpectations func(mock sqlmock.Sqlmock)
		expectedErr      error
		expectedStatus   model.BookingStatus
	}{
		{
			name:   "confirms a pending booking",
			status: model.StatusConfirmed,
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE "bookings" SET`)).
					WithArgs("ok", "Confirmed", Any{}, "bk-1", "Pending").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()

				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "bookings" WHERE id = $1`)).
					WithArgs("bk-1", 1).
					WillReturnRows(sqlmock.NewRows(bookingColumns()).
						AddRow("bk-1", "alice@example.com", "rm-a-4f", "Meeting Room A - 4F", now, now.Add(time.Hour), "Confirmed", "", "ok", now, now))
			},
			expectedStatus: model.StatusConfirmed,
		},
		{
			name:   "second decision loses",
			status: model.StatusRejected,
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE "bookings" SET`)).
					WithArgs("ok", "Rejected", Any{}, "bk-1", "Pending").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()

				// The row exists but is no longer Pending.
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "bookings" WHERE id = $1`)).
					WithArgs("bk-1", 1).
					WillReturnRows(sqlmock.NewRows(bookingColumns()).
						AddRow("bk-1", "alice@example.com", "rm-a-4f", "Meeting Room A - 4F", now, now.Add(time.Hour), "Confirmed", "", "earlier note", now, now))
			},
			expectedErr: ErrAlreadyDecided,
		},
		{
			name:   "unknown booking",
			status: model.StatusConfirmed,
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE "bookings" SET`)).
					WithArgs("ok", "Confirmed", Any{}, "bk-missing", "Pending").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()

				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "bookings" WHERE id = $1`)).
					WithArgs("bk-missing", 1).
					WillReturnRows(sqlmock.NewRows(bookingColumns()))
			},
			expectedErr: ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newTestDB(t)
			s := NewGormStore(gormDB)
			tc.mockExpectations(mock)

			id := "bk-1"
			if tc.expectedErr == ErrNotFound {
				id = "bk-missing"
			}

			b, err := s.DecideBooking(context.Background(), id, tc.status, "ok")
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedStatus, b.Status)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormStore_DecideBookingRejectsBadStatus(t *testing.T) {
	gormDB, _ := newTestDB(t)
	s := NewGormStore(gormDB)

	_, err := s.DecideBooking(context.Background(), "bk-1", model.StatusCancelled, "")
	assert.Error(t, err)

	_, err = s.DecideBooking(context.Background(), "bk-1", model.StatusPending, "")
	assert.Error(t, err)
}

func TestGormStore_MarkNotificationsRead(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "notifications" SET`)).
		WithArgs(true, "alice@example.com", false).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := s.MarkNotificationsRead(context.Background(), "alice@example.com")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_AdminEmails(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "email" FROM "admins" ORDER BY email ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).
			AddRow("admin1@example.com").
			AddRow("admin2@example.com"))

	emails, err := s.AdminEmails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"admin1@example.com", "admin2@example.com"}, emails)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies the sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}
