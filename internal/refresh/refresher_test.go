package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"roombook-backend/internal/model"
	"roombook-backend/internal/store"
)

// fakeStore serves scripted ActiveBookings results and satisfies the
// rest of store.Store with no-ops.
type fakeStore struct {
	mu       sync.Mutex
	bookings []model.Booking
	err      error
	calls    int
}

func (f *fakeStore) set(bookings []model.Booking, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = bookings
	f.err = err
}

func (f *fakeStore) ActiveBookings(ctx context.Context) ([]model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Booking, len(f.bookings))
	copy(out, f.bookings)
	return out, nil
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeStore) DB() *gorm.DB { return nil }
func (f *fakeStore) AllBookings(ctx context.Context) ([]model.Booking, error) {
	return nil, nil
}
func (f *fakeStore) BookingsByUser(ctx context.Context, email string) ([]model.Booking, error) {
	return nil, nil
}
func (f *fakeStore) GetBooking(ctx context.Context, id string) (model.Booking, error) {
	return model.Booking{}, store.ErrNotFound
}
func (f *fakeStore) CreateBooking(ctx context.Context, b *model.Booking) error { return nil }
func (f *fakeStore) DecideBooking(ctx context.Context, id string, status model.BookingStatus, adminNote string) (model.Booking, error) {
	return model.Booking{}, store.ErrNotFound
}
func (f *fakeStore) CancelBooking(ctx context.Context, id, ownerEmail string) (model.Booking, error) {
	return model.Booking{}, store.ErrNotFound
}
func (f *fakeStore) CreateNotifications(ctx context.Context, ns []model.Notification) error {
	return nil
}
func (f *fakeStore) NotificationsFor(ctx context.Context, email string, limit int) ([]model.Notification, error) {
	return nil, nil
}
func (f *fakeStore) MarkNotificationsRead(ctx context.Context, email string) error { return nil }
func (f *fakeStore) AdminEmails(ctx context.Context) ([]string, error)             { return nil, nil }
func (f *fakeStore) GetUser(ctx context.Context, email string) (model.User, error) {
	return model.User{}, store.ErrNotFound
}
func (f *fakeStore) GetAdmin(ctx context.Context, email string) (model.Admin, error) {
	return model.Admin{}, store.ErrNotFound
}
func (f *fakeStore) CreateUser(ctx context.Context, email, passwordHash string) error  { return nil }
func (f *fakeStore) EnsureAdmin(ctx context.Context, email, passwordHash string) error { return nil }

func pendingBooking(id string) model.Booking {
	start := time.Date(2026, 9, 1, 2, 0, 0, 0, time.UTC)
	return model.Booking{
		ID:        id,
		UserEmail: "alice@example.com",
		RoomID:    "rm-a-4f",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    model.StatusPending,
	}
}

func TestRefresher_RefreshOnce(t *testing.T) {
	fs := &fakeStore{}
	fs.set([]model.Booking{pendingBooking("bk-1")}, nil)

	r := NewRefresher(fs, time.Minute)
	r.RefreshOnce(context.Background())

	got, err := r.ActiveBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bk-1", got[0].ID)

	// The snapshot serves reads without hitting the store again.
	calls := fs.callCount()
	_, err = r.ActiveBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, calls, fs.callCount())
}

func TestRefresher_ErrorKeepsPreviousSnapshot(t *testing.T) {
	fs := &fakeStore{}
	fs.set([]model.Booking{pendingBooking("bk-1")}, nil)

	r := NewRefresher(fs, time.Minute)
	r.RefreshOnce(context.Background())

	fs.set(nil, errors.New("connection refused"))
	r.RefreshOnce(context.Background())

	got, err := r.ActiveBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bk-1", got[0].ID)
}

func TestRefresher_ReadsThroughBeforeFirstLoad(t *testing.T) {
	fs := &fakeStore{}
	fs.set([]model.Booking{pendingBooking("bk-1")}, nil)

	r := NewRefresher(fs, time.Minute)

	got, err := r.ActiveBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, fs.callCount())
}

func TestRefresher_ReadThroughErrorPropagates(t *testing.T) {
	fs := &fakeStore{}
	fs.set(nil, errors.New("connection refused"))

	r := NewRefresher(fs, time.Minute)
	_, err := r.ActiveBookings(context.Background())
	assert.Error(t, err)
}

func TestRefresher_StaleLoadDiscarded(t *testing.T) {
	fs := &fakeStore{}
	r := NewRefresher(fs, time.Minute)

	// A newer load lands first; the older sequence must not replace it.
	require.True(t, r.apply(2, []model.Booking{pendingBooking("bk-new")}))
	assert.False(t, r.apply(1, []model.Booking{pendingBooking("bk-old")}))

	got, err := r.ActiveBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bk-new", got[0].ID)
}

func TestRefresher_SnapshotCopyIsIsolated(t *testing.T) {
	fs := &fakeStore{}
	r := NewRefresher(fs, time.Minute)
	require.True(t, r.apply(1, []model.Booking{pendingBooking("bk-1")}))

	got, err := r.ActiveBookings(context.Background())
	require.NoError(t, err)
	got[0].ID = "mutated"

	again, err := r.ActiveBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bk-1", again[0].ID)
}

func TestRefresher_RunStopsOnCancel(t *testing.T) {
	fs := &fakeStore{}
	r := NewRefresher(fs, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return fs.callCount() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresher did not stop after context cancellation")
	}
}
