package refresh

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"roombook-backend/internal/model"
	"roombook-backend/internal/store"
)

// Refresher keeps a periodically re-read snapshot of the blocking
// bookings. Each tick replaces the derived state wholesale; a failed
// read keeps the previous snapshot instead of clearing it.
//
// Every load carries a monotonically increasing sequence number and a
// load only lands if it is newer than the last applied one, so a slow
// in-flight read can never overwrite fresher data.
type Refresher struct {
	store    store.Store
	interval time.Duration

	nextSeq atomic.Uint64

	mu         sync.RWMutex
	snapshot   []model.Booking
	appliedSeq uint64
	loaded     bool
}

// NewRefresher creates a refresher polling at the given interval.
func NewRefresher(s store.Store, interval time.Duration) *Refresher {
	return &Refresher{store: s, interval: interval}
}

// Run starts the refresh loop and blocks until the context is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	log.Println("Starting booking snapshot refresher...")

	r.RefreshOnce(ctx)

	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Booking snapshot refresher shutting down.")
			return
		case <-timer.C:
			r.RefreshOnce(ctx)
			timer.Reset(r.interval)
		}
	}
}

// RefreshOnce performs a single poll cycle.
func (r *Refresher) RefreshOnce(ctx context.Context) {
	seq := r.nextSeq.Add(1)
	bookings, err := r.store.ActiveBookings(ctx)
	if err != nil {
		log.Printf("Error refreshing booking snapshot (seq %d), keeping previous state: %v", seq, err)
		return
	}
	if !r.apply(seq, bookings) {
		log.Printf("Discarding superseded booking snapshot (seq %d)", seq)
	}
}

// apply installs a load if it is newer than the last applied one.
func (r *Refresher) apply(seq uint64, bookings []model.Booking) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seq <= r.appliedSeq {
		return false
	}
	r.snapshot = bookings
	r.appliedSeq = seq
	r.loaded = true
	return true
}

// ActiveBookings satisfies booking.BookingSource. Before the first
// successful poll it reads through to the store so cold starts do not
// report an empty schedule.
func (r *Refresher) ActiveBookings(ctx context.Context) ([]model.Booking, error) {
	r.mu.RLock()
	if r.loaded {
		out := make([]model.Booking, len(r.snapshot))
		copy(out, r.snapshot)
		r.mu.RUnlock()
		return out, nil
	}
	r.mu.RUnlock()
	return r.store.ActiveBookings(ctx)
}
