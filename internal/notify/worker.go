package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"roombook-backend/internal/model"
	"roombook-backend/internal/store"
)

// EventKind identifies which booking transition triggered the fan-out.
type EventKind string

const (
	// EventCreated notifies every administrator about a new request.
	EventCreated EventKind = "created"
	// EventDecided notifies the requester about the admin decision.
	EventDecided EventKind = "decided"
)

// Event is one notification job.
type Event struct {
	Kind    EventKind
	Booking model.Booking
}

// WorkerPool manages a pool of workers writing notification records.
// Delivery is best-effort: a failed insert is logged and dropped, it
// never rolls back the booking write that triggered it.
type WorkerPool struct {
	size  int
	jobs  chan Event
	store store.Store
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, s store.Store) *WorkerPool {
	return &WorkerPool{
		size:  size,
		jobs:  make(chan Event, size), // Buffered channel
		store: s,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case ev := <-wp.jobs:
			wp.process(ctx, ev)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a job to the worker pool.
func (wp *WorkerPool) Dispatch(ev Event) {
	wp.jobs <- ev
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Event {
	return wp.jobs
}

func (wp *WorkerPool) process(ctx context.Context, ev Event) {
	switch ev.Kind {
	case EventCreated:
		wp.notifyAdmins(ctx, ev.Booking)
	case EventDecided:
		wp.notifyUser(ctx, ev.Booking)
	default:
		log.Printf("Unknown notification event kind %q, dropping", ev.Kind)
	}
}

// notifyAdmins fans one notification out to every roster entry.
func (wp *WorkerPool) notifyAdmins(ctx context.Context, b model.Booking) {
	admins, err := wp.store.AdminEmails(ctx)
	if err != nil {
		log.Printf("Error fetching admin roster for booking %s: %v", b.ID, err)
		return
	}
	if len(admins) == 0 {
		return
	}

	message := fmt.Sprintf("New booking request from %s for %s", b.UserEmail, b.RoomName)
	ns := make([]model.Notification, 0, len(admins))
	for _, email := range admins {
		ns = append(ns, model.Notification{
			UserEmail: email,
			Message:   message,
			Type:      model.AudienceAdmin,
		})
	}
	if err := wp.store.CreateNotifications(ctx, ns); err != nil {
		log.Printf("Error inserting admin notifications for booking %s: %v", b.ID, err)
	}
}

func (wp *WorkerPool) notifyUser(ctx context.Context, b model.Booking) {
	message := fmt.Sprintf("Your booking for %s has been %s.", b.RoomName, strings.ToLower(string(b.Status)))
	if b.AdminNote != "" {
		message += " Note: " + b.AdminNote
	}
	ns := []model.Notification{{
		UserEmail: b.UserEmail,
		Message:   message,
		Type:      model.AudienceUser,
	}}
	if err := wp.store.CreateNotifications(ctx, ns); err != nil {
		log.Printf("Error inserting user notification for booking %s: %v", b.ID, err)
	}
}
