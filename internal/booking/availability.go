package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"roombook-backend/config"
	"roombook-backend/internal/catalog"
	"roombook-backend/internal/model"
)

// ErrBadInput marks malformed caller input (dates, times, room ids), as
// opposed to source read failures.
var ErrBadInput = errors.New("bad input")

// BookingSource supplies the reservation snapshot the availability
// queries run over. Implementations must already exclude Cancelled
// bookings; the service filters the remaining statuses itself.
type BookingSource interface {
	ActiveBookings(ctx context.Context) ([]model.Booking, error)
}

// SlotState describes one cell of the hourly availability grid.
type SlotState string

const (
	SlotFree    SlotState = "free"
	SlotPending SlotState = "pending"
	SlotBooked  SlotState = "booked"
)

// Slot is the derived status of a single one-hour window for one room.
type Slot struct {
	Hour      int       `json:"hour"`
	State     SlotState `json:"state"`
	Label     string    `json:"label,omitempty"`
	BookingID string    `json:"booking_id,omitempty"`
}

// RoomDay is a room's full slot row for one date.
type RoomDay struct {
	Room  catalog.Room `json:"room"`
	Slots []Slot       `json:"slots"`
}

// Service answers availability queries against the static catalog and a
// booking source, at a single fixed UTC offset.
type Service struct {
	catalog      *catalog.Catalog
	source       BookingSource
	loc          *time.Location
	dayStartHour int
	dayEndHour   int

	now func() time.Time
}

// NewService builds an availability service for the configured booking
// window and offset.
func NewService(cat *catalog.Catalog, source BookingSource, cfg config.BookingConfig) *Service {
	return &Service{
		catalog:      cat,
		source:       source,
		loc:          time.FixedZone(fmt.Sprintf("UTC+%d", cfg.UTCOffsetHours), cfg.UTCOffsetHours*3600),
		dayStartHour: cfg.DayStartHour,
		dayEndHour:   cfg.DayEndHour,
		now:          time.Now,
	}
}

// Location returns the fixed presentation zone.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Now returns the current instant rendered in the fixed presentation
// zone. Creation-time validation compares wall-clock input against it.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

// SlotHours lists the slot start marks of the operating day, e.g. 6..22.
func (s *Service) SlotHours() []int {
	hours := make([]int, 0, s.dayEndHour-s.dayStartHour+1)
	for h := s.dayStartHour; h <= s.dayEndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// WithinOperatingWindow reports whether [start,end) stays inside the
// bookable day, in the fixed zone. The last slot starts at the end hour
// mark, so an interval may run up to one hour past it.
func (s *Service) WithinOperatingWindow(start, end time.Time) bool {
	ls, le := start.In(s.loc), end.In(s.loc)
	if ls.Year() != le.Year() || ls.YearDay() != le.YearDay() {
		// Bookings never span midnight; the closing boundary is the only
		// same-day exception handled below.
		if !(le.Hour() == 0 && le.Minute() == 0 && le.Add(-time.Second).YearDay() == ls.YearDay()) {
			return false
		}
	}
	if ls.Hour() < s.dayStartHour {
		return false
	}
	latestEnd := time.Date(ls.Year(), ls.Month(), ls.Day(), s.dayEndHour+1, 0, 0, 0, s.loc)
	return !le.After(latestEnd)
}

// ParseWallClock combines a calendar date ("2006-01-02") and a wall-clock
// time ("15:04") into an absolute instant at the fixed offset.
func (s *Service) ParseWallClock(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date/time %q %q", ErrBadInput, date, clock)
	}
	return t, nil
}

// FindAvailableRooms returns the rooms with no blocking reservation
// overlapping [date start, date end), in catalog order. A non-positive
// range yields an empty result rather than an error.
func (s *Service) FindAvailableRooms(ctx context.Context, date, startClock, endClock string) ([]catalog.Room, error) {
	start, err := s.ParseWallClock(date, startClock)
	if err != nil {
		return nil, err
	}
	end, err := s.ParseWallClock(date, endClock)
	if err != nil {
		return nil, err
	}

	rooms := make([]catalog.Room, 0, s.catalog.Len())
	if !end.After(start) {
		return rooms, nil
	}

	bookings, err := s.source.ActiveBookings(ctx)
	if err != nil {
		return nil, err
	}

	unavailable := make(map[string]bool)
	for _, b := range bookings {
		if !b.Status.Blocking() {
			continue
		}
		if Overlaps(start, end, b.StartTime, b.EndTime) {
			unavailable[b.RoomID] = true
		}
	}

	for _, r := range s.catalog.Rooms() {
		if !unavailable[r.ID] {
			rooms = append(rooms, r)
		}
	}
	return rooms, nil
}

// SlotStatus derives the state of the one-hour slot starting at hour on
// date for a single room.
func (s *Service) SlotStatus(ctx context.Context, roomID, date string, hour int) (Slot, error) {
	if _, ok := s.catalog.Get(roomID); !ok {
		return Slot{}, fmt.Errorf("%w: unknown room %q", ErrBadInput, roomID)
	}
	bookings, err := s.source.ActiveBookings(ctx)
	if err != nil {
		return Slot{}, err
	}
	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: invalid date %q", ErrBadInput, date)
	}
	return s.slotFor(roomID, day, hour, bookings), nil
}

// DayGrid renders the full rooms-by-hours grid for one date, in catalog
// order, for the admin schedule view.
func (s *Service) DayGrid(ctx context.Context, date string) ([]RoomDay, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrBadInput, date)
	}
	bookings, err := s.source.ActiveBookings(ctx)
	if err != nil {
		return nil, err
	}

	grid := make([]RoomDay, 0, s.catalog.Len())
	for _, room := range s.catalog.Rooms() {
		row := RoomDay{Room: room, Slots: make([]Slot, 0, s.dayEndHour-s.dayStartHour+1)}
		for _, h := range s.SlotHours() {
			row.Slots = append(row.Slots, s.slotFor(room.ID, day, h, bookings))
		}
		grid = append(grid, row)
	}
	return grid, nil
}

func (s *Service) slotFor(roomID string, day time.Time, hour int, bookings []model.Booking) Slot {
	slotStart := day.Add(time.Duration(hour) * time.Hour)
	slotEnd := slotStart.Add(time.Hour)

	var matches []model.Booking
	for _, b := range bookings {
		if b.RoomID != roomID || !b.Status.Blocking() {
			continue
		}
		if Overlaps(slotStart, slotEnd, b.StartTime, b.EndTime) {
			matches = append(matches, b)
		}
	}
	if len(matches) == 0 {
		return Slot{Hour: hour, State: SlotFree}
	}

	// Pending requests may legitimately overlap each other or a Confirmed
	// booking while awaiting a decision. Pick deterministically: Confirmed
	// first, then earliest start, then earliest created.
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if (a.Status == model.StatusConfirmed) != (b.Status == model.StatusConfirmed) {
			return a.Status == model.StatusConfirmed
		}
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	top := matches[0]
	state := SlotPending
	if top.Status == model.StatusConfirmed {
		state = SlotBooked
	}
	return Slot{
		Hour:      hour,
		State:     state,
		Label:     emailLocalPart(top.UserEmail),
		BookingID: top.ID,
	}
}

// emailLocalPart extracts the display label for grid cells. It is never
// used as an identity.
func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
