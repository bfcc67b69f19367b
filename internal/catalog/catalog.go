package catalog

import "roombook-backend/config"

// Room is one entry of the static meeting-room catalog.
type Room struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Floor    string `json:"floor"`
	Image    string `json:"image"`
}

// Catalog is the fixed set of bookable rooms, defined at process start.
// Iteration order is the configuration order and never changes at runtime.
type Catalog struct {
	rooms []Room
	byID  map[string]Room
}

// New builds a catalog from configuration.
func New(cfgRooms []config.RoomConfig) *Catalog {
	rooms := make([]Room, 0, len(cfgRooms))
	byID := make(map[string]Room, len(cfgRooms))
	for _, rc := range cfgRooms {
		r := Room{ID: rc.ID, Name: rc.Name, Capacity: rc.Capacity, Floor: rc.Floor, Image: rc.Image}
		rooms = append(rooms, r)
		byID[r.ID] = r
	}
	return &Catalog{rooms: rooms, byID: byID}
}

// Rooms returns the catalog in its stable configuration order. The
// returned slice is a copy; callers may not mutate the catalog.
func (c *Catalog) Rooms() []Room {
	out := make([]Room, len(c.rooms))
	copy(out, c.rooms)
	return out
}

// Get looks a room up by id.
func (c *Catalog) Get(id string) (Room, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Len returns the number of rooms in the catalog.
func (c *Catalog) Len() int {
	return len(c.rooms)
}
