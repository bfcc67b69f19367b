package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Booking    BookingConfig    `yaml:"booking"`
	Auth       AuthConfig       `yaml:"auth"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Rooms      []RoomConfig     `yaml:"rooms"`
	Admins     []SeedAccount    `yaml:"admins"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// BookingConfig holds the booking-domain configuration: the fixed display
// timezone, the bookable day window, and the snapshot refresh cadence.
type BookingConfig struct {
	// UTCOffsetHours is the single wall-clock convention for all date and
	// time input/output. The whole deployment runs at one fixed offset.
	UTCOffsetHours int `yaml:"utc_offset_hours"`
	// DayStartHour and DayEndHour bound the hourly slot grid. Both are
	// slot start marks, so the grid covers DayStartHour..DayEndHour
	// inclusive.
	DayStartHour int `yaml:"day_start_hour"`
	DayEndHour   int `yaml:"day_end_hour"`

	RefreshIntervalSeconds int           `yaml:"refresh_interval_seconds"`
	RefreshInterval        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// AuthConfig holds credential and session-token settings.
type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
	BcryptCost    int    `yaml:"bcrypt_cost"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// RoomConfig describes one entry of the static room catalog.
type RoomConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
	Floor    string `yaml:"floor"`
	Image    string `yaml:"image"`
}

// SeedAccount is an account ensured to exist at startup.
type SeedAccount struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Booking.UTCOffsetHours == 0 {
		cfg.Booking.UTCOffsetHours = 7
	}
	if cfg.Booking.DayStartHour == 0 {
		cfg.Booking.DayStartHour = 6
	}
	if cfg.Booking.DayEndHour == 0 {
		cfg.Booking.DayEndHour = 22
	}
	if cfg.Booking.DayEndHour <= cfg.Booking.DayStartHour {
		return nil, fmt.Errorf("booking.day_end_hour (%d) must be after booking.day_start_hour (%d)",
			cfg.Booking.DayEndHour, cfg.Booking.DayStartHour)
	}
	if cfg.Booking.RefreshIntervalSeconds <= 0 {
		cfg.Booking.RefreshIntervalSeconds = 10
	}
	cfg.Booking.RefreshInterval = time.Duration(cfg.Booking.RefreshIntervalSeconds) * time.Second

	if cfg.Auth.TokenTTLHours <= 0 {
		cfg.Auth.TokenTTLHours = 12
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if len(cfg.Rooms) == 0 {
		cfg.Rooms = DefaultRooms()
	}

	return &cfg, nil
}

// DefaultRooms returns the built-in meeting room catalog, used when the
// config file does not define its own.
func DefaultRooms() []RoomConfig {
	return []RoomConfig{
		{ID: "rm-a-4f", Name: "Meeting Room A - 4F", Capacity: 15, Floor: "4th floor", Image: "https://picsum.photos/seed/room2/400/300"},
		{ID: "rm-b-4f", Name: "Meeting room B - 4F", Capacity: 10, Floor: "4th floor", Image: "https://picsum.photos/seed/room3/400/300"},
		{ID: "rm-c-4f", Name: "Meeting room C - 4F", Capacity: 7, Floor: "4th floor", Image: "https://picsum.photos/seed/room5/400/300"},
		{ID: "rm-a-5f", Name: "Meeting Room A - 5F", Capacity: 15, Floor: "5th floor", Image: "https://picsum.photos/seed/room1/400/300"},
		{ID: "rm-b-5f", Name: "Meeting Room B - 5F", Capacity: 10, Floor: "5th floor", Image: "https://picsum.photos/seed/room4/400/300"},
		{ID: "rm-c-5f", Name: "Meeting room C - 5F", Capacity: 7, Floor: "5th floor", Image: "https://picsum.photos/seed/room6/400/300"},
	}
}
