package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Conflict policies for appointment booking
const (
	ConflictPolicyNone   = "none"
	ConflictPolicyReject = "reject"
)

type Config struct {
	Database     DatabaseConfig
	Redis        RedisConfig
	Session      SessionConfig
	Server       ServerConfig
	CORS         CORSConfig
	Appointments AppointmentConfig
	Reviews      ReviewConfig
	Log          LogConfig
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type RedisConfig struct {
	URL string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type AppointmentConfig struct {
	ConflictPolicy      string
	SlotDayStart        string
	SlotDayEnd          string
	SlotMinutes         int
	MissedSweepInterval time.Duration
}

type ReviewConfig struct {
	RequireCompletedAppointment bool
}

type LogConfig struct {
	Level string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "mysql")),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "hospital_management"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		Session: SessionConfig{
			Secret: getEnv("JWT_SECRET", "your-session-secret-key"),
			TTL:    parseDuration(getEnv("SESSION_TTL", "24h"), 24*time.Hour),
		},
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Appointments: AppointmentConfig{
			ConflictPolicy:      parseConflictPolicy(getEnv("APPOINTMENT_CONFLICT_POLICY", ConflictPolicyNone)),
			SlotDayStart:        getEnv("SLOT_DAY_START", "09:00"),
			SlotDayEnd:          getEnv("SLOT_DAY_END", "17:00"),
			SlotMinutes:         parseInt(getEnv("SLOT_MINUTES", "30"), 30),
			MissedSweepInterval: parseDuration(getEnv("MISSED_SWEEP_INTERVAL", "0s"), 0),
		},
		Reviews: ReviewConfig{
			RequireCompletedAppointment: parseBool(getEnv("REVIEW_REQUIRES_COMPLETED", "false")),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config
}

// DSN builds the driver specific connection string
func (c DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			c.Host, c.Port, c.User, c.Password, c.Database)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// IsRelease reports whether gin runs in release mode
func (c *Config) IsRelease() bool {
	return c.Server.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		fmt.Printf("Warning: Invalid duration format '%s', using default %s\n", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		fmt.Printf("Warning: Invalid number '%s', using default %d\n", s, fallback)
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseConflictPolicy(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ConflictPolicyReject:
		return ConflictPolicyReject
	case ConflictPolicyNone, "":
		return ConflictPolicyNone
	default:
		fmt.Printf("Warning: Unknown conflict policy '%s', using '%s'\n", s, ConflictPolicyNone)
		return ConflictPolicyNone
	}
}

func parseOrigins(s string) []string {
	origins := []string{}
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
