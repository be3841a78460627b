package config // package config loads application configuration from environment variables

import (
	"os"
	"strconv"
	"time"
)

// ServiceConfig holds the runtime settings shared by every service in the
// system.  Each service binary (rooms, users, bookings, reviews) loads its
// own copy with a service-specific port variable so that all four can run
// side by side on one host.
type ServiceConfig struct {
	Env     string // application environment (e.g. "dev", "prod")
	Service string // short service name, used for audit log files
	Port    string // HTTP port to listen on
}

// Load reads the shared service configuration.  portVar names the
// environment variable holding the HTTP port (e.g. "BOOKINGS_PORT") and
// defaultPort is used when it is unset, so services start without any
// environment at all.
func Load(service, portVar, defaultPort string) ServiceConfig {
	return ServiceConfig{
		Env:     getenv("APP_ENV", "dev"),
		Service: service,
		Port:    getenv(portVar, defaultPort),
	}
}

// DBConfig describes the optional MySQL backing store.  When Host is empty
// the services fall back to in-memory repositories.
type DBConfig struct {
	User string
	Pass string
	Host string
	Port string
	Name string
}

// LoadDBConfig reads MySQL settings.  DB_HOST is the switch: leaving it
// unset runs the service entirely in memory.
func LoadDBConfig() DBConfig {
	return DBConfig{
		User: getenv("DB_USER", "root"),
		Pass: os.Getenv("DB_PASS"),
		Host: os.Getenv("DB_HOST"),
		Port: getenv("DB_PORT", "3306"),
		Name: getenv("DB_NAME", "smartmeet"),
	}
}

// Enabled reports whether a MySQL store has been configured.
func (c DBConfig) Enabled() bool { return c.Host != "" }

// AuthConfig selects the token scheme used by the users service and the
// protected reviews endpoints.  Mode "plain" issues the username itself as
// the bearer token; mode "jwt" issues signed HS256 tokens.
type AuthConfig struct {
	Mode         string // "plain" or "jwt"
	JWTSecret    string
	AccessTTLMin int
	BcryptCost   int
}

// LoadAuthConfig reads authentication settings with development defaults.
func LoadAuthConfig() AuthConfig {
	return AuthConfig{
		Mode:         getenv("AUTH_MODE", "plain"),
		JWTSecret:    getenv("JWT_SECRET", "dev-secret"),
		AccessTTLMin: atoi(getenv("ACCESS_TOKEN_TTL_MIN", "30")),
		BcryptCost:   atoi(getenv("BCRYPT_COST", "10")),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
