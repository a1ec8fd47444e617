package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the dashboard client. Every
// field corresponds to an environment variable; sensible defaults keep
// the dashboard usable against a local backend with no setup at all.
type Config struct {
	APIBaseURL  string // base URL of the parking backend (API_BASE_URL)
	SessionFile string // path of the persisted session file (SESSION_FILE)
}

// StubConfig holds the runtime configuration of the local stub backend.
// The JWT secret is required because issued tokens are worthless without
// a stable signing key; everything else has defaults.
type StubConfig struct {
	Port        string // HTTP port to listen on (STUB_PORT)
	JWTSecret   string // secret used to sign authentication tokens (JWT_SECRET)
	BcryptCost  int    // bcrypt cost for password hashing (BCRYPT_COST)
	TokenTTLMin int    // authentication token time-to-live in minutes (TOKEN_TTL_MIN)
}

// Load reads the dashboard configuration. A .env file in the working
// directory is honoured when present; otherwise the process environment
// is used as-is.
func Load() Config {
	loadDotenv()
	return Config{
		APIBaseURL:  getenv("API_BASE_URL", "http://localhost:5000"),
		SessionFile: getenv("SESSION_FILE", defaultSessionFile()),
	}
}

// LoadStub reads the stub backend configuration. Missing required
// variables cause the process to exit with a fatal log message, the same
// fail-fast behaviour the dashboard's own Load avoids on purpose.
func LoadStub() StubConfig {
	loadDotenv()
	return StubConfig{
		Port:        getenv("STUB_PORT", "5000"),
		JWTSecret:   must("JWT_SECRET"),
		BcryptCost:  getenvInt("BCRYPT_COST", 10),
		TokenTTLMin: getenvInt("TOKEN_TTL_MIN", 120),
	}
}

func loadDotenv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
}

// defaultSessionFile places the session next to the user's other dotfiles.
// Falls back to the working directory when the home dir cannot be resolved.
func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".parking-session.json"
	}
	return filepath.Join(home, ".parking-dashboard", "session.json")
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
