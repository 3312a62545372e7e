package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AuthMode string

const (
	AuthModeDev AuthMode = "dev"
	AuthModeJWT AuthMode = "jwt"
	AuthModeIAM AuthMode = "iam"
)

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type PostgresConfig struct {
	DSN string
}

type AuthConfig struct {
	Mode      AuthMode
	JWTSecret string
	IAMURL    string
	IAMAPIKey string
}

type RolesConfig struct {
	AdminUserIDs []string
	BaseURL      string
	APIKey       string
	CacheTTL     time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
}

type LogConfig struct {
	Level  string
	Format string
	App    string
}

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Auth     AuthConfig
	Roles    RolesConfig
	Redis    RedisConfig
	Log      LogConfig
}

// Load lee .env si existe y después el entorno. Nunca falla: todo tiene default.
// DB_DSN y REDIS_ADDRESS vacíos significan "no usar" (memoria / sin cache).
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: PostgresConfig{
			DSN: getEnv("DB_DSN", ""),
		},
		Auth: AuthConfig{
			Mode:      parseAuthMode(getEnv("AUTH_MODE", string(AuthModeDev))),
			JWTSecret: getEnv("JWT_SECRET", ""),
			IAMURL:    getEnv("IAM_BASE_URL", ""),
			IAMAPIKey: getEnv("IAM_API_KEY", ""),
		},
		Roles: RolesConfig{
			AdminUserIDs: splitCSV(getEnv("ADMIN_USER_IDS", "")),
			BaseURL:      getEnv("ROLES_BASE_URL", ""),
			APIKey:       getEnv("ROLES_API_KEY", ""),
			CacheTTL:     getDuration("ROLE_CACHE_TTL", 5*time.Minute),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			App:    getEnv("APP_NAME", "maintenance-inspections"),
		},
	}
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Server.Port, ":")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// getDuration acepta "30s", "5m" o segundos pelados ("90").
func getDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func parseAuthMode(s string) AuthMode {
	switch AuthMode(strings.ToLower(s)) {
	case AuthModeJWT:
		return AuthModeJWT
	case AuthModeIAM:
		return AuthModeIAM
	default:
		return AuthModeDev
	}
}

func splitCSV(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
