package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultPort     = "8080"
	defaultMongoURL = "mongodb://localhost/final-project"
	defaultDBName   = "final-project"
)

// Config holds every runtime setting read at startup.
type Config struct {
	Port           string
	MongoURL       string
	MongoDB        string
	RedisAddr      string
	RedisPassword  string
	TokenSecret    []byte
	RateLimitRPS   float64
	RateLimitBurst int
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string
}

// Load reads .env if present and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found; using system environment")
	}

	cfg := &Config{
		Port:           normalizePort(os.Getenv("PORT")),
		MongoURL:       getEnv("MONGO_URL", defaultMongoURL),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		TokenSecret:    []byte(getEnv("TOKEN_SECRET", "change-me")),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 20),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
	}
	cfg.MongoDB = databaseName(cfg.MongoURL, os.Getenv("MONGO_DB"))
	return cfg
}

func normalizePort(port string) string {
	if port == "" {
		port = defaultPort
	}
	if port[0] != ':' {
		port = ":" + port
	}
	return port
}

// databaseName prefers an explicit override, then the path of the
// connection string, then the default.
func databaseName(mongoURL, override string) string {
	if override != "" {
		return override
	}
	u, err := url.Parse(mongoURL)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid integer %q, using %d", v, fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid number %q, using %v", v, fallback)
		return fallback
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
