package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	PostgresURI          string
	MongoURI             string
	RedisURI             string
	AccessTokenSecret    string // signs access tokens (15 min)
	RefreshTokenSecret   string // signs refresh tokens (7 days)
	ActivationLinkSecret string // signs activation tokens (10 min)
	Port                 string
	APIURL               string   // public base URL of this backend, used in recovery links
	ClientURL            string   // storefront frontend, target of the activation redirect
	AllowedOrigins       []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
	SMTPHost             string
	SMTPPort             int
	SMTPUser             string
	SMTPPassword         string
	MailFrom             string
	Environment          string // ENV: production, development, etc.
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = append(allowedOrigins, getEnv("FRONTEND_URL", "http://localhost:3000"))
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		smtpPort = 587
	}

	return &Config{
		PostgresURI:          getEnv("POSTGRES_URI", "postgres://localhost:5432/shopper?sslmode=disable"),
		MongoURI:             getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/shopper")),
		RedisURI:             getEnv("REDIS_URI", "redis://localhost:6379/0"),
		AccessTokenSecret:    os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret:   os.Getenv("REFRESH_TOKEN_SECRET"),
		ActivationLinkSecret: os.Getenv("ACTIVATION_LINK_SECRET"),
		Port:                 getEnv("PORT", "8080"),
		APIURL:               getEnv("API_URL", "http://localhost:8080"),
		ClientURL:            getEnv("CLIENT_URL", "http://localhost:3000"),
		AllowedOrigins:       allowedOrigins,
		SMTPHost:             getEnv("SMTP_HOST", "localhost"),
		SMTPPort:             smtpPort,
		SMTPUser:             getEnv("SMTP_USER", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		MailFrom:             getEnv("MAIL_FROM", "no-reply@shopper.local"),
		Environment:          env,
	}
}

// HasTokenSecrets reports whether all three signing secrets are configured.
// The three secrets are independent key slots: compromise of one token kind
// must not compromise the others.
func (c *Config) HasTokenSecrets() bool {
	return c.AccessTokenSecret != "" && c.RefreshTokenSecret != "" && c.ActivationLinkSecret != ""
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
