package constants

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Constants holds every environment-backed setting the service reads.
type Constants struct {
	Port string

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string

	SmtpHost     string
	SmtpPort     int
	SmtpUser     string
	SmtpPassword string

	EmailFrom     string
	EmailFromName string

	JWTSecretKey      string
	AdminEmail        string
	AdminPasswordHash string

	MaxWaitlistSpots int
	AllowedOrigins   string
}

func New() *Constants {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	return &Constants{
		Port: getEnv("PORT", "8000"),

		DbHost:     getEnv("DB_HOST", "localhost"),
		DbPort:     getEnv("DB_PORT", "5432"),
		DbUser:     getEnv("DB_USER", "postgres"),
		DbPassword: getEnv("DB_PASSWORD", "postgres"),
		DbName:     getEnv("DB_NAME", "synthos"),

		SmtpHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SmtpPort:     getEnvInt("SMTP_PORT", 587),
		SmtpUser:     os.Getenv("SMTP_USER"),
		SmtpPassword: os.Getenv("SMTP_PASSWORD"),

		EmailFrom:     getEnv("EMAIL_FROM", "hello@synthos.ai"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "SynthOS Team"),

		JWTSecretKey:      os.Getenv("JWT_SECRET_KEY"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		MaxWaitlistSpots: getEnvInt("MAX_WAITLIST_SPOTS", 50),
		AllowedOrigins:   getEnv("ALLOWED_ORIGINS", "http://localhost:3000,https://synthos.ai"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
