package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	UploadDir string
	BaseURL   string // public base URL used to resolve uploaded file paths in PDFs

	WhatsappApiURL   string
	WhatsappApiToken string
	WhatsappTemplate string

	SendgridApiKey string
	EmailSender    string

	ChromiumPath   string
	PdfConcurrency int
	PdfTimeoutSec  int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "schoolportal"),
		DBPort:     getEnv("DB_PORT", "5432"),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
		BaseURL:   getEnv("BASE_URL", "http://localhost:3000"),

		WhatsappApiURL:   getEnv("WHATSAPP_API_URL", "https://graph.facebook.com/v17.0"),
		WhatsappApiToken: getEnv("WHATSAPP_API_TOKEN", ""),
		WhatsappTemplate: getEnv("WHATSAPP_OTP_TEMPLATE", "otp_verification"),

		SendgridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "noreply@schoolportal.in"),

		ChromiumPath:   getEnv("CHROMIUM_PATH", "chromium"),
		PdfConcurrency: getEnvInt("PDF_CONCURRENCY", 2),
		PdfTimeoutSec:  getEnvInt("PDF_TIMEOUT_SEC", 30),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.WhatsappApiToken == "" {
		log.Println("Warning: WHATSAPP_API_TOKEN is empty. OTP delivery will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
