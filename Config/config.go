package Config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, loaded once from the environment.
type Config struct {
	ListenAddr string
	DBPath     string

	JWTSecret     string
	JWTExpiration time.Duration

	SMTPServer   string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	TLSEnabled   bool

	GenerationBaseURL string
	GenerationAPIKey  string
	GenerationModel   string

	PDFFolder string
	UploadDir string
}

var AppConfig Config

// Load reads .env if present and fills AppConfig with env values or defaults.
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	AppConfig = Config{
		ListenAddr:        getEnv("LISTEN_ADDR", ":5000"),
		DBPath:            getEnv("DB_PATH", "email_history.db"),
		JWTSecret:         getEnv("JWT_SECRET", "super-secret-key"),
		JWTExpiration:     time.Duration(getEnvInt("JWT_EXPIRATION", 86400)) * time.Second,
		SMTPServer:        getEnv("SMTP_SERVER", "smtp.gmail.com"),
		SMTPPort:          getEnvInt("SMTP_PORT", 465),
		SMTPUsername:      getEnv("EMAIL_SENDER", ""),
		SMTPPassword:      getEnv("EMAIL_PASSWORD", ""),
		FromEmail:         getEnv("EMAIL_SENDER", ""),
		FromName:          getEnv("EMAIL_FROM_NAME", "Quill"),
		TLSEnabled:        getEnvBool("SMTP_TLS", true),
		GenerationBaseURL: getEnv("GENERATION_BASE_URL", "https://api.openai.com/v1"),
		GenerationAPIKey:  getEnv("GENERATION_API_KEY", ""),
		GenerationModel:   getEnv("GENERATION_MODEL", "gpt-3.5-turbo"),
		PDFFolder:         getEnv("PDF_FOLDER", "./pdfs"),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %v, using default %d\n", key, err, fallback)
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
