package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL       string
	PagesToScan   int
	TargetCity    string
	CSVOutputPath string
	ChromeBin     string

	BaseDelayMs    int
	DelayJitterMs  int
	MaxRetries     int
	PageTimeoutSec int
	RunTimeoutMin  int

	NominatimURL     string
	GeocodeTimeoutMs int

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		BaseURL:       getEnv("BASE_URL", "https://www.lamudi.com.mx/yucatan/merida/for-sale/"),
		PagesToScan:   getEnvInt("PAGES_TO_SCAN", 10),
		TargetCity:    getEnv("TARGET_CITY", "Mérida, Yucatán"),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "data.csv"),
		ChromeBin:     getEnv("CHROME_BIN", ""),

		BaseDelayMs:    getEnvInt("BASE_DELAY_MS", 5000),
		DelayJitterMs:  getEnvInt("DELAY_JITTER_MS", 1000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 2),
		PageTimeoutSec: getEnvInt("PAGE_TIMEOUT_SEC", 60),
		RunTimeoutMin:  getEnvInt("RUN_TIMEOUT_MIN", 0),

		NominatimURL:     getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		GeocodeTimeoutMs: getEnvInt("GEOCODE_TIMEOUT_MS", 3000),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "merida_market"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
