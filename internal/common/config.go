package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	OCR      OCRConfig
	Fallback FallbackConfig
	History  HistoryConfig
	Ingest   IngestConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr        string
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
}

// OCRConfig holds configuration for the external OCR tools
type OCRConfig struct {
	TesseractBin string
	PdftotextBin string
	PdftoppmBin  string
	Languages    string
	TessdataDir  string
	Timeout      time.Duration
	WorkDir      string
}

// FallbackConfig holds configuration for the remote cleanup model. The
// fallback is active only when an API key is present.
type FallbackConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// HistoryConfig holds configuration for the audit store. An empty DSN
// disables history entirely.
type HistoryConfig struct {
	DSN string
}

// IngestConfig holds configuration for the watched inbox. An empty
// WatchDir disables ingestion.
type IngestConfig struct {
	WatchDir string
	Workers  int
	Debounce time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8000"),
			MaxUploadBytes:  getEnvAsInt64("MAX_UPLOAD_BYTES", 20<<20),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		OCR: OCRConfig{
			TesseractBin: getEnv("TESSERACT_BIN", "tesseract"),
			PdftotextBin: getEnv("PDFTOTEXT_BIN", "pdftotext"),
			PdftoppmBin:  getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Languages:    getEnv("OCR_LANGUAGES", "eng+hin+ara"),
			TessdataDir:  getEnv("TESSDATA_PREFIX", ""),
			Timeout:      getEnvAsDuration("OCR_TIMEOUT", 60*time.Second),
			WorkDir:      getEnv("OCR_WORK_DIR", os.TempDir()),
		},
		Fallback: FallbackConfig{
			APIKey:      getEnv("OPENROUTER_API_KEY", ""),
			Model:       getEnv("OPENROUTER_MODEL", "meta-llama/llama-3.2-3b-instruct:free"),
			BaseURL:     getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Temperature: getEnvAsFloat32("OPENROUTER_TEMPERATURE", 0.1),
			Timeout:     getEnvAsDuration("OPENROUTER_TIMEOUT", 30*time.Second),
		},
		History: HistoryConfig{
			DSN: getEnv("HISTORY_DSN", "docuverify.db"),
		},
		Ingest: IngestConfig{
			WatchDir: getEnv("WATCH_DIR", ""),
			Workers:  int(getEnvAsInt64("INGEST_WORKERS", 2)),
			Debounce: getEnvAsDuration("INGEST_DEBOUNCE", 500*time.Millisecond),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// FallbackEnabled reports whether the remote cleanup model may be called.
func (c *Config) FallbackEnabled() bool {
	return c.Fallback.APIKey != ""
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_UPLOAD_BYTES must be positive", ErrInvalidInput)
	}
	if c.OCR.Timeout <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_TIMEOUT must be positive", ErrInvalidInput)
	}
	return nil
}
