package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	App       AppConfig
	Backend   BackendConfig
	Storage   StorageConfig
	Dashboard DashboardConfig
	Upload    UploadConfig
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// BackendConfig points at the service that parses uploads and renders documents
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

// DashboardConfig holds presentation defaults and attendance thresholds
type DashboardConfig struct {
	PageSize            int
	SearchDebounce      time.Duration
	RefreshInterval     time.Duration
	TargetNonShift      int
	TargetShift         int
	YearlyCeiling       int
	YearlyGoodThreshold int
}

type UploadConfig struct {
	MaxSize         int64
	ProgressTick    time.Duration
	ProgressStep    int
	ProgressCap     int
	SettleDelay     time.Duration
	AllowedExts     []string
	MaxRequestBytes int64
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Enabled:  getEnvBool("DB_ENABLED", false),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "senam_dashboard"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// Backend configuration
	backendTimeout, err := time.ParseDuration(getEnv("BACKEND_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
	}

	config.Backend = BackendConfig{
		BaseURL: strings.TrimRight(getEnv("BACKEND_BASE_URL", ""), "/"),
		Timeout: backendTimeout,
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./exports"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/api/v1/exports/files"),
	}

	// Dashboard configuration
	pageSize, err := strconv.Atoi(getEnv("DASHBOARD_PAGE_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_PAGE_SIZE: %w", err)
	}
	searchDebounce, err := time.ParseDuration(getEnv("SEARCH_DEBOUNCE", "300ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_DEBOUNCE: %w", err)
	}
	refreshInterval, err := time.ParseDuration(getEnv("REFRESH_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}

	config.Dashboard = DashboardConfig{
		PageSize:        pageSize,
		SearchDebounce:  searchDebounce,
		RefreshInterval: refreshInterval,
	}
	thresholds := map[string]*int{
		"TARGET_NON_SHIFT":      &config.Dashboard.TargetNonShift,
		"TARGET_SHIFT":          &config.Dashboard.TargetShift,
		"YEARLY_CEILING":        &config.Dashboard.YearlyCeiling,
		"YEARLY_GOOD_THRESHOLD": &config.Dashboard.YearlyGoodThreshold,
	}
	defaults := map[string]string{
		"TARGET_NON_SHIFT":      "56",
		"TARGET_SHIFT":          "40",
		"YEARLY_CEILING":        "80",
		"YEARLY_GOOD_THRESHOLD": "20",
	}
	for key, dst := range thresholds {
		v, err := strconv.Atoi(getEnv(key, defaults[key]))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = v
	}

	// Upload configuration
	maxSize, err := strconv.ParseInt(getEnv("UPLOAD_MAX_SIZE", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_SIZE: %w", err)
	}
	progressTick, err := time.ParseDuration(getEnv("UPLOAD_PROGRESS_TICK", "200ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_PROGRESS_TICK: %w", err)
	}
	progressStep, err := strconv.Atoi(getEnv("UPLOAD_PROGRESS_STEP", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_PROGRESS_STEP: %w", err)
	}
	progressCap, err := strconv.Atoi(getEnv("UPLOAD_PROGRESS_CAP", "90"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_PROGRESS_CAP: %w", err)
	}
	settleDelay, err := time.ParseDuration(getEnv("UPLOAD_SETTLE_DELAY", "1500ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_SETTLE_DELAY: %w", err)
	}

	config.Upload = UploadConfig{
		MaxSize:         maxSize,
		ProgressTick:    progressTick,
		ProgressStep:    progressStep,
		ProgressCap:     progressCap,
		SettleDelay:     settleDelay,
		AllowedExts:     getEnvSlice("UPLOAD_ALLOWED_EXTS", []string{".xlsx", ".xls", ".csv"}),
		MaxRequestBytes: maxSize + 1<<20, // multipart overhead
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if c.Database.Enabled && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required when DB_ENABLED is true")
	}
	switch c.Dashboard.PageSize {
	case 10, 25, 50, 100:
	default:
		return fmt.Errorf("DASHBOARD_PAGE_SIZE must be one of 10, 25, 50, 100")
	}
	if c.Dashboard.YearlyCeiling <= 0 {
		return fmt.Errorf("YEARLY_CEILING must be positive")
	}
	if c.Upload.ProgressCap <= 0 || c.Upload.ProgressCap >= 100 {
		return fmt.Errorf("UPLOAD_PROGRESS_CAP must be between 1 and 99")
	}
	if c.Upload.ProgressStep <= 0 {
		return fmt.Errorf("UPLOAD_PROGRESS_STEP must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
