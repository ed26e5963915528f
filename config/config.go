package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port           string
	GinMode        string
	RestaurantName string
	CORSOrigin     string
	RateLimit      int

	Backend BackendConfig
	Store   StoreConfig

	Tables                 []string
	CatalogRefreshInterval time.Duration
}

type BackendConfig struct {
	BaseURL         string
	Token           string
	CheckoutTimeout time.Duration
	FetchTimeout    time.Duration
}

type StoreConfig struct {
	Driver string
	DSN    string
}

// Load membaca .env (jika ada) lalu environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found, using environment only")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		RestaurantName: getEnv("RESTAURANT_NAME", "Restaurant POS"),
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://127.0.0.1:5500"),
		RateLimit:      getEnvInt("RATE_LIMIT", 50),
		Backend: BackendConfig{
			BaseURL:         strings.TrimRight(getEnv("BACKEND_BASE_URL", "http://localhost:5000/api"), "/"),
			Token:           getEnv("BACKEND_TOKEN", ""),
			CheckoutTimeout: getEnvDuration("CHECKOUT_TIMEOUT", 30*time.Second),
			FetchTimeout:    getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", "sqlite")),
			DSN:    getEnv("STORE_DSN", "pos_terminal.db"),
		},
		Tables:                 ParseTables(getEnv("TABLES", "T1,T2,T3,T4,T5,T6,T7,T8,T9,T10")),
		CatalogRefreshInterval: getEnvDuration("CATALOG_REFRESH_INTERVAL", 5*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is not set")
	}
	if c.Backend.CheckoutTimeout <= 0 {
		return fmt.Errorf("CHECKOUT_TIMEOUT must be positive")
	}
	switch c.Store.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Store.DSN == "" {
		return fmt.Errorf("STORE_DSN is not set")
	}
	return nil
}

// InitDB opens the local key/value database.
func InitDB(cfg StoreConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	default:
		dialector = sqlite.Open(cfg.DSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}
	utils.InfoLogger.Printf("Connected to %s store", cfg.Driver)
	return db, nil
}

// ParseTables splits a comma separated table list, skipping blanks and duplicates.
func ParseTables(raw string) []string {
	seen := make(map[string]bool)
	var tables []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tables = append(tables, t)
	}
	return tables
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		utils.ErrorLogger.Printf("Invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		utils.ErrorLogger.Printf("Invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
