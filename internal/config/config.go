package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Store     StoreConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
	MongoDB   MongoDBConfig
	Weather   WeatherConfig
	Kitchen   KitchenConfig
	Notify    NotifyConfig
	Redis     RedisConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// DatabaseConfig points at the relational store holding menu, orders and inventory.
type DatabaseConfig struct {
	URL string
}

// StoreConfig describes the register itself.
type StoreConfig struct {
	Location          string
	DefaultEmployeeID int
	// BusinessDate is the initial effective date; empty means today in the configured timezone.
	BusinessDate      string
	ExtraSurcharge    decimal.Decimal
	CustomizationFile string
}

// SheetsConfig contains configuration required to export reports to Google Sheets.
// Export is disabled when either field is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ReportRange     string
}

// Enabled reports whether report export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// Location resolves Timezone, falling back to UTC.
func (c ReportingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MongoDBConfig holds settings for the Z report snapshot store.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether snapshots should be stored.
func (c MongoDBConfig) Enabled() bool {
	return c.URI != ""
}

// WeatherConfig holds OpenWeather settings for the storefront widget.
type WeatherConfig struct {
	APIKey  string
	BaseURL string
	Lat     float64
	Lon     float64
}

// KitchenConfig holds the AMQP settings used to publish kitchen tickets.
type KitchenConfig struct {
	URL      string
	Exchange string
}

// NotifyConfig contains credentials for sending the nightly summary over the
// WhatsApp Cloud API. Notifications are disabled when AccessToken is empty.
type NotifyConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	ManagerID     string
}

// Enabled reports whether summaries can be sent.
func (c NotifyConfig) Enabled() bool {
	return c.AccessToken != "" && c.PhoneNumberID != "" && c.ManagerID != ""
}

// RedisConfig points at the store that remembers the business date across
// restarts. Disabled when URL is empty.
type RedisConfig struct {
	URL       string
	KeyPrefix string
}

// TelemetryConfig controls request tracing. Endpoint is an OTLP/gRPC
// collector address; empty keeps spans in-process.
type TelemetryConfig struct {
	Endpoint    string
	ServiceName string
	SampleRatio float64
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when everything comes from the environment.
		_ = godotenv.Load()
	}

	employeeID, err := strconv.Atoi(getenvWithDefault("DEFAULT_EMPLOYEE_ID", "1"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_EMPLOYEE_ID: %w", err)
	}
	surcharge, err := decimal.NewFromString(getenvWithDefault("EXTRA_SURCHARGE", "0.50"))
	if err != nil {
		return nil, fmt.Errorf("EXTRA_SURCHARGE: %w", err)
	}
	sampleRatio, err := strconv.ParseFloat(getenvWithDefault("OTEL_SAMPLE_RATIO", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("OTEL_SAMPLE_RATIO: %w", err)
	}
	lat, err := strconv.ParseFloat(getenvWithDefault("WEATHER_LAT", "30.62195082680784"), 64)
	if err != nil {
		return nil, fmt.Errorf("WEATHER_LAT: %w", err)
	}
	lon, err := strconv.ParseFloat(getenvWithDefault("WEATHER_LON", "-96.32773129192775"), 64)
	if err != nil {
		return nil, fmt.Errorf("WEATHER_LON: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Store: StoreConfig{
			Location:          getenvWithDefault("STORE_LOCATION", "College Station"),
			DefaultEmployeeID: employeeID,
			BusinessDate:      os.Getenv("BUSINESS_DATE"),
			ExtraSurcharge:    surcharge,
			CustomizationFile: os.Getenv("CUSTOMIZATION_FILE"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			ReportRange:     getenvWithDefault("GOOGLE_SHEET_REPORT_RANGE", "ZReports!A:H"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 22 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "America/Chicago"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "cafepos"),
		},
		Weather: WeatherConfig{
			APIKey:  os.Getenv("OW_API_KEY"),
			BaseURL: getenvWithDefault("OW_BASE_URL", "https://api.openweathermap.org"),
			Lat:     lat,
			Lon:     lon,
		},
		Kitchen: KitchenConfig{
			URL:      os.Getenv("RABBITMQ_URL"),
			Exchange: getenvWithDefault("KITCHEN_EXCHANGE", "kitchen_tickets"),
		},
		Notify: NotifyConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			ManagerID:     os.Getenv("WHATSAPP_MANAGER_ID"),
		},
		Redis: RedisConfig{
			URL:       os.Getenv("REDIS_URL"),
			KeyPrefix: getenvWithDefault("REDIS_KEY_PREFIX", "cafepos"),
		},
		Telemetry: TelemetryConfig{
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: getenvWithDefault("OTEL_SERVICE_NAME", "cafepos"),
			SampleRatio: sampleRatio,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Database.URL == "" {
		return errors.New("DATABASE_URL must be provided")
	}

	switch {
	case c.Store.Location == "":
		return errors.New("STORE_LOCATION must not be empty")
	case c.Store.DefaultEmployeeID <= 0:
		return errors.New("DEFAULT_EMPLOYEE_ID must be positive")
	case c.Store.ExtraSurcharge.IsNegative():
		return errors.New("EXTRA_SURCHARGE must not be negative")
	}

	if c.Store.BusinessDate != "" {
		if _, err := time.Parse("2006-01-02", c.Store.BusinessDate); err != nil {
			return fmt.Errorf("BUSINESS_DATE must be YYYY-MM-DD: %w", err)
		}
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}
	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}

	if c.Sheets.Enabled() && c.Sheets.ReportRange == "" {
		return errors.New("GOOGLE_SHEET_REPORT_RANGE must not be empty")
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return errors.New("OTEL_SAMPLE_RATIO must be between 0 and 1")
	}

	if c.Kitchen.URL != "" && c.Kitchen.Exchange == "" {
		return errors.New("KITCHEN_EXCHANGE must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
