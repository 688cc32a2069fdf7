package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings. Values come from defaults, then the optional
// YAML file named by CONFIG_FILE, then environment variables.
type Config struct {
	ServerPort  string   `yaml:"server_port"`
	CORSOrigins []string `yaml:"cors_origins"`
	LogLevel    string   `yaml:"log_level"`

	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSSLMode  string `yaml:"db_sslmode"`

	Storage StorageConfig `yaml:"storage"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	UI      UIConfig      `yaml:"ui"`
	Limits  LimitsConfig  `yaml:"limits"`
}

type StorageConfig struct {
	Bucket     string        `yaml:"bucket"`
	Region     string        `yaml:"region"`
	Endpoint   string        `yaml:"endpoint"`
	SignedURLs bool          `yaml:"signed_urls"`
	URLExpiry  time.Duration `yaml:"url_expiry"`
	// Anonymous skips credential lookup, for public buckets.
	Anonymous bool `yaml:"anonymous"`
}

type SMTPConfig struct {
	Host      string `yaml:"host"`
	Port      string `yaml:"port"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	FromName  string `yaml:"from_name"`
	FromEmail string `yaml:"from_email"`
	// ContactTo receives contact form inquiries.
	ContactTo string `yaml:"contact_to"`
}

// UIConfig tunes the gallery page sessions.
type UIConfig struct {
	PlaceholderImage string        `yaml:"placeholder_image"`
	SessionTTL       time.Duration `yaml:"session_ttl"`
	LayoutDebounce   time.Duration `yaml:"layout_debounce"`
	ShowDelay        time.Duration `yaml:"show_delay"`
	EnterDuration    time.Duration `yaml:"enter_duration"`
	ExitDuration     time.Duration `yaml:"exit_duration"`
	HeroInterval     time.Duration `yaml:"hero_interval"`
	RowHeight        float64       `yaml:"row_height"`
	RowGap           float64       `yaml:"row_gap"`
}

type LimitsConfig struct {
	Window   time.Duration `yaml:"window"`
	Requests int           `yaml:"requests"`
}

func DefaultConfig() *Config {
	return &Config{
		ServerPort:  "8080",
		CORSOrigins: []string{"http://localhost:3000"},
		LogLevel:    "info",
		DBHost:      "localhost",
		DBPort:      "5432",
		DBUser:      "postgres",
		DBName:      "heey",
		DBSSLMode:   "disable",
		Storage: StorageConfig{
			Bucket:     "heey-assets",
			Region:     "us-east-1",
			SignedURLs: true,
			URLExpiry:  time.Hour,
		},
		SMTP: SMTPConfig{
			Port:     "587",
			FromName: "heey studio",
		},
		UI: UIConfig{
			PlaceholderImage: "/placeholder.svg",
			SessionTTL:       30 * time.Minute,
			LayoutDebounce:   100 * time.Millisecond,
			ShowDelay:        10 * time.Millisecond,
			EnterDuration:    300 * time.Millisecond,
			ExitDuration:     300 * time.Millisecond,
			HeroInterval:     5 * time.Second,
			RowHeight:        10,
			RowGap:           16,
		},
		Limits: LimitsConfig{
			Window:   time.Minute,
			Requests: 600,
		},
	}
}

// LoadConfig builds the configuration for the server.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.ServerPort, "SERVER_PORT")
	setString(&c.LogLevel, "LOG_LEVEL")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}

	setString(&c.DBHost, "DB_HOST")
	setString(&c.DBPort, "DB_PORT")
	setString(&c.DBUser, "DB_USER")
	setString(&c.DBPassword, "DB_PASSWORD")
	setString(&c.DBName, "DB_NAME")
	setString(&c.DBSSLMode, "DB_SSLMODE")

	setString(&c.Storage.Bucket, "S3_BUCKET_NAME")
	setString(&c.Storage.Region, "AWS_REGION")
	setString(&c.Storage.Endpoint, "S3_ENDPOINT")

	setString(&c.SMTP.Host, "SMTP_HOST")
	setString(&c.SMTP.Port, "SMTP_PORT")
	setString(&c.SMTP.User, "SMTP_USER")
	setString(&c.SMTP.Password, "SMTP_PASSWORD")
	setString(&c.SMTP.FromName, "SMTP_FROM_NAME")
	setString(&c.SMTP.FromEmail, "SMTP_FROM_EMAIL")
	setString(&c.SMTP.ContactTo, "CONTACT_TO")

	setString(&c.UI.PlaceholderImage, "PLACEHOLDER_IMAGE")

	var errs []error
	errs = append(errs,
		setBool(&c.Storage.SignedURLs, "S3_SIGNED_URLS"),
		setBool(&c.Storage.Anonymous, "S3_ANONYMOUS"),
		setDuration(&c.Storage.URLExpiry, "S3_URL_EXPIRY"),
		setDuration(&c.UI.SessionTTL, "SESSION_TTL"),
		setInt(&c.Limits.Requests, "RATE_LIMIT_REQUESTS"),
		setDuration(&c.Limits.Window, "RATE_LIMIT_WINDOW"),
	)
	return errors.Join(errs...)
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.ServerPort == "" {
		errs = append(errs, errors.New("server port is required"))
	}
	if c.Storage.Bucket == "" {
		errs = append(errs, errors.New("storage bucket is required"))
	}
	if c.Storage.SignedURLs && c.Storage.URLExpiry <= 0 {
		errs = append(errs, errors.New("signed url expiry must be positive"))
	}
	if c.UI.SessionTTL <= 0 {
		errs = append(errs, errors.New("session ttl must be positive"))
	}
	if c.UI.RowHeight+c.UI.RowGap <= 0 {
		errs = append(errs, errors.New("grid row height plus gap must be positive"))
	}
	if c.Limits.Requests <= 0 || c.Limits.Window <= 0 {
		errs = append(errs, errors.New("rate limit requests and window must be positive"))
	}
	return errors.Join(errs...)
}

// GetDBConnString returns the lib/pq connection string.
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// MailEnabled reports whether enough SMTP settings exist to send mail.
func (c *Config) MailEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.FromEmail != "" && c.SMTP.ContactTo != ""
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
