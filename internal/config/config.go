package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the report service.
type Config struct {
	Server ServerConfig `yaml:"server"`
	SAM    SAMConfig    `yaml:"sam"`
	Email  EmailConfig  `yaml:"email"`
	Report ReportConfig `yaml:"report"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection.
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// NAICSCode pairs a sheet label with the classification code queried for it.
type NAICSCode struct {
	Label string `yaml:"label"`
	Code  string `yaml:"code"`
}

// SAMConfig holds SAM.gov opportunities API configuration.
type SAMConfig struct {
	APIKey         string      `yaml:"api_key"`
	BaseURL        string      `yaml:"base_url"`
	TimeoutSeconds int         `yaml:"timeout_seconds"`
	Limit          int         `yaml:"limit"`
	MonthsBack     int         `yaml:"months_back"`
	MonthsForward  int         `yaml:"months_forward"`
	Codes          []NAICSCode `yaml:"codes"`
}

// Timeout returns the configured timeout as a duration.
func (c SAMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EmailConfig holds transactional-email provider configuration.
type EmailConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	From           string `yaml:"from"`
	To             string `yaml:"to"` // comma-separated distribution list
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration.
func (c EmailConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Recipients parses the comma-separated distribution list, trimming
// whitespace and dropping empty entries.
func (c EmailConfig) Recipients() []string {
	out := make([]string, 0)
	for _, part := range strings.Split(c.To, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// ReportConfig holds report branding and endpoint auth settings.
type ReportConfig struct {
	Creator     string `yaml:"creator"`
	CompanyName string `yaml:"company_name"`
	LogoURL     string `yaml:"logo_url"`
	CronSecret  string `yaml:"cron_secret"`
}

// Load reads and parses the configuration file, then applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.SAM.BaseURL == "" {
		cfg.SAM.BaseURL = "https://api.sam.gov/opportunities/v2/search"
	}
	if cfg.SAM.TimeoutSeconds == 0 {
		cfg.SAM.TimeoutSeconds = 30
	}
	if cfg.SAM.Limit == 0 {
		cfg.SAM.Limit = 100
	}
	if cfg.SAM.MonthsBack == 0 {
		cfg.SAM.MonthsBack = 3
	}
	if cfg.SAM.MonthsForward == 0 {
		cfg.SAM.MonthsForward = 3
	}
	if cfg.Email.BaseURL == "" {
		cfg.Email.BaseURL = "https://api.resend.com"
	}
	if cfg.Email.TimeoutSeconds == 0 {
		cfg.Email.TimeoutSeconds = 30
	}
	if cfg.Report.Creator == "" {
		cfg.Report.Creator = "Tepnology LLC"
	}
	if cfg.Report.CompanyName == "" {
		cfg.Report.CompanyName = cfg.Report.Creator
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars on ECS.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SAM_API_KEY"); v != "" {
		cfg.SAM.APIKey = v
	}
	if v := os.Getenv("SAM_API_URL"); v != "" {
		cfg.SAM.BaseURL = v
	}
	if v := os.Getenv("RESEND_API_KEY"); v != "" {
		cfg.Email.APIKey = v
	}
	if v := os.Getenv("EMAIL_BASE_URL"); v != "" {
		cfg.Email.BaseURL = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		cfg.Email.From = v
	}
	if v := os.Getenv("EMAIL_TO"); v != "" {
		cfg.Email.To = v
	}
	if v := os.Getenv("CRON_SECRET"); v != "" {
		cfg.Report.CronSecret = v
	}
	if v := os.Getenv("PUBLIC_LOGO_URL"); v != "" {
		cfg.Report.LogoURL = v
	}

	return cfg, nil
}
