package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DASHBOARD_AUTH_SIGNING_KEY.
const EnvPrefix = "DASHBOARD"

var ErrNoCredentials = errors.New("google credentials not configured: set google.credentials_b64 or google.credentials_file")

type Config struct {
	Port   string       `mapstructure:"port"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Auth   AuthConfig   `mapstructure:"auth"`
	HTTP   HTTPConfig   `mapstructure:"http"`
	Google GoogleConfig `mapstructure:"google"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

// GoogleConfig names the remote sources. Credentials are read from the
// environment or a file, never from the repository.
type GoogleConfig struct {
	RawFileID       string `mapstructure:"raw_file_id"`
	LatestFileID    string `mapstructure:"latest_file_id"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	SheetName       string `mapstructure:"sheet_name"`
	CredentialsFile string `mapstructure:"credentials_file"`
	CredentialsB64  string `mapstructure:"credentials_b64"`
}

var defaults = map[string]any{
	"port":                     "8080",
	"log.level":                "info",
	"db.path":                  "dashboard.db",
	"auth.signing_key":         "",
	"auth.token_ttl":           12 * time.Hour,
	"http.read_header_timeout": 10 * time.Second,
	"http.write_timeout":       2 * time.Minute,
	"http.idle_timeout":        60 * time.Second,
	"http.shutdown_timeout":    10 * time.Second,
	"google.raw_file_id":       "",
	"google.latest_file_id":    "",
	"google.spreadsheet_id":    "",
	"google.sheet_name":        "solarac_Comments_log",
	"google.credentials_file":  "",
	"google.credentials_b64":   "",
}

// Load reads an optional .env, then config.yml from dir, then DASHBOARD_* overrides.
// A missing config file is not an error.
func Load(dir string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings the dashboard cannot start without.
func (c *Config) Validate() error {
	var missing []string
	for key, val := range map[string]string{
		"google.raw_file_id":    c.Google.RawFileID,
		"google.latest_file_id": c.Google.LatestFileID,
		"google.spreadsheet_id": c.Google.SpreadsheetID,
		"google.sheet_name":     c.Google.SheetName,
		"auth.signing_key":      c.Auth.SigningKey,
	} {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	if c.Google.CredentialsB64 == "" && c.Google.CredentialsFile == "" {
		return ErrNoCredentials
	}
	return nil
}

// Credentials returns the service-account JSON. The base64 value wins over the file.
func (c *Config) Credentials() ([]byte, error) {
	if b64 := strings.TrimSpace(c.Google.CredentialsB64); b64 != "" {
		raw, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, fmt.Errorf("decode google.credentials_b64: %w", err)
		}
		return raw, nil
	}
	if c.Google.CredentialsFile != "" {
		raw, err := os.ReadFile(c.Google.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read google.credentials_file: %w", err)
		}
		return raw, nil
	}
	return nil, ErrNoCredentials
}
