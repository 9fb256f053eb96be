package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config carries every deployment coordinate and runtime knob an audit run
// needs. There is no other process-wide state: the auditor receives all of
// this explicitly.
type Config struct {
	ProjectRoot  string `mapstructure:"project_root" validate:"required"`
	FrontendURL  string `mapstructure:"frontend_url" validate:"required,url"`
	BackendURL   string `mapstructure:"backend_url" validate:"required,url"`
	APIURL       string `mapstructure:"api_url" validate:"required,url"`
	DatabasePath string `mapstructure:"database_path" validate:"required"`
	RealtimeAddr string `mapstructure:"realtime_addr" validate:"required,hostname_port"`
	ResultsDir   string `mapstructure:"results_dir" validate:"required"`

	ProbeTimeoutSecs int  `mapstructure:"probe_timeout_secs" validate:"min=1"`
	RunTimeoutSecs   int  `mapstructure:"run_timeout_secs" validate:"min=0"`
	RateLimit        int  `mapstructure:"rate_limit" validate:"min=1"`
	Concurrent       bool `mapstructure:"concurrent"`
}

// SetDefaults registers the default deployment coordinates. They reproduce
// the stock local deployment the auditor was written against.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("project_root", ".")
	v.SetDefault("frontend_url", "http://localhost:5173")
	v.SetDefault("backend_url", "http://localhost:3001")
	v.SetDefault("api_url", "http://localhost:3001/api")
	v.SetDefault("database_path", "backend/tvbox.db")
	v.SetDefault("realtime_addr", "localhost:3001")
	v.SetDefault("results_dir", "./results")
	v.SetDefault("probe_timeout_secs", 5)
	v.SetDefault("run_timeout_secs", 0)
	v.SetDefault("rate_limit", 10)
	v.SetDefault("concurrent", false)
}

// Load unmarshals and validates the configuration.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return nil, formatValidationErrors(validationErrors)
		}
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// ProbeTimeout returns the per-probe bound as a duration.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSecs) * time.Second
}

// RunTimeout returns the run-level bound; zero means unbounded.
func (c *Config) RunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutSecs) * time.Second
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fmt.Sprintf("field %s failed on %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
