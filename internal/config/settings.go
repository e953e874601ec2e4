package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/rgehrsitz/roadmap/internal/calculation"
)

// EnvPrefix prefixes every environment variable read into Settings
const EnvPrefix = "ROADMAP"

// Settings are the process-level knobs of the roadmap binaries
type Settings struct {
	Port           int
	AllowedOrigins []string
	Debug          bool
	DefaultBudget  decimal.Decimal
	CacheSize      int
}

// NewViper returns a viper instance with defaults and environment binding set up.
// A .env file in the working directory is loaded first when present.
func NewViper() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("debug", false)
	v.SetDefault("default_budget", DefaultYearlyBudget.String())
	v.SetDefault("cache_size", calculation.DefaultCacheSize)
	return v
}

// LoadSettings reads Settings out of v
func LoadSettings(v *viper.Viper) (*Settings, error) {
	budget, err := decimal.NewFromString(v.GetString("default_budget"))
	if err != nil {
		return nil, fmt.Errorf("invalid default_budget %q: %w", v.GetString("default_budget"), err)
	}

	s := &Settings{
		Port:           v.GetInt("port"),
		AllowedOrigins: splitOrigins(v.GetStringSlice("allowed_origins")),
		Debug:          v.GetBool("debug"),
		DefaultBudget:  budget,
		CacheSize:      v.GetInt("cache_size"),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate reports every invalid setting at once
func (s *Settings) Validate() error {
	var problems []string
	if s.Port < 1 || s.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", s.Port))
	}
	if s.DefaultBudget.IsNegative() {
		problems = append(problems, "default budget cannot be negative")
	}
	if s.CacheSize < 0 {
		problems = append(problems, "cache size cannot be negative")
	}
	if len(s.AllowedOrigins) == 0 {
		problems = append(problems, "at least one allowed origin is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid settings: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (s *Settings) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// env values arrive as one comma separated string
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
