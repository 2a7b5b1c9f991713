// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"buildcost/core/carbon"
	"buildcost/core/estimate"
	"buildcost/core/materials"
	"buildcost/core/types"
	"buildcost/internal/errors"
	"buildcost/internal/logging"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "BUILDCOST_"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains bulk material prices
	Pricing PricingConfig `json:"pricing"`

	// Estimation contains engine settings
	Estimation EstimationConfig `json:"estimation"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains prices for materials that have no catalog
type PricingConfig struct {
	// Currency is the default currency
	Currency types.Currency `json:"currency"`

	// CementBag is the price of one 50 kg bag
	CementBag decimal.Decimal `json:"cement_bag"`

	// SandPerCubicFoot is the price of one ft³ of sand
	SandPerCubicFoot decimal.Decimal `json:"sand_per_cuft"`

	// AggregatePerCubicFoot is the price of one ft³ of crushed aggregate
	AggregatePerCubicFoot decimal.Decimal `json:"aggregate_per_cuft"`
}

// EstimationConfig contains engine settings
type EstimationConfig struct {
	// MarlaSize is the default sq ft per marla (252 or 272)
	MarlaSize types.MarlaSize `json:"marla_size"`

	// ConcreteMix is the nominal cement:sand:aggregate mix
	ConcreteMix materials.Mix `json:"concrete_mix"`

	// Carbon overrides the embodied-carbon factors
	Carbon carbon.Factors `json:"carbon"`

	// Workers bounds concurrent surface evaluation (0 = GOMAXPROCS)
	Workers int `json:"workers"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// NoColor disables terminal colors
	NoColor bool `json:"no_color"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds writing a response
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`

	// MaxBodyBytes bounds request bodies
	MaxBodyBytes int64 `json:"max_body_bytes"`
}

// Default returns a default configuration
func Default() *Config {
	engine := estimate.DefaultConfig()
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			Currency:              engine.Currency,
			CementBag:             engine.Rates.CementBag,
			SandPerCubicFoot:      engine.Rates.SandPerCubicFoot,
			AggregatePerCubicFoot: engine.Rates.AggregatePerCubicFoot,
		},
		Estimation: EstimationConfig{
			MarlaSize:   engine.MarlaSize,
			ConcreteMix: engine.Mix,
			Carbon:      engine.Carbon,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
			MaxBodyBytes:        1 << 20,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.buildcost/config.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".buildcost", "config.json")
}

// Load loads configuration from a file.
// A missing file yields the defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, errors.Config("invalid config file "+path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, errors.Config("failed to read config file "+path, err)
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadDotEnv loads .env files into the process environment.
// Existing variables win; a missing default .env is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); os.IsNotExist(err) {
			return nil
		}
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Config("failed to load .env", err)
	}
	return nil
}

// ApplyEnv overrides settings from BUILDCOST_* environment variables
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("CURRENCY"); ok {
		c.Pricing.Currency = types.Currency(strings.ToUpper(v))
	}
	if v, ok := lookup("MARLA_SIZE"); ok {
		size, err := types.ParseMarlaSize(v)
		if err != nil {
			return errors.Config(EnvPrefix+"MARLA_SIZE", err)
		}
		c.Estimation.MarlaSize = size
	}
	for name, dst := range map[string]*decimal.Decimal{
		"CEMENT_BAG_PRICE": &c.Pricing.CementBag,
		"SAND_PRICE":       &c.Pricing.SandPerCubicFoot,
		"AGGREGATE_PRICE":  &c.Pricing.AggregatePerCubicFoot,
	} {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			return errors.Config(EnvPrefix+name+" must be a non-negative number", err)
		}
		*dst = d
	}
	if v, ok := lookup("WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return errors.Config(EnvPrefix+"WORKERS must be a non-negative integer", err)
		}
		c.Estimation.Workers = n
	}
	if v, ok := lookup("ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Logging.Level = strings.ToLower(v)
	}
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Engine converts the configuration into estimation engine settings
func (c *Config) Engine() estimate.Config {
	return estimate.Config{
		Rates: estimate.Rates{
			CementBag:             c.Pricing.CementBag,
			SandPerCubicFoot:      c.Pricing.SandPerCubicFoot,
			AggregatePerCubicFoot: c.Pricing.AggregatePerCubicFoot,
		},
		Currency:  c.Pricing.Currency,
		MarlaSize: c.Estimation.MarlaSize,
		Mix:       c.Estimation.ConcreteMix,
		Carbon:    c.Estimation.Carbon,
		Workers:   c.Estimation.Workers,
	}
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
