package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Aur71/Workout-Tracker-sub000/internal/overload"
	"github.com/Aur71/Workout-Tracker-sub000/internal/planner"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	// DefaultMaxCycles caps how many cycles one request may generate.
	DefaultMaxCycles = 52
	// DefaultMaxSets caps the working sets any projected exercise may reach.
	DefaultMaxSets = 50
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	Tailscale   TailscaleConfig   `yaml:"tailscale"`
	Progression ProgressionConfig `yaml:"progression"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// ProgressionConfig holds the knob values a fresh configuration starts from.
// Empty fields fall back to planner.StandardDefaults.
type ProgressionConfig struct {
	DefaultMethod                string        `yaml:"default_method"`
	WeightIncrement              planner.Field `yaml:"weight_increment"`
	SetsToAdd                    planner.Field `yaml:"sets_to_add"`
	EveryNCycles                 planner.Field `yaml:"every_n_cycles"`
	RPEIncrement                 planner.Field `yaml:"rpe_increment"`
	StepCycleLength              planner.Field `yaml:"step_cycle_length"`
	DoubleProgressionCycleLength planner.Field `yaml:"double_progression_cycle_length"`
	IncludeBaseCycle             bool          `yaml:"include_base_cycle"`
	MaxCycles                    int           `yaml:"max_cycles"`
	MaxSets                      int           `yaml:"max_sets"`
}

// PlannerDefaults merges the configured knobs over the standard ones.
func (p ProgressionConfig) PlannerDefaults() planner.Defaults {
	d := planner.StandardDefaults()
	if m, err := overload.ParseMethod(p.DefaultMethod); err == nil {
		d.Method = m
	}
	if p.WeightIncrement != "" {
		d.WeightIncrement = p.WeightIncrement
	}
	if p.SetsToAdd != "" {
		d.SetsToAdd = p.SetsToAdd
	}
	if p.EveryNCycles != "" {
		d.EveryNCycles = p.EveryNCycles
	}
	if p.RPEIncrement != "" {
		d.RPEIncrement = p.RPEIncrement
	}
	if p.StepCycleLength != "" {
		d.StepCycleLength = p.StepCycleLength
	}
	if p.DoubleProgressionCycleLength != "" {
		d.DoubleProgressionCycleLength = p.DoubleProgressionCycleLength
	}
	d.IncludeBaseCycle = p.IncludeBaseCycle
	return d
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix MESOPLAN_ and underscore-separated paths:
//
//	MESOPLAN_SERVER_HOST, MESOPLAN_SERVER_PORT,
//	MESOPLAN_DB_DRIVER, MESOPLAN_DB_PATH,
//	MESOPLAN_DB_HOST, MESOPLAN_DB_PORT, MESOPLAN_DB_NAME,
//	MESOPLAN_DB_USER, MESOPLAN_DB_PASSWORD, MESOPLAN_DB_SSLMODE,
//	MESOPLAN_AUTH_API_KEY, MESOPLAN_TAILSCALE_ENABLED,
//	MESOPLAN_PROGRESSION_DEFAULT_METHOD, MESOPLAN_PROGRESSION_MAX_CYCLES,
//	MESOPLAN_PROGRESSION_MAX_SETS
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MESOPLAN_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("MESOPLAN_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("MESOPLAN_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("MESOPLAN_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("MESOPLAN_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("MESOPLAN_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("MESOPLAN_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("MESOPLAN_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("MESOPLAN_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("MESOPLAN_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("MESOPLAN_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("MESOPLAN_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("MESOPLAN_PROGRESSION_DEFAULT_METHOD"); v != "" {
		cfg.Progression.DefaultMethod = v
	}
	if v := os.Getenv("MESOPLAN_PROGRESSION_MAX_CYCLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Progression.MaxCycles = n
		}
	}
	if v := os.Getenv("MESOPLAN_PROGRESSION_MAX_SETS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Progression.MaxSets = n
		}
	}
}

func applyDefaults(cfg *Config) {
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverPostgres
	}
	if cfg.Progression.MaxCycles == 0 {
		cfg.Progression.MaxCycles = DefaultMaxCycles
	}
	if cfg.Progression.MaxSets == 0 {
		cfg.Progression.MaxSets = DefaultMaxSets
	}
	if cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "mesoplan"
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required")
		}
		if c.Database.Port == 0 {
			return fmt.Errorf("database.port is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("database.driver %q is not supported (want postgres or sqlite)", c.Database.Driver)
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Progression.MaxCycles < 1 {
		return fmt.Errorf("progression.max_cycles must be positive, got %d", c.Progression.MaxCycles)
	}
	if c.Progression.MaxSets < 1 {
		return fmt.Errorf("progression.max_sets must be positive, got %d", c.Progression.MaxSets)
	}
	if c.Progression.DefaultMethod != "" {
		if _, err := overload.ParseMethod(c.Progression.DefaultMethod); err != nil {
			return fmt.Errorf("progression.default_method: %w", err)
		}
	}
	return nil
}
