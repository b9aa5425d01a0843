// Package config provides Viper-based configuration loading for the arena services.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ServerConfig holds the arena gRPC listener settings.
type ServerConfig struct {
	GRPCHost string `mapstructure:"grpc_host"`
	GRPCPort int    `mapstructure:"grpc_port"`
	// ShutdownTimeout bounds graceful gRPC shutdown before connections are cut.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the "host:port" gRPC address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.GRPCHost, s.GRPCPort)
}

// BattleConfig holds simulator and roster settings.
type BattleConfig struct {
	// MaxRounds caps every battle; a capped battle is resolved on energy.
	MaxRounds int `mapstructure:"max_rounds"`
	// SeedSource is "name" (hash of the attacker's name) or "random".
	SeedSource string `mapstructure:"seed_source"`
	// Hash is the digest used by the "name" seed source: "sha256" or "keccak256".
	Hash string `mapstructure:"hash"`
	// Roster is the path to the combatant roster YAML file.
	Roster string `mapstructure:"roster"`
	// AdapterScript is an optional Lua file deriving stats from agent traits.
	AdapterScript string `mapstructure:"adapter_script"`
	// InstructionLimit bounds each adapter script call; 0 selects the default.
	InstructionLimit int `mapstructure:"instruction_limit"`
	// Persist stores every battle in PostgreSQL when true.
	Persist bool `mapstructure:"persist"`
}

// Config is the top-level application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Server   ServerConfig   `mapstructure:"server"`
	Battle   BattleConfig   `mapstructure:"battle"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if c.Battle.Persist {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateServer(c.Server); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBattle(c.Battle); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateServer(s ServerConfig) error {
	var errs []string
	if s.GRPCHost == "" {
		errs = append(errs, "server.grpc_host must not be empty")
	}
	if s.GRPCPort < 1 || s.GRPCPort > 65535 {
		errs = append(errs, fmt.Sprintf("server.grpc_port must be 1-65535, got %d", s.GRPCPort))
	}
	if s.ShutdownTimeout < 0 {
		errs = append(errs, "server.shutdown_timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateBattle(b BattleConfig) error {
	var errs []string
	if b.MaxRounds < 1 {
		errs = append(errs, fmt.Sprintf("battle.max_rounds must be >= 1, got %d", b.MaxRounds))
	}
	validSources := map[string]bool{"name": true, "random": true}
	if !validSources[b.SeedSource] {
		errs = append(errs, fmt.Sprintf("battle.seed_source must be one of [name, random], got %q", b.SeedSource))
	}
	validHashes := map[string]bool{"sha256": true, "keccak256": true}
	if !validHashes[b.Hash] {
		errs = append(errs, fmt.Sprintf("battle.hash must be one of [sha256, keccak256], got %q", b.Hash))
	}
	if b.Roster == "" {
		errs = append(errs, "battle.roster must not be empty")
	}
	if b.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("battle.instruction_limit must be >= 0, got %d", b.InstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with ARENA_ prefix
	v.SetEnvPrefix("ARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "arena")
	v.SetDefault("database.password", "arena")
	v.SetDefault("database.name", "arena")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("server.grpc_host", "127.0.0.1")
	v.SetDefault("server.grpc_port", 50061)
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("battle.max_rounds", 1000)
	v.SetDefault("battle.seed_source", "name")
	v.SetDefault("battle.hash", "sha256")
	v.SetDefault("battle.roster", "content/roster.yaml")
	v.SetDefault("battle.adapter_script", "")
	v.SetDefault("battle.instruction_limit", 0)
	v.SetDefault("battle.persist", false)
}
