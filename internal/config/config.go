package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lugondev/goatswap-cli/pkg/goatswap"
)

// Config holds all configuration for the CLI
type Config struct {
	Solana   SolanaConfig   `mapstructure:"solana"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Goatswap GoatswapConfig `mapstructure:"goatswap"`
	Swap     SwapConfig     `mapstructure:"swap"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Database DatabaseConfig `mapstructure:"database"`
}

// SolanaConfig holds Solana-specific configuration
type SolanaConfig struct {
	RPC        string `mapstructure:"rpc"`
	Cluster    string `mapstructure:"cluster"`
	Commitment string `mapstructure:"commitment"`
	Timeout    int    `mapstructure:"timeout"` // in seconds
	// ConfirmInterval is the signature status poll interval in milliseconds.
	ConfirmInterval int `mapstructure:"confirm_interval"`
}

// WalletConfig selects the signing keypair. Keypair is a Solana CLI JSON file,
// PrivateKey a base58 secret; Keypair wins when both are set.
type WalletConfig struct {
	Keypair    string `mapstructure:"keypair"`
	PrivateKey string `mapstructure:"private_key"`
}

// GoatswapConfig selects the SDK driver
type GoatswapConfig struct {
	Driver    string            `mapstructure:"driver"`
	ProgramID string            `mapstructure:"program_id"`
	Params    map[string]string `mapstructure:"params"`
}

// SwapConfig holds transaction submission settings
type SwapConfig struct {
	SkipPreflight bool `mapstructure:"skip_preflight"`
	DryRun        bool `mapstructure:"dry_run"`
}

// OutputConfig holds console output settings
type OutputConfig struct {
	Format string `mapstructure:"format"` // text, json or yaml
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// MetricsConfig toggles the slog metrics sink
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DatabaseConfig holds snapshot storage configuration
type DatabaseConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Type     string         `mapstructure:"type"` // postgres, mysql, sqlite or mongodb
	Postgres PostgresConfig `mapstructure:"postgres"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	MongoDB  MongoDBConfig  `mapstructure:"mongodb"`
}

type PostgresConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // in seconds
}

type MySQLConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	TLS             string `mapstructure:"tls"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // in seconds
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type MongoDBConfig struct {
	URI            string `mapstructure:"uri"`
	Database       string `mapstructure:"database"`
	MaxPoolSize    uint64 `mapstructure:"max_pool_size"`
	MinPoolSize    uint64 `mapstructure:"min_pool_size"`
	ConnectTimeout int    `mapstructure:"connect_timeout"` // in seconds
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Solana: SolanaConfig{
			Cluster:         string(goatswap.ClusterMainnet),
			Commitment:      "confirmed",
			Timeout:         60,
			ConfirmInterval: 500,
		},
		Goatswap: GoatswapConfig{
			Driver: "fixture",
			Params: map[string]string{},
		},
		Output: OutputConfig{
			Format: "text",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			Postgres: PostgresConfig{
				Host:         "localhost",
				Port:         5432,
				SSLMode:      "disable",
				MaxOpenConns: 4,
				MaxIdleConns: 1,
			},
			MySQL: MySQLConfig{
				Host:         "localhost",
				Port:         3306,
				MaxOpenConns: 4,
				MaxIdleConns: 1,
			},
			SQLite: SQLiteConfig{
				Path: "goatswap.db",
			},
			MongoDB: MongoDBConfig{
				URI:            "mongodb://localhost:27017",
				Database:       "goatswap",
				MaxPoolSize:    10,
				ConnectTimeout: 10,
			},
		},
	}
}

// Load loads configuration from file and environment into v.
// An empty configPath searches .goatswap.yaml in the working and home directories.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".goatswap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	setDefaults(v, DefaultConfig())

	// Environment variables
	v.SetEnvPrefix("GOATSWAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so environment variables are seen by Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("solana.rpc", d.Solana.RPC)
	v.SetDefault("solana.cluster", d.Solana.Cluster)
	v.SetDefault("solana.commitment", d.Solana.Commitment)
	v.SetDefault("solana.timeout", d.Solana.Timeout)
	v.SetDefault("solana.confirm_interval", d.Solana.ConfirmInterval)
	v.SetDefault("wallet.keypair", d.Wallet.Keypair)
	v.SetDefault("wallet.private_key", d.Wallet.PrivateKey)
	v.SetDefault("goatswap.driver", d.Goatswap.Driver)
	v.SetDefault("goatswap.program_id", d.Goatswap.ProgramID)
	v.SetDefault("swap.skip_preflight", d.Swap.SkipPreflight)
	v.SetDefault("swap.dry_run", d.Swap.DryRun)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("database.enabled", d.Database.Enabled)
	v.SetDefault("database.type", d.Database.Type)
	v.SetDefault("database.sqlite.path", d.Database.SQLite.Path)
	v.SetDefault("database.postgres.host", d.Database.Postgres.Host)
	v.SetDefault("database.postgres.port", d.Database.Postgres.Port)
	v.SetDefault("database.postgres.user", d.Database.Postgres.User)
	v.SetDefault("database.postgres.password", d.Database.Postgres.Password)
	v.SetDefault("database.postgres.database", d.Database.Postgres.Database)
	v.SetDefault("database.mysql.host", d.Database.MySQL.Host)
	v.SetDefault("database.mysql.port", d.Database.MySQL.Port)
	v.SetDefault("database.mysql.user", d.Database.MySQL.User)
	v.SetDefault("database.mysql.password", d.Database.MySQL.Password)
	v.SetDefault("database.mysql.database", d.Database.MySQL.Database)
	v.SetDefault("database.mongodb.uri", d.Database.MongoDB.URI)
	v.SetDefault("database.mongodb.database", d.Database.MongoDB.Database)
}

// Validate rejects values the CLI cannot act on.
func (c *Config) Validate() error {
	if _, err := goatswap.ParseCluster(c.Solana.Cluster); err != nil {
		return fmt.Errorf("solana.cluster: %w", err)
	}

	switch c.Solana.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("solana.commitment: unknown commitment %q", c.Solana.Commitment)
	}

	if c.Solana.Timeout <= 0 {
		return fmt.Errorf("solana.timeout must be positive, got %d", c.Solana.Timeout)
	}

	if c.Goatswap.Driver == "" {
		return fmt.Errorf("goatswap.driver must be set")
	}

	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format: unknown format %q (expected text, json or yaml)", c.Output.Format)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (expected text or json)", c.Log.Format)
	}

	if c.Database.Enabled {
		switch c.Database.Type {
		case "postgres", "mysql", "sqlite", "mongodb":
		default:
			return fmt.Errorf("database.type: unsupported database type %q", c.Database.Type)
		}
	}

	return nil
}

// ClusterName returns the parsed cluster. Validate must have passed.
func (c *SolanaConfig) ClusterName() goatswap.Cluster {
	cluster, _ := goatswap.ParseCluster(c.Cluster)
	return cluster
}

// GetRPCEndpoint returns the RPC endpoint for the configured cluster
func (c *SolanaConfig) GetRPCEndpoint() string {
	if c.RPC != "" {
		return c.RPC
	}

	return c.ClusterName().DefaultRPCEndpoint()
}

// TimeoutDuration returns the per-command deadline.
func (c *SolanaConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// ConfirmIntervalDuration returns the confirmation poll interval.
func (c *SolanaConfig) ConfirmIntervalDuration() time.Duration {
	if c.ConfirmInterval <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.ConfirmInterval) * time.Millisecond
}
