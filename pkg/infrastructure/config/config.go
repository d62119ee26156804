package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-sql-driver/mysql"
)

// Supported storage drivers
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// Config holds the runtime settings read from the environment
type Config struct {
	DBDriver string `env:"STOKEA_DB_DRIVER" envDefault:"sqlite"`
	DBPath   string `env:"STOKEA_DB_PATH"   envDefault:"stokea.db"`

	MySQLHost     string `env:"STOKEA_MYSQL_HOST"     envDefault:"localhost"`
	MySQLPort     string `env:"STOKEA_MYSQL_PORT"     envDefault:"3306"`
	MySQLUser     string `env:"STOKEA_MYSQL_USER"`
	MySQLPassword string `env:"STOKEA_MYSQL_PASSWORD"`
	MySQLName     string `env:"STOKEA_MYSQL_NAME"     envDefault:"stokea"`

	LogFile        string `env:"STOKEA_LOG_FILE"`
	Locale         string `env:"STOKEA_LOCALE"          envDefault:"es-AR"`
	CurrencySymbol string `env:"STOKEA_CURRENCY_SYMBOL" envDefault:"$"`

	OTelEndpoint string `env:"STOKEA_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"STOKEA_OTEL_ENABLED" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads and validates the configuration
func Load() (*Config, error) {
	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the driver and its required settings
func (c *Config) Validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case DriverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("STOKEA_DB_PATH is required for the sqlite driver")
		}
	case DriverMySQL:
		if c.MySQLUser == "" || c.MySQLName == "" {
			return fmt.Errorf("missing required database configuration: STOKEA_MYSQL_USER and STOKEA_MYSQL_NAME must be set")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q (expected sqlite, mysql or memory)", c.DBDriver)
	}
	return nil
}

// MySQLConfig returns the driver configuration for the MySQL settings
func (c *Config) MySQLConfig() *mysql.Config {
	m := mysql.NewConfig()
	m.User = c.MySQLUser
	m.Passwd = c.MySQLPassword
	m.Net = "tcp"
	m.Addr = net.JoinHostPort(c.MySQLHost, c.MySQLPort)
	m.DBName = c.MySQLName
	m.ParseTime = true
	m.ClientFoundRows = true
	return m
}

// MySQLDSN returns the connection string for the MySQL settings
func (c *Config) MySQLDSN() string {
	return c.MySQLConfig().FormatDSN()
}
