package database

import "errors"

// ErrMissingConnection is returned when no connection parameters are configured.
var ErrMissingConnection = errors.New("database connection is not configured: set DATABASE_URL or DATABASE_HOST/DATABASE_NAME")

// Config holds configuration for the ledger database connection.
type Config struct {
	// Driver is the database driver (postgres, mysql, sqlite).
	Driver string `mapstructure:"driver" default:"postgres"`
	// URL is a full connection string; when set it wins over the discrete fields.
	URL string `mapstructure:"url" default:""`
	// Host is the database host.
	Host string `mapstructure:"host" default:""`
	// Port is the database port.
	Port int `mapstructure:"port" default:"5432"`
	// User is the database user.
	User string `mapstructure:"user" default:"postgres"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name (the file path for sqlite).
	Name string `mapstructure:"name" default:""`
	// SSLMode is passed to postgres connections.
	SSLMode string `mapstructure:"ssl_mode" default:"require"`
	// TimeoutSeconds bounds connection setup and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Validate reports a configuration error when the connection cannot be built.
func (c Config) Validate() error {
	if c.URL != "" {
		return nil
	}
	if c.Driver == "sqlite" {
		if c.Name == "" {
			return ErrMissingConnection
		}
		return nil
	}
	if c.Host == "" || c.Name == "" {
		return ErrMissingConnection
	}
	return nil
}
