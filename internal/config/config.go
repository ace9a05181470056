package config

import (
	"fmt"
	"strconv"

	"github.com/relishdb/relish/internal/db"
)

// Config represents the application configuration.
type Config struct {
	Connections []Connection `mapstructure:"connections" yaml:"connections"`
	Preferences Preferences  `mapstructure:"preferences" yaml:"preferences"`
}

// Connection is a saved connection profile. Passwords are never stored here;
// they live in the OS keyring under the profile name.
type Connection struct {
	Name     string `mapstructure:"name" yaml:"name"`
	Driver   string `mapstructure:"driver" yaml:"driver"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Database string `mapstructure:"database" yaml:"database"`
	Username string `mapstructure:"username" yaml:"username"`
}

// Preferences holds user preferences.
type Preferences struct {
	Theme             string `mapstructure:"theme" yaml:"theme"`
	DefaultConnection string `mapstructure:"default_connection" yaml:"default_connection"`
}

// Backend resolves the profile's driver name to a backend.
func (c Connection) Backend() (db.Backend, error) {
	switch c.Driver {
	case "postgres", "postgresql":
		return db.BackendPostgres, nil
	case "mysql":
		return db.BackendMySQL, nil
	case "sqlite":
		return db.BackendSQLite, nil
	default:
		return 0, fmt.Errorf("unknown driver %q", c.Driver)
	}
}

// DSN builds the connection URL for the profile. SQLite profiles store the
// file path in Database and have no URL form.
func (c Connection) DSN(password string) string {
	if c.Driver == "sqlite" {
		return c.Database
	}
	return fmt.Sprintf("%s://%s:%s@%s:%d/%s",
		c.Driver, c.Username, password, c.Host, c.Port, c.Database)
}

// DisplayString returns a human-readable summary of the connection.
func (c Connection) DisplayString() string {
	if c.Driver == "sqlite" {
		return c.Database
	}
	s := c.Host
	if c.Port > 0 {
		s += ":" + strconv.Itoa(c.Port)
	}
	s += "/" + c.Database
	if c.Username != "" {
		s = c.Username + "@" + s
	}
	return s
}

// HasConnection checks if a connection with the given name already exists.
func (cfg *Config) HasConnection(name string) bool {
	for _, c := range cfg.Connections {
		if c.Name == name {
			return true
		}
	}
	return false
}

// AddConnection appends a connection if it doesn't already exist.
func (cfg *Config) AddConnection(conn Connection) {
	if !cfg.HasConnection(conn.Name) {
		cfg.Connections = append(cfg.Connections, conn)
	}
}
