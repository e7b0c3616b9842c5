package config

import (
	"net"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	BackendFile = "file"
	BackendSQL  = "sql"

	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type Config struct {
	Backend  string `envconfig:"STORAGE_BACKEND" default:"file"`
	DataDir  string `envconfig:"DATA_DIR" default:"data"`
	Database DatabaseConfig
	Server   ServerConfig
	Log      LogConfig
	Auth     AuthConfig
}

type DatabaseConfig struct {
	Driver          string        `envconfig:"DRIVER" default:"postgres"`
	URL             string        `envconfig:"URL"`
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            string        `envconfig:"DB_PORT"`
	User            string        `envconfig:"DB_USER"`
	Password        string        `envconfig:"DB_PASSWORD"`
	Name            string        `envconfig:"DB_NAME" default:"localkirana"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"5m"`
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

type LogConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"json"`
}

type AuthConfig struct {
	BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`
}

// Load reads an optional .env file and then the process environment.
// Nested fields are prefixed by their section, e.g. DATABASE_URL or
// SERVER_PORT; the bare names (PORT, DB_HOST, BCRYPT_COST) are accepted as
// fallbacks.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQL:
	default:
		return errors.Errorf("unknown storage backend %q", c.Backend)
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL:
	default:
		return errors.Errorf("unknown database driver %q", c.Database.Driver)
	}
	return nil
}

// DSN returns the connection string for the configured driver. An explicit
// URL wins; otherwise the DSN is assembled from the host parts.
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	if d.Driver == DriverMySQL {
		port := d.Port
		if port == "" {
			port = "3306"
		}
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(d.Host, port)
		mc.DBName = d.Name
		mc.ParseTime = true
		return mc.FormatDSN()
	}

	port := d.Port
	if port == "" {
		port = "5432"
	}
	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(d.Host, port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	if d.User != "" {
		u.User = url.UserPassword(d.User, d.Password)
	}
	return u.String()
}
