// Package config loads runtime settings from the environment.
//
// Variables use the DASHBOARD_ prefix. The first underscore after the
// prefix separates the section from the key, so
// DASHBOARD_DATABASE_MAX_OPEN_CONNS maps to database.max_open_conns.
// A .env file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "DASHBOARD_"

type Config struct {
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Log      LogConfig      `koanf:"log" validate:"required"`
	Seed     SeedConfig     `koanf:"seed"`
}

type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	Mode               string   `koanf:"mode" validate:"oneof=debug release test"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// DatabaseConfig holds connection parameters and pool sizing.
// Lifetimes are in seconds; zero means connections are reused forever.
type DatabaseConfig struct {
	Driver          string `koanf:"driver" validate:"oneof=postgres mysql"`
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required,min=1,max=65535"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
}

type LogConfig struct {
	Level      string `koanf:"level" validate:"oneof=trace debug info warn error"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb" validate:"min=0"`
	MaxBackups int    `koanf:"max_backups" validate:"min=0"`
	MaxAgeDays int    `koanf:"max_age_days" validate:"min=0"`
}

// SeedConfig selects the groups GET /seed populates when the request
// does not name any.
type SeedConfig struct {
	Groups []string `koanf:"groups" validate:"dive,oneof=users customers invoices revenue"`
}

// DSN builds the driver specific connection string. Values are escaped,
// so credentials may contain spaces, quotes or URL delimiters.
func (c DatabaseConfig) DSN() string {
	switch c.Driver {
	case "mysql":
		m := mysqldrv.NewConfig()
		m.User = c.User
		m.Passwd = c.Password
		m.Net = "tcp"
		m.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
		m.DBName = c.Name
		m.ParseTime = true
		m.Loc = time.UTC
		m.Params = map[string]string{"charset": "utf8mb4"}
		return m.FormatDSN()
	default:
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return strings.Join([]string{
			pgKeyword("host", c.Host),
			pgKeyword("port", strconv.Itoa(c.Port)),
			pgKeyword("user", c.User),
			pgKeyword("password", c.Password),
			pgKeyword("dbname", c.Name),
			pgKeyword("sslmode", sslMode),
		}, " ")
	}
}

var pgQuoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// pgKeyword renders key='value' in libpq keyword/value syntax.
func pgKeyword(key, value string) string {
	return key + "='" + pgQuoter.Replace(value) + "'"
}

// Default mirrors the settings the dashboard originally ran with.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "release",
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "127.0.0.1",
			Port:            5432,
			User:            "root",
			Password:        "root",
			Name:            "nextjs-dashboard",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    10,
			ConnMaxLifetime: 1800,
			ConnMaxIdleTime: 300,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

var (
	defaultCORSOrigins = []string{"http://localhost:3000"}
	defaultSeedGroups  = []string{"users", "customers", "invoices", "revenue"}
)

// Load reads .env (if any) and the process environment on top of Default.
func Load() (*Config, error) {
	// Missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// List defaults are applied after unmarshalling so an env value
	// replaces them instead of being merged element by element.
	cfg.Server.CORSAllowedOrigins = orDefault(SplitList(cfg.Server.CORSAllowedOrigins), defaultCORSOrigins)
	cfg.Seed.Groups = orDefault(SplitList(cfg.Seed.Groups), defaultSeedGroups)
	if cfg.Database.Driver == "mysql" && !k.Exists("database.port") {
		cfg.Database.Port = 3306
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// SplitList expands comma separated entries, trimming blanks and dropping
// empty items.
func SplitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func orDefault(list, def []string) []string {
	if len(list) == 0 {
		return append([]string(nil), def...)
	}
	return list
}
