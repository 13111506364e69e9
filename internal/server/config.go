package server

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"fullstack/internal/domain/errors"
)

type Config struct {
	Addr        string
	Port        int
	DBStr       string
	MigratePath string
	Secret      string
	TokenTTL    time.Duration
}

const (
	defaultAddr        = "0.0.0.0"
	defaultPort        = 3001
	defaultDBStr       = "postgresql://app:app@db:5432/fullstack?sslmode=disable"
	defaultMigratePath = "migrations"
	defaultTokenTTL    = time.Hour
)

var (
	addr        = flag.String("addr", defaultAddr, "listen address")
	port        = flag.Int("port", defaultPort, "listen port")
	dbstr       = flag.String("dbstr", defaultDBStr, "database connection string")
	migratePath = flag.String("migratepath", defaultMigratePath, "path to the migrations directory")
	secret      = flag.String("secret", "", "token signing secret")
	configFile  = flag.String("c", "", "path to a JSON config file")
	parsed      = false
)

// ReadConfig resolves the configuration in ascending priority: defaults,
// JSON file, environment, flags.
func ReadConfig() *Config {
	if !parsed {
		flag.Parse()
		parsed = true
	}

	cfg := &Config{
		Addr:        defaultAddr,
		Port:        defaultPort,
		DBStr:       defaultDBStr,
		MigratePath: defaultMigratePath,
		TokenTTL:    defaultTokenTTL,
	}

	if jsonConfig := loadJSONConfig(); jsonConfig != nil {
		cfg = jsonConfig
		if cfg.TokenTTL == 0 {
			cfg.TokenTTL = defaultTokenTTL
		}
	}

	applyEnvOverrides(cfg)
	applyFlagOverrides(cfg)

	return cfg
}

func loadJSONConfig() *Config {
	configPath := *configFile
	if configPath == "" {
		configPath = os.Getenv("CONFIG")
	}
	if configPath == "" {
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		fmt.Printf("Warning: %s %s: %v\n", errors.ErrConfigFileReadFailed.Error(), configPath, err)
		return nil
	}

	var jsonConfig Config
	if err := json.Unmarshal(data, &jsonConfig); err != nil {
		fmt.Printf("Warning: %s: %v\n", errors.ErrConfigParseFailed.Error(), err)
		return nil
	}
	return &jsonConfig
}

func applyEnvOverrides(cfg *Config) {
	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err != nil || p < 1 || p > 65535 {
			fmt.Printf("Warning: %s in PORT: %s\n", errors.ErrConfigInvalidFormat.Error(), port)
		} else {
			cfg.Port = p
		}
	}
	if dbStr := os.Getenv("DB_STR"); dbStr != "" {
		cfg.DBStr = dbStr
	}
	if migratePath := os.Getenv("MIGRATE_PATH"); migratePath != "" {
		cfg.MigratePath = migratePath
	}
	if secret := os.Getenv("SECRET"); secret != "" {
		cfg.Secret = secret
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err != nil || d <= 0 {
			fmt.Printf("Warning: %s in TOKEN_TTL: %s\n", errors.ErrConfigInvalidFormat.Error(), ttl)
		} else {
			cfg.TokenTTL = d
		}
	}
}

func applyFlagOverrides(cfg *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "port":
			cfg.Port = *port
		case "dbstr":
			cfg.DBStr = *dbstr
		case "migratepath":
			cfg.MigratePath = *migratePath
		case "secret":
			cfg.Secret = *secret
		}
	})
}
