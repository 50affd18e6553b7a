package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Port            string
		ReadTimeout     time.Duration
		ShutdownTimeout time.Duration
	}
	Store struct {
		Driver         string
		URI            string
		Database       string
		Path           string
		ConnectTimeout time.Duration
	}
	Auth struct {
		JWTSecret  string
		TokenTTL   time.Duration
		BcryptCost int
	}
	CORS struct {
		AllowOrigins []string
	}
	Log struct {
		Level  string
		Format string
	}
	Seed struct {
		Source   string
		Region   string
		Endpoint string
		Profile  string
	}
}

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Server.Port, ":")
}

// Load reads configuration from environment variables, an optional .env file and an
// optional config file. Flags, when given, take precedence over everything else.
func Load(flags *pflag.FlagSet) (Config, error) {
	_ = godotenv.Load() // optional file, never overrides the environment

	v := viper.New()
	v.SetEnvPrefix("MYFLIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readtimeout", 15*time.Second)
	v.SetDefault("server.shutdowntimeout", 10*time.Second)
	v.SetDefault("store.driver", DriverMongo)
	v.SetDefault("store.uri", "mongodb://localhost:27017")
	v.SetDefault("store.database", "myFlixDB")
	v.SetDefault("store.path", "data/myflix.db")
	v.SetDefault("store.connecttimeout", 10*time.Second)
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttl", 7*24*time.Hour)
	v.SetDefault("auth.bcryptcost", 10)
	v.SetDefault("cors.alloworigins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("seed.source", "")
	v.SetDefault("seed.region", "us-east-1")
	v.SetDefault("seed.endpoint", "")
	v.SetDefault("seed.profile", "")

	// names used by earlier deployments
	for key, legacy := range map[string]string{
		"store.uri":      "CONNECTION_URI",
		"server.port":    "PORT",
		"auth.jwtsecret": "JWT_SECRET",
	} {
		env := "MYFLIX_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, env, legacy); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	switch cfg.Store.Driver {
	case DriverMongo, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	return cfg, nil
}
