package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server     Server     `yaml:"server"`
	Logger     Logger     `yaml:"logger"`
	PostgresDB PostgresDB `yaml:"db"`
	Auth       Auth       `yaml:"auth"`
	Redis      Redis      `yaml:"rdb"`
}

type Server struct {
	Addr         string        `env:"SERVER_ADDR"  env-default:":8080" yaml:"addr"`
	ReadTimeout  time.Duration `env-default:"5s"   yaml:"readTimeout"`
	IdleTimeout  time.Duration `env-default:"30s"  yaml:"idleTimeout"`
	WriteTimeout time.Duration `env-default:"10s"  yaml:"writeTimeout"`
}

type Logger struct {
	Level     string   `env:"LOG_LEVEL" env-default:"info" yaml:"level"`
	Output    []string `yaml:"output"`
	ErrOutput []string `yaml:"errOutput"`
}

type PostgresDB struct {
	Addr     string `env:"POSTGRES_ADDR"     env-default:"localhost:5432" yaml:"addr"`
	Username string `env:"POSTGRES_USER"     env-required:"true"          yaml:"username"`
	Password string `env:"POSTGRES_PASSWORD" yaml:"password"`
	DB       string `env:"POSTGRES_DB"       env-required:"true"          yaml:"db"`
	SSLmode  string `env-default:"disable"   yaml:"sslmode"`
	MaxConns string `env-default:"10"        yaml:"maxConns"`
	Reload   bool   `yaml:"reload"`
	Version  int    `yaml:"version"`
}

// ConnString returns the pgx connection string including pool settings.
func (p PostgresDB) ConnString() string {
	return p.baseConnString() + "?" + "sslmode=" + p.SSLmode + "&pool_max_conns=" + p.MaxConns
}

// MigrationConnString is used by goose through database/sql, which does not
// understand pool_* parameters.
func (p PostgresDB) MigrationConnString() string {
	return p.baseConnString() + "?" + "sslmode=" + p.SSLmode
}

func (p PostgresDB) baseConnString() string {
	return "postgres://" + p.Username + ":" + p.Password + "@" + p.Addr + "/" + p.DB
}

type Auth struct {
	TTL    time.Duration `env-default:"1h"    yaml:"ttl"`
	Secret string        `env:"SECRET"        env-required:"true" yaml:"secret"`
}

// Redis is optional: an empty Addr disables token revocation.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"     yaml:"addr"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `yaml:"db"`
}

func New(configPath string) (Config, error) {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("read env error: %w", err)
		}

		return cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config error: %w", err)
	}

	return cfg, nil
}
