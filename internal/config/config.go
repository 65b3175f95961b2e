package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string          `yaml:"env" env:"COFFEE_ENV" env-default:"local"` // environment
	API       APIConfig       `yaml:"api"`
	Session   SessionConfig   `yaml:"session"`
	DevServer DevServerConfig `yaml:"dev_server"`
}

// APIConfig points the client at the coffee backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"COFFEE_API_URL" env-default:"http://localhost:8080/coffee"`
	Timeout time.Duration `yaml:"timeout" env:"COFFEE_API_TIMEOUT" env-default:"10s"`
}

// SessionConfig controls token persistence. An empty file path picks the
// default location under the user config dir.
type SessionConfig struct {
	TokenFile string `yaml:"token_file" env:"COFFEE_TOKEN_FILE"`
}

// DevServerConfig configures the local backend stand-in.
type DevServerConfig struct {
	Address       string        `yaml:"address" env:"DEVSERVER_ADDRESS" env-default:"localhost:8080"`
	Timeout       time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout   time.Duration `yaml:"idle_timeout" env-default:"60s"`
	JWTSecret     string        `yaml:"-" env:"JWT_SECRET" env-default:"dev-secret"`
	TokenTTL      time.Duration `yaml:"token_ttl" env-default:"60m"`
	AdminPassword string        `yaml:"-" env:"DEVSERVER_ADMIN_PASSWORD" env-default:"admin123"` // seeds the built-in admin account
}

// MustLoad reads the config file named by -config or CONFIG_PATH. With
// neither set it falls back to environment variables alone, the common
// case for the CLI.
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		var cfg Config
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("can't read config from environment: %v", err)
		}
		return &cfg
	}
	return MustLoadByPath(configPath)
}

// Load reads the config file at path, or environment variables alone when
// path is empty. Unlike MustLoad it never touches the flag package, so it
// is safe to call from under cobra.
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read config from environment: %w", err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return &cfg, nil
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s", configPath)
	}

	return &cfg
}
