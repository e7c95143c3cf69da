package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	Env             string        `yaml:"env"`
	UploadsDir      string        `yaml:"uploads_dir"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"`
	PrivateKeyPath string        `yaml:"private_key_path"`
	PublicKeyPath  string        `yaml:"public_key_path"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	CookieName     string        `yaml:"cookie_name"`
	CookieSecure   bool          `yaml:"cookie_secure"`
	LoginLimit     int64         `yaml:"login_limit"`
	LoginWindow    time.Duration `yaml:"login_window"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
}

// Default returns the configuration used for any value the file and environment leave unset.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":3000",
			Env:             "development",
			UploadsDir:      "./uploads",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:  "postgres",
			Host:    "localhost",
			Port:    "5432",
			SSLMode: "disable",
		},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
		},
		Auth: AuthConfig{
			TokenTTL:    24 * time.Hour,
			CookieName:  "admin_session",
			LoginLimit:  5,
			LoginWindow: time.Minute,
		},
	}
}

// LoadConfig reads filename over the defaults, then applies .env and process environment overrides.
// A missing file is not an error; the defaults and environment are used instead.
func LoadConfig(filename string) (Config, error) {
	config := Default()

	file, err := os.Open(filename)
	switch {
	case err == nil:
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return config, fmt.Errorf("decode %s: %w", filename, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return config, err
	}

	_ = godotenv.Load()
	if err := applyEnv(&config); err != nil {
		return config, err
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func applyEnv(config *Config) error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setString("APP_ENV", &config.Server.Env)
	setString("SERVER_ADDR", &config.Server.Addr)
	setString("DB_DRIVER", &config.Database.Driver)
	setString("DB_HOST", &config.Database.Host)
	setString("DB_PORT", &config.Database.Port)
	setString("DB_USER", &config.Database.Username)
	setString("DB_PASSWORD", &config.Database.Password)
	setString("DB_NAME", &config.Database.Database)
	setString("DB_SSLMODE", &config.Database.SSLMode)
	setString("REDIS_ADDR", &config.Redis.Addr)
	setString("REDIS_PASSWORD", &config.Redis.Password)
	setString("JWT_SECRET", &config.Auth.JWTSecret)

	if v := os.Getenv("REDIS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("REDIS_ENABLED: %w", err)
		}
		config.Redis.Enabled = enabled
	}
	return nil
}

// Validate reports configuration that would prevent the server from starting.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" && (c.Auth.PrivateKeyPath == "" || c.Auth.PublicKeyPath == "") {
		return errors.New("auth: jwt_secret or both RSA key paths must be set")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth: token_ttl must be positive")
	}
	return nil
}
