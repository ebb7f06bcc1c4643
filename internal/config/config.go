package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath      = "./config.yaml"
	defaultListenAddr      = ":8000"
	defaultUploadDir       = "uploads"
	defaultShutdownTimeout = 15 * time.Second
)

type Config struct {
	ListenAddr      string        `yaml:"listen_addr" json:"listen_addr"`
	UploadDir       string        `yaml:"upload_dir" json:"upload_dir"`
	CORSOrigins     []string      `yaml:"cors_origins" json:"cors_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// Default возвращает конфигурацию, совпадающую с поведением сервиса без config.yaml.
func Default() *Config {
	return &Config{
		ListenAddr:      defaultListenAddr,
		UploadDir:       defaultUploadDir,
		CORSOrigins:     []string{"*"},
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
// Отсутствие файла по умолчанию не ошибка; явно заданный CONFIG_PATH обязан читаться.
func Load() (*Config, error) {
	c := Default()

	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || strings.TrimSpace(path) == "" {
		path, explicit = defaultConfigPath, false
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	// ENV override
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitComma(v)
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownTimeout = d
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate проверяет обязательные поля.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("listen_addr is not configured")
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		return fmt.Errorf("upload_dir is not configured")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}

	return nil
}

// AllowsAnyOrigin сообщает, разрешены ли запросы с любого Origin.
func (c *Config) AllowsAnyOrigin() bool {
	if len(c.CORSOrigins) == 0 {
		return true
	}
	for _, o := range c.CORSOrigins {
		if o == "*" {
			return true
		}
	}

	return false
}

func splitComma(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
