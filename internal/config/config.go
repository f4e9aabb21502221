package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Database DatabaseConfig `yaml:"database"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Photo    PhotoConfig    `yaml:"photo"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// CatalogConfig points at the SQL Server instance holding tb_fornecedores.
// An empty Server means the catalog is not configured.
type CatalogConfig struct {
	Server   string `yaml:"server"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// DatabaseConfig is the primary PostgreSQL order store. An empty Host skips
// the probe and the service falls back to SQLite directly.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// RabbitMQConfig enables order-placed notifications when Host is set.
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type PhotoConfig struct {
	RetentionMinutes int `yaml:"retention_minutes"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. The PORT variable wins over server.port so the service keeps
// working on platforms that inject the listen port.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT value %q: %w", port, err)
		}
		cfg.Server.Port = p
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Catalog.Port == 0 {
		c.Catalog.Port = 1433
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = "orders.db"
	}
	if c.RabbitMQ.Port == 0 {
		c.RabbitMQ.Port = 5672
	}
	if c.Photo.RetentionMinutes == 0 {
		c.Photo.RetentionMinutes = 60
	}
}

// PhotoRetention returns the retention window as a duration.
func (c *Config) PhotoRetention() time.Duration {
	return time.Duration(c.Photo.RetentionMinutes) * time.Minute
}

// DatabaseURL returns a PostgreSQL connection string for the primary store.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL.
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
