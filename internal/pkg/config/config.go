// Package config loads service configuration from a YAML file with
// environment overrides. Resolution order for every value is fixed:
// environment variable, then file value, then hardcoded default. The
// resolver runs once at startup; components receive plain values.
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	MySQL     MySQLConfig     `yaml:"mysql"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Jaeger    JaegerConfig    `yaml:"jaeger"`
	Inventory InventoryConfig `yaml:"inventory"`
	Seed      SeedConfig      `yaml:"seed"`
}

type ServiceConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

type MySQLConfig struct {
	// DSN empty means the service runs on its in-memory store. Useful for
	// local development and hermetic tests.
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	// Addr empty disables the product cache.
	Addr     string        `yaml:"addr"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
}

type JaegerConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// InventoryConfig is how the order service reaches the inventory service.
type InventoryConfig struct {
	BaseURL     string        `yaml:"base_url"`
	CallTimeout time.Duration `yaml:"call_timeout"`
}

// SeedConfig carries the initial product catalog loaded by the inventory
// service on first start.
type SeedConfig struct {
	Products []SeedProduct `yaml:"products"`
}

type SeedProduct struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	PriceCents    int64  `yaml:"price_cents"`
	StockQuantity int    `yaml:"stock_quantity"`
}

// Load reads the YAML file at path (skipped when empty or missing) and then
// applies environment overrides and defaults. It never partially applies an
// override: a set but malformed numeric env var falls through to the file
// value or default.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, err
			}
		} else if !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	// Service name and port defaults differ per deployable; each main
	// resolves them with Resolve/ResolveInt and its own fallback.
	cfg.Service.Name = Resolve("SERVICE_NAME", cfg.Service.Name, "")
	cfg.Service.Port = ResolveInt("SERVICE_PORT", cfg.Service.Port, 0)
	cfg.MySQL.DSN = Resolve("MYSQL_DSN", cfg.MySQL.DSN, "")
	cfg.Redis.Addr = Resolve("REDIS_ADDR", cfg.Redis.Addr, "")
	cfg.Redis.CacheTTL = ResolveDuration("REDIS_CACHE_TTL", cfg.Redis.CacheTTL, 30*time.Second)
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = []string{v}
	}
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{"localhost:9092"}
	}
	cfg.Jaeger.Endpoint = Resolve("JAEGER_ENDPOINT", cfg.Jaeger.Endpoint, "http://localhost:14268/api/traces")
	cfg.Inventory.BaseURL = Resolve("INVENTORY_BASE_URL", cfg.Inventory.BaseURL, "http://localhost:8082")
	cfg.Inventory.CallTimeout = ResolveDuration("INVENTORY_CALL_TIMEOUT", cfg.Inventory.CallTimeout, 2*time.Second)
	return cfg, nil
}

// Resolve picks the first non-empty value of: env var, file value, fallback.
func Resolve(envKey, fileValue, fallback string) string {
	if v, ok := os.LookupEnv(envKey); ok && v != "" {
		return v
	}
	if fileValue != "" {
		return fileValue
	}
	return fallback
}

// ResolveInt is Resolve for integer values.
func ResolveInt(envKey string, fileValue, fallback int) int {
	if v, ok := os.LookupEnv(envKey); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if fileValue != 0 {
		return fileValue
	}
	return fallback
}

// ResolveDuration is Resolve for duration values.
func ResolveDuration(envKey string, fileValue, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(envKey); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	if fileValue != 0 {
		return fileValue
	}
	return fallback
}
