package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolveOrder(t *testing.T) {
	const key = "STOREFRONT_TEST_RESOLVE"
	t.Setenv(key, "from-env")
	if got := Resolve(key, "from-file", "fallback"); got != "from-env" {
		t.Fatalf("env should win, got %q", got)
	}
	os.Unsetenv(key)
	if got := Resolve(key, "from-file", "fallback"); got != "from-file" {
		t.Fatalf("file value should win over fallback, got %q", got)
	}
	if got := Resolve(key, "", "fallback"); got != "fallback" {
		t.Fatalf("fallback should apply, got %q", got)
	}
}

func TestResolveIntMalformedEnvFallsThrough(t *testing.T) {
	const key = "STOREFRONT_TEST_RESOLVE_INT"
	t.Setenv(key, "not-a-number")
	if got := ResolveInt(key, 42, 7); got != 42 {
		t.Fatalf("malformed env must fall through to file value, got %d", got)
	}
	t.Setenv(key, "99")
	if got := ResolveInt(key, 42, 7); got != 99 {
		t.Fatalf("valid env must win, got %d", got)
	}
}

func TestResolveDuration(t *testing.T) {
	const key = "STOREFRONT_TEST_RESOLVE_DUR"
	t.Setenv(key, "250ms")
	if got := ResolveDuration(key, time.Second, time.Minute); got != 250*time.Millisecond {
		t.Fatalf("env duration must win, got %v", got)
	}
	os.Unsetenv(key)
	if got := ResolveDuration(key, 0, time.Minute); got != time.Minute {
		t.Fatalf("fallback duration must apply, got %v", got)
	}
}

func TestLoadAppliesFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
service:
  name: inventory-service
  port: 9090
inventory:
  base_url: http://inventory:8082
seed:
  products:
    - id: p-1
      name: Keyboard
      price_cents: 12999
      stock_quantity: 10
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Service.Name != "inventory-service" || cfg.Service.Port != 9090 {
		t.Fatalf("file values not applied: %+v", cfg.Service)
	}
	if cfg.Inventory.BaseURL != "http://inventory:8082" {
		t.Fatalf("inventory base url: %q", cfg.Inventory.BaseURL)
	}
	if cfg.Inventory.CallTimeout != 2*time.Second {
		t.Fatalf("call timeout default: %v", cfg.Inventory.CallTimeout)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "localhost:9092" {
		t.Fatalf("kafka broker default: %v", cfg.Kafka.Brokers)
	}
	if len(cfg.Seed.Products) != 1 || cfg.Seed.Products[0].PriceCents != 12999 {
		t.Fatalf("seed products: %+v", cfg.Seed.Products)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.Jaeger.Endpoint == "" {
		t.Fatal("jaeger endpoint default missing")
	}
	if cfg.Redis.CacheTTL != 30*time.Second {
		t.Fatalf("cache ttl default: %v", cfg.Redis.CacheTTL)
	}
}
