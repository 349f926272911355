package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ARTIFACT_DIR", "")
	t.Setenv("STRICT_SCHEMA", "")
	t.Setenv("TRUST_PROXY_HEADERS", "")
	cfg := Load()
	if cfg.ArtifactDir != "." {
		t.Fatalf("expected artifact dir '.', got %q", cfg.ArtifactDir)
	}
	if !cfg.StrictSchema {
		t.Fatal("expected strict schema by default")
	}
	if cfg.ResultCacheTTL != 10*time.Minute {
		t.Fatalf("unexpected cache ttl %v", cfg.ResultCacheTTL)
	}
	if cfg.TrustProxyHeaders {
		t.Fatal("expected proxy headers untrusted by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STRICT_SCHEMA", "false")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")
	t.Setenv("RESULT_CACHE_TTL", "30s")

	cfg := Load()
	if cfg.StrictSchema {
		t.Fatal("expected strict schema disabled")
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
	if cfg.RateLimitRPS != 20 {
		t.Fatalf("expected fallback rps 20, got %d", cfg.RateLimitRPS)
	}
	if cfg.ResultCacheTTL != 30*time.Second {
		t.Fatalf("unexpected ttl %v", cfg.ResultCacheTTL)
	}
}
