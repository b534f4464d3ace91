package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
log:
  level: warn
genai:
  model: gemini-1.5-pro
moderation:
  fail_open: true
discovery:
  age_max: 45
  max_distance_km: 30
  session_ttl: 45m
media:
  max_photos: 6
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Fatalf("unexpected log level: %s", cfg.Log.Level)
	}
	if cfg.GenAI.Model != "gemini-1.5-pro" {
		t.Fatalf("unexpected genai model: %s", cfg.GenAI.Model)
	}
	if !cfg.Moderation.FailOpen {
		t.Fatalf("moderation fail_open override lost")
	}
	if cfg.Discovery.AgeMax != 45 {
		t.Fatalf("unexpected discovery age_max: %d", cfg.Discovery.AgeMax)
	}
	if cfg.Discovery.MaxDistanceKM != 30 {
		t.Fatalf("unexpected discovery max_distance_km: %d", cfg.Discovery.MaxDistanceKM)
	}
	if cfg.Discovery.SessionTTL.String() != "45m0s" {
		t.Fatalf("unexpected discovery session_ttl: %s", cfg.Discovery.SessionTTL)
	}
	if cfg.Media.MaxPhotos != 6 {
		t.Fatalf("unexpected media max_photos: %d", cfg.Media.MaxPhotos)
	}

	if cfg.Discovery.AgeMin != 18 {
		t.Fatalf("discovery age_min default should stay 18")
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("http addr default should stay :8080")
	}
	if cfg.Media.MaxUploadBytes != 10<<20 {
		t.Fatalf("media max_upload_bytes default should stay 10MiB")
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.Discovery.AgeMin != 18 || cfg.Discovery.AgeMax != 80 {
		t.Fatalf("unexpected age defaults: %d-%d", cfg.Discovery.AgeMin, cfg.Discovery.AgeMax)
	}
	if cfg.Discovery.SessionBatchSize != 50 {
		t.Fatalf("unexpected session batch size default: %d", cfg.Discovery.SessionBatchSize)
	}
	if cfg.Moderation.FailOpen {
		t.Fatalf("moderation should fail closed by default")
	}
	if cfg.GenAI.Model != "gemini-1.5-flash" {
		t.Fatalf("unexpected default genai model: %s", cfg.GenAI.Model)
	}
	if cfg.Media.MaxPhotos != 10 {
		t.Fatalf("unexpected default media max_photos: %d", cfg.Media.MaxPhotos)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("GENAI_API_KEY", "env-key")
	t.Setenv("MODERATION_FAIL_OPEN", "true")
	t.Setenv("DISCOVERY_SESSION_TTL", "2h")
	t.Setenv("POSTGRES_MAX_CONNS", "16")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Fatalf("unexpected redis addr: %s", cfg.Redis.Addr)
	}
	if cfg.GenAI.APIKey != "env-key" {
		t.Fatalf("genai api key override lost")
	}
	if !cfg.Moderation.FailOpen {
		t.Fatalf("moderation fail_open env override lost")
	}
	if cfg.Discovery.SessionTTL.String() != "2h0m0s" {
		t.Fatalf("unexpected session ttl: %s", cfg.Discovery.SessionTTL)
	}
	if cfg.Postgres.MaxConns != 16 {
		t.Fatalf("unexpected postgres max conns: %d", cfg.Postgres.MaxConns)
	}
}

func TestLoadRejectsWeakProductionSecrets(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("GENAI_API_KEY", "real-key")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for default jwt secret in production")
	}

	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("GENAI_API_KEY", "")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for missing genai api key in production")
	}
}

func TestLoadRejectsUnderageMinimum(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("discovery:\n  age_min: 16\n"), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for age_min below 18")
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"POSTGRES_DSN",
		"POSTGRES_MAX_CONNS",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"S3_ENDPOINT",
		"S3_ACCESS_KEY",
		"S3_SECRET_KEY",
		"S3_BUCKET",
		"S3_USE_SSL",
		"JWT_SECRET",
		"JWT_ACCESS_TTL",
		"GENAI_API_KEY",
		"GENAI_MODEL",
		"GENAI_REQUEST_TIMEOUT",
		"MODERATION_FAIL_OPEN",
		"DISCOVERY_SESSION_BATCH_SIZE",
		"DISCOVERY_SESSION_TTL",
	} {
		t.Setenv(key, "")
	}
}
