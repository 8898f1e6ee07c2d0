package cfg

import (
	"testing"
	"time"

	"github.com/catalogcraft/catalog-api/pkg/logger"
)

// setRequiredEnv выставляет минимальный набор переменных, без которых Load падает.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "catalog")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "catalog")
	t.Setenv("KAFKA_BROKERS", "kafka:9092")
	t.Setenv("KAFKA_TOPIC", "catalog.events")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(logger.NewSlogLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Http.Port != "8080" {
		t.Errorf("Http.Port = %q, want 8080", cfg.Http.Port)
	}
	if cfg.Db.Host != "localhost" || cfg.Db.SSLMode != "disable" {
		t.Errorf("unexpected Db defaults: %+v", cfg.Db)
	}
	if cfg.Redis.ProductTTL != 3*time.Minute {
		t.Errorf("Redis.ProductTTL = %v, want 3m", cfg.Redis.ProductTTL)
	}
	if cfg.Kafka.Partitions != 3 || cfg.Kafka.ReplicationFactor != 1 {
		t.Errorf("unexpected Kafka defaults: %+v", cfg.Kafka)
	}
	if cfg.Outbox.BatchSize != 10 || cfg.Outbox.ListenTimeout != 30*time.Second {
		t.Errorf("unexpected Outbox defaults: %+v", cfg.Outbox)
	}
	if cfg.App.Name != "catalog-api" {
		t.Errorf("App.Name = %q, want catalog-api", cfg.App.Name)
	}
	if cfg.Minio.UploadImagesLimit != 10 {
		t.Errorf("Minio.UploadImagesLimit = %d, want 10", cfg.Minio.UploadImagesLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("PRODUCT_TTL", "10m")
	t.Setenv("OUTBOX_BATCH_SIZE", "25")
	t.Setenv("SERVICE_NAME", "catalog-api-staging")

	cfg, err := Load(logger.NewSlogLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Http.Port != "9000" {
		t.Errorf("Http.Port = %q, want 9000", cfg.Http.Port)
	}
	if len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("Kafka.Brokers = %v, want two brokers", cfg.Kafka.Brokers)
	}
	if cfg.Redis.ProductTTL != 10*time.Minute {
		t.Errorf("Redis.ProductTTL = %v, want 10m", cfg.Redis.ProductTTL)
	}
	if cfg.Outbox.BatchSize != 25 {
		t.Errorf("Outbox.BatchSize = %d, want 25", cfg.Outbox.BatchSize)
	}
	if cfg.App.Name != "catalog-api-staging" {
		t.Errorf("App.Name = %q", cfg.App.Name)
	}
}

func TestLoadRequiresPostgresCreds(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTGRES_USER", "")

	if _, err := Load(logger.NewSlogLogger()); err == nil {
		t.Fatal("Load succeeded without POSTGRES_USER, want error")
	}
}

func TestLoadRequiresKafka(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("KAFKA_TOPIC", "")

	if _, err := Load(logger.NewSlogLogger()); err == nil {
		t.Fatal("Load succeeded without KAFKA_TOPIC, want error")
	}
}

func TestParseIntEnvRejectsGarbage(t *testing.T) {
	t.Setenv("OUTBOX_BATCH_SIZE", "ten")

	if _, err := parseIntEnv("OUTBOX_BATCH_SIZE", 10); err == nil {
		t.Fatal("parseIntEnv accepted non-numeric value")
	}
}
