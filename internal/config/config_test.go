package config

import (
	"os"
	"testing"
)

func TestLoadWithDefaults_Succeeds(t *testing.T) {
	// Ensure envs are clean to use defaults
	os.Unsetenv("DB_PATH")
	os.Unsetenv("HTTP_ADDRESS")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("KAFKA_BROKERS")
	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if cfg.HTTP.Address == "" || cfg.Database.Path == "" || cfg.Auth.JWTSecret == "" {
		t.Fatalf("unexpected empty defaults: %+v", cfg)
	}
	if len(cfg.Events.Brokers) != 0 {
		t.Fatalf("kafka should be disabled by default, got brokers %v", cfg.Events.Brokers)
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")
	t.Setenv("DB_PATH", "test.db")
	t.Setenv("HTTP_ADDRESS", ":1234")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is not set")
	}
	t.Setenv("JWT_SECRET", "x")
	if _, err := Load(); err != nil {
		t.Fatalf("Load with secret set: %v", err)
	}
}

func TestLoad_ParsesBrokerList(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,,")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Events.Brokers) != 2 || cfg.Events.Brokers[0] != "kafka-1:9092" || cfg.Events.Brokers[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.Events.Brokers)
	}
}
