package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Matching.DefaultMethod != "hybrid" {
		t.Errorf("Matching.DefaultMethod = %q, want hybrid", cfg.Matching.DefaultMethod)
	}
	if cfg.Matching.DefaultTopN != 5 {
		t.Errorf("Matching.DefaultTopN = %d, want 5", cfg.Matching.DefaultTopN)
	}
	if cfg.Matching.Column != "full_name" {
		t.Errorf("Matching.Column = %q, want full_name", cfg.Matching.Column)
	}
	if cfg.Matching.DictionaryInterval != time.Minute {
		t.Errorf("Matching.DictionaryInterval = %v, want 1m", cfg.Matching.DictionaryInterval)
	}
	if cfg.Kafka.Topics.CandidateUpserts != "candidate-upserts" {
		t.Errorf("Kafka.Topics.CandidateUpserts = %q", cfg.Kafka.Topics.CandidateUpserts)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 9999
matching:
  column: business_name
  defaultMethod: ngram
  acronyms:
    JS: John Smith
catalog:
  table: businesses
  columns: [id, business_name]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Matching.Column != "business_name" {
		t.Errorf("Matching.Column = %q, want business_name", cfg.Matching.Column)
	}
	if cfg.Matching.Acronyms["JS"] != "John Smith" {
		t.Errorf("Matching.Acronyms[JS] = %q, want John Smith", cfg.Matching.Acronyms["JS"])
	}
	if cfg.Catalog.Table != "businesses" {
		t.Errorf("Catalog.Table = %q, want businesses", cfg.Catalog.Table)
	}
	// Values the file does not mention keep their defaults.
	if cfg.Matching.DefaultTopN != 5 {
		t.Errorf("Matching.DefaultTopN = %d, want default 5", cfg.Matching.DefaultTopN)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want default", cfg.Redis.Addr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load of a missing file must fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NM_SERVER_PORT", "7070")
	t.Setenv("NM_MATCHING_DEFAULT_METHOD", "levenshtein")
	t.Setenv("NM_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("NM_CATALOG_COLUMNS", "id,name,city")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Matching.DefaultMethod != "levenshtein" {
		t.Errorf("Matching.DefaultMethod = %q, want levenshtein", cfg.Matching.DefaultMethod)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Kafka.Brokers = %v", cfg.Kafka.Brokers)
	}
	if len(cfg.Catalog.Columns) != 3 {
		t.Errorf("Catalog.Columns = %v, want 3 entries", cfg.Catalog.Columns)
	}
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{
		Host: "db", Port: 5432, Database: "namematch",
		User: "svc", Password: "secret", SSLMode: "require",
	}
	want := "host=db port=5432 user=svc password=secret dbname=namematch sslmode=require"
	if got := p.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
