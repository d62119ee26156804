package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/repositories/memory"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STOKEA_DB_DRIVER", "STOKEA_DB_PATH", "STOKEA_MYSQL_HOST", "STOKEA_MYSQL_PORT",
		"STOKEA_MYSQL_USER", "STOKEA_MYSQL_PASSWORD", "STOKEA_MYSQL_NAME",
		"STOKEA_LOG_FILE", "STOKEA_LOCALE", "STOKEA_CURRENCY_SYMBOL",
		"STOKEA_OTEL_ENDPOINT", "STOKEA_OTEL_ENABLED",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBDriver != DriverSQLite || cfg.DBPath != "stokea.db" {
		t.Errorf("Expected sqlite at stokea.db, got %s at %s", cfg.DBDriver, cfg.DBPath)
	}
	if cfg.Locale != "es-AR" || cfg.CurrencySymbol != "$" {
		t.Errorf("Expected es-AR and $, got %s and %s", cfg.Locale, cfg.CurrencySymbol)
	}
	if !cfg.OTelEnabled || cfg.OTelEndpoint != "" {
		t.Errorf("Expected tracing enabled without endpoint, got %v %q", cfg.OTelEnabled, cfg.OTelEndpoint)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOKEA_DB_DRIVER", "MySQL")
	t.Setenv("STOKEA_MYSQL_HOST", "db.local")
	t.Setenv("STOKEA_MYSQL_USER", "shop")
	t.Setenv("STOKEA_MYSQL_PASSWORD", "secret")
	t.Setenv("STOKEA_OTEL_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBDriver != DriverMySQL {
		t.Errorf("Expected mysql driver, got %s", cfg.DBDriver)
	}
	if cfg.OTelEnabled {
		t.Error("Expected tracing disabled")
	}

	dsn := cfg.MySQLDSN()
	for _, part := range []string{"shop:secret@tcp(db.local:3306)/stokea?", "parseTime=true", "clientFoundRows=true"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("Expected DSN to contain %s, got %s", part, dsn)
		}
	}
	if !cfg.MySQLConfig().ClientFoundRows {
		t.Error("Expected ClientFoundRows to be set")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad bool", map[string]string{"STOKEA_OTEL_ENABLED": "maybe"}, "parse env:"},
		{"unknown driver", map[string]string{"STOKEA_DB_DRIVER": "postgres"}, "unknown database driver"},
		{"mysql without user", map[string]string{"STOKEA_DB_DRIVER": "mysql"}, "STOKEA_MYSQL_USER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	cfg := &Config{DBDriver: DriverMemory}
	store, err := cfg.OpenStore(ctx)
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	if _, ok := store.(*memory.Store); !ok {
		t.Errorf("Expected memory store, got %T", store)
	}

	cfg = &Config{DBDriver: DriverSQLite, DBPath: filepath.Join(t.TempDir(), "shop.db")}
	store, err = cfg.OpenStore(ctx)
	if err != nil {
		t.Fatalf("OpenStore sqlite failed: %v", err)
	}
	defer store.Close()
	if n, err := store.Products().Count(ctx); err != nil || n != 0 {
		t.Errorf("Expected empty catalog, got %d (%v)", n, err)
	}
}
