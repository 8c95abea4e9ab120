package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Addr:            "127.0.0.1:8081",
		ShutdownTimeout: 10 * time.Second,
		MaxImportBytes:  1 << 20,
		SQLiteDBPath:    "expenses.db",
		DateFormat:      "YYYY-MM-DD",
		CurrencySymbol:  "$",
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid default config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "ephemeral port allowed",
			mutate:  func(c *Config) { c.Addr = "localhost:0" },
			wantErr: false,
		},
		{
			name:        "address without port",
			mutate:      func(c *Config) { c.Addr = "localhost" },
			wantErr:     true,
			errorString: "invalid HTTP address 'localhost'",
		},
		{
			name:        "non-numeric port",
			mutate:      func(c *Config) { c.Addr = "localhost:abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "port out of range",
			mutate:      func(c *Config) { c.Addr = "localhost:70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 0 and 65535",
		},
		{
			name:        "missing database path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "unknown date format",
			mutate:      func(c *Config) { c.DateFormat = "YYYY/MM/DD" },
			wantErr:     true,
			errorString: "invalid date format 'YYYY/MM/DD'",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "unknown log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
		{
			name:        "shutdown timeout too small",
			mutate:      func(c *Config) { c.ShutdownTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid shutdown timeout 100ms: must be at least 1 second",
		},
		{
			name:        "import limit too small",
			mutate:      func(c *Config) { c.MaxImportBytes = 10 },
			wantErr:     true,
			errorString: "invalid max import size 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Expected error to contain '%s', got: %s", tt.errorString, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = "nope"
	cfg.DateFormat = "bad"
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected error but got none")
	}
	if got := strings.Count(err.Error(), "\n- "); got != 3 {
		t.Errorf("Expected 3 aggregated errors, got %d: %s", got, err.Error())
	}
}

func TestConfig_ValidateCreatesDatabaseDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := validConfig()
	cfg.SQLiteDBPath = filepath.Join(dir, "expenses.db")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("Expected database directory to be created: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("HTTP_ADDR", "127.0.0.1:9090")
	t.Setenv("SQLITE_DB_PATH", "/tmp/x.db")
	t.Setenv("DATE_FORMAT", "DD.MM.YYYY")
	t.Setenv("CURRENCY_SYMBOL", "€")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("MAX_IMPORT_BYTES", "not-a-number")

	cfg := Load()

	if cfg.Addr != "127.0.0.1:9090" || cfg.SQLiteDBPath != "/tmp/x.db" {
		t.Errorf("unexpected addr/path: %s %s", cfg.Addr, cfg.SQLiteDBPath)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 3s", cfg.ShutdownTimeout)
	}
	if cfg.MaxImportBytes != 10<<20 {
		t.Errorf("MaxImportBytes = %d, want default", cfg.MaxImportBytes)
	}
	s := cfg.Settings()
	if s.DateFormat != "DD.MM.YYYY" || s.CurrencySymbol != "€" {
		t.Errorf("unexpected settings: %+v", s)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "SQLITE_DB_PATH", "DATE_FORMAT", "CURRENCY_SYMBOL", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.SQLiteDBPath != "expenses.db" {
		t.Errorf("SQLiteDBPath = %q, want expenses.db", cfg.SQLiteDBPath)
	}
	if cfg.DateFormat != "YYYY-MM-DD" || cfg.CurrencySymbol != "$" {
		t.Errorf("unexpected default preferences: %s %s", cfg.DateFormat, cfg.CurrencySymbol)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}
