package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/grocer/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{5 * time.Minute}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "5m0s" {
		t.Errorf("MarshalText() = %v, want 5m0s", string(result))
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.LogLevel != "warn" {
		t.Errorf("General.LogLevel = %v, want warn", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "text" {
		t.Errorf("General.LogFormat = %v, want text", cfg.General.LogFormat)
	}
	if cfg.Catalog.Path != "./products.json" {
		t.Errorf("Catalog.Path = %v, want ./products.json", cfg.Catalog.Path)
	}
	if cfg.Catalog.Timeout.Duration != 30*time.Second {
		t.Errorf("Catalog.Timeout = %v, want 30s", cfg.Catalog.Timeout.Duration)
	}
	if cfg.Source() != "" {
		t.Errorf("Source() = %q, want empty", cfg.Source())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	if err == nil {
		t.Fatal("Load() expected error for non-existent file")
	}
	if !mdwerror.HasCode(err, mdwerror.CodeConfigError) {
		t.Errorf("error code = %s, want CONFIG_ERROR", mdwerror.GetCode(err))
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	t.Setenv("GROCER_TEST_DIR", tmpDir)

	configContent := `
[general]
log_level = "debug"
log_format = "json"

[catalog]
path = "$GROCER_TEST_DIR/catalog.db"
store = "sqlite"
timeout = "5s"

[metrics]
textfile = "$GROCER_TEST_DIR/grocer.prom"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Catalog.Path != filepath.Join(tmpDir, "catalog.db") {
		t.Errorf("Catalog.Path = %v, want expanded path", cfg.Catalog.Path)
	}
	if cfg.Catalog.Store != "sqlite" {
		t.Errorf("Catalog.Store = %v, want sqlite", cfg.Catalog.Store)
	}
	if cfg.Catalog.Timeout.Duration != 5*time.Second {
		t.Errorf("Catalog.Timeout = %v, want 5s", cfg.Catalog.Timeout.Duration)
	}
	if cfg.Metrics.Textfile != filepath.Join(tmpDir, "grocer.prom") {
		t.Errorf("Metrics.Textfile = %v", cfg.Metrics.Textfile)
	}
	if cfg.Source() != configPath {
		t.Errorf("Source() = %v, want %v", cfg.Source(), configPath)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    mdwerror.Code
	}{
		{"syntax", "[general\nlog_level = ", mdwerror.CodeConfigError},
		{"level", "[general]\nlog_level = \"loud\"", mdwerror.CodeInvalidConfig},
		{"format", "[general]\nlog_format = \"xml\"", mdwerror.CodeInvalidConfig},
		{"store", "[catalog]\nstore = \"csv\"", mdwerror.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("error code = %s, want %s", mdwerror.GetCode(err), tt.code)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grocer.toml")
	if err := os.WriteFile(path, []byte("[catalog]\npath = \"from-env.yaml\"\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv(EnvConfigPath, path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Catalog.Path != "from-env.yaml" {
		t.Errorf("Catalog.Path = %v, want from-env.yaml", cfg.Catalog.Path)
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	defer os.Chdir(originalDir)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Catalog.Path != "./products.json" {
		t.Errorf("Catalog.Path = %v, want default", cfg.Catalog.Path)
	}
}
