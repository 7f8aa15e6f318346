package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFile_Defaults(t *testing.T) {
	cfg, info, err := LoadConfigFile(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if info.PortSpecified {
		t.Fatalf("port should not be marked as specified")
	}
	if cfg.Server.Port != 20262 {
		t.Fatalf("port=%d", cfg.Server.Port)
	}
	if got := cfg.Schema(); got.ReferenceYear != 2024 || got.Separator != "–" || got.IDColumn != "產品代號" {
		t.Fatalf("unexpected schema: %+v", got)
	}
	if cfg.Workbook.GrowthSheet != "每週銷售成長率" {
		t.Fatalf("growth sheet=%q", cfg.Workbook.GrowthSheet)
	}
}

func TestLoadConfigFile_Toml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = 18080

[analysis]
reference_year = 2025

[workbook]
quantity_sheet = "Weekly"

[session]
ttl_minutes = 5
max_upload_mb = 2
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, info, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if !info.PortSpecified || cfg.Server.Port != 18080 {
		t.Fatalf("port=%d specified=%v", cfg.Server.Port, info.PortSpecified)
	}
	if cfg.Analysis.ReferenceYear != 2025 {
		t.Fatalf("reference year=%d", cfg.Analysis.ReferenceYear)
	}
	if cfg.Workbook.QuantitySheet != "Weekly" {
		t.Fatalf("quantity sheet=%q", cfg.Workbook.QuantitySheet)
	}
	// 未配置的字段保留默认值
	if cfg.Workbook.CumulativeSheet != "累計每週銷售數量" {
		t.Fatalf("cumulative sheet=%q", cfg.Workbook.CumulativeSheet)
	}
	if cfg.SessionTTL() != 5*time.Minute {
		t.Fatalf("ttl=%v", cfg.SessionTTL())
	}
	if cfg.MaxUploadBytes() != 2<<20 {
		t.Fatalf("max upload=%d", cfg.MaxUploadBytes())
	}
}

func TestLoadConfigFile_EnvOverride(t *testing.T) {
	t.Setenv("MOONSALES_REFERENCE_YEAR", "2023")
	t.Setenv("MOONSALES_LOG_LEVEL", "debug")

	cfg, _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Analysis.ReferenceYear != 2023 {
		t.Fatalf("reference year=%d", cfg.Analysis.ReferenceYear)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level=%q", cfg.Logging.Level)
	}
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadConfigFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestEnsureDataDir_Absolute(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.DataDir = filepath.Join(t.TempDir(), "nested", "data")

	dir, err := EnsureDataDir(cfg)
	if err != nil {
		t.Fatalf("EnsureDataDir: %v", err)
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		t.Fatalf("data dir not created: %v", err)
	}
}
