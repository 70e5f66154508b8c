package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Document.Variant != ReportVariantInternal {
		t.Errorf("Default variant = %s, want internal", cfg.Document.Variant)
	}
	if cfg.Document.Branding.Density != BrandingDensityFull {
		t.Errorf("Default density = %s, want full", cfg.Document.Branding.Density)
	}
	if cfg.Document.Appendix != AppendixStyleDetailed {
		t.Errorf("Default appendix style = %s, want detailed", cfg.Document.Appendix)
	}
	if cfg.Document.Preview.MaxPages != 10 {
		t.Errorf("Default preview max pages = %d, want 10", cfg.Document.Preview.MaxPages)
	}
	if cfg.Document.Preview.Zoom != 2.0 {
		t.Errorf("Default preview zoom = %f, want 2.0", cfg.Document.Preview.Zoom)
	}
	if cfg.Document.Watermark.Enable {
		t.Error("Watermark should be disabled by default")
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
document:
  variant: offer
  branding:
    density: compact
    company_label: "ACME Brakes GmbH"
  watermark:
    enable: true
    text: "DRAFT"
  appendix_style: compact
  preview:
    max_pages: 3
    zoom: 1.5
    fetch_timeout_sec: 10
  file_name_transliterate: true
logging:
  console:
    level: normal
  file:
    level: debug
    destination: ` + filepath.Join(tmpDir, "test.log") + `
    mode: append
reporting:
  destination: ` + filepath.Join(tmpDir, "test-report.zip") + `
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Document.Variant != ReportVariantOffer {
		t.Errorf("Variant = %s, want offer", cfg.Document.Variant)
	}
	if cfg.Document.Branding.Density != BrandingDensityCompact {
		t.Errorf("Density = %s, want compact", cfg.Document.Branding.Density)
	}
	if cfg.Document.Branding.CompanyLabel != "ACME Brakes GmbH" {
		t.Errorf("CompanyLabel = %q", cfg.Document.Branding.CompanyLabel)
	}
	if !cfg.Document.Watermark.Enable || cfg.Document.Watermark.Text != "DRAFT" {
		t.Errorf("Watermark = %+v, want enabled DRAFT", cfg.Document.Watermark)
	}
	if cfg.Document.Appendix != AppendixStyleCompact {
		t.Errorf("Appendix style = %s, want compact", cfg.Document.Appendix)
	}
	if cfg.Document.Preview.MaxPages != 3 || cfg.Document.Preview.Zoom != 1.5 {
		t.Errorf("Preview = %+v", cfg.Document.Preview)
	}
	if !cfg.Document.FileNameTransliterate {
		t.Error("Expected FileNameTransliterate to be true")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
document:
  no_such_field: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("Expected error for unknown configuration field")
	}
}

func TestLoadConfiguration_BadEnum(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
document:
  variant: external
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Fatal("Expected error for bad variant value")
	}
	if !strings.Contains(err.Error(), "not a valid ReportVariant") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadConfiguration_BadVersion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("version: 2\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("Expected validation error for unsupported version")
	}
}

func TestLoadConfiguration_MissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing configuration file")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	// enums must serialize as their names
	text := string(data)
	for _, want := range []string{"variant: internal", "density: full", "appendix_style: detailed"} {
		if !strings.Contains(text, want) {
			t.Errorf("Dump output is missing %q", want)
		}
	}

	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Dump output does not load back: %v", err)
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty configuration")
	}
	if !strings.Contains(string(data), "version: 1") {
		t.Error("Prepared configuration is missing version")
	}
}
