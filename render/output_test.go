package render

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"rfq/config"
	"rfq/record"
)

func testDocConfig() *config.DocumentConfig {
	return &config.DocumentConfig{
		Variant:  config.ReportVariantInternal,
		Appendix: config.AppendixStyleDetailed,
		Preview:  config.PreviewConfig{MaxPages: 10, Zoom: 2.0, FetchTimeout: 30},
	}
}

func TestBuildFileName(t *testing.T) {
	log := zap.NewNop()
	rec := &record.ReportRecord{
		ID:         "RFQ-2024-001",
		ClientName: "ACME",
		Recipient:  "ACME Brakes",
		Status:     "quoted",
		CreatedAt:  time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
	}

	t.Run("default internal", func(t *testing.T) {
		cfg := testDocConfig()
		if got := buildFileName(cfg, rec, log); got != "RFQ-2024-001.pdf" {
			t.Errorf("buildFileName = %q", got)
		}
	})

	t.Run("default offer includes recipient", func(t *testing.T) {
		cfg := testDocConfig()
		cfg.Variant = config.ReportVariantOffer
		if got := buildFileName(cfg, rec, log); got != "RFQ-2024-001-ACME Brakes.pdf" {
			t.Errorf("buildFileName = %q", got)
		}
	})

	t.Run("offer without recipient", func(t *testing.T) {
		cfg := testDocConfig()
		cfg.Variant = config.ReportVariantOffer
		r := *rec
		r.Recipient = ""
		if got := buildFileName(cfg, &r, log); got != "RFQ-2024-001.pdf" {
			t.Errorf("buildFileName = %q", got)
		}
	})

	t.Run("transliterate", func(t *testing.T) {
		cfg := testDocConfig()
		cfg.Variant = config.ReportVariantOffer
		cfg.FileNameTransliterate = true
		if got := buildFileName(cfg, rec, log); got != "rfq-2024-001-acme-brakes.pdf" {
			t.Errorf("buildFileName = %q", got)
		}
	})

	t.Run("template", func(t *testing.T) {
		cfg := testDocConfig()
		cfg.OutputNameTemplate = "{{ .Client }}-{{ .ID }}-{{ .Date }}"
		if got := buildFileName(cfg, rec, log); got != "ACME-RFQ-2024-001-2024-05-02.pdf" {
			t.Errorf("buildFileName = %q", got)
		}
	})

	t.Run("template with functions", func(t *testing.T) {
		cfg := testDocConfig()
		cfg.OutputNameTemplate = "{{ .Client | lower }}_{{ .Variant }}"
		if got := buildFileName(cfg, rec, log); got != "acme_internal.pdf" {
			t.Errorf("buildFileName = %q", got)
		}
	})

	t.Run("broken template falls back", func(t *testing.T) {
		cfg := testDocConfig()
		cfg.OutputNameTemplate = "{{ .Client"
		if got := buildFileName(cfg, rec, log); got != "RFQ-2024-001.pdf" {
			t.Errorf("buildFileName = %q", got)
		}
	})

	t.Run("unknown template field falls back", func(t *testing.T) {
		cfg := testDocConfig()
		cfg.OutputNameTemplate = "{{ .NoSuchField }}"
		if got := buildFileName(cfg, rec, log); got != "RFQ-2024-001.pdf" {
			t.Errorf("buildFileName = %q", got)
		}
	})

	t.Run("template expanding to blank falls back", func(t *testing.T) {
		cfg := testDocConfig()
		cfg.OutputNameTemplate = "{{ \"\" }}"
		if got := buildFileName(cfg, rec, log); got != "RFQ-2024-001.pdf" {
			t.Errorf("buildFileName = %q", got)
		}
	})
}
