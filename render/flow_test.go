package render

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"rfq/l10n"
	"rfq/record"
)

func testDoc(t *testing.T) *doc {
	t.Helper()
	rec := &record.ReportRecord{ID: "RFQ-1", ClientName: "ACME"}
	return newDoc(testDocConfig(), l10n.Default(), &staticResources{}, rec,
		time.Date(2024, time.June, 14, 12, 0, 0, 0, time.UTC), zap.NewNop())
}

func TestDropEmptyFields(t *testing.T) {
	fields := []field{
		{Label: "client", Value: "ACME"},
		{Label: "empty", Value: ""},
		{Label: "blank", Value: " \t "},
		{Label: "quantity", Value: "0"},
	}
	got := dropEmptyFields(fields)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(got), got)
	}
	if got[0].Label != "client" || got[1].Label != "quantity" {
		t.Errorf("kept = %q, %q", got[0].Label, got[1].Label)
	}
	if got[1].Value != "0" {
		t.Errorf("literal zero must survive, got %v", got[1])
	}
}

func TestContinuedTitle(t *testing.T) {
	d := testDoc(t)

	t.Run("short title keeps marker", func(t *testing.T) {
		if got := d.continuedTitle("Costing"); got != "Costing (continued)" {
			t.Errorf("continuedTitle = %q", got)
		}
	})

	t.Run("long title truncated with ellipsis", func(t *testing.T) {
		long := strings.Repeat("Performance Characteristics ", 20)
		got := d.continuedTitle(long)
		if !strings.HasSuffix(got, "... (continued)") {
			t.Fatalf("continuedTitle = %q, want ellipsis and marker suffix", got)
		}
		if len(got) >= len(long) {
			t.Errorf("title was not truncated: %d bytes in, %d out", len(long), len(got))
		}
		d.setFont("I", 8.5)
		avail := d.contentW() - 2*cardPadX - 4
		if w := d.pdf.GetStringWidth(got); w > avail {
			t.Errorf("width = %.2f exceeds header width %.2f", w, avail)
		}
	})

	t.Run("multibyte title truncated on rune boundary", func(t *testing.T) {
		long := strings.Repeat("Längsträgerbefestigung ", 20)
		got := d.continuedTitle(long)
		if !utf8.ValidString(got) {
			t.Errorf("continuedTitle produced invalid UTF-8: %q", got)
		}
		if !strings.HasSuffix(got, "(continued)") {
			t.Errorf("continuedTitle = %q, want marker suffix", got)
		}
	})
}
