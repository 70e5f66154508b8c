package record

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseMinimal(t *testing.T) {
	rec, err := Parse([]byte(`{"id":"RFQ-2024-001","clientName":"ACME","status":"draft"}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if rec.ID != "RFQ-2024-001" {
		t.Errorf("ID = %q", rec.ID)
	}
	if rec.ClientName != "ACME" {
		t.Errorf("ClientName = %q", rec.ClientName)
	}
	if len(rec.Products) != 0 {
		t.Errorf("Products = %v, want none", rec.Products)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte(`{"id":"RFQ-1","unknownField":true}`)); err == nil {
		t.Error("Expected error for unknown field")
	}
}

func TestParseRequiresID(t *testing.T) {
	if _, err := Parse([]byte(`{"clientName":"ACME"}`)); err == nil {
		t.Error("Expected error for record without id")
	}
}

func TestParseBadJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"id":`)); err == nil {
		t.Error("Expected error for malformed input")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.json")
	if err := os.WriteFile(path, []byte(`{"id":"RFQ-7"}`), 0644); err != nil {
		t.Fatalf("unable to write record: %v", err)
	}

	rec, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rec.ID != "RFQ-7" {
		t.Errorf("ID = %q", rec.ID)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestAttachmentsOrder(t *testing.T) {
	rec := &ReportRecord{
		ID: "RFQ-1",
		General: GeneralInfo{
			Attachments: []Attachment{{ID: "g1", Filename: "site.jpg"}},
		},
		Products: []ProductSpec{
			{Name: "P1", Attachments: []Attachment{{ID: "p1", Filename: "drawing.pdf"}}},
			{Name: "P2", Attachments: []Attachment{{ID: "p2", Filename: "spec.pdf"}}},
		},
		Design: DesignResult{
			Attachments: []Attachment{{ID: "d1", Filename: "calc.pdf"}},
		},
		Costing: Costing{
			Attachments: []Attachment{{ID: "c1", Filename: "quote.pdf"}},
		},
	}

	got := rec.Attachments()
	want := []string{"g1", "p1", "p2", "d1", "c1"}
	if len(got) != len(want) {
		t.Fatalf("Attachments() returned %d items, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Attachments()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}
