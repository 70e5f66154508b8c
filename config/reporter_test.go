package config

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestReportFinalize(t *testing.T) {
	tmpDir := t.TempDir()

	conf := &ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}

	srcFile := filepath.Join(tmpDir, "record.json")
	if err := os.WriteFile(srcFile, []byte(`{"id":"RFQ-1"}`), 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}

	r.Store("records/record.json", srcFile)
	r.StoreData("output/RFQ-1.pdf", []byte("%PDF-1.4 test"))

	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error: %v", err)
	}

	arc, err := zip.OpenReader(conf.Destination)
	if err != nil {
		t.Fatalf("unable to open report archive: %v", err)
	}
	defer arc.Close()

	want := map[string]bool{
		"MANIFEST":            false,
		"records/record.json": false,
		"output/RFQ-1.pdf":    false,
	}
	for _, f := range arc.File {
		if _, ok := want[f.Name]; ok {
			want[f.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("archive is missing entry %q", name)
		}
	}
}

func TestReportStoreMissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	conf := &ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}

	// absent files are silently skipped during finalization
	r.Store("gone", filepath.Join(tmpDir, "does-not-exist"))

	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error: %v", err)
	}

	arc, err := zip.OpenReader(conf.Destination)
	if err != nil {
		t.Fatalf("unable to open report archive: %v", err)
	}
	defer arc.Close()

	for _, f := range arc.File {
		if f.Name == "gone" {
			t.Error("absent file should not be present in the archive")
		}
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}

func TestReportNilIsSafe(t *testing.T) {
	var r *Report
	r.Store("name", "path")
	r.StoreData("name", []byte("data"))
	if n := r.Name(); n != "" {
		t.Errorf("Name on nil report = %q, want empty", n)
	}
}
