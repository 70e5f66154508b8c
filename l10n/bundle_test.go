package l10n

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultBundle(t *testing.T) {
	b := Default()

	if got := b.Label("doc_title"); got != "Quote Request" {
		t.Errorf("Label(doc_title) = %q", got)
	}
	if got := b.Label("no_such_key"); got != "no_such_key" {
		t.Errorf("Label fallback = %q, want key itself", got)
	}
	if got := b.Option("status", "in_review"); got != "In Review" {
		t.Errorf("Option(status, in_review) = %q", got)
	}
	if got := b.Option("status", "archived"); got != "archived" {
		t.Errorf("Option fallback = %q, want code itself", got)
	}
	if !b.HasOption("category", "drawing") {
		t.Error("HasOption(category, drawing) = false")
	}
	if b.HasOption("category", "blueprint") {
		t.Error("HasOption(category, blueprint) = true")
	}
	if b.Tag().String() != "en" {
		t.Errorf("Tag() = %s", b.Tag())
	}
}

func TestFormatDate(t *testing.T) {
	b := Default()
	ts := time.Date(2024, time.March, 7, 14, 30, 0, 0, time.UTC)

	if got := b.FormatDate(ts); got != "Mar 7, 2024" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := b.FormatTime(ts); got != "Mar 7, 2024 14:30" {
		t.Errorf("FormatTime = %q", got)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels_de.yaml")
	content := `locale: "de"
date_pattern: "02.01.2006"
labels:
  doc_title: "Anfrage"
options:
  status:
    draft: "Entwurf"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("unable to write bundle: %v", err)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := b.Label("doc_title"); got != "Anfrage" {
		t.Errorf("overridden label = %q", got)
	}
	// untouched keys resolve from the embedded defaults
	if got := b.Label("summary"); got != "Summary" {
		t.Errorf("inherited label = %q", got)
	}
	if got := b.Option("status", "draft"); got != "Entwurf" {
		t.Errorf("overridden option = %q", got)
	}
	if got := b.Option("status", "won"); got != "Won" {
		t.Errorf("inherited option = %q", got)
	}
	if b.Tag().String() != "de" {
		t.Errorf("Tag() = %s", b.Tag())
	}

	ts := time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)
	if got := b.FormatDate(ts); got != "07.03.2024" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("Expected error for missing bundle")
		}
	})

	t.Run("unknown keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("locale: en\nno_such: true\n"), 0644); err != nil {
			t.Fatalf("unable to write bundle: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Expected error for unknown bundle key")
		}
	})

	t.Run("bad locale", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("locale: \"..!\"\n"), 0644); err != nil {
			t.Fatalf("unable to write bundle: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Expected error for unparsable locale")
		}
	})
}
