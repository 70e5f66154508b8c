package render

import (
	"testing"

	"rfq/l10n"
	"rfq/record"
)

func testCategorize() func(string) string {
	l := l10n.Default()
	return func(category string) string {
		if l.HasOption("category", category) {
			return category
		}
		return "other"
	}
}

func TestAppendixBuilderDedup(t *testing.T) {
	b := newAppendixBuilder(testCategorize())

	a1 := record.Attachment{Category: "drawing", Filename: "axle.pdf", URL: "files/axle.pdf"}
	a2 := record.Attachment{Category: "photo", Filename: "site.jpg", URL: "files/site.jpg"}

	first := b.refer(a1)
	if first.ID != "A.1" {
		t.Errorf("first ID = %q, want A.1", first.ID)
	}
	second := b.refer(a2)
	if second.ID != "A.2" {
		t.Errorf("second ID = %q, want A.2", second.ID)
	}

	// identical identity resolves to the existing item
	again := b.refer(a1)
	if again != first {
		t.Error("repeat reference created a new item")
	}
	if len(b.items) != 2 {
		t.Errorf("items = %d, want 2", len(b.items))
	}

	// same file name under a different category is a distinct item
	third := b.refer(record.Attachment{Category: "datasheet", Filename: "axle.pdf", URL: "files/axle.pdf"})
	if third.ID != "A.3" {
		t.Errorf("third ID = %q, want A.3", third.ID)
	}
}

func TestAppendixBuilderCategoryFallback(t *testing.T) {
	b := newAppendixBuilder(testCategorize())
	item := b.refer(record.Attachment{Category: "blueprint", Filename: "a.pdf", URL: "u"})
	if item.Category != "other" {
		t.Errorf("unrecognized category mapped to %q, want other", item.Category)
	}
}

func TestRefString(t *testing.T) {
	atts := []record.Attachment{
		{Category: "drawing", Filename: "a.pdf", URL: "ua"},
		{Category: "drawing", Filename: "b.pdf", URL: "ub"},
		{Category: "drawing", Filename: "c.pdf", URL: "uc"},
		{Category: "drawing", Filename: "d.pdf", URL: "ud"},
	}

	t.Run("empty", func(t *testing.T) {
		b := newAppendixBuilder(testCategorize())
		if got := b.refString(nil); got != "" {
			t.Errorf("refString(nil) = %q", got)
		}
	})

	t.Run("single", func(t *testing.T) {
		b := newAppendixBuilder(testCategorize())
		if got := b.refString(atts[:1]); got != "A.1" {
			t.Errorf("refString = %q, want A.1", got)
		}
	})

	t.Run("contiguous range", func(t *testing.T) {
		b := newAppendixBuilder(testCategorize())
		if got := b.refString(atts); got != "A.1-A.4" {
			t.Errorf("refString = %q, want A.1-A.4", got)
		}
	})

	t.Run("comma list", func(t *testing.T) {
		b := newAppendixBuilder(testCategorize())
		b.refer(atts[0]) // A.1
		b.refer(atts[1]) // A.2
		b.refer(atts[2]) // A.3
		got := b.refString([]record.Attachment{atts[0], atts[2]})
		if got != "A.1, A.3" {
			t.Errorf("refString = %q, want A.1, A.3", got)
		}
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		b := newAppendixBuilder(testCategorize())
		got := b.refString([]record.Attachment{atts[0], atts[0], atts[0]})
		if got != "A.1" {
			t.Errorf("refString = %q, want A.1", got)
		}
	})
}

func TestTypeLabel(t *testing.T) {
	tests := []struct {
		name string
		item AppendixItem
		want string
	}{
		{"pdf pages", AppendixItem{Source: record.Attachment{Filename: "a.pdf"}, preview: PreviewResult{Kind: PreviewPDFPages}}, "PDF"},
		{"image with extension", AppendixItem{Source: record.Attachment{Filename: "photo.jpg"}, preview: PreviewResult{Kind: PreviewImage}}, "JPG"},
		{"image without extension", AppendixItem{Source: record.Attachment{Filename: "photo"}, preview: PreviewResult{Kind: PreviewImage}}, "IMAGE"},
		{"no preview", AppendixItem{Source: record.Attachment{Filename: "doc.docx"}, preview: PreviewResult{Kind: PreviewNone}}, "DOCX"},
		{"no preview no extension", AppendixItem{Source: record.Attachment{Filename: "doc"}, preview: PreviewResult{Kind: PreviewNone}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.typeLabel(); got != tt.want {
				t.Errorf("typeLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
