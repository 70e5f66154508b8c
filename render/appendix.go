package render

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"

	"rfq/config"
	"rfq/record"
	"rfq/utils/images"
)

// AppendixItem is one deduplicated attachment reference with a stable
// sequential ID.
type AppendixItem struct {
	ID       string // "A.n"
	Seq      int
	Category string // normalized option code; unrecognized falls back to "other"
	Source   record.Attachment

	preview PreviewResult // populated by the resolve pass
}

// appendixBuilder assigns stable IDs to unique attachment identities.
// Identity key is category+filename+url; repeat references reuse the
// existing item. IDs are monotonically assigned in first-reference order and
// never renumbered.
type appendixBuilder struct {
	items      []*AppendixItem
	byKey      map[string]*AppendixItem
	categorize func(string) string
}

func newAppendixBuilder(categorize func(string) string) *appendixBuilder {
	return &appendixBuilder{
		byKey:      make(map[string]*AppendixItem),
		categorize: categorize,
	}
}

func (b *appendixBuilder) refer(att record.Attachment) *AppendixItem {
	key := att.Category + "\x00" + att.Filename + "\x00" + att.URL
	if item, ok := b.byKey[key]; ok {
		return item
	}
	item := &AppendixItem{
		Seq:      len(b.items) + 1,
		Category: b.categorize(att.Category),
		Source:   att,
	}
	item.ID = fmt.Sprintf("A.%d", item.Seq)
	b.items = append(b.items, item)
	b.byKey[key] = item
	return item
}

// refString builds the compact cross-reference for a set of attachments as
// used inline in the main body: single ID, contiguous range or comma list.
func (b *appendixBuilder) refString(atts []record.Attachment) string {
	seen := make(map[int]bool)
	var seqs []int
	for _, att := range atts {
		item := b.refer(att)
		if !seen[item.Seq] {
			seen[item.Seq] = true
			seqs = append(seqs, item.Seq)
		}
	}
	if len(seqs) == 0 {
		return ""
	}

	lo, hi := seqs[0], seqs[0]
	for _, s := range seqs {
		lo, hi = min(lo, s), max(hi, s)
	}
	switch {
	case len(seqs) == 1:
		return fmt.Sprintf("A.%d", seqs[0])
	case hi-lo+1 == len(seqs):
		return fmt.Sprintf("A.%d-A.%d", lo, hi)
	default:
		parts := make([]string, len(seqs))
		for i, s := range seqs {
			parts[i] = fmt.Sprintf("A.%d", s)
		}
		return strings.Join(parts, ", ")
	}
}

// resolvePreviews resolves all items strictly sequentially in appendix
// order. Parallel resolution would make page ordering nondeterministic.
func (b *appendixBuilder) resolvePreviews(ctx context.Context, r *Resolver) {
	for _, item := range b.items {
		item.preview = r.Resolve(ctx, item.Source)
	}
}

// typeLabel derives the content-type column of the index: the sniffed kind
// when a preview was produced, the filename extension otherwise.
func (item *AppendixItem) typeLabel() string {
	switch item.preview.Kind {
	case PreviewPDFPages:
		return "PDF"
	case PreviewImage:
		if ext := strings.ToUpper(strings.TrimPrefix(filepath.Ext(item.Source.Filename), ".")); ext != "" {
			return ext
		}
		return "IMAGE"
	default:
		return strings.ToUpper(strings.TrimPrefix(filepath.Ext(item.Source.Filename), "."))
	}
}

// emitAppendix renders the appendix: one index table, then (in detailed
// style) one dedicated page per item, multi-page rasterized attachments
// expanding into one page per rasterized page.
func (d *doc) emitAppendix(b *appendixBuilder) {
	if len(b.items) == 0 {
		return
	}

	d.addPage()
	d.beginCard(d.l.Label("appendix") + " - " + d.l.Label("appendix_index"))
	cols := []tableColumn{
		{Label: d.l.Label("id"), Weight: 1, Align: "L"},
		{Label: d.l.Label("category"), Weight: 2, Align: "L"},
		{Label: d.l.Label("type"), Weight: 1.2, Align: "L"},
		{Label: d.l.Label("filename"), Weight: 3.6, Align: "L"},
		{Label: d.l.Label("uploaded_by"), Weight: 2, Align: "L"},
		{Label: d.l.Label("date"), Weight: 2, Align: "L"},
		{Label: d.l.Label("size"), Weight: 1.4, Align: "R"},
	}
	rows := make([][]string, 0, len(b.items))
	for _, item := range b.items {
		uploaded := ""
		if !item.Source.UploadedAt.IsZero() {
			uploaded = d.l.FormatDate(item.Source.UploadedAt)
		}
		rows = append(rows, []string{
			item.ID,
			d.l.Option("category", item.Category),
			item.typeLabel(),
			item.Source.Filename,
			item.Source.UploadedBy,
			uploaded,
			formatSize(item.Source.Size),
		})
	}
	d.table(cols, rows, func() { d.tableHeader(cols) })
	d.endCard()

	if d.cfg.Appendix == config.AppendixStyleCompact {
		return
	}
	for _, item := range b.items {
		d.emitAppendixItem(item)
	}
}

// emitAppendixItem renders the dedicated page(s) of one appendix item.
func (d *doc) emitAppendixItem(item *AppendixItem) {
	total := len(item.preview.Pages)
	if total == 0 {
		total = 1
	}

	for page := 0; page < total; page++ {
		d.addPage()

		title := item.ID + " - " + item.Source.Filename
		if len(item.preview.Pages) > 1 {
			title = fmt.Sprintf("%s (%s %d/%d)", title, strings.ToLower(d.l.Label("page")), page+1, total)
		}
		d.beginCard(title)

		d.keyValueGrid([]field{
			{Label: d.l.Label("category"), Value: d.l.Option("category", item.Category)},
			{Label: d.l.Label("uploaded_by"), Value: item.Source.UploadedBy},
		}, 2)

		if item.preview.Kind == PreviewNone {
			note := d.l.Label("preview_missing")
			if item.preview.Note != "" {
				note += ": " + item.preview.Note
			}
			d.setFont("I", baseFontSize)
			d.setTextColor(colorMuted)
			d.paragraph(note)
		} else {
			d.embedPreviewImage(item, page)
		}
		d.endCard()
	}
}

// embedPreviewImage scales one preview page into the remaining card space
// keeping the aspect ratio.
func (d *doc) embedPreviewImage(item *AppendixItem, page int) {
	img := item.preview.Pages[page]
	if d.cfg.Branding.Density == config.BrandingDensityDraft && !images.IsGrayscale(img) {
		img = imaging.Grayscale(img)
	}

	data, err := images.EncodeJPEG(img, 85)
	if err != nil {
		d.setFont("I", baseFontSize)
		d.setTextColor(colorMuted)
		d.paragraph(d.l.Label("preview_missing"))
		return
	}

	name := fmt.Sprintf("appendix-%d-%d", item.Seq, page)
	d.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "JPG"}, bytes.NewReader(data))

	bounds := img.Bounds()
	maxW := d.innerW()
	maxH := d.bottomY() - d.pdf.GetY() - cardPadBottom - 2
	if maxH < 20 {
		maxH = 20
	}
	scale := min(maxW/float64(bounds.Dx()), maxH/float64(bounds.Dy()))
	drawW := float64(bounds.Dx()) * scale
	drawH := float64(bounds.Dy()) * scale

	x := d.innerX() + (d.innerW()-drawW)/2
	y := d.pdf.GetY() + 1
	d.pdf.ImageOptions(name, x, y, drawW, drawH, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
	d.pdf.SetXY(d.innerX(), y+drawH+1)
}
