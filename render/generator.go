// Package render implements the paginated quote report engine: it takes a
// validated business record and produces one printable document with dynamic
// pagination, titled card sections, packed tables, attachment previews and a
// cross-referenced appendix.
package render

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rfq/config"
	"rfq/l10n"
	"rfq/record"
)

// Generator produces reports. Safe for concurrent use: all mutable layout
// state lives in the per-call doc.
type Generator struct {
	cfg *config.DocumentConfig
	l   *l10n.Bundle
	log *zap.Logger

	client *http.Client
	rast   Rasterizer
	now    func() time.Time
}

type Option func(*Generator)

// WithRasterizer wires the external document-page-rasterization capability
// used for PDF attachment previews.
func WithRasterizer(r Rasterizer) Option {
	return func(g *Generator) { g.rast = r }
}

// WithHTTPClient overrides the client used to fetch remote attachments.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Generator) { g.client = c }
}

// WithClock freezes "now" - generation timestamps and with them the output
// become fully deterministic for a given record.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func New(cfg *config.DocumentConfig, bundle *l10n.Bundle, log *zap.Logger, opts ...Option) *Generator {
	if bundle == nil {
		bundle = l10n.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	g := &Generator{
		cfg: cfg,
		l:   bundle,
		log: log,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.client == nil {
		g.client = &http.Client{Timeout: time.Duration(cfg.Preview.FetchTimeout) * time.Second}
	}
	return g
}

// Result is one generated document.
type Result struct {
	Data     []byte
	FileName string
	Pages    int
}

// Generate renders rec into a single paginated document. Layout runs
// synchronously to completion; the only suspension points are resource
// loading (once per process) and attachment preview I/O, which is strictly
// sequential in appendix order.
func (g *Generator) Generate(ctx context.Context, rec *record.ReportRecord) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run := uuid.NewString()
	log := g.log.With(zap.String("run", run), zap.String("record", rec.ID))
	log.Debug("Generation starting", zap.Stringer("variant", g.cfg.Variant),
		zap.Int("attachments", len(rec.Attachments())))

	res := loadStaticResources(&g.cfg.Branding, g.log)
	d := newDoc(g.cfg, g.l, res, rec, g.now(), log)

	appendix := newAppendixBuilder(func(category string) string {
		if g.l.HasOption("category", category) {
			return category
		}
		// unrecognized categories land in the generic bucket
		return "other"
	})

	d.assemble(appendix)

	// previews resolve one at a time, in appendix order, so page order is
	// stable across runs
	resolver := NewResolver(g.client, g.rast, g.cfg.Preview.MaxPages, g.cfg.Preview.Zoom, log)
	appendix.resolvePreviews(ctx, resolver)
	d.emitAppendix(appendix)

	d.finishPages()

	if d.pdf.Err() {
		return nil, fmt.Errorf("document rendering failed: %w", d.pdf.Error())
	}

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("unable to write document: %w", err)
	}

	result := &Result{
		Data:     buf.Bytes(),
		FileName: buildFileName(g.cfg, rec, log),
		Pages:    d.pdf.PageCount(),
	}
	log.Info("Generation completed",
		zap.Int("pages", result.Pages),
		zap.Int("appendix items", len(appendix.items)),
		zap.String("file", result.FileName))
	return result, nil
}

// finishPages is the deferred footer pass: once the total page count is
// known every page is stamped with its "x of y" label and, when configured,
// the diagonal confidentiality mark.
func (d *doc) finishPages() {
	total := d.pdf.PageCount()
	watermark := d.cfg.Watermark.Enable && strings.TrimSpace(d.cfg.Watermark.Text) != ""

	for i := 1; i <= total; i++ {
		d.pdf.SetPage(i)

		y := d.pageH - 13
		d.pdf.SetDrawColor(colorBorder[0], colorBorder[1], colorBorder[2])
		d.pdf.SetLineWidth(0.3)
		d.pdf.Line(pageMarginLeft, y, d.pageW-pageMarginRight, y)

		d.setFont("", 7.5)
		d.setTextColor(colorMuted)
		if d.cfg.Branding.CompanyLabel != "" {
			d.pdf.SetXY(pageMarginLeft, y+1.5)
			d.pdf.CellFormat(80, 4, d.cfg.Branding.CompanyLabel, "", 0, "L", false, 0, "")
		}
		label := fmt.Sprintf("%s %d %s %d", d.l.Label("page"), i, d.l.Label("of"), total)
		d.pdf.SetXY(pageMarginLeft, y+1.5)
		d.pdf.CellFormat(d.contentW(), 4, label, "", 0, "C", false, 0, "")
		d.pdf.SetXY(d.pageW-pageMarginRight-60, y+1.5)
		d.pdf.CellFormat(60, 4, d.rec.ID, "", 0, "R", false, 0, "")

		if watermark {
			d.drawWatermark()
		}
	}
}

func (d *doc) drawWatermark() {
	pdf := d.pdf
	pdf.SetAlpha(0.08, "Normal")
	d.setFont("B", 58)
	d.setTextColor(colorPrimary)

	cx, cy := d.pageW/2, d.pageH/2
	pdf.TransformBegin()
	pdf.TransformRotate(45, cx, cy)
	w := pdf.GetStringWidth(d.cfg.Watermark.Text)
	pdf.Text(cx-w/2, cy, d.cfg.Watermark.Text)
	pdf.TransformEnd()

	pdf.SetAlpha(1, "Normal")
}
