package render

import (
	"bytes"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"rfq/config"
	"rfq/l10n"
	"rfq/record"
)

// Page geometry, millimeters, A4 portrait. The engine supports exactly one
// page format.
const (
	pageMarginLeft   = 15.0
	pageMarginRight  = 15.0
	headerBandH      = 20.0
	headerGutter     = 6.0
	pageBottomMargin = 20.0

	lineH        = 4.6
	baseFontSize = 9.0

	cardHeaderH     = 9.0
	cardContHeaderH = 6.5
	cardPadX        = 3.0
	cardPadTop      = 2.0
	cardPadBottom   = 3.0
	cardGap         = 5.0
)

var (
	colorPrimary = [3]int{30, 58, 95}    // dark navy
	colorAccent  = [3]int{52, 152, 219}  // bright blue
	colorText    = [3]int{44, 62, 80}    // body text
	colorMuted   = [3]int{127, 140, 141} // secondary text
	colorFill    = [3]int{248, 249, 250} // card header fill
	colorZebra   = [3]int{241, 245, 249} // alternating table row
	colorBorder  = [3]int{220, 220, 220} // frames and separators
)

const logoImageName = "brand-logo"

// doc owns the layout cursor and all per-call drawing state. It is created
// at the start of a generation call and discarded at the end - never shared.
type doc struct {
	pdf *fpdf.Fpdf
	cfg *config.DocumentConfig
	l   *l10n.Bundle
	log *zap.Logger
	res *staticResources
	rec *record.ReportRecord
	now time.Time

	fontFamily   string
	pageW, pageH float64

	card *card // open card frame, nil when closed
}

func newDoc(cfg *config.DocumentConfig, bundle *l10n.Bundle, res *staticResources, rec *record.ReportRecord, now time.Time, log *zap.Logger) *doc {
	pdf := fpdf.New("P", "mm", "A4", "")
	family := "Helvetica"

	if res.fontPath != "" {
		pdf.AddUTF8Font("custom", "", res.fontPath)
		pdf.AddUTF8Font("custom", "B", res.fontPath)
		pdf.AddUTF8Font("custom", "I", res.fontPath)
		if pdf.Err() {
			// font failures never fail generation
			if log != nil {
				log.Warn("Unable to use configured font, falling back to built-in", zap.String("path", res.fontPath))
			}
			pdf = fpdf.New("P", "mm", "A4", "")
		} else {
			family = "custom"
		}
	}

	// metadata timestamps follow the injected clock, wall time never leaks
	// into the output
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)

	pdf.SetAutoPageBreak(false, 0)
	if len(res.logoJPEG) > 0 {
		pdf.RegisterImageOptionsReader(logoImageName, fpdf.ImageOptions{ImageType: "JPG"}, bytes.NewReader(res.logoJPEG))
	}

	d := &doc{
		pdf:        pdf,
		cfg:        cfg,
		l:          bundle,
		log:        log,
		res:        res,
		rec:        rec,
		now:        now,
		fontFamily: family,
	}
	d.pageW, d.pageH = pdf.GetPageSize()
	return d
}

func (d *doc) contentW() float64 { return d.pageW - pageMarginLeft - pageMarginRight }
func (d *doc) bottomY() float64  { return d.pageH - pageBottomMargin }

// innerX/innerW return the current flow box: the card interior when a card
// is open, the full content area otherwise.
func (d *doc) innerX() float64 {
	if d.card != nil {
		return pageMarginLeft + cardPadX
	}
	return pageMarginLeft
}

func (d *doc) innerW() float64 {
	if d.card != nil {
		return d.contentW() - 2*cardPadX
	}
	return d.contentW()
}

// ensureSpace guarantees that h millimeters fit above the bottom boundary,
// breaking the page first when they do not. An open card is continued, not
// abandoned - this is the sole transition trigger of the card state machine.
func (d *doc) ensureSpace(h float64) {
	if d.pdf.GetY()+h <= d.bottomY() {
		return
	}
	if d.card != nil {
		d.pageBreakActiveCard()
		return
	}
	d.addPage()
}

// addPage appends a page and redraws the header band. Must not be called
// with an open card - card continuation handles that path.
func (d *doc) addPage() {
	d.pdf.AddPage()
	d.drawHeaderBand()
	d.pdf.SetXY(pageMarginLeft, headerBandH+headerGutter)
}

func (d *doc) drawHeaderBand() {
	pdf := d.pdf
	firstPage := pdf.PageNo() == 1

	if d.cfg.Branding.Density == config.BrandingDensityFull {
		pdf.SetFillColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
		pdf.Rect(0, 0, d.pageW, 2.5, "F")
	}

	logoH := 11.0
	if d.cfg.Branding.Density != config.BrandingDensityFull {
		logoH = 8.0
	}
	if len(d.res.logoJPEG) > 0 && d.cfg.Branding.Density != config.BrandingDensityDraft {
		pdf.ImageOptions(logoImageName, pageMarginLeft, 5.5, 0, logoH, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
	} else if d.cfg.Branding.CompanyLabel != "" {
		pdf.SetFont(d.fontFamily, "B", 11)
		pdf.SetTextColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
		pdf.Text(pageMarginLeft, 12, d.cfg.Branding.CompanyLabel)
	}

	pdf.SetFont(d.fontFamily, "", 7.5)
	pdf.SetTextColor(colorMuted[0], colorMuted[1], colorMuted[2])
	right := d.pageW - pageMarginRight
	pdf.SetXY(right-80, 6)
	pdf.CellFormat(80, 4, d.rec.ID, "", 0, "R", false, 0, "")
	if firstPage {
		stamp := d.l.Label("generated") + ": " + d.l.FormatTime(d.now)
		pdf.SetXY(right-80, 10.5)
		pdf.CellFormat(80, 4, stamp, "", 0, "R", false, 0, "")
	}

	pdf.SetDrawColor(colorBorder[0], colorBorder[1], colorBorder[2])
	pdf.SetLineWidth(0.3)
	pdf.Line(pageMarginLeft, headerBandH, d.pageW-pageMarginRight, headerBandH)
}

// setFont is a small convenience keeping family selection in one place.
func (d *doc) setFont(style string, size float64) {
	d.pdf.SetFont(d.fontFamily, style, size)
}

func (d *doc) setTextColor(c [3]int) {
	d.pdf.SetTextColor(c[0], c[1], c[2])
}
