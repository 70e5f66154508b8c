package render

import (
	"strconv"
	"strings"
	"time"

	"rfq/record"
)

// assemble walks the record in its fixed section order. Sections with no
// non-empty field are omitted entirely - never rendered with placeholders.
func (d *doc) assemble(appendix *appendixBuilder) {
	d.addPage()
	d.emitTitleBlock()
	d.emitSummary()
	d.emitGeneral(appendix)
	for i := range d.rec.Products {
		d.emitProduct(&d.rec.Products[i], appendix)
	}
	d.emitDesign(appendix)
	d.emitCosting(appendix)
	d.emitTerms()
	d.emitHistory()
}

func (d *doc) emitTitleBlock() {
	title := d.l.Label("doc_title")
	if d.cfg.Variant.ForClient() {
		title = d.l.Label("doc_title_offer")
	}

	d.setFont("B", 20)
	d.setTextColor(colorPrimary)
	y := d.pdf.GetY() + 2
	d.pdf.SetXY(pageMarginLeft, y)
	d.pdf.CellFormat(d.contentW(), 9, title, "", 0, "L", false, 0, "")

	d.setFont("", 11)
	d.setTextColor(colorMuted)
	d.pdf.SetXY(pageMarginLeft, y+10)
	d.pdf.CellFormat(d.contentW(), 5, d.rec.ID, "", 0, "L", false, 0, "")

	d.pdf.SetXY(pageMarginLeft, y+18)
}

func (d *doc) emitSummary() {
	fields := dropEmptyFields([]field{
		{Label: d.l.Label("status"), Value: d.option("status", d.rec.Status)},
		{Label: d.l.Label("sales_rep"), Value: d.rec.SalesRep},
		{Label: d.l.Label("created"), Value: d.date(d.rec.CreatedAt)},
		{Label: d.l.Label("updated"), Value: d.date(d.rec.UpdatedAt)},
		{Label: d.l.Label("required_by"), Value: d.date(d.rec.RequiredBy)},
		{Label: d.l.Label("currency"), Value: d.rec.Currency},
	})
	if len(fields) == 0 {
		return
	}
	d.beginCard(d.l.Label("summary"))
	d.keyValueGrid(fields, 2)
	d.endCard()
}

func (d *doc) emitGeneral(appendix *appendixBuilder) {
	g := &d.rec.General
	fields := dropEmptyFields([]field{
		{Label: d.l.Label("client"), Value: d.rec.ClientName},
		{Label: d.l.Label("recipient"), Value: d.rec.Recipient},
		{Label: d.l.Label("client_address"), Value: g.ClientAddress},
		{Label: d.l.Label("contact_email"), Value: g.ContactEmail},
		{Label: d.l.Label("contact_phone"), Value: g.ContactPhone},
		{Label: d.l.Label("segment"), Value: d.option("segment", g.Segment)},
		{Label: d.l.Label("incoterms"), Value: g.Incoterms},
		{Label: d.l.Label("delivery_address"), Value: g.DeliveryAddress},
	})
	if len(fields) == 0 && strings.TrimSpace(g.Notes) == "" && len(g.Attachments) == 0 {
		return
	}

	d.beginCard(d.l.Label("general"))
	d.keyValueGrid(fields, 2)
	if strings.TrimSpace(g.Notes) != "" {
		d.subheading(d.l.Label("notes"))
		d.paragraph(g.Notes)
	}
	d.attachmentsRef(appendix, g.Attachments)
	d.endCard()
}

// emitProduct renders one technical card. Its four subsections are always
// checked and emitted only when at least one parameter carries a value.
func (d *doc) emitProduct(p *record.ProductSpec, appendix *appendixBuilder) {
	d.beginCard(d.l.Label("product") + " - " + p.Name)

	d.keyValueGrid([]field{
		{Label: d.l.Label("article_no"), Value: p.ArticleNo},
		{Label: d.l.Label("quantity"), Value: strconv.Itoa(p.Quantity)},
	}, 2)

	groups := []struct {
		labelKey string
		params   []record.Param
	}{
		{"performance", p.Performance},
		{"geometry", p.Geometry},
		{"braking", p.Braking},
		{"finish", p.Finish},
	}
	for _, grp := range groups {
		d.emitParamGroup(grp.labelKey, grp.params)
	}
	d.attachmentsRef(appendix, p.Attachments)
	d.endCard()
}

func (d *doc) emitParamGroup(labelKey string, params []record.Param) {
	rows := make([][]string, 0, len(params))
	for _, p := range params {
		if strings.TrimSpace(p.Value) == "" {
			continue
		}
		rows = append(rows, []string{p.Label, formatUnitValue(p.Value, p.Unit)})
	}
	if len(rows) == 0 {
		return
	}

	d.subheading(d.l.Label(labelKey))
	cols := []tableColumn{
		{Label: d.l.Label("parameter"), Weight: 1, Align: "L"},
		{Label: d.l.Label("value"), Weight: 1, Align: "L"},
	}
	d.table(cols, rows, func() { d.tableHeader(cols) })
}

func (d *doc) emitDesign(appendix *appendixBuilder) {
	r := &d.rec.Design
	fields := dropEmptyFields([]field{
		{Label: d.l.Label("outcome"), Value: d.option("outcome", r.Outcome)},
		{Label: d.l.Label("engineer"), Value: r.Engineer},
		{Label: d.l.Label("completed"), Value: d.date(r.CompletedAt)},
	})
	if len(fields) == 0 && strings.TrimSpace(r.Summary) == "" && len(r.Attachments) == 0 {
		return
	}

	d.beginCard(d.l.Label("design"))
	d.keyValueGrid(fields, 2)
	if strings.TrimSpace(r.Summary) != "" {
		d.paragraph(r.Summary)
	}
	d.attachmentsRef(appendix, r.Attachments)
	d.endCard()
}

func (d *doc) emitCosting(appendix *appendixBuilder) {
	c := &d.rec.Costing
	if len(c.Lines) == 0 && c.Total == 0 && strings.TrimSpace(c.Validity) == "" && len(c.Attachments) == 0 {
		return
	}

	d.beginCard(d.l.Label("costing"))

	if len(c.Lines) > 0 {
		cols := []tableColumn{
			{Label: d.l.Label("item"), Weight: 4, Align: "L"},
			{Label: d.l.Label("quantity"), Weight: 1.5, Align: "C"},
			{Label: d.l.Label("amount"), Weight: 2, Align: "R"},
			{Label: d.l.Label("comment"), Weight: 3, Align: "L"},
		}
		rows := make([][]string, 0, len(c.Lines))
		for _, ln := range c.Lines {
			rows = append(rows, []string{
				ln.Item,
				ln.Quantity,
				formatAmount(ln.Amount, d.rec.Currency),
				ln.Comment,
			})
		}
		d.table(cols, rows, func() { d.tableHeader(cols) })
	}

	var fields []field
	if c.Total != 0 || len(c.Lines) > 0 {
		fields = append(fields, field{Label: d.l.Label("total"), Value: formatAmount(c.Total, d.rec.Currency)})
	}
	fields = append(fields, field{Label: d.l.Label("validity"), Value: c.Validity})
	d.keyValueGrid(fields, 2)
	d.attachmentsRef(appendix, c.Attachments)
	d.endCard()
}

func (d *doc) emitTerms() {
	t := &d.rec.Terms
	fields := dropEmptyFields([]field{
		{Label: d.l.Label("delivery_time"), Value: t.DeliveryTime},
		{Label: d.l.Label("warranty"), Value: t.Warranty},
		{Label: d.l.Label("incoterms"), Value: t.Incoterms},
	})
	if len(fields) == 0 && len(t.PaymentTerms) == 0 && strings.TrimSpace(t.Notes) == "" {
		return
	}

	d.beginCard(d.l.Label("terms"))
	d.keyValueGrid(fields, 2)

	if len(t.PaymentTerms) > 0 {
		d.subheading(d.l.Label("payment_terms"))
		cols := []tableColumn{
			{Label: d.l.Label("milestone"), Weight: 4, Align: "L"},
			{Label: d.l.Label("percent"), Weight: 1.5, Align: "R"},
			{Label: d.l.Label("due_days"), Weight: 1.5, Align: "R"},
		}
		rows := make([][]string, 0, len(t.PaymentTerms))
		for _, pt := range t.PaymentTerms {
			rows = append(rows, []string{
				pt.Milestone,
				formatPercent(pt.Percent),
				strconv.Itoa(pt.DueDays),
			})
		}
		d.table(cols, rows, func() { d.tableHeader(cols) })
	}
	if strings.TrimSpace(t.Notes) != "" {
		d.subheading(d.l.Label("notes"))
		d.paragraph(t.Notes)
	}
	d.endCard()
}

func (d *doc) emitHistory() {
	entries := collapseHistory(d.rec.History)
	if len(entries) == 0 {
		return
	}

	d.beginCard(d.l.Label("history"))
	cols := []tableColumn{
		{Label: d.l.Label("date"), Weight: 2, Align: "L"},
		{Label: d.l.Label("status"), Weight: 2, Align: "L"},
		{Label: d.l.Label("user"), Weight: 2, Align: "L"},
		{Label: d.l.Label("comment"), Weight: 4.5, Align: "L"},
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		at := ""
		if !e.At.IsZero() {
			at = d.l.FormatTime(e.At)
		}
		rows = append(rows, []string{
			at,
			d.option("status", e.Status),
			e.User,
			e.Comment,
		})
	}
	d.table(cols, rows, func() { d.tableHeader(cols) })
	d.endCard()
}

// collapseHistory folds a transition into its predecessor when it repeats
// the same status by the same user and carries no comment.
func collapseHistory(entries []record.StatusHistoryEntry) []record.StatusHistoryEntry {
	out := entries[:0:0]
	for _, e := range entries {
		if len(out) > 0 {
			prev := out[len(out)-1]
			if prev.Status == e.Status && prev.User == e.User && strings.TrimSpace(e.Comment) == "" {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// attachmentsRef emits the inline cross-reference row pointing at appendix
// items. Referencing assigns IDs - first reference wins the number.
func (d *doc) attachmentsRef(appendix *appendixBuilder, atts []record.Attachment) {
	if len(atts) == 0 {
		return
	}
	ref := appendix.refString(atts)
	d.keyValueGrid([]field{{Label: d.l.Label("attachments"), Value: ref}}, 1)
}

// subheading draws a small accent heading inside the current flow box.
func (d *doc) subheading(text string) {
	d.ensureSpace(lineH + 3)
	d.setFont("B", baseFontSize)
	d.setTextColor(colorAccent)
	y := d.pdf.GetY() + 1.5
	d.pdf.SetXY(d.innerX(), y)
	d.pdf.CellFormat(d.innerW(), lineH, strings.ToUpper(text), "", 0, "L", false, 0, "")
	d.pdf.SetXY(d.innerX(), y+lineH+0.5)
}

// option translates a code, leaving empty codes empty.
func (d *doc) option(group, code string) string {
	if strings.TrimSpace(code) == "" {
		return ""
	}
	return d.l.Option(group, code)
}

// date renders a timestamp, leaving the zero value empty so it is dropped
// from key-value output.
func (d *doc) date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return d.l.FormatDate(t)
}
