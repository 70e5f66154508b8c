package render

import "strings"

const (
	kvLabelW  = 32.0
	cellPadX  = 1.5
	cellPadY  = 1.0
	tableHdrH = lineH + 2
)

// field is one entry of a key-value grid.
type field struct {
	Label string
	Value string
}

// dropEmptyFields removes fields whose value is empty after trimming.
// A literal "0" is a value like any other and stays.
func dropEmptyFields(fields []field) []field {
	out := fields[:0:0]
	for _, f := range fields {
		if strings.TrimSpace(f.Value) != "" {
			out = append(out, f)
		}
	}
	return out
}

// keyValueGrid lays remaining fields out in cols columns with a fixed label
// column. Row height follows the tallest wrapped value in the row; the
// cursor never advances past a row that was not fully drawn.
func (d *doc) keyValueGrid(fields []field, cols int) {
	fields = dropEmptyFields(fields)
	if len(fields) == 0 {
		return
	}
	if cols < 1 {
		cols = 1
	}

	colW := d.innerW() / float64(cols)
	valueW := colW - kvLabelW - 2

	d.setFont("", baseFontSize)
	for start := 0; start < len(fields); start += cols {
		row := fields[start:min(start+cols, len(fields))]

		// tallest wrapped value decides the row height
		rowLines := 1
		wrapped := make([][]string, len(row))
		for i, f := range row {
			wrapped[i] = d.pdf.SplitText(f.Value, valueW)
			if len(wrapped[i]) > rowLines {
				rowLines = len(wrapped[i])
			}
		}
		rowH := float64(rowLines)*lineH + 1

		d.ensureSpace(rowH)
		y0 := d.pdf.GetY()
		for i, f := range row {
			x := d.innerX() + float64(i)*colW

			d.setFont("", baseFontSize-0.5)
			d.setTextColor(colorMuted)
			d.pdf.SetXY(x, y0)
			d.pdf.CellFormat(kvLabelW, lineH, f.Label, "", 0, "L", false, 0, "")

			d.setFont("", baseFontSize)
			d.setTextColor(colorText)
			for n, line := range wrapped[i] {
				d.pdf.SetXY(x+kvLabelW, y0+float64(n)*lineH)
				d.pdf.CellFormat(valueW, lineH, line, "", 0, "L", false, 0, "")
			}
		}
		d.pdf.SetXY(d.innerX(), y0+rowH)
	}
}

// paragraph wraps text to the flow width and emits it in page-sized chunks,
// so a single long paragraph can span a card continuation without ever
// drawing past the bottom boundary.
func (d *doc) paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	d.setFont("", baseFontSize)
	d.setTextColor(colorText)
	lines := d.pdf.SplitText(text, d.innerW())

	for i := 0; i < len(lines); {
		d.ensureSpace(lineH)
		// recompute how many of the remaining lines fit on this page
		fit := int((d.bottomY() - d.pdf.GetY()) / lineH)
		if fit < 1 {
			fit = 1
		}
		chunk := min(fit, len(lines)-i)
		for _, line := range lines[i : i+chunk] {
			y := d.pdf.GetY()
			d.pdf.SetXY(d.innerX(), y)
			d.pdf.CellFormat(d.innerW(), lineH, line, "", 0, "L", false, 0, "")
			d.pdf.SetXY(d.innerX(), y+lineH)
		}
		i += chunk
	}
	d.pdf.SetXY(d.innerX(), d.pdf.GetY()+1)
}

// tableColumn describes one column: localized header, relative weight and
// alignment ("L", "C" or "R").
type tableColumn struct {
	Label  string
	Weight float64
	Align  string
}

func (d *doc) tableColWidths(cols []tableColumn) []float64 {
	total := 0.0
	for _, c := range cols {
		total += c.Weight
	}
	widths := make([]float64, len(cols))
	for i, c := range cols {
		widths[i] = d.innerW() * c.Weight / total
	}
	return widths
}

// tableHeader draws the filled header row. Exposed separately so it can
// serve as the page-break callback redrawing the header mid-table.
func (d *doc) tableHeader(cols []tableColumn) {
	widths := d.tableColWidths(cols)

	y0 := d.pdf.GetY()
	d.pdf.SetFillColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	d.pdf.Rect(d.innerX(), y0, d.innerW(), tableHdrH, "F")

	d.setFont("B", baseFontSize-0.5)
	d.pdf.SetTextColor(255, 255, 255)
	x := d.innerX()
	for i, c := range cols {
		d.pdf.SetXY(x+cellPadX, y0+1)
		d.pdf.CellFormat(widths[i]-2*cellPadX, lineH, c.Label, "", 0, c.Align, false, 0, "")
		x += widths[i]
	}
	d.pdf.SetXY(d.innerX(), y0+tableHdrH)
}

// table draws a generic table: header row, then per data row independently
// wrapped cells, row height following the tallest cell, zebra background and
// column separators. A row is only drawn when its full height fits before
// the bottom boundary; otherwise onPageBreak runs after the forced break
// (typically redrawing the header).
func (d *doc) table(cols []tableColumn, rows [][]string, onPageBreak func()) {
	if len(rows) == 0 {
		return
	}
	widths := d.tableColWidths(cols)

	d.ensureSpace(tableHdrH + lineH + 2*cellPadY)
	d.tableHeader(cols)

	for idx, row := range rows {
		d.setFont("", baseFontSize-0.5)

		rowLines := 1
		wrapped := make([][]string, len(cols))
		for i := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			wrapped[i] = d.pdf.SplitText(cell, widths[i]-2*cellPadX)
			if len(wrapped[i]) > rowLines {
				rowLines = len(wrapped[i])
			}
		}
		rowH := float64(rowLines)*lineH + 2*cellPadY

		page := d.pdf.PageNo()
		d.ensureSpace(rowH)
		if d.pdf.PageNo() != page && onPageBreak != nil {
			onPageBreak()
		}

		y0 := d.pdf.GetY()
		if idx%2 == 1 {
			d.pdf.SetFillColor(colorZebra[0], colorZebra[1], colorZebra[2])
			d.pdf.Rect(d.innerX(), y0, d.innerW(), rowH, "F")
		}

		d.setTextColor(colorText)
		x := d.innerX()
		for i := range cols {
			for n, line := range wrapped[i] {
				d.pdf.SetXY(x+cellPadX, y0+cellPadY+float64(n)*lineH)
				d.pdf.CellFormat(widths[i]-2*cellPadX, lineH, line, "", 0, cols[i].Align, false, 0, "")
			}
			x += widths[i]
		}

		// separators
		d.pdf.SetDrawColor(colorBorder[0], colorBorder[1], colorBorder[2])
		d.pdf.SetLineWidth(0.2)
		x = d.innerX()
		for i := 0; i < len(cols)-1; i++ {
			x += widths[i]
			d.pdf.Line(x, y0, x, y0+rowH)
		}
		d.pdf.Line(d.innerX(), y0+rowH, d.innerX()+d.innerW(), y0+rowH)

		d.pdf.SetXY(d.innerX(), y0+rowH)
	}
	d.pdf.SetXY(d.innerX(), d.pdf.GetY()+2)
}
