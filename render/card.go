package render

import "strings"

// cardState tracks the titled frame lifecycle. Exactly one card may be open
// at a time; continuation is entered only from ensureSpace.
type cardState int

const (
	cardOpen cardState = iota
	cardContinuing
)

// card is the currently open titled frame.
type card struct {
	state cardState
	title string
	topY  float64 // frame top on the current page
}

// beginCard opens a titled frame. Space for the header plus a couple of
// content lines is reserved first so a card never starts as an orphan title
// at the very bottom of a page.
func (d *doc) beginCard(title string) {
	if d.card != nil {
		// this should never happen
		panic("beginCard called with a card already open")
	}
	d.ensureSpace(cardHeaderH + 2*lineH + cardPadTop + cardPadBottom)

	topY := d.pdf.GetY()
	d.drawCardHeader(title, topY, cardHeaderH, false)

	d.card = &card{state: cardOpen, title: title, topY: topY}
	d.pdf.SetXY(pageMarginLeft+cardPadX, topY+cardHeaderH+cardPadTop)
}

// endCard closes the frame: border around everything emitted since the
// matching beginCard (on this page), trailing padding included.
func (d *doc) endCard() {
	if d.card == nil {
		// this should never happen
		panic("endCard called without an open card")
	}
	bottom := d.pdf.GetY() + cardPadBottom
	d.drawCardBorder(d.card.topY, bottom)
	d.card = nil
	d.pdf.SetXY(pageMarginLeft, bottom+cardGap)
}

// pageBreakActiveCard closes the visual frame of the current fragment (no
// trailing padding - content continues), breaks the page and reopens the
// card with a continuation header.
func (d *doc) pageBreakActiveCard() {
	c := d.card
	d.drawCardBorder(c.topY, d.pdf.GetY())

	// addPage must see no open card
	d.card = nil
	d.addPage()
	d.card = c

	topY := d.pdf.GetY()
	title := d.continuedTitle(c.title)
	d.drawCardHeader(title, topY, cardContHeaderH, true)

	c.state = cardContinuing
	c.topY = topY
	d.pdf.SetXY(pageMarginLeft+cardPadX, topY+cardContHeaderH+cardPadTop)
}

// continuedTitle appends the continuation marker, truncating the original
// title when both would not fit the header width.
func (d *doc) continuedTitle(title string) string {
	marker := " (" + d.l.Label("continued") + ")"
	avail := d.contentW() - 2*cardPadX - 4

	d.setFont("I", 8.5)
	if d.pdf.GetStringWidth(title+marker) <= avail {
		return title + marker
	}
	ellipsis := "..."
	runes := []rune(title)
	for len(runes) > 0 && d.pdf.GetStringWidth(string(runes)+ellipsis+marker) > avail {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimRight(string(runes), " ") + ellipsis + marker
}

func (d *doc) drawCardHeader(title string, topY, height float64, continued bool) {
	pdf := d.pdf

	pdf.SetFillColor(colorFill[0], colorFill[1], colorFill[2])
	pdf.Rect(pageMarginLeft, topY, d.contentW(), height, "F")
	pdf.SetFillColor(colorAccent[0], colorAccent[1], colorAccent[2])
	pdf.Rect(pageMarginLeft, topY, 1.6, height, "F")

	if continued {
		d.setFont("I", 8.5)
		d.setTextColor(colorMuted)
	} else {
		d.setFont("B", 10.5)
		d.setTextColor(colorPrimary)
	}
	pdf.SetXY(pageMarginLeft+cardPadX+1.6, topY)
	pdf.CellFormat(d.contentW()-2*cardPadX-1.6, height, title, "", 0, "L", false, 0, "")
}

func (d *doc) drawCardBorder(topY, bottom float64) {
	pdf := d.pdf
	pdf.SetDrawColor(colorBorder[0], colorBorder[1], colorBorder[2])
	pdf.SetLineWidth(0.3)
	pdf.Rect(pageMarginLeft, topY, d.contentW(), bottom-topY, "D")
}
