// Package record defines the quote request business record consumed by the
// report engine. The record arrives fully validated from the workflow store -
// nothing here enforces business rules beyond shape.
package record

import "time"

// Attachment is a file reference owned by the record. URL is one of: a data
// URL, a bare base64 payload or a fetchable URL.
type Attachment struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Category   string    `json:"category"`
	URL        string    `json:"url"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
	Size       int64     `json:"size,omitempty"`
}

// Param is a single named technical parameter. Unit semantics: "%" is
// appended without separator, a currency code is prefixed, anything else is
// appended after a space.
type Param struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// ProductSpec describes one quoted product position.
type ProductSpec struct {
	Name        string       `json:"name"`
	ArticleNo   string       `json:"articleNo,omitempty"`
	Quantity    int          `json:"quantity"`
	Performance []Param      `json:"performance,omitempty"`
	Geometry    []Param      `json:"geometry,omitempty"`
	Braking     []Param      `json:"braking,omitempty"`
	Finish      []Param      `json:"finish,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// StatusHistoryEntry is one workflow transition.
type StatusHistoryEntry struct {
	Status  string    `json:"status"`
	User    string    `json:"user"`
	At      time.Time `json:"at"`
	Comment string    `json:"comment,omitempty"`
}

// PaymentTerm is one row of the payment schedule embedded in sales terms.
type PaymentTerm struct {
	Milestone string  `json:"milestone"`
	Percent   float64 `json:"percent"`
	DueDays   int     `json:"dueDays"`
}

// CostLine is one row of the costing breakdown.
type CostLine struct {
	Item     string  `json:"item"`
	Quantity string  `json:"quantity,omitempty"`
	Amount   float64 `json:"amount"`
	Comment  string  `json:"comment,omitempty"`
}

// GeneralInfo carries client and logistics details.
type GeneralInfo struct {
	ClientAddress   string       `json:"clientAddress,omitempty"`
	ContactEmail    string       `json:"contactEmail,omitempty"`
	ContactPhone    string       `json:"contactPhone,omitempty"`
	Segment         string       `json:"segment,omitempty"`
	Incoterms       string       `json:"incoterms,omitempty"`
	DeliveryAddress string       `json:"deliveryAddress,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
}

// DesignResult carries the engineering outcome of the request.
type DesignResult struct {
	Outcome     string       `json:"outcome,omitempty"`
	Engineer    string       `json:"engineer,omitempty"`
	CompletedAt time.Time    `json:"completedAt,omitzero"`
	Summary     string       `json:"summary,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Costing carries the commercial breakdown.
type Costing struct {
	Lines       []CostLine   `json:"lines,omitempty"`
	Total       float64      `json:"total,omitempty"`
	Validity    string       `json:"validity,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// SalesTerms carries delivery and payment conditions.
type SalesTerms struct {
	DeliveryTime string        `json:"deliveryTime,omitempty"`
	Warranty     string        `json:"warranty,omitempty"`
	Incoterms    string        `json:"incoterms,omitempty"`
	PaymentTerms []PaymentTerm `json:"paymentTerms,omitempty"`
	Notes        string        `json:"notes,omitempty"`
}

// ReportRecord is the complete input of one generation call. Immutable for
// the duration of the call.
type ReportRecord struct {
	ID         string               `json:"id"`
	ClientName string               `json:"clientName"`
	Recipient  string               `json:"recipient,omitempty"`
	Status     string               `json:"status"`
	SalesRep   string               `json:"salesRep,omitempty"`
	Currency   string               `json:"currency,omitempty"`
	CreatedAt  time.Time            `json:"createdAt,omitzero"`
	UpdatedAt  time.Time            `json:"updatedAt,omitzero"`
	RequiredBy time.Time            `json:"requiredBy,omitzero"`
	General    GeneralInfo          `json:"general,omitzero"`
	Products   []ProductSpec        `json:"products,omitempty"`
	Design     DesignResult         `json:"design,omitzero"`
	Costing    Costing              `json:"costing,omitzero"`
	Terms      SalesTerms           `json:"terms,omitzero"`
	History    []StatusHistoryEntry `json:"history,omitempty"`
}

// Attachments returns all attachment lists of the record in document order:
// general, per-product, design, costing.
func (r *ReportRecord) Attachments() []Attachment {
	var out []Attachment
	out = append(out, r.General.Attachments...)
	for _, p := range r.Products {
		out = append(out, p.Attachments...)
	}
	out = append(out, r.Design.Attachments...)
	out = append(out, r.Costing.Attachments...)
	return out
}
