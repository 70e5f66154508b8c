package render

import (
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// ContentKind is the closed set of attachment content types the engine can
// preview.
type ContentKind int

const (
	ContentUnknown ContentKind = iota
	ContentPNG
	ContentJPEG
	ContentPDF
)

func (k ContentKind) String() string {
	switch k {
	case ContentPNG:
		return "png"
	case ContentJPEG:
		return "jpeg"
	case ContentPDF:
		return "pdf"
	default:
		return "unknown"
	}
}

// SniffLen is the number of leading bytes Sniff needs to classify content.
// Callers holding large payloads may pass data[:SniffLen] - a longer sample
// never changes the result. This is a contract, not an optimization detail.
const SniffLen = 262

// Sniff classifies raw bytes by magic signature (PNG 8-byte signature, JPEG
// SOI marker, PDF "%PDF"). It never fails - anything unrecognized is
// ContentUnknown.
func Sniff(sample []byte) ContentKind {
	if len(sample) > SniffLen {
		sample = sample[:SniffLen]
	}
	t, _ := filetype.Match(sample)
	switch t {
	case matchers.TypePng:
		return ContentPNG
	case matchers.TypeJpeg:
		return ContentJPEG
	case matchers.TypePdf:
		return ContentPDF
	default:
		return ContentUnknown
	}
}
