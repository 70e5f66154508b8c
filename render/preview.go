package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"rfq/record"
)

// PreviewKind discriminates PreviewResult variants.
type PreviewKind int

const (
	// PreviewNone means no preview could be produced; Note explains why.
	PreviewNone PreviewKind = iota
	// PreviewImage is a single still image.
	PreviewImage
	// PreviewPDFPages is one rasterized image per attachment page.
	PreviewPDFPages
)

// PreviewResult is the outcome of resolving one attachment.
type PreviewResult struct {
	Kind  PreviewKind
	Pages []image.Image
	Note  string
}

// Rasterizer converts paginated document bytes into ordered raster images,
// one per page, up to maxPages. It is an external capability - the engine
// treats it as a black box.
type Rasterizer interface {
	Rasterize(ctx context.Context, doc []byte, maxPages int, zoom float64) ([]image.Image, error)
}

// Resolver turns attachment references into preview images. Resolve never
// fails: every error path degrades to a PreviewNone result carrying a human
// readable note which ends up on the attachment's appendix page.
type Resolver struct {
	client   *http.Client
	rast     Rasterizer
	maxPages int
	zoom     float64
	log      *zap.Logger
}

// NewResolver creates a resolver. rast may be nil - PDF attachments then
// degrade to a note instead of page images.
func NewResolver(client *http.Client, rast Rasterizer, maxPages int, zoom float64, log *zap.Logger) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	if maxPages <= 0 {
		maxPages = 10
	}
	if zoom <= 0 {
		zoom = 2.0
	}
	return &Resolver{client: client, rast: rast, maxPages: maxPages, zoom: zoom, log: log}
}

// Resolve produces a preview for att. Failures are recorded, never returned.
func (r *Resolver) Resolve(ctx context.Context, att record.Attachment) PreviewResult {
	res := r.resolve(ctx, att)
	if res.Kind == PreviewNone && r.log != nil {
		r.log.Debug("No preview for attachment",
			zap.String("file", att.Filename), zap.String("note", res.Note))
	}
	return res
}

func (r *Resolver) resolve(ctx context.Context, att record.Attachment) PreviewResult {
	raw := strings.TrimSpace(att.URL)
	switch {
	case raw == "":
		return noPreview("attachment has no content reference")

	case strings.HasPrefix(raw, "data:"):
		return r.resolveDataURL(ctx, raw)

	case !hasScheme(raw):
		// A schemeless reference is either a bare base64 payload or a
		// relative location. Decodability decides: payloads decode, paths
		// do not.
		if data, err := decodeBase64(raw); err == nil {
			switch Sniff(data) {
			case ContentPNG, ContentJPEG:
				return r.asImage(data)
			case ContentPDF:
				return r.asPDFPages(ctx, data)
			default:
				return noPreview("unrecognized content signature")
			}
		}
		return r.resolveFetch(ctx, raw)

	default:
		return r.resolveFetch(ctx, raw)
	}
}

func (r *Resolver) resolveDataURL(ctx context.Context, raw string) PreviewResult {
	meta, payload, ok := strings.Cut(raw[len("data:"):], ",")
	if !ok {
		return noPreview("malformed data url")
	}
	mime, _, _ := strings.Cut(meta, ";")
	data, err := decodeBase64(payload)
	if err != nil {
		// data urls may also carry url-escaped text payloads
		if unescaped, uerr := url.QueryUnescape(payload); uerr == nil {
			data = []byte(unescaped)
		} else {
			return noPreview("undecodable data url payload")
		}
	}

	switch {
	case strings.HasPrefix(mime, "image/"):
		return r.asImage(data)
	case mime == "application/pdf":
		return r.asPDFPages(ctx, data)
	default:
		return noPreview(fmt.Sprintf("unsupported content type %q", mime))
	}
}

func (r *Resolver) resolveFetch(ctx context.Context, raw string) PreviewResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return noPreview("attachment location is not fetchable")
	}
	// single attempt, no retries
	resp, err := r.client.Do(req)
	if err != nil {
		return noPreview("unable to fetch attachment content")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return noPreview(fmt.Sprintf("fetch failed with status %d", resp.StatusCode))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return noPreview("unable to read attachment content")
	}

	mime, _, _ := strings.Cut(resp.Header.Get("Content-Type"), ";")
	return r.dispatchBytes(ctx, data, strings.TrimSpace(mime))
}

// dispatchBytes routes raw content either by the declared mime type or, when
// it is absent or unhelpful, by sniffing leading bytes.
func (r *Resolver) dispatchBytes(ctx context.Context, data []byte, mime string) PreviewResult {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return r.asImage(data)
	case mime == "application/pdf":
		return r.asPDFPages(ctx, data)
	}

	switch Sniff(data) {
	case ContentPNG, ContentJPEG:
		return r.asImage(data)
	case ContentPDF:
		return r.asPDFPages(ctx, data)
	default:
		return noPreview("unrecognized content signature")
	}
}

func (r *Resolver) asImage(data []byte) PreviewResult {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return noPreview("undecodable image content")
	}
	return PreviewResult{Kind: PreviewImage, Pages: []image.Image{img}}
}

func (r *Resolver) asPDFPages(ctx context.Context, data []byte) PreviewResult {
	if r.rast == nil {
		return noPreview("document rasterization not available")
	}
	pages, err := r.rast.Rasterize(ctx, data, r.maxPages, r.zoom)
	if err != nil {
		return noPreview("unable to rasterize document pages")
	}
	if len(pages) == 0 {
		return noPreview("document has no renderable pages")
	}
	return PreviewResult{Kind: PreviewPDFPages, Pages: pages}
}

func noPreview(note string) PreviewResult {
	return PreviewResult{Kind: PreviewNone, Note: note}
}

func hasScheme(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != ""
}

func decodeBase64(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if data, err := base64.StdEncoding.DecodeString(payload); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(payload)
}
