package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"rfq/config"
	"rfq/record"
)

// NameValues holds the variables made available for output name template
// expansion.
type NameValues struct {
	Context   string
	ID        string
	Client    string
	Recipient string
	Status    string
	SalesRep  string
	Variant   string
	Date      string
}

// buildFileName returns the suggested name for the generated document. It
// uses either the default naming scheme or a user-defined template, cleans
// the result and, if requested, transliterates it.
func buildFileName(cfg *config.DocumentConfig, rec *record.ReportRecord, log *zap.Logger) string {
	name := buildDefaultName(cfg, rec)

	if cfg.OutputNameTemplate != "" {
		if expanded, err := expandNameTemplate(cfg, rec); err != nil {
			// fallback to the default name if template expansion failed
			log.Warn("Unable to prepare output filename", zap.Error(err))
		} else if strings.TrimSpace(expanded) != "" {
			name = expanded
		}
	}

	if cfg.FileNameTransliterate {
		name = slug.Make(name)
	}
	return config.CleanFileName(name) + ".pdf"
}

func buildDefaultName(cfg *config.DocumentConfig, rec *record.ReportRecord) string {
	name := rec.ID
	if cfg.Variant.ForClient() && strings.TrimSpace(rec.Recipient) != "" {
		name += "-" + rec.Recipient
	}
	return name
}

func expandNameTemplate(cfg *config.DocumentConfig, rec *record.ReportRecord) (string, error) {
	name := config.OutputNameTemplateFieldName

	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(cfg.OutputNameTemplate)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := NameValues{
		Context:   string(name),
		ID:        rec.ID,
		Client:    rec.ClientName,
		Recipient: rec.Recipient,
		Status:    rec.Status,
		SalesRep:  rec.SalesRep,
		Variant:   cfg.Variant.String(),
		Date:      buildNameDate(rec.CreatedAt),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildNameDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
