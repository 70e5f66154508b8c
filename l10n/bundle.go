// Package l10n supplies user facing strings for the report engine: section
// labels, option code translations and locale aware date formatting. The
// engine itself hardcodes no language specific text beyond structural
// fallbacks.
package l10n

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
	"golang.org/x/text/language"
)

//go:embed labels_en.yaml
var defaultBundle []byte

type bundleFile struct {
	Locale      string                       `yaml:"locale"`
	DatePattern string                       `yaml:"date_pattern"`
	TimePattern string                       `yaml:"time_pattern"`
	Labels      map[string]string            `yaml:"labels"`
	Options     map[string]map[string]string `yaml:"options"`
}

// Bundle resolves labels and option codes for one locale. Read-only after
// load, safe for concurrent use.
type Bundle struct {
	tag         language.Tag
	datePattern string
	timePattern string
	labels      map[string]string
	options     map[string]map[string]string
}

func newBundle(bf *bundleFile) (*Bundle, error) {
	tag, err := language.Parse(bf.Locale)
	if err != nil {
		return nil, fmt.Errorf("bad locale %q: %w", bf.Locale, err)
	}
	b := &Bundle{
		tag:         tag,
		datePattern: bf.DatePattern,
		timePattern: bf.TimePattern,
		labels:      bf.Labels,
		options:     bf.Options,
	}
	if b.datePattern == "" {
		b.datePattern = "2006-01-02"
	}
	if b.timePattern == "" {
		b.timePattern = b.datePattern + " 15:04"
	}
	if b.labels == nil {
		b.labels = map[string]string{}
	}
	if b.options == nil {
		b.options = map[string]map[string]string{}
	}
	return b, nil
}

func decodeBundle(data []byte) (*bundleFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var bf bundleFile
	if err := dec.Decode(&bf); err != nil {
		return nil, fmt.Errorf("unable to decode localization bundle: %w", err)
	}
	return &bf, nil
}

// Default returns the built-in English bundle.
func Default() *Bundle {
	bf, err := decodeBundle(defaultBundle)
	if err != nil {
		// embedded bundle is part of the build
		panic(err)
	}
	b, err := newBundle(bf)
	if err != nil {
		panic(err)
	}
	return b
}

// Load reads a bundle from file, superimposing it on the embedded English
// defaults so partial translations still resolve every key.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read localization bundle: %w", err)
	}
	bf, err := decodeBundle(data)
	if err != nil {
		return nil, err
	}

	def, err := decodeBundle(defaultBundle)
	if err != nil {
		return nil, err
	}
	if bf.Locale == "" {
		bf.Locale = def.Locale
	}
	if bf.DatePattern == "" {
		bf.DatePattern = def.DatePattern
	}
	if bf.TimePattern == "" {
		bf.TimePattern = def.TimePattern
	}
	for k, v := range def.Labels {
		if _, ok := bf.Labels[k]; !ok {
			if bf.Labels == nil {
				bf.Labels = map[string]string{}
			}
			bf.Labels[k] = v
		}
	}
	for group, codes := range def.Options {
		if bf.Options == nil {
			bf.Options = map[string]map[string]string{}
		}
		if _, ok := bf.Options[group]; !ok {
			bf.Options[group] = codes
			continue
		}
		for code, v := range codes {
			if _, ok := bf.Options[group][code]; !ok {
				bf.Options[group][code] = v
			}
		}
	}
	return newBundle(bf)
}

// Tag returns the bundle locale.
func (b *Bundle) Tag() language.Tag {
	return b.tag
}

// Label returns the translation for key. Unknown keys resolve to the key
// itself so a missing translation is visible in the output instead of
// producing an empty cell.
func (b *Bundle) Label(key string) string {
	if v, ok := b.labels[key]; ok {
		return v
	}
	return key
}

// Option translates an option code within a group, falling back to the raw
// code.
func (b *Bundle) Option(group, code string) string {
	if codes, ok := b.options[group]; ok {
		if v, ok := codes[code]; ok {
			return v
		}
	}
	return code
}

// HasOption reports whether code is a known option of group.
func (b *Bundle) HasOption(group, code string) bool {
	codes, ok := b.options[group]
	if !ok {
		return false
	}
	_, ok = codes[code]
	return ok
}

// FormatDate renders t using the bundle date pattern.
func (b *Bundle) FormatDate(t time.Time) string {
	return t.Format(b.datePattern)
}

// FormatTime renders t using the bundle timestamp pattern.
func (b *Bundle) FormatTime(t time.Time) string {
	return t.Format(b.timePattern)
}
