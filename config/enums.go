package config

import "fmt"

// BrandingDensity controls how much branding the generated document carries.
type BrandingDensity int

const (
	BrandingDensityFull BrandingDensity = iota
	BrandingDensityCompact
	BrandingDensityDraft
)

var brandingDensityNames = map[BrandingDensity]string{
	BrandingDensityFull:    "full",
	BrandingDensityCompact: "compact",
	BrandingDensityDraft:   "draft",
}

func (b BrandingDensity) String() string {
	if n, ok := brandingDensityNames[b]; ok {
		return n
	}
	return fmt.Sprintf("BrandingDensity(%d)", int(b))
}

func ParseBrandingDensity(name string) (BrandingDensity, error) {
	for v, n := range brandingDensityNames {
		if n == name {
			return v, nil
		}
	}
	return BrandingDensityFull, fmt.Errorf("%s is not a valid BrandingDensity", name)
}

// AppendixStyle selects appendix layout.
type AppendixStyle int

const (
	// AppendixStyleDetailed renders index table followed by dedicated preview
	// pages for every appendix item.
	AppendixStyleDetailed AppendixStyle = iota
	// AppendixStyleCompact renders the index table only.
	AppendixStyleCompact
)

var appendixStyleNames = map[AppendixStyle]string{
	AppendixStyleDetailed: "detailed",
	AppendixStyleCompact:  "compact",
}

func (a AppendixStyle) String() string {
	if n, ok := appendixStyleNames[a]; ok {
		return n
	}
	return fmt.Sprintf("AppendixStyle(%d)", int(a))
}

func ParseAppendixStyle(name string) (AppendixStyle, error) {
	for v, n := range appendixStyleNames {
		if n == name {
			return v, nil
		}
	}
	return AppendixStyleDetailed, fmt.Errorf("%s is not a valid AppendixStyle", name)
}

// ReportVariant selects the requested document variant.
type ReportVariant int

const (
	// ReportVariantInternal is the engineering review document.
	ReportVariantInternal ReportVariant = iota
	// ReportVariantOffer is the client-facing variant: the document title and
	// the output file name carry the recipient. The confidentiality stamp
	// stays a separate watermark setting.
	ReportVariantOffer
)

var reportVariantNames = map[ReportVariant]string{
	ReportVariantInternal: "internal",
	ReportVariantOffer:    "offer",
}

func (v ReportVariant) String() string {
	if n, ok := reportVariantNames[v]; ok {
		return n
	}
	return fmt.Sprintf("ReportVariant(%d)", int(v))
}

func (v ReportVariant) ForClient() bool {
	return v == ReportVariantOffer
}

func ParseReportVariant(name string) (ReportVariant, error) {
	for val, n := range reportVariantNames {
		if n == name {
			return val, nil
		}
	}
	return ReportVariantInternal, fmt.Errorf("%s is not a valid ReportVariant", name)
}

// ReportVariantNames returns supported variant names for usage strings.
func ReportVariantNames() []string {
	names := make([]string, 0, len(reportVariantNames))
	for v := ReportVariantInternal; int(v) < len(reportVariantNames); v++ {
		names = append(names, reportVariantNames[v])
	}
	return names
}

// yaml.v3 does not know about encoding.TextUnmarshaler, so enums used in
// configuration implement yaml interfaces directly.

func (b BrandingDensity) MarshalYAML() (any, error) { return b.String(), nil }

func (b *BrandingDensity) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseBrandingDensity(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (a AppendixStyle) MarshalYAML() (any, error) { return a.String(), nil }

func (a *AppendixStyle) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseAppendixStyle(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func (v ReportVariant) MarshalYAML() (any, error) { return v.String(), nil }

func (v *ReportVariant) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	val, err := ParseReportVariant(s)
	if err != nil {
		return err
	}
	*v = val
	return nil
}
