package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// PreviewConfig controls attachment preview resolution.
	PreviewConfig struct {
		MaxPages     int     `yaml:"max_pages" validate:"min=1,max=50"`
		Zoom         float64 `yaml:"zoom" validate:"gt=0.0"`
		FetchTimeout int     `yaml:"fetch_timeout_sec" validate:"min=1"`
	}

	// WatermarkConfig controls the diagonal confidentiality stamp applied
	// during the final footer pass.
	WatermarkConfig struct {
		Enable bool   `yaml:"enable"`
		Text   string `yaml:"text" validate:"required_unless=Enable false"`
	}

	// BrandingConfig controls page header band contents.
	BrandingConfig struct {
		Density      BrandingDensity `yaml:"density" validate:"gte=0"`
		LogoPath     string          `yaml:"logo_path" sanitize:"assure_file_access"`
		FontPath     string          `yaml:"font_path" sanitize:"assure_file_access"`
		CompanyLabel string          `yaml:"company_label"`
	}

	// DocumentConfig collects everything that shapes one generated report.
	DocumentConfig struct {
		Variant               ReportVariant   `yaml:"variant" validate:"gte=0"`
		Branding              BrandingConfig  `yaml:"branding"`
		Watermark             WatermarkConfig `yaml:"watermark"`
		Appendix              AppendixStyle   `yaml:"appendix_style" validate:"gte=0"`
		Preview               PreviewConfig   `yaml:"preview"`
		OutputNameTemplate    string          `yaml:"output_name_template"`
		FileNameTransliterate bool            `yaml:"file_name_transliterate"`
		LabelsPath            string          `yaml:"labels_path" sanitize:"assure_file_access"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
	WatermarkTextFieldName      TemplateFieldName = "text"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(WatermarkTextFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
