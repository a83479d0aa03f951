package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/ludo-technologies/simscan/domain"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config template.
type DefaultConfigValues struct {
	Threshold  float64
	Method     string
	MaxResults int

	NumHashes int
	NumBands  int
	Seed      int64

	ShingleLength int
	MaxFiles      int

	MinRatingCount int
	ReportEvery    int

	OutputDir string
}

func newDefaultConfigValues() DefaultConfigValues {
	return DefaultConfigValues{
		Threshold:      domain.DefaultThreshold,
		Method:         string(domain.DefaultMethod),
		MaxResults:     domain.DefaultMaxResults,
		NumHashes:      domain.DefaultNumHashes,
		NumBands:       domain.DefaultNumBands,
		Seed:           domain.DefaultSeed,
		ShingleLength:  domain.DefaultShingleLength,
		MaxFiles:       domain.DefaultMaxFiles,
		MinRatingCount: domain.DefaultMinRatingCount,
		ReportEvery:    domain.DefaultReportEvery,
		OutputDir:      domain.DefaultOutputDir,
	}
}

// GenerateDefaultConfigTOML renders the default config template with domain values
// and returns the resulting TOML string.
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered template, which must agree with DefaultConfig
func LoadDefaultConfigFromTOML() (*Config, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}
	return NewTomlConfigLoader().parse([]byte(configTOML))
}
