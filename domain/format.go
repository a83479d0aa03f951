package domain

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// ParseOutputFormat converts a format name into an OutputFormat
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatCSV:
		return f, nil
	case "":
		return OutputFormatText, nil
	}
	return "", NewUnsupportedFormatError(s)
}

// SearchMethod selects exact or approximate search
type SearchMethod string

const (
	SearchMethodBruteForce SearchMethod = "bf"
	SearchMethodLSH        SearchMethod = "lsh"
)

// IsValid reports whether m is a known method
func (m SearchMethod) IsValid() bool {
	return m == SearchMethodBruteForce || m == SearchMethodLSH
}
