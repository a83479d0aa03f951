package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the dedicated configuration file discovered by walking up
// from the target directory.
const ConfigFileName = ".simscan.toml"

// SimscanTomlConfig represents the structure of .simscan.toml.
// Pointer fields distinguish "unset" from zero values that are valid settings.
type SimscanTomlConfig struct {
	Search      tomlSearch      `toml:"search"`
	LSH         tomlLSH         `toml:"lsh"`
	Documents   tomlDocuments   `toml:"documents"`
	Ratings     tomlRatings     `toml:"ratings"`
	Output      tomlOutput      `toml:"output"`
	Performance tomlPerformance `toml:"performance"`
}

type tomlSearch struct {
	Threshold  *float64 `toml:"threshold"`
	Method     string   `toml:"method"`
	MaxResults int      `toml:"max_results"`
}

type tomlLSH struct {
	NumHashes int    `toml:"num_hashes"`
	NumBands  int    `toml:"num_bands"`
	NumValues int    `toml:"num_values"`
	Seed      *int64 `toml:"seed"`
}

type tomlDocuments struct {
	ShingleLength   int      `toml:"shingle_length"`
	MaxFiles        int      `toml:"max_files"`
	Recursive       *bool    `toml:"recursive"`
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
}

type tomlRatings struct {
	MinRatingCount int `toml:"min_rating_count"`
	ReportEvery    int `toml:"report_every"`
}

type tomlOutput struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory"`
}

type tomlPerformance struct {
	Workers int `toml:"workers"`
}

// TomlConfigLoader handles .simscan.toml discovery and loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig finds .simscan.toml in startDir or one of its parents and
// merges it into the defaults. Defaults are returned when no file exists.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	configPath, err := l.FindConfigFile(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return l.LoadFile(configPath)
}

// LoadFile parses a specific TOML file and merges it into the defaults
func (l *TomlConfigLoader) LoadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg, err := l.parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}
	return cfg, nil
}

func (l *TomlConfigLoader) parse(data []byte) (*Config, error) {
	var file SimscanTomlConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	defaults := DefaultConfig()
	l.merge(defaults, &file)
	return defaults, nil
}

// FindConfigFile walks up from startDir looking for .simscan.toml
func (l *TomlConfigLoader) FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		dir = startDir
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

func (l *TomlConfigLoader) merge(defaults *Config, file *SimscanTomlConfig) {
	if file.Search.Threshold != nil {
		defaults.Search.Threshold = *file.Search.Threshold
	}
	if file.Search.Method != "" {
		defaults.Search.Method = file.Search.Method
	}
	if file.Search.MaxResults > 0 {
		defaults.Search.MaxResults = file.Search.MaxResults
	}

	if file.LSH.NumHashes > 0 {
		defaults.LSH.NumHashes = file.LSH.NumHashes
	}
	if file.LSH.NumBands > 0 {
		defaults.LSH.NumBands = file.LSH.NumBands
	}
	if file.LSH.NumValues > 0 {
		defaults.LSH.NumValues = file.LSH.NumValues
	}
	if file.LSH.Seed != nil {
		defaults.LSH.Seed = *file.LSH.Seed
	}

	if file.Documents.ShingleLength > 0 {
		defaults.Documents.ShingleLength = file.Documents.ShingleLength
	}
	if file.Documents.MaxFiles > 0 {
		defaults.Documents.MaxFiles = file.Documents.MaxFiles
	}
	if file.Documents.Recursive != nil {
		defaults.Documents.Recursive = *file.Documents.Recursive
	}
	if len(file.Documents.IncludePatterns) > 0 {
		defaults.Documents.IncludePatterns = file.Documents.IncludePatterns
	}
	if len(file.Documents.ExcludePatterns) > 0 {
		defaults.Documents.ExcludePatterns = file.Documents.ExcludePatterns
	}

	if file.Ratings.MinRatingCount > 0 {
		defaults.Ratings.MinRatingCount = file.Ratings.MinRatingCount
	}
	if file.Ratings.ReportEvery > 0 {
		defaults.Ratings.ReportEvery = file.Ratings.ReportEvery
	}

	if file.Output.Format != "" {
		defaults.Output.Format = file.Output.Format
	}
	if file.Output.Directory != "" {
		defaults.Output.Directory = file.Output.Directory
	}

	if file.Performance.Workers > 0 {
		defaults.Performance.Workers = file.Performance.Workers
	}
}
