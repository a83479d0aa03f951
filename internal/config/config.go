package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/simscan/domain"
	"github.com/ludo-technologies/simscan/internal/similarity"
)

// Config represents the main configuration structure
type Config struct {
	Search      SearchConfig      `mapstructure:"search" yaml:"search" json:"search" toml:"search"`
	LSH         LSHConfig         `mapstructure:"lsh" yaml:"lsh" json:"lsh" toml:"lsh"`
	Documents   DocumentsConfig   `mapstructure:"documents" yaml:"documents" json:"documents" toml:"documents"`
	Ratings     RatingsConfig     `mapstructure:"ratings" yaml:"ratings" json:"ratings" toml:"ratings"`
	Output      OutputConfig      `mapstructure:"output" yaml:"output" json:"output" toml:"output"`
	Performance PerformanceConfig `mapstructure:"performance" yaml:"performance" json:"performance" toml:"performance"`
}

// SearchConfig holds similarity search settings
type SearchConfig struct {
	// Threshold is the exclusive minimum similarity of reported pairs
	Threshold float64 `mapstructure:"threshold" yaml:"threshold" json:"threshold" toml:"threshold"`

	// Method is "bf" for exact search or "lsh" for MinHash banding
	Method string `mapstructure:"method" yaml:"method" json:"method" toml:"method"`

	// MaxResults limits the number of reported pairs (0 = no limit)
	MaxResults int `mapstructure:"max_results" yaml:"max_results" json:"max_results" toml:"max_results"`
}

// LSHConfig holds MinHash and banding parameters
type LSHConfig struct {
	NumHashes int   `mapstructure:"num_hashes" yaml:"num_hashes" json:"num_hashes" toml:"num_hashes"`
	NumBands  int   `mapstructure:"num_bands" yaml:"num_bands" json:"num_bands" toml:"num_bands"`
	NumValues int   `mapstructure:"num_values" yaml:"num_values" json:"num_values" toml:"num_values"`
	Seed      int64 `mapstructure:"seed" yaml:"seed" json:"seed" toml:"seed"`
}

// DocumentsConfig holds document collection and shingling settings
type DocumentsConfig struct {
	ShingleLength   int      `mapstructure:"shingle_length" yaml:"shingle_length" json:"shingle_length" toml:"shingle_length"`
	MaxFiles        int      `mapstructure:"max_files" yaml:"max_files" json:"max_files" toml:"max_files"`
	Recursive       bool     `mapstructure:"recursive" yaml:"recursive" json:"recursive" toml:"recursive"`
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns" json:"include_patterns" toml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" json:"exclude_patterns" toml:"exclude_patterns"`
}

// RatingsConfig holds MovieLens processing settings
type RatingsConfig struct {
	MinRatingCount int `mapstructure:"min_rating_count" yaml:"min_rating_count" json:"min_rating_count" toml:"min_rating_count"`
	ReportEvery    int `mapstructure:"report_every" yaml:"report_every" json:"report_every" toml:"report_every"`
}

// OutputConfig holds output formatting configuration
type OutputConfig struct {
	Format    string `mapstructure:"format" yaml:"format" json:"format" toml:"format"`
	Directory string `mapstructure:"directory" yaml:"directory" json:"directory" toml:"directory"`
}

// PerformanceConfig holds concurrency settings
type PerformanceConfig struct {
	// Workers bounds the goroutines of each parallel stage (0 = GOMAXPROCS)
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers" toml:"workers"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Threshold:  domain.DefaultThreshold,
			Method:     string(domain.DefaultMethod),
			MaxResults: domain.DefaultMaxResults,
		},
		LSH: LSHConfig{
			NumHashes: domain.DefaultNumHashes,
			NumBands:  domain.DefaultNumBands,
			Seed:      domain.DefaultSeed,
		},
		Documents: DocumentsConfig{
			ShingleLength:   domain.DefaultShingleLength,
			MaxFiles:        domain.DefaultMaxFiles,
			Recursive:       true,
			IncludePatterns: []string{"**/*"},
			ExcludePatterns: []string{},
		},
		Ratings: RatingsConfig{
			MinRatingCount: domain.DefaultMinRatingCount,
			ReportEvery:    domain.DefaultReportEvery,
		},
		Output: OutputConfig{
			Format:    string(domain.OutputFormatText),
			Directory: "",
		},
		Performance: PerformanceConfig{
			Workers: 0,
		},
	}
}

// LoadConfig loads configuration from a YAML, JSON or TOML file.
// An empty path looks for simscan.yaml and friends in the current and home
// directories and falls back to defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		configPath = findDefaultConfig()
	}
	if configPath == "" {
		return config, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func findDefaultConfig() string {
	candidates := []string{
		"simscan.yaml",
		"simscan.yml",
		".simscan.yaml",
		".simscan.yml",
		"simscan.json",
		".simscan.json",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(home, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Search.Threshold < 0 || c.Search.Threshold > 1 {
		return fmt.Errorf("search.threshold must be between 0 and 1, got %v", c.Search.Threshold)
	}

	if _, err := similarity.ParseMethod(strings.ToLower(c.Search.Method)); err != nil {
		return fmt.Errorf("invalid search.method '%s', must be 'bf' or 'lsh'", c.Search.Method)
	}

	if c.Search.MaxResults < 0 {
		return fmt.Errorf("search.max_results cannot be negative, got %d", c.Search.MaxResults)
	}

	if err := c.LSH.validate(); err != nil {
		return err
	}

	if c.Documents.ShingleLength <= 0 {
		return fmt.Errorf("documents.shingle_length must be positive, got %d", c.Documents.ShingleLength)
	}
	if c.Documents.MaxFiles < 0 {
		return fmt.Errorf("documents.max_files cannot be negative, got %d", c.Documents.MaxFiles)
	}

	if c.Ratings.MinRatingCount < 0 {
		return fmt.Errorf("ratings.min_rating_count cannot be negative, got %d", c.Ratings.MinRatingCount)
	}
	if c.Ratings.ReportEvery < 0 {
		return fmt.Errorf("ratings.report_every cannot be negative, got %d", c.Ratings.ReportEvery)
	}

	if _, err := domain.ParseOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv", c.Output.Format)
	}

	if c.Performance.Workers < 0 {
		return fmt.Errorf("performance.workers cannot be negative, got %d", c.Performance.Workers)
	}

	return nil
}

func (c *LSHConfig) validate() error {
	if c.NumHashes <= 0 {
		return fmt.Errorf("lsh.num_hashes must be positive, got %d", c.NumHashes)
	}
	if c.NumBands <= 0 {
		return fmt.Errorf("lsh.num_bands must be positive, got %d", c.NumBands)
	}
	if c.NumBands > c.NumHashes {
		return fmt.Errorf("lsh.num_bands (%d) cannot exceed lsh.num_hashes (%d)", c.NumBands, c.NumHashes)
	}
	if c.NumValues < 0 {
		return fmt.Errorf("lsh.num_values cannot be negative, got %d", c.NumValues)
	}
	return nil
}

// SearchOptions converts the search related sections into domain options
func (c *Config) SearchOptions() domain.SearchOptions {
	method := domain.SearchMethod(strings.ToLower(c.Search.Method))
	if m, err := similarity.ParseMethod(string(method)); err == nil {
		method = domain.SearchMethod(m)
	}
	return domain.SearchOptions{
		Threshold: c.Search.Threshold,
		Method:    method,
		LSH: domain.LSHOptions{
			NumHashes: c.LSH.NumHashes,
			NumBands:  c.LSH.NumBands,
			NumValues: c.LSH.NumValues,
			Seed:      c.LSH.Seed,
		},
		Workers:    c.Performance.Workers,
		MaxResults: c.Search.MaxResults,
	}
}
