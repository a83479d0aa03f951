package domain

import (
	"context"
	"io"
)

// LSHOptions configures MinHash signatures and banding
type LSHOptions struct {
	NumHashes int   `json:"num_hashes" yaml:"num_hashes"`
	NumBands  int   `json:"num_bands" yaml:"num_bands"`
	Seed      int64 `json:"seed" yaml:"seed"`

	// NumValues of 0 derives the feature universe from the data
	NumValues int `json:"num_values,omitempty" yaml:"num_values,omitempty"`
}

// RowsPerBand returns NumHashes / NumBands, or 0 when NumBands is not positive
func (o LSHOptions) RowsPerBand() int {
	if o.NumBands <= 0 {
		return 0
	}
	return o.NumHashes / o.NumBands
}

// Validate validates LSH options
func (o LSHOptions) Validate() error {
	if o.NumHashes <= 0 {
		return NewValidationError("number of hash functions must be positive")
	}
	if o.NumBands <= 0 {
		return NewValidationError("number of bands must be positive")
	}
	if o.NumBands > o.NumHashes {
		return NewValidationError("number of bands cannot exceed the number of hash functions")
	}
	if o.NumValues < 0 {
		return NewValidationError("number of values cannot be negative")
	}
	return nil
}

// SearchOptions are shared by document and ratings searches
type SearchOptions struct {
	Threshold float64      `json:"threshold" yaml:"threshold"`
	Method    SearchMethod `json:"method" yaml:"method"`
	LSH       LSHOptions   `json:"lsh" yaml:"lsh"`
	Workers   int          `json:"workers" yaml:"workers"`

	// MaxResults truncates the sorted pair list; 0 keeps every pair
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Validate validates search options
func (o SearchOptions) Validate() error {
	if o.Threshold < 0 || o.Threshold > 1 {
		return NewValidationError("threshold must be between 0 and 1")
	}
	if !o.Method.IsValid() {
		return NewValidationError("method must be 'bf' or 'lsh'")
	}
	if o.Method == SearchMethodLSH {
		if err := o.LSH.Validate(); err != nil {
			return err
		}
	}
	if o.Workers < 0 {
		return NewValidationError("workers cannot be negative")
	}
	if o.MaxResults < 0 {
		return NewValidationError("max results cannot be negative")
	}
	return nil
}

// SearchStatistics describes how a search was performed
type SearchStatistics struct {
	Method      SearchMethod `json:"method" yaml:"method"`
	NumObjects  int          `json:"num_objects" yaml:"num_objects"`
	NumFeatures int          `json:"num_features" yaml:"num_features"`
	Threshold   float64      `json:"threshold" yaml:"threshold"`
	ResultCount int          `json:"result_count" yaml:"result_count"`

	// LSH only
	CandidatePairs       int     `json:"candidate_pairs,omitempty" yaml:"candidate_pairs,omitempty"`
	RowsPerBand          int     `json:"rows_per_band,omitempty" yaml:"rows_per_band,omitempty"`
	UnusedRows           int     `json:"unused_rows,omitempty" yaml:"unused_rows,omitempty"`
	NumBuckets           int     `json:"num_buckets,omitempty" yaml:"num_buckets,omitempty"`
	MaxBucketSize        int     `json:"max_bucket_size,omitempty" yaml:"max_bucket_size,omitempty"`
	ApproximateThreshold float64 `json:"approximate_threshold,omitempty" yaml:"approximate_threshold,omitempty"`
	// ThresholdRecall is the chance that a pair exactly at the threshold becomes a candidate
	ThresholdRecall float64 `json:"threshold_recall,omitempty" yaml:"threshold_recall,omitempty"`
	// SuggestedBands is the band count whose approximate threshold is nearest the threshold
	SuggestedBands int `json:"suggested_bands,omitempty" yaml:"suggested_bands,omitempty"`

	DurationMs int64 `json:"duration_ms" yaml:"duration_ms"`
}

// OutputOptions controls where and how results are written
type OutputOptions struct {
	Format       OutputFormat `json:"format" yaml:"format"`
	Writer       io.Writer    `json:"-" yaml:"-"`
	Path         string       `json:"-" yaml:"-"`
	ShowProgress bool         `json:"-" yaml:"-"`
}

// DocumentSearchRequest represents a request to find similar documents
type DocumentSearchRequest struct {
	Paths           []string `json:"paths" yaml:"paths"`
	Recursive       bool     `json:"recursive" yaml:"recursive"`
	IncludePatterns []string `json:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns" yaml:"exclude_patterns"`
	MaxFiles        int      `json:"max_files" yaml:"max_files"`
	ShingleLength   int      `json:"shingle_length" yaml:"shingle_length"`

	// Query is an optional document path whose neighbors are reported
	Query string `json:"query,omitempty" yaml:"query,omitempty"`

	Search SearchOptions `json:"search" yaml:"search"`
	Output OutputOptions `json:"-" yaml:"-"`

	ConfigPath string `json:"-" yaml:"-"`
	Verbose    bool   `json:"-" yaml:"-"`
}

// Validate validates a document search request
func (r *DocumentSearchRequest) Validate() error {
	if len(r.Paths) == 0 {
		return NewValidationError("no input paths specified")
	}
	if r.ShingleLength <= 0 {
		return NewValidationError("shingle length must be positive")
	}
	if r.MaxFiles < 0 {
		return NewValidationError("max files cannot be negative")
	}
	return r.Search.Validate()
}

// DocumentPair is a pair of similar documents
type DocumentPair struct {
	ID1        int     `json:"id1" yaml:"id1"`
	ID2        int     `json:"id2" yaml:"id2"`
	Path1      string  `json:"path1" yaml:"path1"`
	Path2      string  `json:"path2" yaml:"path2"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// DocumentNeighbor is a document similar to the query document
type DocumentNeighbor struct {
	ID         int     `json:"id" yaml:"id"`
	Path       string  `json:"path" yaml:"path"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// DocumentQueryResult holds the neighbors of the query document
type DocumentQueryResult struct {
	ID        int                `json:"id" yaml:"id"`
	Path      string             `json:"path" yaml:"path"`
	Neighbors []DocumentNeighbor `json:"neighbors" yaml:"neighbors"`
}

// DocumentSearchResponse represents the result of a document search
type DocumentSearchResponse struct {
	Documents  []string             `json:"documents" yaml:"documents"`
	Pairs      []DocumentPair       `json:"pairs" yaml:"pairs"`
	Query      *DocumentQueryResult `json:"query,omitempty" yaml:"query,omitempty"`
	Statistics SearchStatistics     `json:"statistics" yaml:"statistics"`
	Warnings   []string             `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// DocumentSearchService finds similar documents
type DocumentSearchService interface {
	Search(ctx context.Context, req *DocumentSearchRequest) (*DocumentSearchResponse, error)
}

// FileReader collects and reads input documents
type FileReader interface {
	// CollectFiles finds the files under paths that match the patterns, sorted by path
	CollectFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// FileExists checks if a file exists and returns an error if not
	FileExists(path string) (bool, error)
}
