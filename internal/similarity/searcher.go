package similarity

import (
	"context"
	"fmt"
)

// Method selects a search strategy.
type Method string

const (
	MethodBruteForce Method = "bf"
	MethodLSH        Method = "lsh"
)

// ParseMethod accepts "bf" and "lsh" and a few long spellings.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "bf", "brute-force", "bruteforce":
		return MethodBruteForce, nil
	case "lsh":
		return MethodLSH, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Searcher finds similar objects in an ObjectMapping.
type Searcher interface {
	// SimilarPairs returns each unordered pair with similarity > threshold once.
	SimilarPairs(ctx context.Context, threshold float64) ([]SimilarPair, error)
	// Neighbors returns other objects with similarity to objID > threshold.
	Neighbors(ctx context.Context, objID int, threshold float64) ([]Neighbor, error)
	Method() Method
}

// Options configures NewSearcher. LSH is ignored for MethodBruteForce.
type Options struct {
	Method  Method
	LSH     LSHParams
	Workers int
}

// NewSearcher returns the searcher selected by opts.Method.
func NewSearcher(ctx context.Context, mapping *ObjectMapping, opts Options) (Searcher, error) {
	switch opts.Method {
	case MethodBruteForce:
		return NewBruteForce(mapping, opts.Workers), nil
	case MethodLSH:
		params := opts.LSH
		if params.Workers == 0 {
			params.Workers = opts.Workers
		}
		return NewLSH(ctx, mapping, params)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, opts.Method)
}
