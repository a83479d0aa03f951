package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/simscan/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns map[domain.ErrorCategory][]string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

func initializeErrorPatterns() map[domain.ErrorCategory][]string {
	return map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"invalid input",
			"no documents",
			"file not found",
			"cannot access",
			"permission denied",
		},
		domain.ErrorCategoryConfig: {
			"config",
			"num_hashes",
			"num_bands",
			"toml",
		},
		domain.ErrorCategoryOutput: {
			"output",
			"encode",
			"cannot create",
		},
		domain.ErrorCategoryProcessing: {
			"search",
			"signature",
			"line ",
		},
	}
}

// categoryOrder fixes the pattern matching order so ambiguous messages categorize consistently
var categoryOrder = []domain.ErrorCategory{
	domain.ErrorCategoryInput,
	domain.ErrorCategoryConfig,
	domain.ErrorCategoryOutput,
	domain.ErrorCategoryProcessing,
}

// Categorize determines the category of an error. Domain error codes take
// precedence over message patterns.
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	category := domain.ErrorCategoryUnknown
	var de domain.DomainError
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		category = domain.ErrorCategoryTimeout
	case errors.As(err, &de):
		category = categoryForCode(de.Code)
	}

	if category == domain.ErrorCategoryUnknown {
		errMsg := strings.ToLower(err.Error())
		for _, c := range categoryOrder {
			if containsAnyPattern(errMsg, ec.patterns[c]) {
				category = c
				break
			}
		}
	}

	msg := ec.getCategoryMessage(category)
	if category == domain.ErrorCategoryUnknown {
		msg = err.Error()
	}
	return &domain.CategorizedError{
		Category: category,
		Message:  msg,
		Original: err,
	}
}

func categoryForCode(code string) domain.ErrorCategory {
	switch code {
	case domain.ErrCodeInvalidInput, domain.ErrCodeFileNotFound, domain.ErrCodeNotFound:
		return domain.ErrorCategoryInput
	case domain.ErrCodeConfigError:
		return domain.ErrorCategoryConfig
	case domain.ErrCodeOutputError, domain.ErrCodeUnsupportedFormat:
		return domain.ErrorCategoryOutput
	case domain.ErrCodeSearchError:
		return domain.ErrorCategoryProcessing
	}
	return domain.ErrorCategoryUnknown
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the files or directories exist and are readable",
			"Review --include/--exclude patterns; run with --verbose to list collected files",
			"For ratings, check that the query user occurs in the training file",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: simscan init to generate a valid config file",
			"num_bands must be between 1 and num_hashes",
		},
		domain.ErrorCategoryTimeout: {
			"Use --method lsh on large inputs instead of brute force",
			"Reduce --max-files or raise --min-rating-count",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions for the output directory",
			"Supported formats are text, json, yaml and csv",
		},
		domain.ErrorCategoryProcessing: {
			"Check that input lines use user::movie::rating or tab separated fields",
			"Increase lsh.num_values or leave it at 0 to derive it from the data",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to read input files",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Search was canceled or timed out",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Error during similarity search",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
