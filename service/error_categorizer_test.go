package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/simscan/domain"
)

func TestNewErrorCategorizer(t *testing.T) {
	categorizer := NewErrorCategorizer()
	assert.NotNil(t, categorizer)
	assert.IsType(t, &ErrorCategorizerImpl{}, categorizer)
}

func TestCategorize(t *testing.T) {
	categorizer := NewErrorCategorizer()

	tests := []struct {
		name string
		err  error
		want domain.ErrorCategory
	}{
		{"file not found code", domain.NewFileNotFoundError("x.txt", nil), domain.ErrorCategoryInput},
		{"not found code", domain.NewNotFoundError("user 5", nil), domain.ErrorCategoryInput},
		{"validation", domain.NewValidationError("threshold must be between 0 and 1"), domain.ErrorCategoryInput},
		{"config code", domain.NewConfigError("bad bands", nil), domain.ErrorCategoryConfig},
		{"output code", domain.NewOutputError("disk full", nil), domain.ErrorCategoryOutput},
		{"unsupported format", domain.NewUnsupportedFormatError("xml"), domain.ErrorCategoryOutput},
		{"search code", domain.NewSearchError("boom", nil), domain.ErrorCategoryProcessing},
		{"wrapped domain error", fmt.Errorf("outer: %w", domain.NewConfigError("inner", nil)), domain.ErrorCategoryConfig},
		{"canceled", context.Canceled, domain.ErrorCategoryTimeout},
		{"deadline", fmt.Errorf("running: %w", context.DeadlineExceeded), domain.ErrorCategoryTimeout},
		{"pattern fallback input", errors.New("permission denied"), domain.ErrorCategoryInput},
		{"pattern fallback config", errors.New("num_bands is too large"), domain.ErrorCategoryConfig},
		{"pattern fallback processing", errors.New("line 3: malformed rating"), domain.ErrorCategoryProcessing},
		{"unknown", errors.New("something odd"), domain.ErrorCategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := categorizer.Categorize(tt.err)
			require.NotNil(t, result)
			assert.Equal(t, tt.want, result.Category)
			assert.Equal(t, tt.err, result.Original)
			assert.NotEmpty(t, result.Message)
		})
	}
}

func TestCategorize_Nil(t *testing.T) {
	assert.Nil(t, NewErrorCategorizer().Categorize(nil))
}

func TestCategorize_UnknownKeepsMessage(t *testing.T) {
	result := NewErrorCategorizer().Categorize(errors.New("something odd"))
	assert.Equal(t, "something odd", result.Message)
	assert.Equal(t, "something odd", result.Error())
}

func TestGetRecoverySuggestions(t *testing.T) {
	categorizer := NewErrorCategorizer()

	for _, c := range []domain.ErrorCategory{
		domain.ErrorCategoryInput,
		domain.ErrorCategoryConfig,
		domain.ErrorCategoryOutput,
		domain.ErrorCategoryProcessing,
		domain.ErrorCategoryTimeout,
		domain.ErrorCategoryUnknown,
	} {
		assert.NotEmpty(t, categorizer.GetRecoverySuggestions(c), c)
	}
	assert.Contains(t, categorizer.GetRecoverySuggestions(domain.ErrorCategoryConfig)[1], "simscan init")
}
