package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/simscan/domain"
	svc "github.com/ludo-technologies/simscan/service"
)

// RatingsSearchUseCase orchestrates the similar-users workflow
type RatingsSearchUseCase struct {
	service   domain.RatingsSearchService
	formatter domain.SearchOutputFormatter
	output    domain.ReportWriter
}

// NewRatingsSearchUseCase creates a new ratings search use case
func NewRatingsSearchUseCase(
	service domain.RatingsSearchService,
	formatter domain.SearchOutputFormatter,
	output domain.ReportWriter,
) *RatingsSearchUseCase {
	if output == nil {
		output = svc.NewFileOutputWriter(nil)
	}
	return &RatingsSearchUseCase{
		service:   service,
		formatter: formatter,
		output:    output,
	}
}

// Execute runs the search and writes the formatted report
func (uc *RatingsSearchUseCase) Execute(ctx context.Context, req domain.RatingsSearchRequest) error {
	response, err := uc.SearchAndReturn(ctx, req)
	if err != nil {
		return err
	}

	var out io.Writer
	if req.Output.Path == "" {
		out = req.Output.Writer
		if out == nil {
			return domain.NewOutputError("no valid output writer specified", nil)
		}
	}

	format := req.Output.Format
	if format == "" {
		format = domain.OutputFormatText
	}
	return uc.output.Write(out, req.Output.Path, format, func(w io.Writer) error {
		return uc.formatter.FormatRatings(response, format, w)
	})
}

// SearchAndReturn validates the request and returns the response without formatting
func (uc *RatingsSearchUseCase) SearchAndReturn(ctx context.Context, req domain.RatingsSearchRequest) (*domain.RatingsSearchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	response, err := uc.service.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("ratings search failed: %w", err)
	}
	return response, nil
}

// RatingsSearchUseCaseBuilder helps build RatingsSearchUseCase with dependencies
type RatingsSearchUseCaseBuilder struct {
	service   domain.RatingsSearchService
	formatter domain.SearchOutputFormatter
	output    domain.ReportWriter
}

// NewRatingsSearchUseCaseBuilder creates a new builder for RatingsSearchUseCase
func NewRatingsSearchUseCaseBuilder() *RatingsSearchUseCaseBuilder {
	return &RatingsSearchUseCaseBuilder{}
}

// WithService sets the ratings search service
func (b *RatingsSearchUseCaseBuilder) WithService(service domain.RatingsSearchService) *RatingsSearchUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the output formatter
func (b *RatingsSearchUseCaseBuilder) WithFormatter(formatter domain.SearchOutputFormatter) *RatingsSearchUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithOutputWriter sets the report writer
func (b *RatingsSearchUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *RatingsSearchUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the RatingsSearchUseCase with the configured dependencies
func (b *RatingsSearchUseCaseBuilder) Build() (*RatingsSearchUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("ratings search service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewRatingsSearchUseCase(b.service, b.formatter, b.output), nil
}
