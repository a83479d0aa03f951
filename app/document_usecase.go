package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/simscan/domain"
	svc "github.com/ludo-technologies/simscan/service"
)

// DocumentSearchUseCase orchestrates the document similarity workflow
type DocumentSearchUseCase struct {
	service   domain.DocumentSearchService
	formatter domain.SearchOutputFormatter
	output    domain.ReportWriter
}

// NewDocumentSearchUseCase creates a new document search use case
func NewDocumentSearchUseCase(
	service domain.DocumentSearchService,
	formatter domain.SearchOutputFormatter,
	output domain.ReportWriter,
) *DocumentSearchUseCase {
	if output == nil {
		output = svc.NewFileOutputWriter(nil)
	}
	return &DocumentSearchUseCase{
		service:   service,
		formatter: formatter,
		output:    output,
	}
}

// Execute runs the search and writes the formatted report
func (uc *DocumentSearchUseCase) Execute(ctx context.Context, req domain.DocumentSearchRequest) error {
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
		return uc.formatter.FormatDocuments(response, format, w)
	})
}

// SearchAndReturn validates the request and returns the response without formatting
func (uc *DocumentSearchUseCase) SearchAndReturn(ctx context.Context, req domain.DocumentSearchRequest) (*domain.DocumentSearchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	response, err := uc.service.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("document search failed: %w", err)
	}
	return response, nil
}

// DocumentSearchUseCaseBuilder helps build DocumentSearchUseCase with dependencies
type DocumentSearchUseCaseBuilder struct {
	service   domain.DocumentSearchService
	formatter domain.SearchOutputFormatter
	output    domain.ReportWriter
}

// NewDocumentSearchUseCaseBuilder creates a new builder for DocumentSearchUseCase
func NewDocumentSearchUseCaseBuilder() *DocumentSearchUseCaseBuilder {
	return &DocumentSearchUseCaseBuilder{}
}

// WithService sets the document search service
func (b *DocumentSearchUseCaseBuilder) WithService(service domain.DocumentSearchService) *DocumentSearchUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the output formatter
func (b *DocumentSearchUseCaseBuilder) WithFormatter(formatter domain.SearchOutputFormatter) *DocumentSearchUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithOutputWriter sets the report writer
func (b *DocumentSearchUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *DocumentSearchUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the DocumentSearchUseCase with the configured dependencies
func (b *DocumentSearchUseCaseBuilder) Build() (*DocumentSearchUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("document search service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewDocumentSearchUseCase(b.service, b.formatter, b.output), nil
}
