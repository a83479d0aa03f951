package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/simscan/app"
	"github.com/ludo-technologies/simscan/domain"
	"github.com/ludo-technologies/simscan/internal/config"
	"github.com/ludo-technologies/simscan/service"
)

// DocsCommand handles the document similarity command
type DocsCommand struct {
	search *searchFlags

	recursive       bool
	includePatterns []string
	excludePatterns []string
	maxFiles        int
	shingleLength   int
	query           string
}

// NewDocsCommand creates a new docs command
func NewDocsCommand() *DocsCommand {
	return &DocsCommand{
		search:        newSearchFlags(),
		recursive:     true,
		shingleLength: domain.DefaultShingleLength,
	}
}

// CreateCobraCommand creates the cobra command for document search
func (c *DocsCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs [paths...]",
		Short: "Find similar text documents",
		Long: `Find pairs of similar documents.

Each document is turned into the set of its distinct k-character shingles
and documents are compared by the Jaccard similarity of these sets.
Pairs whose similarity is above the threshold are reported.

Examples:
  # Search the current directory with MinHash + LSH
  simscan docs .

  # Exact search over markdown files only
  simscan docs --method bf --include "**/*.md" docs/

  # Tune banding: 120 hashes in 30 bands of 4 rows
  simscan docs --num-hashes 120 --num-bands 30 corpus/

  # Documents most similar to one file
  simscan docs --query corpus/a.txt corpus/

  # Write a JSON report
  simscan docs --json corpus/`,
		RunE: c.runDocs,
	}

	c.search.register(cmd)
	cmd.Flags().BoolVarP(&c.recursive, "recursive", "r", c.recursive, "Recursively search subdirectories")
	cmd.Flags().StringSliceVar(&c.includePatterns, "include", nil, "Include file patterns (doublestar globs)")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil, "Exclude file patterns (doublestar globs)")
	cmd.Flags().IntVar(&c.maxFiles, "max-files", 0, "Maximum number of documents (0 = no limit)")
	cmd.Flags().IntVarP(&c.shingleLength, "shingle-length", "k", c.shingleLength, "Shingle length in characters")
	cmd.Flags().StringVarP(&c.query, "query", "q", "", "Also report the neighbors of this document")

	return cmd
}

func (c *DocsCommand) runDocs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	request, err := c.createRequest(cmd, args)
	if err != nil {
		return err
	}

	if request.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Searching %v with method %s (threshold %.2f)\n",
			request.Paths, request.Search.Method, request.Search.Threshold)
	}

	useCase, err := c.createUseCase(cmd)
	if err != nil {
		return fmt.Errorf("failed to create document search use case: %w", err)
	}

	return useCase.Execute(commandContext(cmd), *request)
}

func (c *DocsCommand) createRequest(cmd *cobra.Command, paths []string) (*domain.DocumentSearchRequest, error) {
	cfg, err := loadConfigWithFallback(c.search.configFile, configDirFor(paths[0]))
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	ft := config.NewFlagTrackerFromFlagSet(cmd.Flags())
	c.search.applyCliOverrides(cfg, ft)
	c.applyCliOverrides(cfg, ft)
	if err := cfg.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}

	output, err := c.search.outputOptions(cmd, "docs", cfg)
	if err != nil {
		return nil, err
	}
	output.ShowProgress = output.Format == domain.OutputFormatText && service.IsInteractiveEnvironment()

	verbose, _ := cmd.Flags().GetBool("verbose")

	return &domain.DocumentSearchRequest{
		Paths:           paths,
		Recursive:       cfg.Documents.Recursive,
		IncludePatterns: cfg.Documents.IncludePatterns,
		ExcludePatterns: cfg.Documents.ExcludePatterns,
		MaxFiles:        cfg.Documents.MaxFiles,
		ShingleLength:   cfg.Documents.ShingleLength,
		Query:           c.query,
		Search:          cfg.SearchOptions(),
		Output:          output,
		ConfigPath:      c.search.configFile,
		Verbose:         verbose,
	}, nil
}

func (c *DocsCommand) applyCliOverrides(cfg *config.Config, ft *config.FlagTracker) {
	cfg.Documents.Recursive = config.Merge(ft, cfg.Documents.Recursive, c.recursive, "recursive")
	cfg.Documents.IncludePatterns = config.MergeSlice(ft, cfg.Documents.IncludePatterns, c.includePatterns, "include")
	cfg.Documents.ExcludePatterns = config.MergeSlice(ft, cfg.Documents.ExcludePatterns, c.excludePatterns, "exclude")
	cfg.Documents.MaxFiles = config.Merge(ft, cfg.Documents.MaxFiles, c.maxFiles, "max-files")
	cfg.Documents.ShingleLength = config.Merge(ft, cfg.Documents.ShingleLength, c.shingleLength, "shingle-length")
}

func (c *DocsCommand) createUseCase(cmd *cobra.Command) (*app.DocumentSearchUseCase, error) {
	progress := service.NewProgressManager("Shingling documents")
	progress.SetWriter(cmd.ErrOrStderr())

	return app.NewDocumentSearchUseCaseBuilder().
		WithService(service.NewDocumentSearchService(service.NewFileReader(), progress)).
		WithFormatter(service.NewSearchOutputFormatter()).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
}

// NewDocsCmd creates and returns the docs cobra command
func NewDocsCmd() *cobra.Command {
	return NewDocsCommand().CreateCobraCommand()
}
