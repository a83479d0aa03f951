package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/simscan/app"
	"github.com/ludo-technologies/simscan/domain"
	"github.com/ludo-technologies/simscan/internal/config"
	"github.com/ludo-technologies/simscan/internal/ratings"
	"github.com/ludo-technologies/simscan/service"
)

// RatingsCommand handles the similar users command
type RatingsCommand struct {
	search *searchFlags

	trainingPath   string
	testPath       string
	user           int
	skipPairs      bool
	minRatingCount int
	reportEvery    int
}

// NewRatingsCommand creates a new ratings command
func NewRatingsCommand() *RatingsCommand {
	return &RatingsCommand{
		search:      newSearchFlags(),
		reportEvery: domain.DefaultReportEvery,
	}
}

// CreateCobraCommand creates the cobra command for ratings search
func (c *RatingsCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratings",
		Short: "Find users with similar movie ratings",
		Long: `Find pairs of users with similar taste in a MovieLens ratings file.

Lines have the form user::movie::rating[::timestamp] or are tab separated.
A user's set holds a "liked" feature for every movie rated at or above the
user's average rating and a "disliked" feature for the others.

With --test the running RMSE of a constant predictor and of the movie
average baseline is reported for the test ratings.

Examples:
  # All similar user pairs
  simscan ratings --training ratings.dat

  # Neighbors of one user only
  simscan ratings --training ratings.dat --user 42 --skip-pairs

  # Ignore users with fewer than 20 ratings and evaluate on a test split
  simscan ratings --training train.dat --test test.dat --min-rating-count 20`,
		RunE: c.runRatings,
	}

	c.search.register(cmd)
	cmd.Flags().StringVar(&c.trainingPath, "training", "", "Training ratings file")
	cmd.Flags().StringVar(&c.testPath, "test", "", "Test ratings file for RMSE evaluation")
	cmd.Flags().IntVarP(&c.user, "user", "u", 0, "Report the neighbors of this user id")
	cmd.Flags().BoolVar(&c.skipPairs, "skip-pairs", false, "Skip the all-pairs search")
	cmd.Flags().IntVar(&c.minRatingCount, "min-rating-count", 0, "Exclude users with fewer ratings")
	cmd.Flags().IntVar(&c.reportEvery, "report-every", c.reportEvery, "Evaluation checkpoint interval in test lines")
	_ = cmd.MarkFlagRequired("training")

	return cmd
}

func (c *RatingsCommand) runRatings(cmd *cobra.Command, args []string) error {
	request, err := c.createRequest(cmd)
	if err != nil {
		return err
	}

	if request.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Searching users in %s with method %s (threshold %.2f)\n",
			request.TrainingPath, request.Search.Method, request.Search.Threshold)
	}

	useCase, err := app.NewRatingsSearchUseCaseBuilder().
		WithService(service.NewRatingsSearchService(ratings.ConstantPredictor{})).
		WithFormatter(service.NewSearchOutputFormatter()).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create ratings search use case: %w", err)
	}

	return useCase.Execute(commandContext(cmd), *request)
}

func (c *RatingsCommand) createRequest(cmd *cobra.Command) (*domain.RatingsSearchRequest, error) {
	cfg, err := loadConfigWithFallback(c.search.configFile, configDirFor(c.trainingPath))
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	ft := config.NewFlagTrackerFromFlagSet(cmd.Flags())
	c.search.applyCliOverrides(cfg, ft)
	cfg.Ratings.MinRatingCount = config.Merge(ft, cfg.Ratings.MinRatingCount, c.minRatingCount, "min-rating-count")
	cfg.Ratings.ReportEvery = config.Merge(ft, cfg.Ratings.ReportEvery, c.reportEvery, "report-every")
	if err := cfg.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}

	output, err := c.search.outputOptions(cmd, "ratings", cfg)
	if err != nil {
		return nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	request := &domain.RatingsSearchRequest{
		TrainingPath:   c.trainingPath,
		TestPath:       c.testPath,
		SkipPairs:      c.skipPairs,
		MinRatingCount: cfg.Ratings.MinRatingCount,
		ReportEvery:    cfg.Ratings.ReportEvery,
		Search:         cfg.SearchOptions(),
		Output:         output,
		ConfigPath:     c.search.configFile,
		Verbose:        verbose,
	}
	if ft.WasSet("user") {
		user := c.user
		request.User = &user
	}
	return request, nil
}

// NewRatingsCmd creates and returns the ratings cobra command
func NewRatingsCmd() *cobra.Command {
	return NewRatingsCommand().CreateCobraCommand()
}
