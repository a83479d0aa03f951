package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/simscan/domain"
	"github.com/ludo-technologies/simscan/internal/config"
	"github.com/ludo-technologies/simscan/service"
)

// searchFlags are shared by the docs and ratings commands
type searchFlags struct {
	configFile string

	threshold  float64
	method     string
	maxResults int

	numHashes int
	numBands  int
	numValues int
	seed      int64

	workers int

	json bool
	yaml bool
	csv  bool
}

func newSearchFlags() *searchFlags {
	return &searchFlags{
		threshold: domain.DefaultThreshold,
		method:    string(domain.DefaultMethod),
		numHashes: domain.DefaultNumHashes,
		numBands:  domain.DefaultNumBands,
		seed:      domain.DefaultSeed,
	}
}

func (f *searchFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.configFile, "config", "c", "", "Configuration file path (toml, yaml or json)")

	flags.Float64VarP(&f.threshold, "threshold", "t", f.threshold, "Report pairs with Jaccard similarity above this value")
	flags.StringVarP(&f.method, "method", "m", f.method, "Search method: bf (exact) or lsh (MinHash banding)")
	flags.IntVar(&f.maxResults, "max-results", 0, "Maximum number of pairs to report (0 = all)")

	flags.IntVar(&f.numHashes, "num-hashes", f.numHashes, "Number of MinHash functions")
	flags.IntVar(&f.numBands, "num-bands", f.numBands, "Number of LSH bands")
	flags.IntVar(&f.numValues, "num-values", 0, "Feature universe size for hashing (0 = derive from data)")
	flags.Int64Var(&f.seed, "seed", f.seed, "Random seed for the hash family")

	flags.IntVar(&f.workers, "workers", 0, "Worker goroutines per parallel stage (0 = GOMAXPROCS)")

	flags.BoolVar(&f.json, "json", false, "Generate JSON report file")
	flags.BoolVar(&f.yaml, "yaml", false, "Generate YAML report file")
	flags.BoolVar(&f.csv, "csv", false, "Generate CSV report file")
}

// applyCliOverrides copies explicitly set flags over cfg
func (f *searchFlags) applyCliOverrides(cfg *config.Config, ft *config.FlagTracker) {
	cfg.Search.Threshold = config.Merge(ft, cfg.Search.Threshold, f.threshold, "threshold")
	cfg.Search.Method = config.Merge(ft, cfg.Search.Method, f.method, "method")
	cfg.Search.MaxResults = config.Merge(ft, cfg.Search.MaxResults, f.maxResults, "max-results")

	cfg.LSH.NumHashes = config.Merge(ft, cfg.LSH.NumHashes, f.numHashes, "num-hashes")
	cfg.LSH.NumBands = config.Merge(ft, cfg.LSH.NumBands, f.numBands, "num-bands")
	cfg.LSH.NumValues = config.Merge(ft, cfg.LSH.NumValues, f.numValues, "num-values")
	cfg.LSH.Seed = config.Merge(ft, cfg.LSH.Seed, f.seed, "seed")

	cfg.Performance.Workers = config.Merge(ft, cfg.Performance.Workers, f.workers, "workers")
}

// outputOptions resolves the report format. Format flags win over the
// configured format; non-text reports go to a timestamped file.
func (f *searchFlags) outputOptions(cmd *cobra.Command, command string, cfg *config.Config) (domain.OutputOptions, error) {
	resolver := service.NewOutputFormatResolver()
	format, ext, err := resolver.Determine(f.json, f.yaml, f.csv)
	if err != nil {
		return domain.OutputOptions{}, err
	}
	if !f.json && !f.yaml && !f.csv {
		configured, err := domain.ParseOutputFormat(cfg.Output.Format)
		if err != nil {
			return domain.OutputOptions{}, err
		}
		format = configured
		ext = resolver.Extension(format)
	}

	opts := domain.OutputOptions{
		Format: format,
		Writer: cmd.OutOrStdout(),
	}
	if format != domain.OutputFormatText {
		path, err := generateOutputFilePath(command, ext, cfg)
		if err != nil {
			return domain.OutputOptions{}, err
		}
		opts.Path = path
	}
	return opts, nil
}
