package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/simscan/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "simscan",
	Short: "Find similar documents and users with MinHash and LSH",
	Long: `simscan finds pairs of objects whose feature sets are highly similar
under Jaccard similarity.

Objects are either text documents, compared by their character shingles,
or users of a MovieLens style ratings file, compared by the movies they
liked and disliked. Pairs are found with an exact brute-force scan or with
MinHash signatures and LSH banding, where every candidate is confirmed with
the exact Jaccard similarity.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewDocsCmd())
	rootCmd.AddCommand(NewRatingsCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
