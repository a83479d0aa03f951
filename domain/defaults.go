package domain

// Search defaults. They match the parameters commonly used for the
// MinHash/LSH experiments on document shingles and MovieLens profiles.
const (
	// DefaultThreshold is the minimum similarity (exclusive) for a pair to be reported.
	DefaultThreshold = 0.5

	// DefaultNumHashes is the number of MinHash functions per signature.
	DefaultNumHashes = 100

	// DefaultNumBands is the number of LSH bands.
	// With 100 hashes this gives 5 rows per band and a threshold near 0.4.
	DefaultNumBands = 20

	// DefaultSeed seeds the universal hash family.
	DefaultSeed int64 = 0

	DefaultMethod = SearchMethodLSH
)

// Document defaults
const (
	// DefaultShingleLength is the number of characters per shingle.
	DefaultShingleLength = 5

	// DefaultMaxFiles of 0 reads every collected file.
	DefaultMaxFiles = 0
)

// Ratings defaults
const (
	// DefaultReportEvery is how many test lines pass between RMSE checkpoints.
	DefaultReportEvery = 50

	DefaultMinRatingCount = 0
)

// Output defaults
const (
	DefaultOutputDir  = ".simscan/reports"
	DefaultMaxResults = 0
)
