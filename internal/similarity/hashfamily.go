package similarity

import (
	"fmt"
	"math/rand"
)

// MaxNumValues bounds the feature universe so hash arithmetic stays within uint64.
const MaxNumValues = 1 << 31

// HashFamily is a set of universal hash functions
//
//	h_i(x) = ((a_i*x + b_i) mod p) mod numValues
//
// where p is the smallest prime >= numValues.
type HashFamily struct {
	a, b      []uint64
	prime     uint64
	numValues uint64
}

// NewHashFamily draws numHashes functions from a generator seeded with seed.
// For each function a is drawn first (again while it is 0), then b. The same
// seed always produces the same coefficients.
func NewHashFamily(numHashes, numValues int, seed int64) (*HashFamily, error) {
	if numHashes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNumHashes, numHashes)
	}
	if numValues <= 0 || numValues > MaxNumValues {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNumValues, numValues)
	}

	prime := NextPrime(uint64(numValues))
	rng := rand.New(rand.NewSource(seed))

	f := &HashFamily{
		a:         make([]uint64, numHashes),
		b:         make([]uint64, numHashes),
		prime:     prime,
		numValues: uint64(numValues),
	}
	for i := 0; i < numHashes; i++ {
		a := uint64(rng.Int63n(int64(prime)))
		for a == 0 {
			a = uint64(rng.Int63n(int64(prime)))
		}
		f.a[i] = a
		f.b[i] = uint64(rng.Int63n(int64(prime)))
	}
	return f, nil
}

// Apply evaluates function i at x. The result is in [0, NumValues).
func (f *HashFamily) Apply(i int, x uint32) uint32 {
	return uint32(((f.a[i]*uint64(x) + f.b[i]) % f.prime) % f.numValues)
}

// NumHashes returns the number of functions.
func (f *HashFamily) NumHashes() int { return len(f.a) }

// NumValues returns the size of the feature universe.
func (f *HashFamily) NumValues() int { return int(f.numValues) }

// Prime returns the modulus p.
func (f *HashFamily) Prime() uint64 { return f.prime }

// Coefficients returns (a_i, b_i).
func (f *HashFamily) Coefficients(i int) (a, b uint64) {
	return f.a[i], f.b[i]
}
