package similarity

import "github.com/RoaringBitmap/roaring/v2"

// Jaccard returns |A∩B| / |A∪B|. Two empty sets have similarity 0.
// A nil bitmap is an empty set.
func Jaccard(a, b *roaring.Bitmap) float64 {
	if a == nil || b == nil {
		return 0
	}
	union := a.OrCardinality(b)
	if union == 0 {
		return 0
	}
	return float64(a.AndCardinality(b)) / float64(union)
}
