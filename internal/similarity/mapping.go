package similarity

import (
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// ObjectMapping assigns each dense object id 0..N-1 a set of dense feature ids.
// It is not modified after construction and may be read from many goroutines.
type ObjectMapping struct {
	sets []*roaring.Bitmap
}

// NewObjectMapping builds a mapping from object id to feature ids.
// The keys must be exactly 0..len(objects)-1.
func NewObjectMapping(objects map[int][]uint32) (*ObjectMapping, error) {
	ids := make([]int, 0, len(objects))
	for id := range objects {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	sets := make([]*roaring.Bitmap, len(ids))
	for i, id := range ids {
		if id != i {
			return nil, fmt.Errorf("%w: expected id %d, found %d", ErrNonContiguousIDs, i, id)
		}
		sets[i] = roaring.BitmapOf(objects[id]...)
	}
	return &ObjectMapping{sets: sets}, nil
}

// FromBitmaps wraps already dense feature sets; index i is object i.
// Nil entries are treated as empty sets. The bitmaps must not be modified afterwards.
func FromBitmaps(sets []*roaring.Bitmap) *ObjectMapping {
	out := make([]*roaring.Bitmap, len(sets))
	for i, s := range sets {
		if s == nil {
			s = roaring.New()
		}
		out[i] = s
	}
	return &ObjectMapping{sets: out}
}

// Len returns the number of objects.
func (m *ObjectMapping) Len() int { return len(m.sets) }

// Set returns the feature set of an object, or nil when id is unknown.
func (m *ObjectMapping) Set(id int) *roaring.Bitmap {
	if id < 0 || id >= len(m.sets) {
		return nil
	}
	return m.sets[id]
}

// Contains reports whether id is a known object.
func (m *ObjectMapping) Contains(id int) bool {
	return id >= 0 && id < len(m.sets)
}

// NumFeatures returns one more than the largest feature id present, or 0 when
// every set is empty. It is the smallest valid numValues for the mapping.
func (m *ObjectMapping) NumFeatures() int {
	highest := -1
	for _, s := range m.sets {
		if s.IsEmpty() {
			continue
		}
		if v := int(s.Maximum()); v > highest {
			highest = v
		}
	}
	return highest + 1
}

func (m *ObjectMapping) checkID(id int) error {
	if !m.Contains(id) {
		return fmt.Errorf("%w: %d", ErrObjectNotFound, id)
	}
	return nil
}
