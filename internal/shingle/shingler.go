// Package shingle turns text into sets of k-character shingle ids.
package shingle

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// Shingler assigns a dense id to every distinct shingle it sees, in
// first-seen order. Ids are shared across all documents passed to it, so the
// order in which documents are shingled determines the ids.
type Shingler struct {
	k   int
	mu  sync.Mutex
	ids map[string]uint32
}

// New creates a shingler for shingles of k runes. k must be positive.
func New(k int) *Shingler {
	if k <= 0 {
		k = 1
	}
	return &Shingler{k: k, ids: make(map[string]uint32)}
}

// Length returns k.
func (s *Shingler) Length() int { return s.k }

// NumShingles returns the number of distinct shingles seen so far.
func (s *Shingler) NumShingles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Shingle returns the distinct shingle ids of text in order of first occurrence.
// Text shorter than k yields no shingles.
func (s *Shingler) Shingle(text string) []uint32 {
	runes := []rune(text)
	if len(runes) < s.k {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[uint32]struct{})
	out := make([]uint32, 0, len(runes)-s.k+1)
	for i := 0; i+s.k <= len(runes); i++ {
		sh := string(runes[i : i+s.k])
		id, ok := s.ids[sh]
		if !ok {
			id = uint32(len(s.ids))
			s.ids[sh] = id
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// ReadDocument joins the lines of r, appending a single space after each line.
func ReadDocument(r io.Reader) (string, error) {
	var b strings.Builder
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		b.WriteString(sc.Text())
		b.WriteByte(' ')
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}
