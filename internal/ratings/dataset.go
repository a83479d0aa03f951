// Package ratings loads MovieLens-style rating files and converts users into
// like/dislike feature sets for similarity search.
package ratings

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/ludo-technologies/simscan/internal/similarity"
)

// DefaultRating is the movie average used for movies absent from the training data.
const DefaultRating = 2.5

// Rating is one user's rating of a movie, by external movie id.
type Rating struct {
	Movie int
	Value float64
}

// Dataset holds training ratings keyed by external user id.
type Dataset struct {
	byUser     map[int][]Rating
	users      []int
	movies     []int
	movieIndex map[int]int
	movieAvg   map[int]float64
	numRatings int
}

// LoadFile reads a rating file from disk.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load parses lines of the form user::movie::rating[::timestamp].
// Tab separated fields are accepted too. Blank lines are skipped.
func Load(r io.Reader) (*Dataset, error) {
	d := &Dataset{
		byUser:     make(map[int][]Rating),
		movieIndex: make(map[int]int),
	}

	movieSet := make(map[int]struct{})
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		user, movie, value, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		d.byUser[user] = append(d.byUser[user], Rating{Movie: movie, Value: value})
		movieSet[movie] = struct{}{}
		d.numRatings++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	d.users = make([]int, 0, len(d.byUser))
	for u := range d.byUser {
		d.users = append(d.users, u)
	}
	sort.Ints(d.users)

	d.movies = make([]int, 0, len(movieSet))
	for m := range movieSet {
		d.movies = append(d.movies, m)
	}
	sort.Ints(d.movies)
	for i, m := range d.movies {
		d.movieIndex[m] = i
	}

	d.computeMovieAverages()
	return d, nil
}

// ParseLine splits a rating line into user id, movie id and rating.
func ParseLine(line string) (user, movie int, rating float64, err error) {
	var fields []string
	if strings.Contains(line, "::") {
		fields = strings.Split(line, "::")
	} else {
		fields = strings.Split(line, "\t")
	}
	if len(fields) < 3 {
		return 0, 0, 0, fmt.Errorf("expected at least 3 fields, got %d", len(fields))
	}
	if user, err = strconv.Atoi(strings.TrimSpace(fields[0])); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid user id: %w", err)
	}
	if movie, err = strconv.Atoi(strings.TrimSpace(fields[1])); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid movie id: %w", err)
	}
	if rating, err = strconv.ParseFloat(strings.TrimSpace(fields[2]), 64); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid rating: %w", err)
	}
	return user, movie, rating, nil
}

func (d *Dataset) computeMovieAverages() {
	sum := make(map[int]float64)
	count := make(map[int]int)
	for _, u := range d.users {
		for _, r := range d.byUser[u] {
			sum[r.Movie] += r.Value
			count[r.Movie]++
		}
	}
	d.movieAvg = make(map[int]float64, len(sum))
	for m, s := range sum {
		d.movieAvg[m] = s / float64(count[m])
	}
}

// Users returns the external user ids in ascending order.
func (d *Dataset) Users() []int { return d.users }

// NumUsers returns the number of distinct users.
func (d *Dataset) NumUsers() int { return len(d.users) }

// NumMovies returns the number of distinct movies.
func (d *Dataset) NumMovies() int { return len(d.movies) }

// NumRatings returns the number of rating lines read.
func (d *Dataset) NumRatings() int { return d.numRatings }

// NumValues is the size of the feature universe: two features per movie.
func (d *Dataset) NumValues() int { return 2 * len(d.movies) }

// Ratings returns a user's ratings in file order.
func (d *Dataset) Ratings(user int) []Rating { return d.byUser[user] }

// UserAverage returns the mean rating of a user.
func (d *Dataset) UserAverage(user int) (float64, bool) {
	rs := d.byUser[user]
	if len(rs) == 0 {
		return 0, false
	}
	total := 0.0
	for _, r := range rs {
		total += r.Value
	}
	return total / float64(len(rs)), true
}

// MovieAverage returns the mean rating of a movie, or DefaultRating when the
// movie does not occur in the training data.
func (d *Dataset) MovieAverage(movie int) float64 {
	if avg, ok := d.movieAvg[movie]; ok {
		return avg
	}
	return DefaultRating
}

// FeatureSet converts a user's ratings into a set: a rating at or above the
// user's average adds 2*m, any other adds 2*m+1, where m is the movie's
// internal id.
func (d *Dataset) FeatureSet(user int) *roaring.Bitmap {
	set := roaring.New()
	avg, ok := d.UserAverage(user)
	if !ok {
		return set
	}
	for _, r := range d.byUser[user] {
		m := uint32(d.movieIndex[r.Movie])
		if r.Value >= avg {
			set.Add(2 * m)
		} else {
			set.Add(2*m + 1)
		}
	}
	return set
}

// Mapping builds the object mapping over users with at least minRatingCount
// ratings. Object i is the user at index i of the returned id slice.
func (d *Dataset) Mapping(minRatingCount int) (*similarity.ObjectMapping, []int) {
	ids := make([]int, 0, len(d.users))
	sets := make([]*roaring.Bitmap, 0, len(d.users))
	for _, u := range d.users {
		if len(d.byUser[u]) < minRatingCount {
			continue
		}
		ids = append(ids, u)
		sets = append(sets, d.FeatureSet(u))
	}
	return similarity.FromBitmaps(sets), ids
}
