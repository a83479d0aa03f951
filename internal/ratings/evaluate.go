package ratings

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strings"
)

// Predictor estimates a user's rating of a movie, by external ids.
type Predictor interface {
	Predict(user, movie int) float64
	Name() string
}

// ConstantPredictor always predicts DefaultRating.
type ConstantPredictor struct{}

func (ConstantPredictor) Predict(user, movie int) float64 { return DefaultRating }
func (ConstantPredictor) Name() string                    { return "constant" }

// Checkpoint is the running RMSE after Lines test ratings.
type Checkpoint struct {
	Lines         int
	BaselineRMSE  float64
	PredictorRMSE float64
}

// Evaluation compares a predictor with the movie-average baseline.
type Evaluation struct {
	Lines           int
	BaselineMatches int
	BaselineRMSE    float64
	PredictorRMSE   float64
	Checkpoints     []Checkpoint
}

// Evaluate reads test ratings and accumulates squared errors of the
// predictor and of the movie average from the training data. A checkpoint is
// recorded every reportEvery lines; onCheckpoint may be nil.
func Evaluate(ctx context.Context, train *Dataset, test io.Reader, p Predictor, reportEvery int, onCheckpoint func(Checkpoint)) (*Evaluation, error) {
	var sqBaseline, sqPredictor float64
	ev := &Evaluation{}

	sc := bufio.NewScanner(test)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if ev.Lines%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		user, movie, rating, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("test line %d: %w", lineNo, err)
		}

		avg := train.MovieAverage(movie)
		est := p.Predict(user, movie)
		sqPredictor += (rating - est) * (rating - est)
		sqBaseline += (rating - avg) * (rating - avg)
		ev.Lines++
		if avg == est {
			ev.BaselineMatches++
		}

		if reportEvery > 0 && ev.Lines%reportEvery == 0 {
			cp := Checkpoint{
				Lines:         ev.Lines,
				BaselineRMSE:  math.Sqrt(sqBaseline / float64(ev.Lines)),
				PredictorRMSE: math.Sqrt(sqPredictor / float64(ev.Lines)),
			}
			ev.Checkpoints = append(ev.Checkpoints, cp)
			if onCheckpoint != nil {
				onCheckpoint(cp)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if ev.Lines > 0 {
		ev.BaselineRMSE = math.Sqrt(sqBaseline / float64(ev.Lines))
		ev.PredictorRMSE = math.Sqrt(sqPredictor / float64(ev.Lines))
	}
	return ev, nil
}
