package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ludo-technologies/simscan/domain"
)

// SearchOutputFormatterImpl implements domain.SearchOutputFormatter
type SearchOutputFormatterImpl struct {
	utils *FormatUtils
}

// NewSearchOutputFormatter creates a new search output formatter
func NewSearchOutputFormatter() *SearchOutputFormatterImpl {
	return &SearchOutputFormatterImpl{utils: NewFormatUtils()}
}

// FormatDocuments formats a document search response
func (f *SearchOutputFormatterImpl) FormatDocuments(response *domain.DocumentSearchResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.documentsAsText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.documentsAsCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// FormatRatings formats a ratings search response
func (f *SearchOutputFormatterImpl) FormatRatings(response *domain.RatingsSearchResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.ratingsAsText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.ratingsAsCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func newResultTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	return tbl
}

func (f *SearchOutputFormatterImpl) documentsAsText(response *domain.DocumentSearchResponse, writer io.Writer) error {
	var b []byte
	b = append(b, f.utils.FormatMainHeader("Similar Documents")...)
	b = append(b, f.summary(response.Statistics)...)
	b = append(b, f.utils.FormatLabel("Documents", f.utils.FormatCount(len(response.Documents)))...)
	b = append(b, '\n')

	if len(response.Pairs) == 0 {
		b = append(b, "No similar documents found.\n"...)
	} else {
		b = append(b, f.utils.FormatSectionHeader("Pairs")...)
		tbl := newResultTable()
		tbl.AppendHeader(table.Row{"#", "Similarity", "Document 1", "Document 2"})
		for i, p := range response.Pairs {
			tbl.AppendRow(table.Row{i + 1, f.utils.FormatSimilarity(p.Similarity), p.Path1, p.Path2})
		}
		tbl.AppendFooter(table.Row{"", "", "Total", f.utils.FormatCount(len(response.Pairs))})
		b = append(b, tbl.Render()...)
		b = append(b, '\n')
	}

	if q := response.Query; q != nil {
		b = append(b, '\n')
		b = append(b, f.utils.FormatSectionHeader("Neighbors of "+q.Path)...)
		if len(q.Neighbors) == 0 {
			b = append(b, "No neighbors above the threshold.\n"...)
		} else {
			tbl := newResultTable()
			tbl.AppendHeader(table.Row{"Similarity", "Document"})
			for _, n := range q.Neighbors {
				tbl.AppendRow(table.Row{f.utils.FormatSimilarity(n.Similarity), n.Path})
			}
			b = append(b, tbl.Render()...)
			b = append(b, '\n')
		}
	}

	b = append(b, f.warnings(response.Warnings)...)
	_, err := writer.Write(b)
	return err
}

func (f *SearchOutputFormatterImpl) ratingsAsText(response *domain.RatingsSearchResponse, writer io.Writer) error {
	var b []byte
	b = append(b, f.utils.FormatMainHeader("Similar Users")...)
	b = append(b, f.summary(response.Statistics)...)
	b = append(b, f.utils.FormatLabel("Users", f.utils.FormatCount(response.NumUsers))...)
	b = append(b, f.utils.FormatLabel("Movies", f.utils.FormatCount(response.NumMovies))...)
	b = append(b, f.utils.FormatLabel("Ratings", f.utils.FormatCount(response.NumRatings))...)
	b = append(b, '\n')

	if len(response.Pairs) > 0 {
		b = append(b, f.utils.FormatSectionHeader("Pairs")...)
		tbl := newResultTable()
		tbl.AppendHeader(table.Row{"#", "Similarity", "User 1", "User 2"})
		for i, p := range response.Pairs {
			tbl.AppendRow(table.Row{i + 1, f.utils.FormatSimilarity(p.Similarity), p.User1, p.User2})
		}
		tbl.AppendFooter(table.Row{"", "", "Total", f.utils.FormatCount(len(response.Pairs))})
		b = append(b, tbl.Render()...)
		b = append(b, '\n')
	} else if response.Statistics.ResultCount == 0 && response.Query == nil {
		b = append(b, "No similar users found.\n"...)
	}

	if q := response.Query; q != nil {
		b = append(b, '\n')
		b = append(b, f.utils.FormatSectionHeader(fmt.Sprintf("Neighbors of user %d", q.User))...)
		if len(q.Neighbors) == 0 {
			b = append(b, "No neighbors above the threshold.\n"...)
		} else {
			tbl := newResultTable()
			tbl.AppendHeader(table.Row{"Similarity", "User"})
			for _, n := range q.Neighbors {
				tbl.AppendRow(table.Row{f.utils.FormatSimilarity(n.Similarity), n.User})
			}
			b = append(b, tbl.Render()...)
			b = append(b, '\n')
		}
	}

	if ev := response.Evaluation; ev != nil {
		b = append(b, '\n')
		b = append(b, f.utils.FormatSectionHeader("Evaluation")...)
		b = append(b, f.utils.FormatLabel("Test ratings", f.utils.FormatCount(ev.Lines))...)
		b = append(b, f.utils.FormatLabel("Baseline RMSE", fmt.Sprintf("%.4f", ev.BaselineRMSE))...)
		b = append(b, f.utils.FormatLabel("Predictor ("+ev.Predictor+") RMSE", fmt.Sprintf("%.4f", ev.PredictorRMSE))...)
		b = append(b, f.utils.FormatLabel("Baseline matches", f.utils.FormatCount(ev.BaselineMatches))...)
	}

	b = append(b, f.warnings(response.Warnings)...)
	_, err := writer.Write(b)
	return err
}

func (f *SearchOutputFormatterImpl) summary(stats domain.SearchStatistics) string {
	s := f.utils.FormatSectionHeader("Summary")
	s += f.utils.FormatLabel("Method", stats.Method)
	s += f.utils.FormatLabel("Threshold", stats.Threshold)
	s += f.utils.FormatLabel("Objects", f.utils.FormatCount(stats.NumObjects))
	s += f.utils.FormatLabel("Features", f.utils.FormatCount(stats.NumFeatures))
	if stats.Method == domain.SearchMethodLSH {
		s += f.utils.FormatLabel("Rows per band", stats.RowsPerBand)
		s += f.utils.FormatLabel("Approx. threshold", fmt.Sprintf("%.3f", stats.ApproximateThreshold))
		s += f.utils.FormatLabel("Recall at threshold", fmt.Sprintf("%.3f", stats.ThresholdRecall))
		s += f.utils.FormatLabel("Suggested bands", stats.SuggestedBands)
		s += f.utils.FormatLabel("Buckets", f.utils.FormatCount(stats.NumBuckets))
		s += f.utils.FormatLabel("Largest bucket", f.utils.FormatCount(stats.MaxBucketSize))
		s += f.utils.FormatLabel("Candidate pairs", f.utils.FormatCount(stats.CandidatePairs))
	}
	s += f.utils.FormatLabel("Similar pairs", f.utils.FormatCount(stats.ResultCount))
	s += f.utils.FormatLabel("Duration", f.utils.FormatDuration(stats.DurationMs))
	return s
}

func (f *SearchOutputFormatterImpl) warnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	s := "\n" + f.utils.FormatSectionHeader("Warnings")
	for _, w := range warnings {
		s += "  - " + w + "\n"
	}
	return s
}

func (f *SearchOutputFormatterImpl) documentsAsCSV(response *domain.DocumentSearchResponse, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write([]string{"id1", "id2", "similarity", "path1", "path2"}); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}
	for _, p := range response.Pairs {
		record := []string{
			strconv.Itoa(p.ID1),
			strconv.Itoa(p.ID2),
			strconv.FormatFloat(p.Similarity, 'f', -1, 64),
			p.Path1,
			p.Path2,
		}
		if err := csvWriter.Write(record); err != nil {
			return domain.NewOutputError("failed to write CSV record", err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func (f *SearchOutputFormatterImpl) ratingsAsCSV(response *domain.RatingsSearchResponse, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write([]string{"user1", "user2", "similarity"}); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}
	for _, p := range response.Pairs {
		record := []string{
			strconv.Itoa(p.User1),
			strconv.Itoa(p.User2),
			strconv.FormatFloat(p.Similarity, 'f', -1, 64),
		}
		if err := csvWriter.Write(record); err != nil {
			return domain.NewOutputError("failed to write CSV record", err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
