// Package output renders search results for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pelletier/go-toml/v2"

	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/scoring"
)

// Format selects how results are rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatTOML  Format = "toml"
)

// ParseFormat validates a format name. Blank means table.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or toml)", raw)
	}
}

// Writer prints results in a fixed format.
type Writer struct {
	w       io.Writer
	format  Format
	explain bool
}

// NewWriter returns a Writer. With explain set, each candidate's per-field
// credit is included.
func NewWriter(w io.Writer, format Format, explain bool) *Writer {
	return &Writer{w: w, format: format, explain: explain}
}

func (w *Writer) Write(res *ranking.Result) error {
	switch w.format {
	case FormatJSON:
		return w.writeJSON(res)
	case FormatTOML:
		return w.writeTOML(res)
	default:
		return w.writeTable(res)
	}
}

func (w *Writer) writeJSON(res *ranking.Result) error {
	view := *res
	if !w.explain {
		view.Items = withoutBreakdown(res.Items)
	}

	enc := json.NewEncoder(w.w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

type tomlRow struct {
	Rank       int                `toml:"rank"`
	ID         string             `toml:"id"`
	Title      string             `toml:"title"`
	Score      int                `toml:"score"`
	Matched    []string           `toml:"matched"`
	Flagged    bool               `toml:"flagged,omitempty"`
	FlagReason string             `toml:"flag_reason,omitempty"`
	Breakdown  map[string]float64 `toml:"breakdown,omitempty"`
}

type tomlReport struct {
	SearchID   string    `toml:"search_id"`
	Page       int       `toml:"page"`
	PageSize   int       `toml:"page_size"`
	TotalCount int       `toml:"total_count"`
	Flagged    int       `toml:"flagged"`
	Fallback   bool      `toml:"fallback"`
	Items      []tomlRow `toml:"items"`
}

func (w *Writer) writeTOML(res *ranking.Result) error {
	report := tomlReport{
		SearchID:   res.SearchID,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalCount: res.TotalCount,
		Flagged:    res.Flagged,
		Fallback:   res.Fallback,
		Items:      make([]tomlRow, 0, len(res.Items)),
	}

	offset := offsetOf(res)
	for i, item := range res.Items {
		row := tomlRow{
			Rank:       offset + i + 1,
			ID:         item.Candidate.ID,
			Title:      item.Candidate.Title,
			Score:      item.Score,
			Matched:    fieldNames(item.MatchedFields),
			Flagged:    item.Flagged,
			FlagReason: item.FlagReason,
		}
		if w.explain && len(item.Breakdown) > 0 {
			row.Breakdown = make(map[string]float64, len(item.Breakdown))
			for field, credit := range item.Breakdown {
				row.Breakdown[string(field)] = credit
			}
		}
		report.Items = append(report.Items, row)
	}

	return toml.NewEncoder(w.w).Encode(report)
}

func (w *Writer) writeTable(res *ranking.Result) error {
	table := tablewriter.NewWriter(w.w)
	table.Header("#", "ID", "Title", "Years", "Score", "Matched", "Flag")

	offset := offsetOf(res)
	for i, item := range res.Items {
		flag := ""
		if item.Flagged {
			flag = "!"
		}
		row := []string{
			strconv.Itoa(offset + i + 1),
			item.Candidate.ID,
			item.Candidate.Title,
			strconv.Itoa(item.Candidate.ExperienceYears),
			strconv.Itoa(item.Score),
			strings.Join(fieldNames(item.MatchedFields), ", "),
			flag,
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	if _, err := fmt.Fprintln(w.w, Summary(res)); err != nil {
		return err
	}

	if w.explain {
		return w.writeBreakdown(res)
	}
	return nil
}

func (w *Writer) writeBreakdown(res *ranking.Result) error {
	table := tablewriter.NewWriter(w.w)
	table.Header("ID", "Field", "Credit")

	for _, item := range res.Items {
		fields := make([]string, 0, len(item.Breakdown))
		for field := range item.Breakdown {
			fields = append(fields, string(field))
		}
		sort.Strings(fields)

		for _, field := range fields {
			credit := item.Breakdown[scoring.Field(field)]
			if err := table.Append([]string{item.Candidate.ID, field, strconv.FormatFloat(credit, 'f', 2, 64)}); err != nil {
				return fmt.Errorf("append row: %w", err)
			}
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

// Summary is a one-line description of where the page sits in the result.
func Summary(res *ranking.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "page %d of %d, %d candidate(s) total", res.Page, res.Pages(), res.TotalCount)
	if res.Flagged > 0 {
		fmt.Fprintf(&b, ", %d flagged", res.Flagged)
	}
	if res.Fallback {
		b.WriteString(", filters relaxed to the full pool")
	}
	return b.String()
}

func offsetOf(res *ranking.Result) int {
	if res.Page < 1 {
		return 0
	}
	return (res.Page - 1) * res.PageSize
}

func fieldNames(fields []scoring.Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, string(f))
	}
	return out
}

func withoutBreakdown(items []ranking.ScoredCandidate) []ranking.ScoredCandidate {
	out := make([]ranking.ScoredCandidate, len(items))
	for i, item := range items {
		item.Breakdown = nil
		out[i] = item
	}
	return out
}
