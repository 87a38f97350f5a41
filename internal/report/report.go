// Package report renders allocated roadmap items for people and spreadsheets.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MikeSquared-Agency/Roadmap/internal/roadmap"
	"github.com/MikeSquared-Agency/Roadmap/internal/scoring"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Header is the first output row.
var Header = []string{"name", "start date", "target date", "urgency (0-1)", "contributors"}

// Row returns the output fields of one item.
func Row(item roadmap.Item) []string {
	return []string{
		item.Name,
		item.StartDate.Format(roadmap.DateLayout),
		item.TargetDate.Format(roadmap.DateLayout),
		FormatUrgency(item.Urgency),
		strings.Join(roadmap.Names(item.Contributors), ";"),
	}
}

// FormatUrgency prints an urgency in its shortest form, e.g. 1 or 0.65.
func FormatUrgency(u float64) string {
	return strconv.FormatFloat(u, 'f', -1, 64)
}

// Write renders items to w in the given format.
func Write(w io.Writer, format Format, items []roadmap.Item) error {
	switch format {
	case FormatTable:
		return WriteTable(w, items)
	default:
		return WriteCSV(w, items)
	}
}

// WriteCSV writes the header followed by one row per item.
func WriteCSV(w io.Writer, items []roadmap.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, item := range items {
		if err := cw.Write(Row(item)); err != nil {
			return fmt.Errorf("write item %q: %w", item.Name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tierColors  = map[scoring.Tier]lipgloss.Color{
		scoring.TierHigh:   lipgloss.Color("#FF6B6B"),
		scoring.TierMedium: lipgloss.Color("#F5C542"),
		scoring.TierLow:    lipgloss.Color("#AAAAAA"),
	}
)

const urgencyColumn = 3

// WriteTable renders items as a bordered terminal table with urgency coloured by tier.
func WriteTable(w io.Writer, items []roadmap.Item) error {
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = Row(item)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))).
		Headers(Header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == urgencyColumn && row >= 0 && row < len(items) {
				return cellStyle.Foreground(tierColors[items[row].Tier()])
			}
			return cellStyle
		})

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}
