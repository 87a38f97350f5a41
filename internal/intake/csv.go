// Package intake reads contributors and roadmap items from CSV files or an
// interactive terminal session and validates them.
package intake

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Roadmap/internal/roadmap"
)

// CSV column names.
const (
	ColName                = "name"
	ColSeniority           = "seniority"
	ColEstimatedComplexity = "estimated_complexity"
	ColEstimatedValue      = "estimated_value"
	ColStartDate           = "start_date"
	ColTargetDate          = "target_date"
)

var (
	contributorColumns = []string{ColName, ColSeniority}
	itemColumns        = []string{ColName, ColEstimatedComplexity, ColEstimatedValue, ColStartDate, ColTargetDate}
)

// LoadContributors reads a contributors CSV file.
func LoadContributors(path string) ([]roadmap.Contributor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open contributors file: %w", err)
	}
	defer f.Close()
	return ReadContributors(f)
}

// LoadItems reads a roadmap items CSV file and scores every item relative to today.
func LoadItems(path string, today time.Time) ([]roadmap.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roadmap file: %w", err)
	}
	defer f.Close()
	return ReadItems(f, today)
}

// ReadContributors parses contributors from CSV with a name,seniority header.
// Columns may appear in any order and extra columns are ignored.
func ReadContributors(r io.Reader) ([]roadmap.Contributor, error) {
	var out []roadmap.Contributor
	err := readRecords(r, contributorColumns, func(line int, rec record) error {
		seniority, err := rec.number(ColSeniority)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		c := roadmap.Contributor{Name: rec.text(ColName), Seniority: seniority}
		if err := ValidateContributor(c); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read contributors: %w", err)
	}
	return out, nil
}

// ReadItems parses roadmap items from CSV. Every item is validated against
// today and has its urgency stamped.
func ReadItems(r io.Reader, today time.Time) ([]roadmap.Item, error) {
	var out []roadmap.Item
	err := readRecords(r, itemColumns, func(line int, rec record) error {
		complexity, err := rec.number(ColEstimatedComplexity)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		value, err := rec.number(ColEstimatedValue)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		start, err := rec.date(ColStartDate)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		target, err := rec.date(ColTargetDate)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		item := roadmap.Item{
			Name:                rec.text(ColName),
			EstimatedComplexity: complexity,
			EstimatedValue:      value,
			StartDate:           start,
			TargetDate:          target,
		}
		if err := ValidateItem(item, today); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, roadmap.NewItem(item.Name, complexity, value, start, target, today))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read roadmap items: %w", err)
	}
	return out, nil
}

type record struct {
	index  map[string]int
	fields []string
}

func (r record) text(col string) string {
	return strings.TrimSpace(r.fields[r.index[col]])
}

func (r record) number(col string) (int, error) {
	v, err := strconv.Atoi(r.text(col))
	if err != nil {
		return 0, fmt.Errorf("%w: column %s: %q is not a whole number", ErrMalformedRecord, col, r.text(col))
	}
	return v, nil
}

func (r record) date(col string) (time.Time, error) {
	v, err := roadmap.ParseDate(r.text(col))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: column %s: %q is not a YYYY-MM-DD date", ErrMalformedRecord, col, r.text(col))
	}
	return v, nil
}

// readRecords maps the header row to column positions and calls fn for every
// data row with its 1-based file line number.
func readRecords(r io.Reader, required []string, fn func(line int, rec record) error) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: missing header row", ErrMalformedRecord)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%w: missing column %q", ErrMalformedRecord, col)
		}
	}

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
		}
		line, _ := cr.FieldPos(0)
		for _, col := range required {
			if index[col] >= len(fields) {
				return fmt.Errorf("line %d: %w: missing value for %s", line, ErrMalformedRecord, col)
			}
		}
		if err := fn(line, record{index: index, fields: fields}); err != nil {
			return err
		}
	}
}
