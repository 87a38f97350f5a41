package intake

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Roadmap/internal/roadmap"
	"github.com/MikeSquared-Agency/Roadmap/internal/scoring"
)

var (
	ErrInvalidContributor = errors.New("invalid contributor")
	ErrInvalidItem        = errors.New("invalid roadmap item")
	ErrMalformedRecord    = errors.New("malformed record")

	ErrTargetBeforeStart = errors.New("target date is before the start date")
	ErrTargetBeforeToday = errors.New("target date is before today")
)

// ValidateContributor checks the name is set and seniority is within bounds.
func ValidateContributor(c roadmap.Contributor) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidContributor)
	}
	if c.Seniority < roadmap.MinSeniority || c.Seniority > roadmap.MaxSeniority {
		return fmt.Errorf("%w %q: seniority must be between %d and %d",
			ErrInvalidContributor, c.Name, roadmap.MinSeniority, roadmap.MaxSeniority)
	}
	return nil
}

// ValidateItem checks the scoring inputs of an item. today is the calendar
// day the item is being created on.
func ValidateItem(item roadmap.Item, today time.Time) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidItem)
	}
	if !inRange(item.EstimatedComplexity, roadmap.MinEstimate, roadmap.MaxEstimate) {
		return fmt.Errorf("%w %q: estimated complexity must be between %d and %d",
			ErrInvalidItem, item.Name, roadmap.MinEstimate, roadmap.MaxEstimate)
	}
	if !inRange(item.EstimatedValue, roadmap.MinEstimate, roadmap.MaxEstimate) {
		return fmt.Errorf("%w %q: estimated value must be between %d and %d",
			ErrInvalidItem, item.Name, roadmap.MinEstimate, roadmap.MaxEstimate)
	}
	if err := CheckDates(item.StartDate, item.TargetDate, today); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidItem, item.Name, err)
	}
	return nil
}

// CheckDates enforces target >= start and target >= today on calendar days.
func CheckDates(start, target, today time.Time) error {
	if scoring.DaysBetween(start, target) < 0 {
		return ErrTargetBeforeStart
	}
	if scoring.DaysBetween(today, target) < 0 {
		return ErrTargetBeforeToday
	}
	return nil
}

func inRange(v, min, max int) bool {
	return v >= min && v <= max
}
