package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Roadmap/internal/prompt"
	"github.com/MikeSquared-Agency/Roadmap/internal/roadmap"
)

// Asker asks questions and prints messages to whoever is at the terminal.
type Asker interface {
	Ask(ctx context.Context, q prompt.Question) (string, error)
	Say(msg string)
}

// Session walks a user through entering contributors and roadmap items,
// either by pointing at CSV files or by answering prompts one field at a time.
type Session struct {
	asker  Asker
	today  time.Time
	logger *slog.Logger
}

// NewSession creates a Session that validates dates against today.
func NewSession(asker Asker, today time.Time, logger *slog.Logger) *Session {
	return &Session{asker: asker, today: today, logger: logger}
}

// Contributors collects the contributor pool.
func (s *Session) Contributors(ctx context.Context) ([]roadmap.Contributor, error) {
	fromFile, err := s.confirm(ctx, "Do you have a contributors file? (y/n)")
	if err != nil {
		return nil, err
	}
	if fromFile {
		path, err := s.asker.Ask(ctx, prompt.Question{
			Prompt:   "Please provide the absolute path to your contributors file",
			Validate: notEmpty,
		})
		if err != nil {
			return nil, err
		}
		contributors, err := LoadContributors(path)
		if err != nil {
			return nil, err
		}
		s.logger.Info("contributors loaded", "path", path, "count", len(contributors))
		return contributors, nil
	}

	s.asker.Say("Let's add our first contributor!")
	var contributors []roadmap.Contributor
	for {
		c, err := s.contributor(ctx)
		if err != nil {
			return nil, err
		}
		contributors = append(contributors, c)

		more, err := s.confirm(ctx, "Add another contributor? (y/n)")
		if err != nil {
			return nil, err
		}
		if !more {
			s.asker.Say("All contributors added!")
			return contributors, nil
		}
	}
}

// Items collects the roadmap items, each scored relative to today.
func (s *Session) Items(ctx context.Context) ([]roadmap.Item, error) {
	s.asker.Say("Let's add all roadmap items!")
	fromFile, err := s.confirm(ctx, "Do you have a roadmap file? (y/n)")
	if err != nil {
		return nil, err
	}
	if fromFile {
		path, err := s.asker.Ask(ctx, prompt.Question{
			Prompt:   "Please provide the absolute path to your roadmap file",
			Validate: notEmpty,
		})
		if err != nil {
			return nil, err
		}
		items, err := LoadItems(path, s.today)
		if err != nil {
			return nil, err
		}
		s.logger.Info("roadmap items loaded", "path", path, "count", len(items))
		return items, nil
	}

	s.asker.Say("Let's create our first roadmap item!")
	var items []roadmap.Item
	for {
		item, err := s.item(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		more, err := s.confirm(ctx, "Add another roadmap item? (y/n)")
		if err != nil {
			return nil, err
		}
		if !more {
			s.asker.Say("All roadmap items added!")
			return items, nil
		}
	}
}

func (s *Session) contributor(ctx context.Context) (roadmap.Contributor, error) {
	name, err := s.asker.Ask(ctx, prompt.Question{Prompt: "Contributor name", Validate: notEmpty})
	if err != nil {
		return roadmap.Contributor{}, err
	}
	seniority, err := s.number(ctx, "Contributor seniority (1-5)", roadmap.MinSeniority, roadmap.MaxSeniority)
	if err != nil {
		return roadmap.Contributor{}, err
	}
	return roadmap.Contributor{Name: name, Seniority: seniority}, nil
}

func (s *Session) item(ctx context.Context) (roadmap.Item, error) {
	name, err := s.asker.Ask(ctx, prompt.Question{Prompt: "Roadmap item name", Validate: notEmpty})
	if err != nil {
		return roadmap.Item{}, err
	}
	complexity, err := s.number(ctx, "Estimated complexity (1-5)", roadmap.MinEstimate, roadmap.MaxEstimate)
	if err != nil {
		return roadmap.Item{}, err
	}
	value, err := s.number(ctx, "Estimated value (1-5)", roadmap.MinEstimate, roadmap.MaxEstimate)
	if err != nil {
		return roadmap.Item{}, err
	}

	for {
		start, err := s.date(ctx, "Start date")
		if err != nil {
			return roadmap.Item{}, err
		}
		target, err := s.date(ctx, "Target date")
		if err != nil {
			return roadmap.Item{}, err
		}
		switch err := CheckDates(start, target, s.today); {
		case errors.Is(err, ErrTargetBeforeStart):
			s.asker.Say("The target date cannot be before the start date.")
			continue
		case errors.Is(err, ErrTargetBeforeToday):
			s.asker.Say("The target date cannot be before today.")
			continue
		}
		return roadmap.NewItem(name, complexity, value, start, target, s.today), nil
	}
}

func (s *Session) confirm(ctx context.Context, text string) (bool, error) {
	answer, err := s.asker.Ask(ctx, prompt.Question{Prompt: text, Placeholder: "y", Validate: yesNo})
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

func (s *Session) number(ctx context.Context, text string, min, max int) (int, error) {
	answer, err := s.asker.Ask(ctx, prompt.Question{Prompt: text, Validate: between(min, max)})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}

func (s *Session) date(ctx context.Context, text string) (time.Time, error) {
	answer, err := s.asker.Ask(ctx, prompt.Question{
		Prompt:      text + " (YYYY-mm-dd)",
		Placeholder: s.today.Format(roadmap.DateLayout),
		Validate:    isDate,
	})
	if err != nil {
		return time.Time{}, err
	}
	return roadmap.ParseDate(answer)
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("A value is required")
	}
	return nil
}

func yesNo(s string) error {
	switch strings.ToLower(s) {
	case "y", "n":
		return nil
	}
	return errors.New("Please answer y or n")
}

func between(min, max int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("Could not parse number: %q", s)
		}
		if v < min || v > max {
			return fmt.Errorf("The value must be between %d and %d", min, max)
		}
		return nil
	}
}

func isDate(s string) error {
	if _, err := roadmap.ParseDate(s); err != nil {
		return fmt.Errorf("Could not parse date: %q", s)
	}
	return nil
}
