package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MikeSquared-Agency/Roadmap/internal/hermes"
	"github.com/MikeSquared-Agency/Roadmap/internal/intake"
	"github.com/MikeSquared-Agency/Roadmap/internal/roadmap"
	"github.com/MikeSquared-Agency/Roadmap/internal/store"
)

const SourceHermes store.RunSource = "hermes"

// SetupSubscriptions plans roadmaps requested over NATS.
func (p *Planner) SetupSubscriptions() error {
	if p.hermes == nil {
		return nil
	}
	return p.hermes.Subscribe(hermes.SubjectPlanRequest, func(_ string, data []byte) {
		var evt hermes.PlanRequestEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			p.logger.Warn("invalid plan request event", "error", err)
			return
		}
		req, err := RequestFromEvent(evt, p.Today())
		if err != nil {
			p.logger.Warn("rejected plan request", "error", err)
			return
		}
		if _, err := p.Plan(context.Background(), req); err != nil {
			p.logger.Error("failed to plan from NATS request", "error", err)
		}
	})
}

// RequestFromEvent validates a plan request event against today.
func RequestFromEvent(evt hermes.PlanRequestEvent, today time.Time) (Request, error) {
	req := Request{Source: SourceHermes}
	if evt.Source != "" {
		req.Source = store.RunSource(evt.Source)
	}
	for _, c := range evt.Contributors {
		if err := intake.ValidateContributor(c); err != nil {
			return Request{}, err
		}
		req.Contributors = append(req.Contributors, c)
	}
	for _, raw := range evt.Items {
		item, err := ItemFromFields(raw.Name, raw.EstimatedComplexity, raw.EstimatedValue, raw.StartDate, raw.TargetDate, today)
		if err != nil {
			return Request{}, err
		}
		req.Items = append(req.Items, item)
	}
	return req, nil
}

// ItemFromFields parses and validates raw item fields and stamps urgency.
func ItemFromFields(name string, complexity, value int, startDate, targetDate string, today time.Time) (roadmap.Item, error) {
	start, err := roadmap.ParseDate(startDate)
	if err != nil {
		return roadmap.Item{}, fmt.Errorf("%w %q: start date %q is not a YYYY-MM-DD date", intake.ErrInvalidItem, name, startDate)
	}
	target, err := roadmap.ParseDate(targetDate)
	if err != nil {
		return roadmap.Item{}, fmt.Errorf("%w %q: target date %q is not a YYYY-MM-DD date", intake.ErrInvalidItem, name, targetDate)
	}
	item := roadmap.Item{
		Name:                name,
		EstimatedComplexity: complexity,
		EstimatedValue:      value,
		StartDate:           start,
		TargetDate:          target,
	}
	if err := intake.ValidateItem(item, today); err != nil {
		return roadmap.Item{}, err
	}
	return roadmap.NewItem(name, complexity, value, start, target, today), nil
}
