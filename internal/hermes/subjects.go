package hermes

import (
	"strings"
	"time"
)

const (
	SubjectPlanRequest = "roadmap.plan.request"

	// QueueGroup spreads plan requests across running servers so each is planned once.
	QueueGroup = "roadmap-planners"

	StreamName   = "ROADMAP_EVENTS"
	StreamMaxAge = 30 * 24 * time.Hour
)

// StreamSubjects are captured by the JetStream stream.
var StreamSubjects = []string{"roadmap.run.>", "roadmap.item.>", "roadmap.pool.>"}

func SubjectRunCompleted(runID string) string { return "roadmap.run." + runID + ".completed" }
func SubjectItemAssigned(runID string) string { return "roadmap.item." + runID + ".assigned" }
func SubjectPoolExhausted(runID string) string { return "roadmap.pool." + runID + ".exhausted" }

// Persisted reports whether subject is stored by the event stream.
func Persisted(subject string) bool {
	for _, pattern := range StreamSubjects {
		if strings.HasPrefix(subject, strings.TrimSuffix(pattern, ">")) {
			return true
		}
	}
	return false
}
