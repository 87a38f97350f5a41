// seed_roadmap.go is a standalone script that turns a TODO.md into a roadmap items CSV for `roadmap -items`.
//
// Usage:
//
//	go run scripts/seed_roadmap.go -todo /path/to/TODO.md -out items.csv
package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/Roadmap/internal/intake"
	"github.com/MikeSquared-Agency/Roadmap/internal/roadmap"
	"github.com/MikeSquared-Agency/Roadmap/internal/scoring"
)

type priority struct {
	value   int
	horizon int // days until the target date
}

// Priority emoji to estimated value and target horizon
var priorityMap = map[string]priority{
	"🔴": {value: 5, horizon: 7},   // P0
	"🟠": {value: 4, horizon: 30},  // P1
	"🟡": {value: 3, horizon: 90},  // P2
	"🟢": {value: 2, horizon: 180}, // P3
}

var defaultPriority = priority{value: 3, horizon: 90}

// Sections to skip
var skipSections = map[string]bool{
	"personal":        true,
	"career":          true,
	"health":          true,
	"growth":          true,
	"personal/career": true,
}

func main() {
	todoPath := flag.String("todo", "TODO.md", "path to TODO.md file")
	outPath := flag.String("out", "", "items CSV to write (default stdout)")
	complexity := flag.Int("complexity", 3, "estimated complexity for every item")
	dryRun := flag.Bool("dry-run", false, "print items with their urgency without writing CSV")
	flag.Parse()

	if *complexity < roadmap.MinEstimate || *complexity > roadmap.MaxEstimate {
		log.Fatalf("complexity must be between %d and %d", roadmap.MinEstimate, roadmap.MaxEstimate)
	}

	f, err := os.Open(*todoPath)
	if err != nil {
		log.Fatalf("open TODO.md: %v", err)
	}
	defer f.Close()

	today := roadmap.Today()
	var items []roadmap.Item
	var skipCurrent bool
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := scanner.Text()

		// Detect section headers
		if strings.HasPrefix(line, "## ") || strings.HasPrefix(line, "# ") {
			section := strings.ToLower(strings.TrimSpace(strings.TrimLeft(line, "# ")))

			skipCurrent = false
			for skip := range skipSections {
				if strings.Contains(section, skip) {
					skipCurrent = true
					break
				}
			}
			continue
		}

		if skipCurrent {
			continue
		}

		// Open TODO items only: - [ ]
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "- [ ] ") {
			continue
		}
		text := strings.TrimPrefix(trimmed, "- [ ] ")

		// Detect priority emoji
		p := defaultPriority
		for emoji, candidate := range priorityMap {
			if strings.Contains(text, emoji) {
				p = candidate
				text = strings.TrimSpace(strings.ReplaceAll(text, emoji, ""))
				break
			}
		}
		if text == "" {
			continue
		}

		target := today.AddDate(0, 0, p.horizon)
		items = append(items, roadmap.NewItem(text, *complexity, p.value, today, target, today))
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("scan TODO.md: %v", err)
	}

	log.Printf("parsed %d items from %s", len(items), *todoPath)

	if *dryRun {
		roadmap.SortByUrgency(items)
		for i, item := range items {
			fmt.Printf("[%d] %s (value=%d, target=%s, urgency=%v, tier=%s)\n",
				i+1, item.Name, item.EstimatedValue, item.TargetDate.Format(roadmap.DateLayout),
				item.Urgency, scoring.TierFor(item.Urgency))
		}
		return
	}

	out := os.Stdout
	if *outPath != "" {
		out, err = os.Create(*outPath)
		if err != nil {
			log.Fatalf("create %s: %v", *outPath, err)
		}
		defer out.Close()
	}
	if err := writeItems(out, items); err != nil {
		log.Fatalf("write items: %v", err)
	}
}

func writeItems(f *os.File, items []roadmap.Item) error {
	w := csv.NewWriter(f)
	header := []string{
		intake.ColName, intake.ColEstimatedComplexity, intake.ColEstimatedValue,
		intake.ColStartDate, intake.ColTargetDate,
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, item := range items {
		row := []string{
			item.Name,
			strconv.Itoa(item.EstimatedComplexity),
			strconv.Itoa(item.EstimatedValue),
			item.StartDate.Format(roadmap.DateLayout),
			item.TargetDate.Format(roadmap.DateLayout),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
