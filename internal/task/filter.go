package task

import (
	"fmt"
	"strings"
	"time"
)

// All disables a filter dimension.
const All = "all"

type Horizon string

const (
	HorizonAll     Horizon = All
	HorizonToday   Horizon = "today"
	HorizonOverdue Horizon = "overdue"
)

func Horizons() []Horizon {
	return []Horizon{HorizonAll, HorizonToday, HorizonOverdue}
}

func ParseHorizon(v string) (Horizon, error) {
	h := Horizon(strings.ToLower(strings.TrimSpace(v)))
	for _, known := range Horizons() {
		if h == known {
			return h, nil
		}
	}
	return "", fmt.Errorf("invalid horizon: %q", v)
}

// Filters are the board's ephemeral view constraints. Status and Priority
// hold All or a concrete value.
type Filters struct {
	Query    string
	Status   string
	Priority string
	Horizon  Horizon
}

func NoFilters() Filters {
	return Filters{Status: All, Priority: All, Horizon: HorizonAll}
}

func (f Filters) Active() bool {
	return strings.TrimSpace(f.Query) != "" ||
		!isAll(f.Status) || !isAll(f.Priority) || !isAll(string(f.Horizon))
}

func isAll(v string) bool {
	return v == "" || v == All
}

// Filter returns the tasks matching every active constraint, in input order.
func Filter(tasks []Task, f Filters, now time.Time) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t, now) {
			out = append(out, t)
		}
	}
	return out
}

func (f Filters) Match(t Task, now time.Time) bool {
	return matchQuery(t, f.Query) &&
		(isAll(f.Status) || string(t.Status) == f.Status) &&
		(isAll(f.Priority) || string(t.Priority) == f.Priority) &&
		matchHorizon(t, f.Horizon, now)
}

func matchQuery(t Task, query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// matchHorizon only constrains tasks that carry a readable due date.
// Overdue here does not look at status, unlike Stats.Overdue. An unknown
// horizon matches nothing.
func matchHorizon(t Task, h Horizon, now time.Time) bool {
	if isAll(string(h)) {
		return true
	}
	if h != HorizonToday && h != HorizonOverdue {
		return false
	}
	if _, ok := t.DueIn(now.Location()); !ok {
		return true
	}
	if h == HorizonToday {
		return t.IsDueToday(now)
	}
	return t.IsOverdue(now)
}
