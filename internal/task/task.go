package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DueLayout = "2006-01-02"

var (
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidDue      = errors.New("invalid due date")
)

type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is one card on the board. Due holds a calendar date as YYYY-MM-DD,
// empty when the task has no due date.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Due         string    `json:"dueDate,omitempty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Draft is the create form's state: the task being composed plus the raw
// comma-separated tag input.
type Draft struct {
	Title       string
	Description string
	Due         string
	Priority    Priority
	Status      Status
	RawTags     string
}

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	for _, st := range Stages() {
		if s == st {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
}

func ParsePriority(v string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(v)))
	for _, known := range Priorities() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, v)
}

// ParseDue validates a YYYY-MM-DD date. Blank input means no due date.
func ParseDue(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	d, err := time.Parse(DueLayout, v)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDue, v)
	}
	return d.Format(DueLayout), nil
}

// DueIn returns midnight of the due date in loc.
func (t Task) DueIn(loc *time.Location) (time.Time, bool) {
	if t.Due == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DueLayout, t.Due, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// IsOverdue reports whether the due date lies strictly before now,
// ignoring status.
func (t Task) IsOverdue(now time.Time) bool {
	due, ok := t.DueIn(now.Location())
	return ok && due.Before(now)
}

func (t Task) IsDueToday(now time.Time) bool {
	due, ok := t.DueIn(now.Location())
	if !ok {
		return false
	}
	y1, m1, d1 := due.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (t Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}
