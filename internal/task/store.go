package task

import (
	"context"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"taskboard/internal/storage"
)

const autoTagLimit = 2

type Clock func() time.Time

type IDFunc func() string

// NewID returns a time-ordered UUID.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Patch lists the fields an Update overwrites. Nil fields are left alone.
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	Due         *string
	Tags        *[]string
}

// Store is the ordered task list, newest first, mirrored to a storage cell.
// Every mutation writes a fresh slice; slices returned by Tasks are never
// modified afterwards.
type Store struct {
	cell  *storage.Cell[[]Task]
	now   Clock
	newID IDFunc
}

func NewStore(cell *storage.Cell[[]Task], now Clock, newID IDFunc) *Store {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = NewID
	}
	return &Store{cell: cell, now: now, newID: newID}
}

func (s *Store) Tasks() []Task {
	return s.cell.Get()
}

// Now reads the store's clock.
func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) Get(id string) (Task, bool) {
	for _, t := range s.cell.Get() {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Create prepends a task built from the draft. A blank title is rejected
// without error and reported by ok=false. Blank status and priority take
// the backlog/medium defaults; unknown values and malformed due dates are
// rejected with ErrInvalidStatus, ErrInvalidPriority or ErrInvalidDue.
func (s *Store) Create(ctx context.Context, d Draft) (Task, bool, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return Task{}, false, nil
	}
	status, priority := StatusBacklog, PriorityMedium
	var err error
	if strings.TrimSpace(string(d.Status)) != "" {
		if status, err = ParseStatus(string(d.Status)); err != nil {
			return Task{}, false, err
		}
	}
	if strings.TrimSpace(string(d.Priority)) != "" {
		if priority, err = ParsePriority(string(d.Priority)); err != nil {
			return Task{}, false, err
		}
	}
	due, err := ParseDue(d.Due)
	if err != nil {
		return Task{}, false, err
	}
	t := Task{
		ID:          s.newID(),
		Title:       title,
		Description: strings.TrimSpace(d.Description),
		Status:      status,
		Priority:    priority,
		Due:         due,
		CreatedAt:   s.now(),
	}
	if strings.TrimSpace(d.RawTags) != "" {
		t.Tags = ParseTags(d.RawTags)
	} else {
		t.Tags = AutoTags(title)
	}

	current := s.cell.Get()
	next := make([]Task, 0, len(current)+1)
	next = append(next, t)
	next = append(next, current...)
	if err := s.cell.Set(ctx, next); err != nil {
		return t, true, err
	}
	return t, true, nil
}

// Delete removes the task with id. Unknown ids are a no-op.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	current := s.cell.Get()
	idx := s.indexOf(current, id)
	if idx < 0 {
		return false, nil
	}
	next := make([]Task, 0, len(current)-1)
	next = append(next, current[:idx]...)
	next = append(next, current[idx+1:]...)
	return true, s.cell.Set(ctx, next)
}

// Update merges p into the task with id. A blank title in p is ignored so a
// task never loses its title. Status, priority and due are validated like
// Create; an invalid patch changes nothing.
func (s *Store) Update(ctx context.Context, id string, p Patch) (bool, error) {
	if p.Status != nil {
		status, err := ParseStatus(string(*p.Status))
		if err != nil {
			return false, err
		}
		p.Status = &status
	}
	if p.Priority != nil {
		priority, err := ParsePriority(string(*p.Priority))
		if err != nil {
			return false, err
		}
		p.Priority = &priority
	}
	if p.Due != nil {
		due, err := ParseDue(*p.Due)
		if err != nil {
			return false, err
		}
		p.Due = &due
	}
	return s.mutate(ctx, id, func(t *Task) {
		if p.Title != nil {
			if title := strings.TrimSpace(*p.Title); title != "" {
				t.Title = title
			}
		}
		if p.Description != nil {
			t.Description = strings.TrimSpace(*p.Description)
		}
		if p.Status != nil {
			t.Status = *p.Status
		}
		if p.Priority != nil {
			t.Priority = *p.Priority
		}
		if p.Due != nil {
			t.Due = *p.Due
		}
		if p.Tags != nil {
			t.Tags = slices.Clone(*p.Tags)
		}
	})
}

func (s *Store) RemoveTag(ctx context.Context, id, tag string) (bool, error) {
	t, ok := s.Get(id)
	if !ok {
		return false, nil
	}
	tags := slices.DeleteFunc(append([]string{}, t.Tags...), func(v string) bool { return v == tag })
	return s.Update(ctx, id, Patch{Tags: &tags})
}

func (s *Store) Advance(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, id, func(t *Task) { t.Status = Next(t.Status) })
}

func (s *Store) Retreat(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, id, func(t *Task) { t.Status = Prev(t.Status) })
}

func (s *Store) mutate(ctx context.Context, id string, apply func(*Task)) (bool, error) {
	current := s.cell.Get()
	idx := s.indexOf(current, id)
	if idx < 0 {
		return false, nil
	}
	next := slices.Clone(current)
	t := next[idx]
	t.Tags = slices.Clone(t.Tags)
	apply(&t)
	next[idx] = t
	return true, s.cell.Set(ctx, next)
}

func (s *Store) indexOf(tasks []Task, id string) int {
	return slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
}

// ParseTags splits a comma-separated tag string, dropping blanks.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// AutoTags derives tags from the first two words of a title, keeping only
// ASCII letters and digits.
func AutoTags(title string) []string {
	words := strings.Fields(title)
	if len(words) > autoTagLimit {
		words = words[:autoTagLimit]
	}
	tags := make([]string, 0, len(words))
	for _, w := range words {
		tag := strings.Map(func(r rune) rune {
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				return r
			}
			return -1
		}, w)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Seed is the starter board used when nothing has been stored yet.
func Seed(now time.Time, newID IDFunc) []Task {
	if newID == nil {
		newID = NewID
	}
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(DueLayout)
	}
	return []Task{
		{
			ID:          newID(),
			Title:       "Draft launch checklist",
			Description: "Collect the release steps in one place.",
			Status:      StatusInProgress,
			Priority:    PriorityHigh,
			Due:         day(1),
			Tags:        []string{"launch", "docs"},
			CreatedAt:   now,
		},
		{
			ID:          newID(),
			Title:       "Review onboarding flow",
			Description: "Walk through signup with a fresh account.",
			Status:      StatusReview,
			Priority:    PriorityMedium,
			Due:         day(0),
			Tags:        []string{"ux"},
			CreatedAt:   now,
		},
		{
			ID:        newID(),
			Title:     "Clean up stale branches",
			Status:    StatusBacklog,
			Priority:  PriorityLow,
			Tags:      []string{"chore"},
			CreatedAt: now,
		},
		{
			ID:        newID(),
			Title:     "Set up error reporting",
			Status:    StatusDone,
			Priority:  PriorityMedium,
			Due:       day(-2),
			Tags:      []string{"ops"},
			CreatedAt: now,
		},
	}
}
