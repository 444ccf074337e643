package task

import (
	"reflect"
	"testing"
	"time"
)

func sampleTasks() []Task {
	return []Task{
		{ID: "a", Title: "Write release notes", Status: StatusBacklog, Priority: PriorityHigh, Due: "2024-03-10", Tags: []string{"docs"}},
		{ID: "b", Title: "Fix login", Description: "Session TIMEOUT too short", Status: StatusInProgress, Priority: PriorityMedium, Due: "2024-03-01"},
		{ID: "c", Title: "Ship it", Status: StatusDone, Priority: PriorityLow, Due: "2024-02-01", Tags: []string{"Launch"}},
		{ID: "d", Title: "Brainstorm", Status: StatusReview, Priority: PriorityLow},
		{ID: "e", Title: "Plan offsite", Status: StatusBacklog, Priority: PriorityMedium, Due: "2024-04-01"},
	}
}

func TestFilterIdentity(t *testing.T) {
	tasks := sampleTasks()
	got := Filter(tasks, NoFilters(), fixedNow)
	if !reflect.DeepEqual(got, tasks) {
		t.Fatalf("identity filter changed the list: %v", ids(got))
	}
	if got := Filter(tasks, Filters{}, fixedNow); !reflect.DeepEqual(got, tasks) {
		t.Fatalf("zero filters changed the list: %v", ids(got))
	}
}

func TestFilterDimensions(t *testing.T) {
	cases := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"query title", Filters{Query: "LOGIN", Status: All, Priority: All, Horizon: HorizonAll}, []string{"b"}},
		{"query description", Filters{Query: "timeout", Status: All, Priority: All, Horizon: HorizonAll}, []string{"b"}},
		{"query tag", Filters{Query: "launch", Status: All, Priority: All, Horizon: HorizonAll}, []string{"c"}},
		{"query no match", Filters{Query: "zzz", Status: All, Priority: All, Horizon: HorizonAll}, []string{}},
		{"status", Filters{Status: string(StatusBacklog), Priority: All, Horizon: HorizonAll}, []string{"a", "e"}},
		{"priority", Filters{Status: All, Priority: string(PriorityLow), Horizon: HorizonAll}, []string{"c", "d"}},
		// Tasks without a due date always pass the horizon.
		{"today", Filters{Status: All, Priority: All, Horizon: HorizonToday}, []string{"a", "d"}},
		// Overdue ignores status, so the done task stays.
		{"overdue", Filters{Status: All, Priority: All, Horizon: HorizonOverdue}, []string{"a", "b", "c", "d"}},
		{"combined", Filters{Query: "s", Status: string(StatusBacklog), Priority: string(PriorityMedium), Horizon: HorizonAll}, []string{"e"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Filter(sampleTasks(), tc.filters, fixedNow))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	tasks := sampleTasks()
	got := Filter(tasks, Filters{Status: All, Priority: All, Horizon: HorizonOverdue}, fixedNow)
	pos := -1
	for _, g := range got {
		idx := -1
		for i, orig := range tasks {
			if orig.ID == g.ID {
				idx = i
			}
		}
		if idx <= pos {
			t.Fatalf("result is not a subsequence in input order: %v", ids(got))
		}
		pos = idx
	}
}

func TestFiltersActive(t *testing.T) {
	if NoFilters().Active() {
		t.Error("NoFilters should be inactive")
	}
	if !(Filters{Query: "x"}).Active() {
		t.Error("query filter should be active")
	}
	if !(Filters{Horizon: HorizonToday}).Active() {
		t.Error("horizon filter should be active")
	}
}

// A due date means midnight of that day in the clock's location, compared
// strictly against now.
func TestOverdueBoundary(t *testing.T) {
	dueToday := Task{ID: "today", Status: StatusBacklog, Due: "2024-03-10"}
	midnight := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"exactly at midnight", midnight, false},
		{"one nanosecond later", midnight.Add(time.Nanosecond), true},
		{"late the same day", midnight.Add(23*time.Hour + 59*time.Minute), true},
		{"day before", midnight.Add(-time.Minute), false},
	}
	overdue := Filters{Status: All, Priority: All, Horizon: HorizonOverdue}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dueToday.IsOverdue(tc.now); got != tc.want {
				t.Errorf("IsOverdue = %v, want %v", got, tc.want)
			}
			if got := len(Filter([]Task{dueToday}, overdue, tc.now)) == 1; got != tc.want {
				t.Errorf("overdue filter kept = %v, want %v", got, tc.want)
			}
			if got := Summarize([]Task{dueToday}, tc.now).Overdue == 1; got != tc.want {
				t.Errorf("Stats.Overdue counted = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOverdueUsesClockLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2024-03-10 05:00 in UTC+10 is still 2024-03-09 in UTC.
	now := time.Date(2024, 3, 10, 5, 0, 0, 0, loc)
	task := Task{Due: "2024-03-10"}
	if !task.IsOverdue(now) || !task.IsDueToday(now) {
		t.Fatalf("due date not read in the clock's location")
	}
}

func TestUnknownHorizonMatchesNothing(t *testing.T) {
	f := Filters{Status: All, Priority: All, Horizon: Horizon("Today")}
	if got := Filter(sampleTasks(), f, fixedNow); len(got) != 0 {
		t.Fatalf("unknown horizon kept %v", ids(got))
	}
}

func TestUnreadableDueIgnoresHorizon(t *testing.T) {
	tasks := []Task{{ID: "bad", Due: "03/10/2024"}}
	for _, h := range []Horizon{HorizonToday, HorizonOverdue} {
		f := Filters{Status: All, Priority: All, Horizon: h}
		if got := Filter(tasks, f, fixedNow); len(got) != 1 {
			t.Errorf("%s: task with unreadable due date dropped", h)
		}
	}
	if Summarize(tasks, fixedNow).Overdue != 0 {
		t.Error("task with unreadable due date counted overdue")
	}
}
