package task

import (
	"reflect"
	"testing"
)

func TestSummarizeEmpty(t *testing.T) {
	st := Summarize(nil, fixedNow)
	if st.Total != 0 || st.Done != 0 || st.Overdue != 0 || st.Health != 0 {
		t.Fatalf("unexpected stats for empty list: %+v", st)
	}
	if st.Focus != nil {
		t.Fatalf("expected no focus, got %+v", st.Focus)
	}
	if len(st.Flow) != 0 {
		t.Fatalf("expected empty flow, got %v", ids(st.Flow))
	}
}

func TestSummarizeCounts(t *testing.T) {
	st := Summarize(sampleTasks(), fixedNow)
	if st.Total != 5 {
		t.Errorf("Total = %d, want 5", st.Total)
	}
	if st.Done != 1 {
		t.Errorf("Done = %d, want 1", st.Done)
	}
	// a and b are past due; c is past due but done.
	if st.Overdue != 2 {
		t.Errorf("Overdue = %d, want 2", st.Overdue)
	}
	if st.Health != 20 {
		t.Errorf("Health = %d, want 20", st.Health)
	}
}

func TestSummarizeHealthRounds(t *testing.T) {
	cases := []struct {
		done, total, want int
	}{
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{3, 3, 100},
		{0, 4, 0},
	}
	for _, tc := range cases {
		tasks := make([]Task, tc.total)
		for i := range tasks {
			tasks[i].Status = StatusBacklog
			if i < tc.done {
				tasks[i].Status = StatusDone
			}
		}
		if got := Summarize(tasks, fixedNow).Health; got != tc.want {
			t.Errorf("%d/%d: Health = %d, want %d", tc.done, tc.total, got, tc.want)
		}
	}
}

func TestSummarizeFlowOrdersByDue(t *testing.T) {
	tasks := []Task{
		{ID: "jan", Status: StatusDone, Due: "2024-01-01"},
		{ID: "feb", Status: StatusDone, Due: "2024-02-01"},
		{ID: "none", Status: StatusDone},
	}
	got := ids(Summarize(tasks, fixedNow).Flow)
	want := []string{"none", "jan", "feb"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flow = %v, want %v", got, want)
	}
}

func TestSummarizeFlowKeepsLastThreeDone(t *testing.T) {
	tasks := []Task{
		{ID: "d4", Status: StatusDone, Due: "2024-04-01"},
		{ID: "open", Status: StatusReview, Due: "2024-12-01"},
		{ID: "d1", Status: StatusDone, Due: "2024-01-01"},
		{ID: "d3", Status: StatusDone, Due: "2024-03-01"},
		{ID: "d2", Status: StatusDone, Due: "2024-02-01"},
	}
	st := Summarize(tasks, fixedNow)
	want := []string{"d2", "d3", "d4"}
	if got := ids(st.Flow); !reflect.DeepEqual(got, want) {
		t.Fatalf("Flow = %v, want %v", got, want)
	}
	for _, f := range st.Flow {
		if f.Status != StatusDone {
			t.Errorf("flow contains %s with status %s", f.ID, f.Status)
		}
	}
}

func TestSummarizeFocus(t *testing.T) {
	cases := []struct {
		name  string
		tasks []Task
		want  string
	}{
		{"in progress wins", []Task{
			{ID: "b1", Status: StatusBacklog},
			{ID: "p1", Status: StatusInProgress},
			{ID: "p2", Status: StatusInProgress},
		}, "p1"},
		{"falls back to backlog", []Task{
			{ID: "r1", Status: StatusReview},
			{ID: "b1", Status: StatusBacklog},
			{ID: "b2", Status: StatusBacklog},
		}, "b1"},
		{"nothing pending", []Task{
			{ID: "r1", Status: StatusReview},
			{ID: "d1", Status: StatusDone},
		}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			focus := Summarize(tc.tasks, fixedNow).Focus
			got := ""
			if focus != nil {
				got = focus.ID
			}
			if got != tc.want {
				t.Errorf("Focus = %q, want %q", got, tc.want)
			}
		})
	}
}
