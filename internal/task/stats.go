package task

import (
	"math"
	"sort"
	"time"
)

const flowSize = 3

// Stats is the dashboard rollup over the whole task list.
type Stats struct {
	Total   int
	Done    int
	Overdue int
	// Health is the completion rate as a whole percent.
	Health int
	// Flow holds the most recently completed tasks, ordered by due date.
	Flow []Task
	// Focus is the suggested next task, nil when nothing is pending.
	Focus *Task
}

func Summarize(tasks []Task, now time.Time) Stats {
	st := Stats{Total: len(tasks)}
	var done []Task
	for _, t := range tasks {
		if t.Status == StatusDone {
			st.Done++
			done = append(done, t)
			continue
		}
		if t.IsOverdue(now) {
			st.Overdue++
		}
	}
	if st.Total > 0 {
		st.Health = int(math.Round(float64(st.Done) / float64(st.Total) * 100))
	}

	sort.SliceStable(done, func(i, j int) bool { return done[i].Due < done[j].Due })
	if len(done) > flowSize {
		done = done[len(done)-flowSize:]
	}
	st.Flow = done
	st.Focus = focus(tasks)
	return st
}

func focus(tasks []Task) *Task {
	for _, want := range []Status{StatusInProgress, StatusBacklog} {
		for i := range tasks {
			if tasks[i].Status == want {
				t := tasks[i]
				return &t
			}
		}
	}
	return nil
}
