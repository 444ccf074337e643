package task

// Stages returns the board stages in progression order.
func Stages() []Status {
	return []Status{StatusBacklog, StatusInProgress, StatusReview, StatusDone}
}

func stageIndex(s Status) int {
	for i, st := range Stages() {
		if st == s {
			return i
		}
	}
	return 0
}

// Next moves one stage right, staying put at done.
func Next(s Status) Status {
	stages := Stages()
	i := stageIndex(s)
	if i >= len(stages)-1 {
		return stages[len(stages)-1]
	}
	return stages[i+1]
}

// Prev moves one stage left, staying put at backlog.
func Prev(s Status) Status {
	stages := Stages()
	i := stageIndex(s)
	if i <= 0 {
		return stages[0]
	}
	return stages[i-1]
}
