package ui

import (
	"fmt"
	"strings"

	"taskboard/internal/task"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldPriority
	fieldStatus
	fieldTags
)

// formState backs both the create form and the edit form. taskID is empty
// while creating.
type formState struct {
	taskID string
	fields []int
	values map[int]string
	index  int
}

func newCreateForm(defaults task.Filters) *formState {
	f := &formState{
		fields: []int{fieldTitle, fieldDescription, fieldDue, fieldPriority, fieldStatus, fieldTags},
		values: map[int]string{
			fieldPriority: string(task.PriorityMedium),
			fieldStatus:   string(task.StatusBacklog),
		},
	}
	// Creating while the board is narrowed to one stage or priority starts
	// the draft there.
	if defaults.Status != "" && defaults.Status != task.All {
		f.values[fieldStatus] = defaults.Status
	}
	if defaults.Priority != "" && defaults.Priority != task.All {
		f.values[fieldPriority] = defaults.Priority
	}
	return f
}

func newEditForm(t task.Task) *formState {
	return &formState{
		taskID: t.ID,
		fields: []int{fieldTitle, fieldDescription, fieldDue, fieldPriority, fieldTags},
		values: map[int]string{
			fieldTitle:       t.Title,
			fieldDescription: t.Description,
			fieldDue:         t.Due,
			fieldPriority:    string(t.Priority),
			fieldTags:        strings.Join(t.Tags, ", "),
		},
	}
}

func fieldLabel(field int) string {
	switch field {
	case fieldTitle:
		return "title"
	case fieldDescription:
		return "description"
	case fieldDue:
		return "due date (YYYY-MM-DD)"
	case fieldPriority:
		return "priority (low/medium/high)"
	case fieldStatus:
		return "status (backlog/in-progress/review/done)"
	case fieldTags:
		return "tags (comma separated)"
	default:
		return ""
	}
}

func (fs *formState) editing() bool {
	return fs.taskID != ""
}

func (fs *formState) current() int {
	return fs.fields[fs.index]
}

func (fs *formState) currentLabel() string {
	return fieldLabel(fs.current())
}

func (fs *formState) currentValue() string {
	return fs.values[fs.current()]
}

func (fs *formState) setCurrentValue(v string) {
	fs.values[fs.current()] = v
}

func (fs *formState) last() bool {
	return fs.index >= len(fs.fields)-1
}

func (fs *formState) move(delta int) {
	fs.index = wrapIndex(fs.index+delta, len(fs.fields))
}

func (fs *formState) focus(field int) {
	for i, f := range fs.fields {
		if f == field {
			fs.index = i
			return
		}
	}
}

func (fs *formState) prompt() string {
	verb := "New task"
	if fs.editing() {
		verb = "Editing"
	}
	return fmt.Sprintf("%s: %s (field %d of %d). Enter to advance, tab/shift+tab to move, Esc to cancel.",
		verb, fs.currentLabel(), fs.index+1, len(fs.fields))
}

// draft validates the create form.
func (fs *formState) draft() (task.Draft, error) {
	d := task.Draft{
		Title:       fs.values[fieldTitle],
		Description: fs.values[fieldDescription],
		RawTags:     fs.values[fieldTags],
	}
	due, err := task.ParseDue(fs.values[fieldDue])
	if err != nil {
		return d, err
	}
	d.Due = due
	if v := strings.TrimSpace(fs.values[fieldPriority]); v != "" {
		if d.Priority, err = task.ParsePriority(v); err != nil {
			return d, err
		}
	}
	if v := strings.TrimSpace(fs.values[fieldStatus]); v != "" {
		if d.Status, err = task.ParseStatus(v); err != nil {
			return d, err
		}
	}
	return d, nil
}

// patch validates the edit form.
func (fs *formState) patch() (task.Patch, error) {
	title := fs.values[fieldTitle]
	description := fs.values[fieldDescription]
	due, err := task.ParseDue(fs.values[fieldDue])
	if err != nil {
		return task.Patch{}, err
	}
	priority, err := task.ParsePriority(fs.values[fieldPriority])
	if err != nil {
		return task.Patch{}, err
	}
	tags := task.ParseTags(fs.values[fieldTags])
	return task.Patch{
		Title:       &title,
		Description: &description,
		Due:         &due,
		Priority:    &priority,
		Tags:        &tags,
	}, nil
}

func (fs *formState) render() string {
	var b strings.Builder
	for i, field := range fs.fields {
		prefix := " "
		if i == fs.index {
			prefix = ">"
		}
		val := fs.values[field]
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-40s : %s\n", prefix, fieldLabel(field), val))
	}
	return b.String()
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
