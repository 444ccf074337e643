package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/config"
	"taskboard/internal/task"
)

type mode int

const (
	modeBoard mode = iota
	modeForm
	modeSearch
	modeRemoveTag
)

type Model struct {
	ctx        context.Context
	store      *task.Store
	cfg        config.Config
	filters    task.Filters
	visible    []task.Task
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	confirmDel bool
	pendingDel *task.Task
	form       *formState
	width      int
}

func New(ctx context.Context, store *task.Store, cfg config.Config) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		ctx:     ctx,
		store:   store,
		cfg:     cfg,
		filters: cfg.Filters(),
		input:   ti,
		mode:    modeBoard,
		status:  fmt.Sprintf("Press '%s' to add, '%s'/'%s' to move a task between stages.", cfg.Keys.Add, cfg.Keys.Retreat, cfg.Keys.Advance),
	}
	m.refresh()
	return m
}

func Run(ctx context.Context, store *task.Store, cfg config.Config) error {
	program := tea.NewProgram(New(ctx, store, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeForm:
			return m.updateFormMode(msg.String(), msg)
		case modeSearch:
			return m.updateSearchMode(msg.String(), msg)
		case modeRemoveTag:
			return m.updateRemoveTagMode(msg.String(), msg)
		}
		return m.updateBoardMode(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateBoardMode(key string) (tea.Model, tea.Cmd) {
	keys := m.cfg.Keys
	switch key {
	case "ctrl+c", keys.Quit:
		return m, tea.Quit
	case keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.visible))
	case keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(m.visible))
	case keys.Add:
		return m.startForm(newCreateForm(m.filters))
	case keys.Edit:
		t, ok := m.selected()
		if !ok {
			m.status = "No task to edit"
			return m, nil
		}
		return m.startForm(newEditForm(t))
	case keys.Delete:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Title)
	case keys.Advance:
		return m.step(m.store.Advance, "Advanced")
	case keys.Retreat:
		return m.step(m.store.Retreat, "Moved back")
	case keys.RemoveTag:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if len(t.Tags) == 0 {
			m.status = "Task has no tags"
			return m, nil
		}
		m.mode = modeRemoveTag
		m.input.SetValue(t.Tags[len(t.Tags)-1])
		m.input.CursorEnd()
		m.input.Placeholder = "tag"
		m.input.Focus()
		m.status = "Remove tag (" + strings.Join(t.Tags, ", ") + "): Enter to remove, Esc to cancel"
	case keys.Search:
		m.mode = modeSearch
		m.input.SetValue(m.filters.Query)
		m.input.CursorEnd()
		m.input.Placeholder = "search title, description, tags"
		m.input.Focus()
		m.status = "Search: type to filter, Enter to keep, Esc to clear"
	case keys.CycleStatus:
		options := []string{task.All}
		for _, s := range task.Stages() {
			options = append(options, string(s))
		}
		m.filters.Status = cycle(options, m.filters.Status)
		m.refresh()
		m.status = "Status filter: " + m.filters.Status
	case keys.CyclePriority:
		options := []string{task.All}
		for _, p := range task.Priorities() {
			options = append(options, string(p))
		}
		m.filters.Priority = cycle(options, m.filters.Priority)
		m.refresh()
		m.status = "Priority filter: " + m.filters.Priority
	case keys.CycleHorizon:
		options := make([]string, 0, len(task.Horizons()))
		for _, h := range task.Horizons() {
			options = append(options, string(h))
		}
		m.filters.Horizon = task.Horizon(cycle(options, string(m.filters.Horizon)))
		m.refresh()
		m.status = "Due filter: " + string(m.filters.Horizon)
	case keys.ClearFilters:
		m.filters = task.NoFilters()
		m.refresh()
		m.status = "Filters cleared"
	}
	return m, nil
}

func (m Model) step(apply func(context.Context, string) (bool, error), verb string) (tea.Model, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	_, err := apply(m.ctx, t.ID)
	m.refreshKeeping(t.ID)
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	if updated, ok := m.store.Get(t.ID); ok {
		m.status = fmt.Sprintf("%s \"%s\" to %s", verb, updated.Title, updated.Status)
	}
	return m, nil
}

func (m Model) startForm(fs *formState) (tea.Model, tea.Cmd) {
	m.form = fs
	m.mode = modeForm
	m.input.SetValue(fs.currentValue())
	m.input.CursorEnd()
	m.input.Placeholder = fs.currentLabel()
	m.input.Focus()
	m.status = fs.prompt()
	return m, nil
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeBoard
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "tab", "down":
		m.form.setCurrentValue(m.input.Value())
		m.form.move(1)
		return m.syncFormInput(), nil
	case "shift+tab", "up":
		m.form.setCurrentValue(m.input.Value())
		m.form.move(-1)
		return m.syncFormInput(), nil
	case m.cfg.Keys.Confirm, "enter":
		m.form.setCurrentValue(m.input.Value())
		if m.form.last() {
			return m.submitForm()
		}
		m.form.move(1)
		return m.syncFormInput(), nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) syncFormInput() Model {
	m.input.SetValue(m.form.currentValue())
	m.input.CursorEnd()
	m.input.Placeholder = m.form.currentLabel()
	m.status = m.form.prompt()
	return m
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.editing() {
		return m.saveEdit()
	}
	draft, err := m.form.draft()
	if err != nil {
		m.status = fmt.Sprintf("invalid input: %v", err)
		return m, nil
	}
	created, ok, err := m.store.Create(m.ctx, draft)
	if !ok && err != nil {
		m.status = fmt.Sprintf("invalid input: %v", err)
		return m, nil
	}
	if !ok {
		m.form.focus(fieldTitle)
		m = m.syncFormInput()
		m.status = "Title cannot be empty"
		return m, nil
	}
	m.closeForm()
	m.refreshKeeping(created.ID)
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.status = "Added task"
	return m, nil
}

func (m Model) saveEdit() (tea.Model, tea.Cmd) {
	id := m.form.taskID
	patch, err := m.form.patch()
	if err != nil {
		m.status = fmt.Sprintf("invalid input: %v", err)
		return m, nil
	}
	_, err = m.store.Update(m.ctx, id, patch)
	m.closeForm()
	m.refreshKeeping(id)
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.status = "Task saved"
	return m, nil
}

func (m *Model) closeForm() {
	m.form = nil
	m.mode = modeBoard
	m.input.SetValue("")
	m.input.Blur()
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.filters.Query = ""
		m.mode = modeBoard
		m.input.SetValue("")
		m.input.Blur()
		m.refresh()
		m.status = "Search cleared"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.mode = modeBoard
		m.input.Blur()
		m.status = fmt.Sprintf("%d matching tasks", len(m.visible))
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.filters.Query = m.input.Value()
		m.refresh()
		return m, cmd
	}
}

func (m Model) updateRemoveTagMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeBoard
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		tag := strings.TrimSpace(m.input.Value())
		m.mode = modeBoard
		m.input.SetValue("")
		m.input.Blur()
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if !t.HasTag(tag) {
			m.status = fmt.Sprintf("No tag %q on this task", tag)
			return m, nil
		}
		_, err := m.store.RemoveTag(m.ctx, t.ID, tag)
		m.refreshKeeping(t.ID)
		if err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.status = fmt.Sprintf("Removed tag %q", tag)
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		_, err := m.store.Delete(m.ctx, m.pendingDel.ID)
		m.confirmDel = false
		m.pendingDel = nil
		m.refresh()
		if err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
			return m, nil
		}
		m.status = "Deleted task"
		return m, nil
	default:
		return m, nil
	}
}

// refresh recomputes the visible tasks in board order.
func (m *Model) refresh() {
	m.visible = boardOrder(task.Filter(m.store.Tasks(), m.filters, m.store.Now()))
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

// refreshKeeping recomputes the board and moves the cursor onto id if it
// is still visible.
func (m *Model) refreshKeeping(id string) {
	m.refresh()
	for i, t := range m.visible {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m Model) selected() (task.Task, bool) {
	if len(m.visible) == 0 {
		return task.Task{}, false
	}
	return m.visible[clampCursor(m.cursor, len(m.visible))], true
}

// boardOrder groups tasks by stage, keeping list order inside a stage.
// Unknown statuses sit with the backlog.
func boardOrder(tasks []task.Task) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, stage := range task.Stages() {
		for _, t := range tasks {
			if stageOf(t) == stage {
				out = append(out, t)
			}
		}
	}
	return out
}

func stageOf(t task.Task) task.Status {
	for _, s := range task.Stages() {
		if t.Status == s {
			return s
		}
	}
	return task.StatusBacklog
}

func cycle(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
