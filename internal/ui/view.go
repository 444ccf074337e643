package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/config"
	"taskboard/internal/task"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	stageStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Italic(true)
	priorityStyle = map[task.Priority]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Taskboard"))
	b.WriteString("  ")
	b.WriteString(renderFilters(m.filters))
	b.WriteString("\n\n")

	if len(m.store.Tasks()) == 0 {
		b.WriteString(fmt.Sprintf("No tasks yet. Press '%s' to add one.", m.cfg.Keys.Add))
	} else if len(m.visible) == 0 {
		b.WriteString(fmt.Sprintf("No tasks match the filters. Press '%s' to clear them.", m.cfg.Keys.ClearFilters))
	} else {
		b.WriteString(m.renderBoard())
	}
	b.WriteString("\n")

	b.WriteString(panelStyle.Render(renderStats(task.Summarize(m.store.Tasks(), m.store.Now()))))
	b.WriteString("\n")

	switch m.mode {
	case modeForm:
		b.WriteString("\n")
		b.WriteString(m.form.render())
		b.WriteString("\n")
		b.WriteString("Field: " + m.form.currentLabel())
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeSearch, modeRemoveTag:
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(renderHelp(m.cfg.Keys))

	return b.String()
}

func (m Model) renderBoard() string {
	now := m.store.Now()
	var b strings.Builder
	i := 0
	for _, stage := range task.Stages() {
		var rows []string
		for i < len(m.visible) && stageOf(m.visible[i]) == stage {
			rows = append(rows, m.renderTask(i, m.visible[i], now))
			i++
		}
		b.WriteString(stageStyle.Render(fmt.Sprintf("%s (%d)", strings.ToUpper(string(stage)), len(rows))))
		b.WriteString("\n")
		for _, row := range rows {
			b.WriteString(row)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTask(i int, t task.Task, now time.Time) string {
	cursor := " "
	if m.cursor == i && m.mode == modeBoard {
		cursor = cursorStyle.Render(">")
	}
	pstyle, ok := priorityStyle[t.Priority]
	if !ok {
		pstyle = lipgloss.NewStyle()
	}
	parts := []string{cursor, pstyle.Render(fmt.Sprintf("[%s]", t.Priority)), t.Title}
	if t.Due != "" {
		due := "due " + t.Due
		switch {
		case t.Status != task.StatusDone && t.IsOverdue(now):
			due = overdueStyle.Render(due + " (overdue)")
		case t.IsDueToday(now):
			due += " (today)"
		}
		parts = append(parts, due)
	}
	if len(t.Tags) > 0 {
		parts = append(parts, tagStyle.Render("#"+strings.Join(t.Tags, " #")))
	}
	return strings.Join(parts, " ")
}

func renderFilters(f task.Filters) string {
	if !f.Active() {
		return "filters: none"
	}
	var parts []string
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, fmt.Sprintf("search:%q", q))
	}
	if f.Status != "" && f.Status != task.All {
		parts = append(parts, "status:"+f.Status)
	}
	if f.Priority != "" && f.Priority != task.All {
		parts = append(parts, "priority:"+f.Priority)
	}
	if f.Horizon != "" && f.Horizon != task.HorizonAll {
		parts = append(parts, "due:"+string(f.Horizon))
	}
	return "filters: " + strings.Join(parts, " • ")
}

func renderStats(st task.Stats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Tasks %d • Done %d • Overdue %d • Health %d%%\n", st.Total, st.Done, st.Overdue, st.Health))
	if st.Focus != nil {
		b.WriteString(fmt.Sprintf("Focus: %s (%s)\n", st.Focus.Title, st.Focus.Status))
	} else {
		b.WriteString("Focus: nothing pending\n")
	}
	b.WriteString("Momentum:")
	if len(st.Flow) == 0 {
		b.WriteString(" no completed tasks yet")
	}
	for _, t := range st.Flow {
		b.WriteString("\n  ✓ " + t.Title)
		if t.Due != "" {
			b.WriteString(" (" + t.Due + ")")
		}
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s delete • %s/%s stage • %s untag • %s search • %s/%s/%s filter • %s clear • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Retreat, k.Advance, k.RemoveTag, k.Search,
		k.CycleStatus, k.CyclePriority, k.CycleHorizon, k.ClearFilters, k.Quit)
}
