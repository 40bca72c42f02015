package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/print-relay/internal/core"
)

type model struct {
	styles  styles
	source  statusSource
	server  string
	every   time.Duration
	limit   int
	spinner spinner.Model

	queue    *core.QueueStatus
	jobs     []*core.JobRecord
	lastErr  error
	lastPoll time.Time
	width    int
}

func initialModel(src statusSource, server string, theme ThemeName, every time.Duration, limit int) *model {
	st := GetTheme(theme)
	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = st.label

	return &model{
		styles:  st,
		source:  src,
		server:  server,
		every:   every,
		limit:   limit,
		spinner: sp,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(pollCmd(m.source, m.limit, m.every), m.spinner.Tick)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "r":
			return m, pollCmd(m.source, m.limit, m.every)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case snapshotMsg:
		m.lastPoll = time.Now()
		m.lastErr = msg.err
		if msg.err == nil {
			m.queue = msg.queue
			m.jobs = msg.jobs
		}
		return m, tickCmd(m.every)

	case tickMsg:
		return m, pollCmd(m.source, m.limit, m.every)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("PRINT-RELAY MONITOR  " + m.server))
	b.WriteString("\n")

	switch {
	case m.lastErr != nil:
		b.WriteString(m.styles.error.Render("⚠ " + m.lastErr.Error()))
		b.WriteString("\n")
	case m.queue == nil:
		b.WriteString(m.spinner.View() + " connecting...\n")
	}

	if m.queue != nil {
		b.WriteString(m.renderQueue())
		b.WriteString("\n\n")
		b.WriteString(m.renderJobs())
	}

	footer := "q quit • r refresh"
	if !m.lastPoll.IsZero() {
		footer += " • updated " + m.lastPoll.Format(time.TimeOnly)
	}
	b.WriteString(m.styles.footer.Render(m.styles.inactive.Render(footer)))
	return m.styles.app.Render(b.String())
}

func (m *model) renderQueue() string {
	q := m.queue
	state := string(q.State)
	switch q.State {
	case core.QueueBusy:
		state = m.spinner.View() + " " + m.styles.warning.Render(state)
	case core.QueueStopped:
		state = m.styles.error.Render(state)
	default:
		state = m.styles.success.Render(state)
	}

	fields := []string{
		m.styles.label.Render("state ") + state,
		m.styles.label.Render("pending ") + fmt.Sprint(q.Pending),
		m.styles.label.Render("processed ") + fmt.Sprint(q.Processed),
	}
	if q.Current != "" {
		fields = append(fields, m.styles.label.Render("current ")+q.Current)
	}
	return strings.Join(fields, "   ")
}

func (m *model) renderJobs() string {
	if len(m.jobs) == 0 {
		return m.styles.inactive.Render("no jobs recorded yet")
	}
	rows := make([]string, 0, len(m.jobs)+1)
	rows = append(rows, m.styles.label.Render(fmt.Sprintf("%-8s  %-8s  %-10s  %8s  %s", "JOB", "STATUS", "KIND", "TOOK", "SOURCE")))
	for _, rec := range m.jobs {
		id := rec.JobID
		if len(id) > 8 {
			id = id[:8]
		}
		kind := string(rec.ErrorKind)
		if kind == "" {
			kind = "-"
		}
		line := fmt.Sprintf("%-8s  %-8s  %-10s  %8s  %s", id, rec.Status, kind, rec.Duration().Round(time.Millisecond), rec.SourceURI)
		rows = append(rows, m.statusStyle(rec.Status).Render(line))
	}
	out := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if m.width > 0 {
		out = lipgloss.NewStyle().MaxWidth(m.width - 2).Render(out)
	}
	return out
}

func (m *model) statusStyle(s core.JobStatus) lipgloss.Style {
	switch s {
	case core.JobStatusPrinted:
		return lipgloss.NewStyle()
	case core.JobStatusSkipped:
		return m.styles.warning
	default:
		return m.styles.error
	}
}
