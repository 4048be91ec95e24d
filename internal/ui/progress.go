// Package ui renders live batch progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bigcalc/internal/batch"
)

type progressModel struct {
	title   string
	events  <-chan batch.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool
}

type fileItem struct {
	path   string
	status batch.Status
	detail string
}

type eventMsg batch.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that shows one row per file and
// an overall progress bar. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan batch.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: batch.StatusQueued})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(batch.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	finished := m.finished()
	header := fmt.Sprintf("%s %d/%d", m.title, finished, len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 8
	nameWidth := max(m.width-statusWidth-24, 20)
	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, item.status))
		fmt.Fprintf(&b, "  %s %s", status, truncate(item.path, nameWidth))
		if item.detail != "" {
			b.WriteString("  ")
			b.WriteString(lipgloss.NewStyle().Faint(true).Render(item.detail))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev batch.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	item.status = ev.Status
	switch ev.Status {
	case batch.StatusDone, batch.StatusCached:
		item.detail = fmt.Sprintf("%d lines", ev.Lines)
		if ev.Failed > 0 {
			item.detail += fmt.Sprintf(", %d failed", ev.Failed)
		}
	case batch.StatusError:
		if ev.Err != nil {
			item.detail = ev.Err.Error()
		}
	}
	return m.prog.SetPercent(float64(m.finished()) / float64(len(m.items)))
}

func (m *progressModel) finished() int {
	n := 0
	for _, item := range m.items {
		if isFinal(item.status) {
			n++
		}
	}
	return n
}

func isFinal(s batch.Status) bool {
	return s == batch.StatusDone || s == batch.StatusCached || s == batch.StatusError
}

func styleStatus(status batch.Status) lipgloss.Style {
	switch status {
	case batch.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case batch.StatusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	case batch.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case batch.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
