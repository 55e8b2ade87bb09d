package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"entdef/internal/pipeline"
)

const (
	labelQueued    = "queued"
	labelLoading   = "loading"
	labelLoaded    = "loaded"
	labelResolving = "resolving"
	labelCached    = "cached"
	labelDone      = "done"
	labelError     = "error"
)

type progressModel struct {
	title      string
	events     <-chan pipeline.Event
	spinner    spinner.Model
	prog       progress.Model
	items      []fileItem
	index      map[string]int
	stageLabel string
	percent    float64
	width      int
	done       bool
}

type fileItem struct {
	path  string
	label string
}

type eventMsg pipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file progress
// of a pipeline run. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	return newProgressModel(title, files, events)
}

func newProgressModel(title string, files []string, events <-chan pipeline.Event) *progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, label: labelQueued})
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
		cmd := m.applyEvent(pipeline.Event(msg))
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
			m.prog.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.stageLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.stageLabel)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const labelWidth = 10
	nameWidth := max(m.width-labelWidth-4, 20)
	for _, item := range m.items {
		label := styleLabel(item.label).Render(fmt.Sprintf("%*s", labelWidth, item.label))
		fmt.Fprintf(&b, "  %s %s\n", label, truncate(item.path, nameWidth))
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

// applyEvent updates the item of ev.File. Events without a file describe the
// combined resolution and apply to every file that loaded.
func (m *progressModel) applyEvent(ev pipeline.Event) tea.Cmd {
	label := eventLabel(ev.Stage, ev.Status)
	if label == "" {
		return nil
	}
	if ev.File == "" {
		if ev.Stage == pipeline.StageCache {
			return nil
		}
		m.stageLabel = label
		for i := range m.items {
			if m.items[i].label != labelError {
				m.items[i].label = label
			}
		}
	} else {
		idx, ok := m.index[ev.File]
		if !ok {
			return nil
		}
		m.items[idx].label = label
	}

	total := 0.0
	for _, item := range m.items {
		total += labelProgress(item.label)
	}
	m.percent = total / float64(len(m.items))
	return m.prog.SetPercent(m.percent)
}

func eventLabel(stage pipeline.Stage, status pipeline.Status) string {
	switch status {
	case pipeline.StatusQueued:
		return labelQueued
	case pipeline.StatusError:
		return labelError
	case pipeline.StatusWorking:
		switch stage {
		case pipeline.StageLoad:
			return labelLoading
		case pipeline.StageResolve:
			return labelResolving
		case pipeline.StageCache:
		}
	case pipeline.StatusDone:
		switch stage {
		case pipeline.StageLoad:
			return labelLoaded
		case pipeline.StageResolve:
			return labelDone
		case pipeline.StageCache:
			return labelCached
		}
	}
	return ""
}

func labelProgress(label string) float64 {
	switch label {
	case labelLoading:
		return 0.2
	case labelLoaded:
		return 0.6
	case labelResolving:
		return 0.8
	case labelDone, labelCached, labelError:
		return 1.0
	}
	return 0.0
}

func styleLabel(label string) lipgloss.Style {
	switch label {
	case labelDone, labelCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case labelError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case labelLoading, labelLoaded, labelResolving:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
