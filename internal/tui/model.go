// Package tui shows batch progress in a Bubbletea program.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cwbudde/algo-denoise/batch"
	"github.com/cwbudde/algo-denoise/internal/report"
)

// FileStatus is the state of one file in the queue.
type FileStatus int

const (
	StatusQueued FileStatus = iota
	StatusProcessing
	StatusComplete
	StatusError
)

// FileProgress tracks one file.
type FileProgress struct {
	Input       string
	Status      FileStatus
	Result      *batch.FileResult
	Err         error
	StartTime   time.Time
	ElapsedTime time.Duration
}

// EventMsg wraps a batch.Event.
type EventMsg batch.Event

// DoneMsg is sent once the batch returned.
type DoneMsg struct {
	Summary *batch.Summary
	Err     error
}

// Model is the Bubbletea model of a batch run.
type Model struct {
	Method    string
	Files     []FileProgress
	Completed int
	Failed    int
	StartTime time.Time

	Done    bool
	Summary *batch.Summary
	Err     error

	// Events feeds progress from the batch goroutine.
	Events chan tea.Msg
	cancel context.CancelFunc
}

// NewModel queues inputs. cancel, if not nil, is called when the user
// quits early.
func NewModel(method string, inputs []string, cancel context.CancelFunc) Model {
	files := make([]FileProgress, len(inputs))
	for i, in := range inputs {
		files[i] = FileProgress{Input: in}
	}
	return Model{
		Method:    method,
		Files:     files,
		StartTime: time.Now(),
		Events:    make(chan tea.Msg, 16),
		cancel:    cancel,
	}
}

// Progress returns a batch progress callback that feeds m.
func (m Model) Progress() func(batch.Event) {
	return func(e batch.Event) { m.Events <- EventMsg(e) }
}

// Finish reports the batch outcome to the model and closes Events. The
// progress callback must not be called afterwards.
func (m Model) Finish(sum *batch.Summary, err error) {
	m.Events <- DoneMsg{Summary: sum, Err: err}
	close(m.Events)
}

func (m Model) Init() tea.Cmd {
	return waitFor(m.Events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case EventMsg:
		m = m.apply(batch.Event(msg))
		return m, waitFor(m.Events)

	case DoneMsg:
		m.Done = true
		m.Summary = msg.Summary
		m.Err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) apply(e batch.Event) Model {
	if e.Index < 0 || e.Index >= len(m.Files) {
		return m
	}
	files := append([]FileProgress(nil), m.Files...)
	fp := &files[e.Index]
	switch e.Kind {
	case batch.FileStarted:
		fp.Status = StatusProcessing
		fp.StartTime = time.Now()
	case batch.FileDone:
		fp.Status = StatusComplete
		fp.Result = e.Result
		fp.ElapsedTime = time.Since(fp.StartTime)
		m.Completed++
	case batch.FileFailed:
		fp.Status = StatusError
		fp.Err = e.Err
		fp.ElapsedTime = time.Since(fp.StartTime)
		m.Failed++
	}
	m.Files = files
	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(report.TitleStyle.Render("denoise " + m.Method))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true).
		Render(fmt.Sprintf("%d/%d file(s), %d failed", m.Completed+m.Failed, len(m.Files), m.Failed)))
	b.WriteString("\n\n")

	for _, f := range m.Files {
		b.WriteString(renderEntry(f))
		b.WriteString("\n")
	}
	if m.Done {
		fmt.Fprintf(&b, "\nfinished in %v\n", time.Since(m.StartTime).Round(time.Millisecond))
	}
	return b.String()
}

func renderEntry(f FileProgress) string {
	name := filepath.Base(f.Input)
	switch f.Status {
	case StatusComplete:
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Render("✓")
		return fmt.Sprintf(" %s %s → %s  %s", icon, name, filepath.Base(f.Result.Output), report.Gain(f.Result.Improvement))
	case StatusProcessing:
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("⚙")
		return fmt.Sprintf(" %s %s", icon, name)
	case StatusError:
		icon := report.ErrorStyle.Render("✗")
		return fmt.Sprintf(" %s %s\n   Error: %v", icon, name, f.Err)
	default:
		return fmt.Sprintf("   %s", lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(name))
	}
}

func waitFor(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
