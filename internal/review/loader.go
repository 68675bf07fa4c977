// Package review implements the interactive filter-review TUI. It runs each
// posting through the pipeline with a fresh seen-set and shows accepted and
// rejected jobs side by side, so filter settings can be tuned without
// touching the fingerprint store.
package review

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/model"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// RejectedJob pairs a normalized job with the filter reason that excluded it.
type RejectedJob struct {
	Job    model.ProcessedJob
	Reason string
}

// Result is the outcome of fetching and evaluating one source.
type Result struct {
	Accepted []model.ProcessedJob
	Rejected []RejectedJob
}

type fetchDoneMsg struct {
	result Result
	err    error
}

type spinnerTickMsg struct{}

type loaderModel struct {
	sourceName string
	term       string
	fetchFn    func(ctx context.Context) (Result, error)
	frame      int
	result     Result
	err        error
	done       bool
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doFetch(), m.tick())
}

func (m loaderModel) doFetch() tea.Cmd {
	fetchFn := m.fetchFn
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		result, err := fetchFn(ctx)
		return fetchDoneMsg{result: result, err: err}
	}
}

func (m loaderModel) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		m.result = msg.result
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinnerTickMsg:
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, m.tick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = fmt.Errorf("cancelled")
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	spinner := lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Render(spinnerFrames[m.frame])
	return fmt.Sprintf("%s Searching %s for %q...\n", spinner, m.sourceName, m.term)
}

// RunLoader shows a spinner while fetching and evaluating postings.
// It renders inline (no alt screen).
func RunLoader(sourceName, term string, fetchFn func(ctx context.Context) (Result, error)) (Result, error) {
	m := loaderModel{
		sourceName: sourceName,
		term:       term,
		fetchFn:    fetchFn,
	}
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	final := result.(loaderModel)
	return final.result, final.err
}
