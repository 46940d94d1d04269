package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var errInterrupted = errors.New("interrupted")

type doneMsg struct {
	err error
}

type spinnerModel struct {
	spinner spinner.Model
	title   string
	run     tea.Cmd
	cancel  context.CancelFunc

	interrupted bool
	done        bool
	err         error
}

func newSpinnerModel(title string, run func() error, cancel context.CancelFunc) spinnerModel {
	return spinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("57"))),
		),
		title:  title,
		cancel: cancel,
		run: func() tea.Msg {
			return doneMsg{err: run()}
		},
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err

		if m.interrupted && msg.err != nil {
			m.err = fmt.Errorf("%w, earlier groups may already be in the ledger: %w", errInterrupted, msg.err)
		}

		return m, tea.Quit
	case tea.KeyMsg:
		// The run keeps going until it observes the cancellation.
		if msg.Type == tea.KeyCtrlC && !m.interrupted {
			m.interrupted = true
			m.title = "Cancelling, waiting for the current ledger call..."
			m.cancel()
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}

	return m.spinner.View() + " " + m.title + "\n"
}

// withSpinner runs fn, animating a spinner on out when out is a terminal.
// An interrupt cancels the context handed to fn; withSpinner still returns
// only once fn has.
func withSpinner(ctx context.Context, out io.Writer, title string, fn func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !isTerminal(out) {
		return fn(ctx)
	}

	p := tea.NewProgram(newSpinnerModel(title, func() error { return fn(ctx) }, cancel), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run spinner: %w", err)
	}

	return final.(spinnerModel).err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	info, err := f.Stat()

	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
