package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/bnema/streams-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// feedImport reads a feed file and stores its records. total is known once
// the feed decodes; saved may be lower when a write fails midway.
type feedImport struct {
	path  string
	read  func(string) ([]domain.Stream, error)
	store func(context.Context, []domain.Stream) (int, error)

	total int
	saved int
}

func (f *feedImport) run(ctx context.Context) error {
	streams, err := f.read(f.path)
	if err != nil {
		return err
	}
	f.total = len(streams)

	f.saved, err = f.store(ctx, streams)
	return err
}

type feedDecodedMsg struct {
	streams []domain.Stream
	err     error
}

type feedStoredMsg struct {
	saved int
	err   error
}

// importSpinnerModel walks the two phases of an import, reading then
// saving, and names the feed and record count in its label.
type importSpinnerModel struct {
	ctx     context.Context
	spinner spinner.Model
	feed    feedImport
	label   string
	err     error
	done    bool
}

func newImportSpinnerModel(ctx context.Context, feed feedImport) importSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return importSpinnerModel{
		ctx:     ctx,
		spinner: s,
		feed:    feed,
		label:   fmt.Sprintf("Reading %s...", filepath.Base(feed.path)),
	}
}

func (m importSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.readCmd())
}

func (m importSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case feedDecodedMsg:
		if msg.err != nil {
			m.done = true
			m.err = msg.err
			return m, tea.Quit
		}
		m.feed.total = len(msg.streams)
		m.label = fmt.Sprintf("Saving %d streams from %s...", m.feed.total, filepath.Base(m.feed.path))
		return m, m.storeCmd(msg.streams)
	case feedStoredMsg:
		m.done = true
		m.feed.saved = msg.saved
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m importSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func (m importSpinnerModel) readCmd() tea.Cmd {
	read, path := m.feed.read, m.feed.path
	return func() tea.Msg {
		streams, err := read(path)
		return feedDecodedMsg{streams: streams, err: err}
	}
}

func (m importSpinnerModel) storeCmd(streams []domain.Stream) tea.Cmd {
	ctx, store := m.ctx, m.feed.store
	return func() tea.Msg {
		saved, err := store(ctx, streams)
		return feedStoredMsg{saved: saved, err: err}
	}
}

func runImportSpinner(ctx context.Context, output io.Writer, feed *feedImport) error {
	p := tea.NewProgram(
		newImportSpinnerModel(ctx, *feed),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(importSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	feed.total = result.feed.total
	feed.saved = result.feed.saved
	return result.err
}
