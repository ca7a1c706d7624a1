package streams

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/streams-cli/internal/application"
	"github.com/bnema/streams-cli/internal/domain"
	"github.com/bnema/streams-cli/internal/ports"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

const observationBuffer = 64

type WatchConfig struct {
	Load     func(context.Context) ([]domain.Stream, error)
	Clock    ports.Clock
	Interval time.Duration
	Reload   time.Duration
	Options  RenderOptions
	Log      logrus.FieldLogger
}

type streamsLoadedMsg struct {
	streams []domain.Stream
	err     error
}

type observedMsg struct {
	id domain.StreamID
}

type reloadTickMsg struct{}

type keyMap struct {
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reload, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Reload}, {k.Help, k.Quit}}
}

func newKeyMap() keyMap {
	return keyMap{
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// watchModel redraws whenever an observer samples. Each row is projected at
// its own observation time, so inactive rows stay frozen.
type watchModel struct {
	ctx      context.Context
	load     func(context.Context) ([]domain.Stream, error)
	registry *application.ObserverRegistry
	events   <-chan domain.StreamID
	clock    ports.Clock
	reload   time.Duration
	opts     RenderOptions
	log      logrus.FieldLogger

	streams  []domain.Stream
	err      error
	keys     keyMap
	help     help.Model
	styles   styles
	quitting bool
}

func newWatchModel(ctx context.Context, cfg WatchConfig, registry *application.ObserverRegistry, events <-chan domain.StreamID) watchModel {
	clock := cfg.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return watchModel{
		ctx:      ctx,
		load:     cfg.Load,
		registry: registry,
		events:   events,
		clock:    clock,
		reload:   cfg.Reload,
		opts:     cfg.Options,
		log:      cfg.Log,
		keys:     newKeyMap(),
		help:     help.New(),
		styles:   newStyles(),
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.listenCmd(), m.reloadTickCmd())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case streamsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.log.WithError(msg.err).Warn("reload streams")
			return m, nil
		}
		m.err = nil
		m.streams = msg.streams
		m.registry.Sync(msg.streams)
		return m, nil
	case observedMsg:
		return m, m.listenCmd()
	case reloadTickMsg:
		return m, tea.Batch(m.loadCmd(), m.reloadTickCmd())
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.registry.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			return m, m.loadCmd()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		m.styles.title.Render("Payment Streams (live)"),
		m.styles.legend.Render(fmt.Sprintf("streams: %d  sampling: %d", len(m.streams), m.samplingCount())),
	}
	if m.err != nil {
		lines = append(lines, m.styles.warning.Render("reload failed: "+m.err.Error()))
	}

	if len(m.streams) == 0 {
		lines = append(lines, m.styles.empty.Render("No streams to watch."))
	} else {
		lines = append(lines, renderTable(m.views(), m.opts, m.styles))
	}

	lines = append(lines, m.styles.section.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m watchModel) views() []application.StreamView {
	views := make([]application.StreamView, 0, len(m.streams))
	for _, stream := range m.streams {
		observedAt, ok := m.registry.Observation(stream.ID)
		if !ok {
			observedAt = m.clock.Now()
		}
		views = append(views, application.ViewAt(stream, observedAt))
	}
	return views
}

func (m watchModel) samplingCount() int {
	count := 0
	for _, stream := range m.streams {
		if m.registry.Sampling(stream.ID) {
			count++
		}
	}
	return count
}

func (m watchModel) loadCmd() tea.Cmd {
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		streams, err := load(ctx)
		return streamsLoadedMsg{streams: streams, err: err}
	}
}

func (m watchModel) listenCmd() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		id, ok := <-events
		if !ok {
			return nil
		}
		return observedMsg{id: id}
	}
}

func (m watchModel) reloadTickCmd() tea.Cmd {
	if m.reload <= 0 {
		return nil
	}
	return tea.Tick(m.reload, func(time.Time) tea.Msg {
		return reloadTickMsg{}
	})
}

// RunWatch runs the live view until the user quits or ctx ends. All
// observers are torn down before it returns.
func RunWatch(ctx context.Context, cfg WatchConfig, in io.Reader, out io.Writer) error {
	if cfg.Load == nil {
		return fmt.Errorf("watch: stream loader is required")
	}
	if cfg.Log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		cfg.Log = discard
	}

	// emit runs on observer goroutines; it must never block on the UI loop
	// because Sync waits for those goroutines while holding the update.
	events := make(chan domain.StreamID, observationBuffer)
	registry := application.NewObserverRegistry(cfg.Clock, cfg.Interval, func(id domain.StreamID, _ time.Time) {
		select {
		case events <- id:
		default:
		}
	}, cfg.Log)
	defer close(events)
	defer registry.Close()

	p := tea.NewProgram(
		newWatchModel(ctx, cfg, registry, events),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}

	return nil
}
