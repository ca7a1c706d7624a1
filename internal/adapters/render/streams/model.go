package streams

import (
	"errors"
	"io"

	"github.com/bnema/streams-cli/internal/application"
	"github.com/bnema/streams-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

// model renders one frame and quits.
type model struct {
	render func(styles) string
	styles styles
	output string
}

func newModel(render func(styles) string) model {
	return model{
		render: render,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.render(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws the stream table.
func Render(views []application.StreamView, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderList(views, opts, s)
	})
}

// RenderDetail draws one stream with its progress legend and actions.
func RenderDetail(view application.StreamView, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderDetail(view, opts, s)
	})
}

func RenderCards(cards []domain.FeatureCard) (string, error) {
	return run(func(s styles) string {
		return renderCards(cards, s)
	})
}

func run(render func(styles) string) (string, error) {
	p := tea.NewProgram(
		newModel(render),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
