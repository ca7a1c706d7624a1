package streams

import (
	"github.com/bnema/streams-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title         lipgloss.Style
	header        lipgloss.Style
	cell          lipgloss.Style
	mono          lipgloss.Style
	section       lipgloss.Style
	empty         lipgloss.Style
	warning       lipgloss.Style
	legend        lipgloss.Style
	border        lipgloss.Style
	barBracket    lipgloss.Style
	barWithdrawn  lipgloss.Style
	barVested     lipgloss.Style
	barRemaining  lipgloss.Style
	countdown     lipgloss.Style
	urgent        lipgloss.Style
	completed     lipgloss.Style
	cardTitle     lipgloss.Style
	cardBody      lipgloss.Style
	cardLink      lipgloss.Style
	card          lipgloss.Style
	action        lipgloss.Style
	actionPrimary lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:         lipgloss.NewStyle().Bold(true),
		header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241")).Padding(0, 1),
		cell:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1),
		mono:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		section:       lipgloss.NewStyle().MarginTop(1),
		empty:         lipgloss.NewStyle().Faint(true),
		warning:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		legend:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		border:        lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		barBracket:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barWithdrawn:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		barVested:     lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		barRemaining:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		countdown:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		urgent:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		completed:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		cardTitle:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		cardBody:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(48),
		cardLink:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		card:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
		action:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		actionPrimary: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("40")),
	}
}

// statusColor maps a display status to its indicator color.
func statusColor(status domain.StreamStatus) lipgloss.Color {
	switch status.Label() {
	case "active":
		return lipgloss.Color("40")
	case "canceled":
		return lipgloss.Color("196")
	case "transferred":
		return lipgloss.Color("33")
	case "paused":
		return lipgloss.Color("208")
	default:
		return lipgloss.Color("245")
	}
}
