package streams

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/streams-cli/internal/application"
	"github.com/bnema/streams-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	dateLayout     = "Jan 02, 2006 15:04"
	tableBarWidth  = 12
	detailBarWidth = 40
)

type RenderOptions struct {
	ExplorerURL string
	Location    *time.Location
}

func (o RenderOptions) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

func renderList(views []application.StreamView, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Payment Streams"),
		s.legend.Render(fmt.Sprintf("streams: %d", len(views))),
	}

	if len(views) == 0 {
		lines = append(lines, s.empty.Render("No streams yet. Add one with `streams stream add` or `streams stream import FILE`."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, renderTable(views, opts, s))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTable(views []application.StreamView, opts RenderOptions, s styles) string {
	rows := make([][]string, 0, len(views))
	for _, view := range views {
		rows = append(rows, []string{
			domain.SliceAddress(string(view.Stream.ID), 8, 8),
			domain.SliceAddress(view.Stream.Sender, 4, 4),
			domain.SliceAddress(view.Stream.Recipient, 4, 4),
			formatAmount(view.Stream.TotalAmount.StringFixed(2), view.Stream.TokenSymbol),
			formatDate(view.Stream.StartTime, opts),
			formatDate(view.Stream.EndTime, opts),
			view.Stream.TokenSymbol,
			renderStatus(view.DisplayStatus),
			renderProgressBar(view.Split, tableBarWidth, s),
			renderCountdown(view.Countdown, s),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		}).
		Headers("ID", "Sender", "Receiver", "Amount", "Start Date", "End Date", "Token", "Status", "Progress", "Time Left").
		Rows(rows...).
		Render()
}

func renderDetail(view application.StreamView, opts RenderOptions, s styles) string {
	stream := view.Stream
	lines := []string{
		s.title.Render(fmt.Sprintf("Stream %s", stream.ID)),
		detailLine("Sender", stream.Sender, s),
		detailLine("Receiver", stream.Recipient, s),
		detailLine("Amount", formatAmount(stream.TotalAmount.String(), stream.TokenSymbol), s),
		detailLine("Start", formatDate(stream.StartTime, opts), s),
		detailLine("End", formatDate(stream.EndTime, opts), s),
		detailLine("Status", renderStatus(view.DisplayStatus), s),
		detailLine("Time left", renderCountdown(view.Countdown, s), s),
		s.section.Render(renderProgressBar(view.Split, detailBarWidth, s)),
	}
	lines = append(lines, legendLines(view.Split, stream.TokenSymbol, s)...)
	lines = append(lines, s.section.Render(renderActions(view, opts, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func detailLine(label, value string, s styles) string {
	if value == "" {
		value = "-"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, s.legend.Render(fmt.Sprintf("%-10s", label+":")), " ", s.mono.Render(value))
}

func legendLines(split domain.VestingSplit, symbol string, s styles) []string {
	return []string{
		s.barWithdrawn.Render(segmentLegend("Withdrawn", split.WithdrawnSize.StringFixed(4), symbol, split.WithdrawnPercent)),
		s.barVested.Render(segmentLegend("Vested", split.VestedNotWithdrawnSize.StringFixed(4), symbol, split.VestedPercent)),
		s.legend.Render(segmentLegend("Remaining", split.RemainingSize.StringFixed(4), symbol, split.RemainingPercent)),
		s.legend.Render(fmt.Sprintf("%.1f%% withdrawn / %.1f%% vested", split.WithdrawnPercent, split.TotalVestedPercent())),
	}
}

func segmentLegend(label, size, symbol string, percent float64) string {
	return fmt.Sprintf("%s: %s (%.1f%%)", label, formatAmount(size, symbol), percent)
}

func renderActions(view application.StreamView, opts RenderOptions, s styles) string {
	lines := []string{s.title.Render("Actions")}
	for _, action := range view.Actions {
		switch action {
		case domain.ActionWithdraw:
			lines = append(lines, s.actionPrimary.Render("• "+action.Label()))
		case domain.ActionViewOnExplorer:
			entry := "• " + action.Label()
			if opts.ExplorerURL != "" {
				entry += " " + domain.ExplorerURL(opts.ExplorerURL, view.Stream.ID)
			}
			lines = append(lines, s.action.Render(entry))
		default:
			lines = append(lines, s.action.Render("• "+action.Label()))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCards(cards []domain.FeatureCard, s styles) string {
	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		body := lipgloss.JoinVertical(
			lipgloss.Left,
			s.cardTitle.Render(card.Title),
			s.cardBody.Render(card.Description),
			"",
			lipgloss.JoinHorizontal(lipgloss.Top, s.cardLink.Render(card.LinkText), s.legend.Render(" → "+card.Link)),
		)
		rendered = append(rendered, s.card.Render(body))
	}

	lines := []string{s.title.Render("Dashboard")}
	if len(rendered) == 0 {
		lines = append(lines, s.empty.Render("No features available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, append(lines, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))...)
}

func renderStatus(status domain.StreamStatus) string {
	dot := lipgloss.NewStyle().Foreground(statusColor(status)).Render("●")
	return dot + " " + status.Label()
}

func renderCountdown(c domain.Countdown, s styles) string {
	switch {
	case c.Completed:
		return s.completed.Render(c.String())
	case c.Urgent():
		return s.urgent.Render(c.String())
	default:
		return s.countdown.Render(c.String())
	}
}

func renderProgressBar(split domain.VestingSplit, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	withdrawn, vested, remaining := barWidths(split, width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barWithdrawn.Render(strings.Repeat("#", withdrawn)),
		s.barVested.Render(strings.Repeat("=", vested)),
		s.barRemaining.Render(strings.Repeat("-", remaining)),
		s.barBracket.Render("]"),
	)
}

// barWidths rounds cumulative boundaries so the three segments always fill
// exactly width cells.
func barWidths(split domain.VestingSplit, width int) (withdrawn, vested, remaining int) {
	withdrawnEdge := cells(split.WithdrawnPercent, width)
	vestedEdge := cells(split.WithdrawnPercent+split.VestedPercent, width)
	if vestedEdge < withdrawnEdge {
		vestedEdge = withdrawnEdge
	}

	return withdrawnEdge, vestedEdge - withdrawnEdge, width - vestedEdge
}

func cells(percent float64, width int) int {
	return int(math.Round(float64(width) * clampPercent(percent) / 100))
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatAmount(amount, symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return amount
	}
	return amount + " " + symbol
}

func formatDate(t time.Time, opts RenderOptions) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(opts.location()).Format(dateLayout)
}
