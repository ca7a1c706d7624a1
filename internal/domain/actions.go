package domain

import "strings"

type StreamAction string

const (
	ActionWithdraw       StreamAction = "withdraw"
	ActionViewOnExplorer StreamAction = "explorer"
	ActionCopyStreamID   StreamAction = "copy-id"
)

func (a StreamAction) Label() string {
	switch a {
	case ActionWithdraw:
		return "Withdraw"
	case ActionViewOnExplorer:
		return "View on Explorer"
	case ActionCopyStreamID:
		return "Copy Stream ID"
	default:
		return string(a)
	}
}

// Actions lists the row menu entries for a stream. Withdraw is offered only
// while the stream is active.
func Actions(s Stream) []StreamAction {
	actions := make([]StreamAction, 0, 3)
	if s.Status.IsActive() {
		actions = append(actions, ActionWithdraw)
	}

	return append(actions, ActionViewOnExplorer, ActionCopyStreamID)
}

func ExplorerURL(base string, id StreamID) string {
	return strings.TrimRight(base, "/") + "/tx/" + string(id)
}

// SliceAddress shortens long identifiers to their first head and last tail
// characters.
func SliceAddress(address string, head, tail int) string {
	runes := []rune(strings.TrimSpace(address))
	if head < 0 {
		head = 0
	}
	if tail < 0 {
		tail = 0
	}
	if len(runes) <= head+tail {
		return string(runes)
	}

	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}
