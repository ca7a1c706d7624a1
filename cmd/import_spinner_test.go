package cmd

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/bnema/streams-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoStreams(string) ([]domain.Stream, error) {
	return []domain.Stream{{ID: "s-1"}, {ID: "s-2"}}, nil
}

func TestFeedImportRunRecordsPartialSave(t *testing.T) {
	diskFull := errors.New("disk full")
	feed := &feedImport{
		path: "/tmp/feed.json",
		read: twoStreams,
		store: func(context.Context, []domain.Stream) (int, error) {
			return 1, diskFull
		},
	}

	err := feed.run(context.Background())
	require.ErrorIs(t, err, diskFull)
	assert.Equal(t, 2, feed.total)
	assert.Equal(t, 1, feed.saved)
}

func TestImportSpinnerModelWalksReadThenSave(t *testing.T) {
	var stored []domain.Stream
	m := newImportSpinnerModel(context.Background(), feedImport{
		path: "/data/feeds/march.json",
		read: twoStreams,
		store: func(_ context.Context, streams []domain.Stream) (int, error) {
			stored = streams
			return len(streams), nil
		},
	})
	assert.Contains(t, m.View(), "Reading march.json...")

	decoded := m.readCmd()()
	updated, cmd := m.Update(decoded)
	require.NotNil(t, cmd)
	assert.Contains(t, updated.View(), "Saving 2 streams from march.json...")

	updated, cmd = updated.Update(cmd())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Len(t, stored, 2)

	final := updated.(importSpinnerModel)
	assert.Equal(t, 2, final.feed.saved)
	assert.NoError(t, final.err)
	assert.Empty(t, final.View())
}

func TestImportSpinnerModelStopsOnReadError(t *testing.T) {
	readErr := errors.New("record 0: ID is required")
	m := newImportSpinnerModel(context.Background(), feedImport{
		path: "feed.json",
		read: func(string) ([]domain.Stream, error) { return nil, readErr },
		store: func(context.Context, []domain.Stream) (int, error) {
			t.Fatal("store must not run after a read error")
			return 0, nil
		},
	})

	updated, cmd := m.Update(m.readCmd()())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, updated.(importSpinnerModel).err, readErr)
}

func TestRunImportSpinnerReportsCounts(t *testing.T) {
	feed := &feedImport{
		path: "feed.json",
		read: twoStreams,
		store: func(_ context.Context, streams []domain.Stream) (int, error) {
			return len(streams), nil
		},
	}

	require.NoError(t, runImportSpinner(context.Background(), io.Discard, feed))
	assert.Equal(t, 2, feed.total)
	assert.Equal(t, 2, feed.saved)
}
