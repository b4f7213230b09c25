//go:build !ganttdebug

package gantt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColorFor(t *testing.T) {
	require.Equal(t, ColorRed, ColorFor(StatusOverdue))
	require.Equal(t, ColorGreen, ColorFor(StatusCompleted))
	require.Equal(t, ColorAmber, ColorFor(StatusInProgress))
	require.Equal(t, ColorGray, ColorFor(StatusNotStarted))
}

func TestColorFor_UnknownIsGray(t *testing.T) {
	require.Equal(t, ColorGray, ColorFor(Status("Blocked")))
}

func TestColorFor_Exhaustive(t *testing.T) {
	seen := map[Color]bool{}
	for _, s := range Statuses {
		seen[ColorFor(s)] = true
	}
	require.Len(t, seen, len(Statuses))
}
