//go:build ganttdebug

package gantt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColorFor_UnknownPanics(t *testing.T) {
	require.Panics(t, func() { ColorFor(Status("Blocked")) })
	require.NotPanics(t, func() { ColorFor(StatusOverdue) })
}
