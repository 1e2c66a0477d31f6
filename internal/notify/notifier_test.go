package notify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_FillsIDAndTimestamp(t *testing.T) {
	t.Parallel()

	n := New(LevelSuccess, "delivery accepted")
	require.NotEmpty(t, n.ID)
	require.False(t, n.At.IsZero())
	require.Equal(t, LevelSuccess, n.Level)
	require.Equal(t, "delivery accepted", n.Message)
}

func TestFanout_ReachesEveryTarget(t *testing.T) {
	t.Parallel()

	a, b := NewRecorder(), NewRecorder()
	f := Fanout{a, nil, b}

	Success(f, "done")
	Error(f, "failed")

	require.Len(t, a.Sent(), 2)
	require.Len(t, b.Sent(), 2)
	require.Equal(t, 1, a.CountLevel(LevelError))
}

func TestHelpers_NilNotifierIsSafe(t *testing.T) {
	t.Parallel()

	Success(nil, "done")
	Error(nil, "failed")
}
