package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var eventTypes = []string{"corporate", "casual", "birthday", "wedding", "conference", "team building"}

func TestScoreCompletions(t *testing.T) {
	require.Equal(t, eventTypes, ScoreCompletions("  ", eventTypes, 3))

	got := ScoreCompletions("wed", eventTypes, 0)
	require.NotEmpty(t, got)
	require.Equal(t, "wedding", got[0])

	got = ScoreCompletions("c", eventTypes, 2)
	require.Len(t, got, 2)

	require.Nil(t, ScoreCompletions("xyz", eventTypes, 5))
}
