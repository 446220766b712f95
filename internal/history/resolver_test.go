package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindow(t *testing.T, total int) *Window {
	t.Helper()
	window, err := BuildWindow(numberedCommands(total))
	require.NoError(t, err)
	return window
}

func TestResolveRangeSingle(t *testing.T) {
	window := testWindow(t, 1000)

	t.Run("present line resolves", func(t *testing.T) {
		resolved, err := ResolveRange("500", window)
		require.NoError(t, err)
		require.Len(t, resolved, 1)
		assert.Equal(t, "cmd-500", resolved[0].Command)
		assert.True(t, resolved[0].Found)
	})

	t.Run("leading bang is accepted", func(t *testing.T) {
		resolved, err := ResolveRange("!500", window)
		require.NoError(t, err)
		assert.Equal(t, "cmd-500", resolved[0].Command)
	})

	t.Run("line outside the window reports bounds", func(t *testing.T) {
		_, err := ResolveRange("50", window)

		var notFound *LineNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, 50, notFound.Line)
		assert.Equal(t, 201, notFound.Min)
		assert.Equal(t, 1000, notFound.Max)
	})

	t.Run("non-numeric spec is invalid", func(t *testing.T) {
		_, err := ResolveRange("abc", window)

		var invalid *InvalidSpecError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestResolveRangeSpan(t *testing.T) {
	window := testWindow(t, 1000)

	t.Run("range resolves in ascending order", func(t *testing.T) {
		resolved, err := ResolveRange("300-302", window)
		require.NoError(t, err)

		commands := Commands(resolved)
		assert.Equal(t, []string{"cmd-300", "cmd-301", "cmd-302"}, commands)
	})

	t.Run("missing lines inside the range are skipped", func(t *testing.T) {
		resolved, err := ResolveRange("199-202", window)
		require.NoError(t, err)
		require.Len(t, resolved, 4)

		assert.False(t, resolved[0].Found)
		assert.False(t, resolved[1].Found)
		assert.True(t, resolved[2].Found)
		assert.Equal(t, []string{"cmd-201", "cmd-202"}, Commands(resolved))
	})

	t.Run("range with nothing present fails", func(t *testing.T) {
		_, err := ResolveRange("10-20", window)

		var empty *EmptyRangeError
		require.ErrorAs(t, err, &empty)
		assert.Equal(t, 10, empty.Start)
		assert.Equal(t, 20, empty.End)
	})

	t.Run("reversed range resolves nothing", func(t *testing.T) {
		_, err := ResolveRange("302-300", window)

		var empty *EmptyRangeError
		assert.ErrorAs(t, err, &empty)
	})

	t.Run("non-numeric bounds are an invalid range", func(t *testing.T) {
		for _, spec := range []string{"300-abc", "abc-302", "300-302-304"} {
			_, err := ResolveRange(spec, window)

			var invalid *InvalidRangeFormatError
			assert.ErrorAs(t, err, &invalid, "spec %q", spec)
		}
	})
}
