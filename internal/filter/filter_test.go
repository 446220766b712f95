package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seanstash/seanstash-cli/internal/config"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fixedDir struct {
	dir string
	err error
}

func (d fixedDir) WorkingDir() (string, error) { return d.dir, d.err }

func newTestEngine(t *testing.T, cfg config.FilterConfig) *Engine {
	t.Helper()
	clock := fixedClock{now: time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)}
	return NewEngine(cfg, clock, fixedDir{dir: "/work"}, zap.NewNop())
}

func TestFilterRules(t *testing.T) {
	engine := newTestEngine(t, config.Default().Filters)

	t.Run("short and excluded commands are dropped", func(t *testing.T) {
		records := engine.Filter([]string{"ls", "kubectl get pods", "hi"})
		require.Len(t, records, 1)
		assert.Equal(t, "kubectl get pods", records[0].Text)
	})

	t.Run("exclusion patterns are case-insensitive substring matches", func(t *testing.T) {
		records := engine.Filter([]string{"export MY_TOKEN=abc", "echo the PASSWORD is hunter2"})
		assert.Empty(t, records)
	})

	t.Run("text is trimmed but otherwise untouched", func(t *testing.T) {
		records := engine.Filter([]string{"  kubectl   get   pods  "})
		require.Len(t, records, 1)
		assert.Equal(t, "kubectl   get   pods", records[0].Text)
	})

	t.Run("output order matches input order", func(t *testing.T) {
		records := engine.Filter([]string{"make build", "make test", "make install"})
		require.Len(t, records, 3)
		assert.Equal(t, "make build", records[0].Text)
		assert.Equal(t, "make test", records[1].Text)
		assert.Equal(t, "make install", records[2].Text)
	})
}

func TestFilterMetadata(t *testing.T) {
	t.Run("records carry clock time and working dir", func(t *testing.T) {
		engine := newTestEngine(t, config.Default().Filters)
		records := engine.Filter([]string{"make build"})
		require.Len(t, records, 1)

		assert.Equal(t, time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC), records[0].CapturedAt)
		assert.Equal(t, "/work", records[0].WorkingDir)
	})

	t.Run("working dir omitted when disabled", func(t *testing.T) {
		cfg := config.Default().Filters
		cfg.IncludeWorkingDir = false
		engine := newTestEngine(t, cfg)

		records := engine.Filter([]string{"make build"})
		require.Len(t, records, 1)
		assert.Empty(t, records[0].WorkingDir)
	})
}

func TestHash(t *testing.T) {
	t.Run("deterministic for identical text", func(t *testing.T) {
		assert.Equal(t, Hash("git status"), Hash("git status"))
	})

	t.Run("case preserving", func(t *testing.T) {
		assert.NotEqual(t, Hash("git status"), Hash("Git Status"))
	})

	t.Run("independent of record metadata", func(t *testing.T) {
		engine := newTestEngine(t, config.Default().Filters)
		records := engine.Filter([]string{"make build"})
		require.Len(t, records, 1)
		assert.Equal(t, Hash("make build"), records[0].Hash)
	})
}

func TestInvalidPatternFallsBackToLiteral(t *testing.T) {
	cfg := config.FilterConfig{
		MinLength:       1,
		ExcludePatterns: []string{"deploy[prod"},
	}
	engine := newTestEngine(t, cfg)

	records := engine.Filter([]string{"run deploy[prod now", "run deployX now"})
	require.Len(t, records, 1)
	assert.Equal(t, "run deployX now", records[0].Text)
}
