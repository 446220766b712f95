// Package filter normalizes raw shell commands into records ready for
// delivery, applying minimum-length and exclusion-pattern rules and stamping
// each survivor with its content hash.
package filter

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/seanstash/seanstash-cli/internal/config"
)

// Record is a normalized command ready for delivery. Text is the trimmed
// original command, never rewritten further. Immutable once created.
type Record struct {
	Text       string
	Hash       string
	CapturedAt time.Time
	WorkingDir string
}

// Clock supplies the capture timestamp. Injected so filtering is
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// DirProvider supplies the working directory attached to records.
type DirProvider interface {
	WorkingDir() (string, error)
}

// ProcessDir reports the process's current working directory.
type ProcessDir struct{}

func (ProcessDir) WorkingDir() (string, error) { return os.Getwd() }

// Engine applies the configured filtering rules.
type Engine struct {
	minLength  int
	patterns   []*regexp.Regexp
	includeDir bool
	clock      Clock
	dir        DirProvider
	logger     *zap.Logger
}

// NewEngine creates an Engine from the filter configuration. Exclusion
// patterns are compiled as case-insensitive regular expressions; a pattern
// that fails to compile is demoted to a literal substring match with a
// warning rather than rejecting the whole configuration.
func NewEngine(cfg config.FilterConfig, clock Clock, dir DirProvider, logger *zap.Logger) *Engine {
	patterns := make([]*regexp.Regexp, 0, len(cfg.ExcludePatterns))
	for _, raw := range cfg.ExcludePatterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + raw)
		if err != nil {
			logger.Warn("invalid exclusion pattern, matching literally",
				zap.String("pattern", raw), zap.Error(err))
			re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(raw))
		}
		patterns = append(patterns, re)
	}

	return &Engine{
		minLength:  cfg.MinLength,
		patterns:   patterns,
		includeDir: cfg.IncludeWorkingDir,
		clock:      clock,
		dir:        dir,
		logger:     logger,
	}
}

// Filter trims each command, drops those shorter than the minimum length or
// matching any exclusion pattern, and turns the survivors into Records.
// Output order matches input order.
func (e *Engine) Filter(commands []string) []Record {
	var records []Record
	for _, cmd := range commands {
		cmd = strings.TrimSpace(cmd)
		if utf8.RuneCountInString(cmd) < e.minLength {
			continue
		}
		if e.excluded(cmd) {
			continue
		}

		record := Record{
			Text:       cmd,
			Hash:       Hash(cmd),
			CapturedAt: e.clock.Now(),
		}
		if e.includeDir {
			if dir, err := e.dir.WorkingDir(); err == nil {
				record.WorkingDir = dir
			} else {
				e.logger.Warn("could not determine working directory", zap.Error(err))
			}
		}
		records = append(records, record)
	}
	return records
}

func (e *Engine) excluded(cmd string) bool {
	for _, pattern := range e.patterns {
		if pattern.MatchString(cmd) {
			return true
		}
	}
	return false
}

// Hash returns the content hash identifying a command for dedup purposes.
// It is a pure function of the trimmed command text.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
