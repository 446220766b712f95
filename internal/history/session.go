package history

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const sessionQueryTimeout = 5 * time.Second

// "  123  git status" -> "git status"
var sessionLinePattern = regexp.MustCompile(`^\s*\d+\s+(.*)$`)

// SessionSource captures commands from the current interactive session by
// asking the shell itself. The on-disk history file may lag behind a running
// session, so this fills the gap when the shell supports it.
type SessionSource struct {
	shell  string
	logger *zap.Logger
}

// NewSessionSource creates a SessionSource querying the given shell binary.
// An empty shell defaults to bash.
func NewSessionSource(shell string, logger *zap.Logger) *SessionSource {
	if shell == "" {
		shell = "bash"
	}
	return &SessionSource{
		shell:  shell,
		logger: logger,
	}
}

// Commands returns the commands of the current session, oldest first.
// The session query is best-effort: any failure degrades to an empty result
// with a warning in the log.
func (s *SessionSource) Commands(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, sessionQueryTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, s.shell, "-c", "history").Output()
	if err != nil {
		s.logger.Warn("could not query session history", zap.String("shell", s.shell), zap.Error(err))
		return nil
	}

	var commands []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if match := sessionLinePattern.FindStringSubmatch(line); match != nil {
			commands = append(commands, match[1])
		}
	}
	return commands
}
