// Package history reads shell command history from on-disk history files and
// the current interactive session, and provides line-number addressing over
// the most recent entries.
package history

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ErrSourceUnavailable indicates that no readable history file was found.
var ErrSourceUnavailable = errors.New("no readable shell history file found")

// FileSource reads commands from on-disk shell history files. The first
// existing file in the candidate list wins; zsh extended format and plain
// bash format are auto-detected per line.
type FileSource struct {
	candidates []string
	logger     *zap.Logger
}

// NewFileSource creates a FileSource over the given candidate history files,
// checked in order.
func NewFileSource(candidates []string, logger *zap.Logger) *FileSource {
	return &FileSource{
		candidates: candidates,
		logger:     logger,
	}
}

// Recent returns up to limit of the most recent commands, oldest first.
// A missing or unreadable history file is not an error; it degrades to an
// empty result with a warning in the log.
func (s *FileSource) Recent(limit int) []string {
	for _, path := range s.candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		commands, err := readHistoryFile(path)
		if err != nil {
			s.logger.Warn("could not read history file", zap.String("path", path), zap.Error(err))
			continue
		}
		if len(commands) > limit {
			commands = commands[len(commands)-limit:]
		}
		return commands
	}
	return nil
}

// All returns every command in the first readable history file, oldest first.
// Used for line-number addressing, which needs the full file to reconstruct
// the shell's numbering. Fails with ErrSourceUnavailable when no candidate
// file can be read.
func (s *FileSource) All() ([]string, error) {
	for _, path := range s.candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		commands, err := readHistoryFile(path)
		if err != nil {
			s.logger.Warn("could not read history file", zap.String("path", path), zap.Error(err))
			continue
		}
		return commands, nil
	}
	return nil, ErrSourceUnavailable
}

func readHistoryFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var commands []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if cmd, ok := ParseLine(scanner.Text()); ok {
			commands = append(commands, cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return commands, nil
}

// ParseLine extracts the command from a single history file line, detecting
// the format per line. Lines in zsh extended format
// (": <timestamp>:<duration>;<command>") yield the text after the first
// semicolon; any other non-blank line is the command itself, trimmed.
// Blank lines report ok=false.
func ParseLine(line string) (command string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}
	if strings.HasPrefix(trimmed, ": ") && strings.Contains(trimmed, ";") {
		return strings.SplitN(trimmed, ";", 2)[1], true
	}
	return trimmed, true
}

// Combine concatenates file history with session history and removes exact
// duplicates, keeping the first occurrence of each command.
func Combine(fileCommands, sessionCommands []string) []string {
	return lo.Uniq(append(fileCommands, sessionCommands...))
}
