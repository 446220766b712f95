package history

// WindowSize bounds how many of the most recent history entries are
// addressable by line number.
const WindowSize = 800

// Window is a line-numbered view over the most recent history entries.
// Line numbers are assigned so the newest entry gets the file's total entry
// count and numbering decreases contiguously going back, matching what an
// interactive shell reports when history is flushed to disk per command
// (zsh INC_APPEND_HISTORY or equivalent). When the shell buffers history
// writes, the reconstructed numbers drift from the interactive ones; the
// mapping is best-effort, not authoritative.
type Window struct {
	lines    map[int]string
	min, max int
}

// BuildWindow assigns line numbers to the most recent entries of the full
// on-disk command sequence. Returns ErrSourceUnavailable when the sequence
// is empty, since no line can be addressed.
func BuildWindow(commands []string) (*Window, error) {
	if len(commands) == 0 {
		return nil, ErrSourceUnavailable
	}

	total := len(commands)
	recent := commands
	if len(recent) > WindowSize {
		recent = recent[len(recent)-WindowSize:]
	}
	start := max(1, total-WindowSize+1)

	lines := make(map[int]string, len(recent))
	for i, cmd := range recent {
		lines[start+i] = cmd
	}

	return &Window{
		lines: lines,
		min:   start,
		max:   total,
	}, nil
}

// Lookup returns the command at the given line number.
func (w *Window) Lookup(line int) (string, bool) {
	cmd, ok := w.lines[line]
	return cmd, ok
}

// Bounds returns the smallest and largest addressable line numbers.
func (w *Window) Bounds() (min, max int) {
	return w.min, w.max
}

// Len returns the number of addressable lines.
func (w *Window) Len() int {
	return len(w.lines)
}
