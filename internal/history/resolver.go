package history

import (
	"fmt"
	"strconv"
	"strings"
)

// LineNotFoundError reports a requested line number that is not present in
// the window, along with the addressable bounds.
type LineNotFoundError struct {
	Line     int
	Min, Max int
}

func (e *LineNotFoundError) Error() string {
	return fmt.Sprintf("history line %d not found in recent history (showing last %d lines: %d-%d)",
		e.Line, WindowSize, e.Min, e.Max)
}

// InvalidRangeFormatError reports a range spec whose bounds do not parse as
// integers.
type InvalidRangeFormatError struct {
	Spec string
}

func (e *InvalidRangeFormatError) Error() string {
	return fmt.Sprintf("invalid range format %q, use format: !start-end", e.Spec)
}

// InvalidSpecError reports a spec that is neither a line number nor a range.
type InvalidSpecError struct {
	Spec string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid history number %q", e.Spec)
}

// EmptyRangeError reports a range in which no line was present in the window.
type EmptyRangeError struct {
	Start, End int
	Min, Max   int
}

func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("no commands found in history lines %d-%d (available: %d-%d)",
		e.Start, e.End, e.Min, e.Max)
}

// ResolvedLine is one line of a resolved spec. Missing lines inside a range
// are reported with Found=false rather than failing the whole resolution.
type ResolvedLine struct {
	Number  int
	Command string
	Found   bool
}

// ResolveRange resolves a line spec ("2031" or "2031-2033", with or without
// a leading "!") against the window. Single-line specs fail when the line is
// absent; range specs skip missing lines and only fail when nothing in the
// range is present. Results are emitted in ascending line-number order.
func ResolveRange(spec string, window *Window) ([]ResolvedLine, error) {
	spec = strings.TrimPrefix(spec, "!")
	min, max := window.Bounds()

	if start, end, ok := strings.Cut(spec, "-"); ok {
		startLine, err1 := strconv.Atoi(start)
		endLine, err2 := strconv.Atoi(end)
		if err1 != nil || err2 != nil {
			return nil, &InvalidRangeFormatError{Spec: spec}
		}

		var resolved []ResolvedLine
		found := 0
		for line := startLine; line <= endLine; line++ {
			cmd, ok := window.Lookup(line)
			if ok {
				found++
			}
			resolved = append(resolved, ResolvedLine{Number: line, Command: cmd, Found: ok})
		}
		if found == 0 {
			return nil, &EmptyRangeError{Start: startLine, End: endLine, Min: min, Max: max}
		}
		return resolved, nil
	}

	line, err := strconv.Atoi(spec)
	if err != nil {
		return nil, &InvalidSpecError{Spec: spec}
	}
	cmd, ok := window.Lookup(line)
	if !ok {
		return nil, &LineNotFoundError{Line: line, Min: min, Max: max}
	}
	return []ResolvedLine{{Number: line, Command: cmd, Found: true}}, nil
}

// Commands extracts the command strings of the found lines, in order.
func Commands(resolved []ResolvedLine) []string {
	var commands []string
	for _, line := range resolved {
		if line.Found {
			commands = append(commands, line.Command)
		}
	}
	return commands
}
