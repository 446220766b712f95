package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ErrNotATerminal is returned when the wizard is invoked with stdin
// redirected; interactive prompts would otherwise hang or consume piped data.
var ErrNotATerminal = errors.New("interactive configuration requires a terminal")

// RunWizard walks the user through the main settings and saves the result.
// Empty input keeps the current value.
func RunWizard(path string, cfg Config) (Config, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return cfg, ErrNotATerminal
	}
	updated, err := runWizard(os.Stdin, os.Stdout, cfg)
	if err != nil {
		return cfg, err
	}
	if err := Save(path, updated); err != nil {
		return cfg, fmt.Errorf("failed to save config: %w", err)
	}
	return updated, nil
}

func runWizard(in io.Reader, out io.Writer, cfg Config) (Config, error) {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "SeanStash CLI Configuration")
	fmt.Fprintln(out, strings.Repeat("=", 30))

	fmt.Fprintln(out, "\n1. API Configuration:")
	url, err := prompt(reader, out, fmt.Sprintf("SeanStash URL [%s]: ", cfg.API.BaseURL))
	if err != nil {
		return cfg, err
	}
	if url != "" {
		cfg.API.BaseURL = url
	}

	keyDisplay := "none"
	if cfg.API.APIKey != "" {
		keyDisplay = strings.Repeat("*", len(cfg.API.APIKey))
	}
	key, err := prompt(reader, out, fmt.Sprintf("API Key (optional) [%s]: ", keyDisplay))
	if err != nil {
		return cfg, err
	}
	if key != "" {
		cfg.API.APIKey = key
	}

	fmt.Fprintln(out, "\n2. Filter Configuration:")
	minLen, err := prompt(reader, out, fmt.Sprintf("Minimum command length [%d]: ", cfg.Filters.MinLength))
	if err != nil {
		return cfg, err
	}
	if n, convErr := strconv.Atoi(minLen); convErr == nil && n >= 0 {
		cfg.Filters.MinLength = n
	}

	fmt.Fprintln(out, "\n3. Behavior Configuration:")
	autoSend, err := prompt(reader, out, fmt.Sprintf("Auto-send commands (true/false) [%t]: ", cfg.Behavior.AutoSend))
	if err != nil {
		return cfg, err
	}
	switch strings.ToLower(autoSend) {
	case "true":
		cfg.Behavior.AutoSend = true
	case "false":
		cfg.Behavior.AutoSend = false
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return cfg, nil
}

func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
