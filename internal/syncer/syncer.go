// Package syncer wires the history, filter, ledger, and delivery stages into
// the three sync operations the CLI exposes: recent history, a line-number
// range, and a directly-supplied command.
package syncer

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/seanstash/seanstash-cli/internal/archive"
	"github.com/seanstash/seanstash-cli/internal/config"
	"github.com/seanstash/seanstash-cli/internal/deliver"
	"github.com/seanstash/seanstash-cli/internal/filter"
	"github.com/seanstash/seanstash-cli/internal/history"
	"github.com/seanstash/seanstash-cli/internal/ledger"
)

const previewLen = 60

// Options collects the collaborators a Syncer needs.
type Options struct {
	Config    config.Config
	Logger    *zap.Logger
	Out       io.Writer
	Files     *history.FileSource
	Session   *history.SessionSource
	Filter    *filter.Engine
	Ledger    *ledger.Store
	Transport deliver.Transport
	// Archive is optional; a nil archive disables local recording.
	Archive *archive.Archive
	Clock   filter.Clock
}

// Syncer runs the sync pipeline end to end. It is single-invocation: build
// one, run one operation, throw it away.
type Syncer struct {
	cfg       config.Config
	logger    *zap.Logger
	out       io.Writer
	files     *history.FileSource
	session   *history.SessionSource
	filter    *filter.Engine
	ledger    *ledger.Store
	transport deliver.Transport
	archive   *archive.Archive
	clock     filter.Clock
}

// New creates a Syncer from the given options.
func New(opts Options) *Syncer {
	clock := opts.Clock
	if clock == nil {
		clock = filter.SystemClock{}
	}
	return &Syncer{
		cfg:       opts.Config,
		logger:    opts.Logger,
		out:       opts.Out,
		files:     opts.Files,
		session:   opts.Session,
		filter:    opts.Filter,
		ledger:    opts.Ledger,
		transport: opts.Transport,
		archive:   opts.Archive,
		clock:     clock,
	}
}

// SyncRecent syncs up to limit of the most recent commands, combining the
// on-disk history with the current session's history.
func (s *Syncer) SyncRecent(ctx context.Context, limit int) error {
	fmt.Fprintln(s.out, "SeanStash CLI - Syncing terminal history...")
	fmt.Fprintf(s.out, "Target: %s\n", s.cfg.API.BaseURL)

	fmt.Fprintln(s.out, "Fetching command history...")
	fileCommands := s.files.Recent(limit)
	sessionCommands := s.session.Commands(ctx)

	all := history.Combine(fileCommands, sessionCommands)
	fmt.Fprintf(s.out, "Found %d total commands\n", len(all))

	return s.filterAndSend(ctx, all, "No new commands to sync.")
}

// SyncRange syncs the commands addressed by a line spec ("!2031" or
// "!2031-2033") against the reconstructed history window.
func (s *Syncer) SyncRange(ctx context.Context, spec string) error {
	fmt.Fprintln(s.out, "SeanStash CLI - Syncing specific history commands...")
	fmt.Fprintf(s.out, "Target: %s\n", s.cfg.API.BaseURL)
	fmt.Fprintf(s.out, "History specification: %s\n", spec)

	all, err := s.files.All()
	if err != nil {
		return err
	}
	window, err := history.BuildWindow(all)
	if err != nil {
		return err
	}
	min, max := window.Bounds()
	fmt.Fprintf(s.out, "Parsed history: %d recent commands (lines %d-%d)\n", window.Len(), min, max)

	resolved, err := history.ResolveRange(spec, window)
	if err != nil {
		return err
	}
	for _, line := range resolved {
		if line.Found {
			fmt.Fprintf(s.out, "  %d: %s\n", line.Number, line.Command)
		} else {
			fmt.Fprintf(s.out, "  %d: (not found in recent history)\n", line.Number)
		}
	}

	return s.filterAndSend(ctx, history.Commands(resolved), "All specified commands have already been sent.")
}

// SyncCommand sends a single command string directly.
func (s *Syncer) SyncCommand(ctx context.Context, command string) error {
	fmt.Fprintln(s.out, "SeanStash CLI - Sending command directly...")
	fmt.Fprintf(s.out, "Target: %s\n", s.cfg.API.BaseURL)
	fmt.Fprintf(s.out, "Command: %s\n", command)

	records := s.filter.Filter([]string{command})
	if len(records) == 0 {
		fmt.Fprintln(s.out, "Command was filtered out (too short or matches exclusion patterns).")
		return nil
	}

	led := s.ledger.Load()
	newRecords, _ := ledger.Partition(records, led, s.cfg.Behavior.Force)
	if len(newRecords) == 0 {
		fmt.Fprintln(s.out, "This command has already been sent. Use --force to resend.")
		return nil
	}
	if s.cfg.Behavior.Force {
		fmt.Fprintln(s.out, "Force mode: sending command")
	}

	return s.send(ctx, newRecords, led)
}

func (s *Syncer) filterAndSend(ctx context.Context, commands []string, nothingToDo string) error {
	records := s.filter.Filter(commands)
	fmt.Fprintf(s.out, "Filtered to %d relevant commands\n", len(records))

	led := s.ledger.Load()
	newRecords, _ := ledger.Partition(records, led, s.cfg.Behavior.Force)
	if s.cfg.Behavior.Force {
		fmt.Fprintln(s.out, "Force mode: sending all filtered commands")
	} else {
		fmt.Fprintf(s.out, "%d new commands to send\n", len(newRecords))
	}

	if len(newRecords) == 0 {
		fmt.Fprintln(s.out, nothingToDo)
		return nil
	}

	return s.send(ctx, newRecords, led)
}

// send delivers the records and, when at least one item succeeded and
// dry-run is off, commits every attempted hash to the ledger. Committing
// attempted rather than succeeded hashes means a partially-rejected batch is
// not retried on the next run; that mirrors the at-least-one-success commit
// policy this tool has always had.
func (s *Syncer) send(ctx context.Context, records []filter.Record, led *ledger.Ledger) error {
	dryRun := s.cfg.Behavior.DryRun

	batcher := deliver.NewBatcher(s.cfg.Behavior.BatchSize, dryRun, s.logger)
	if dryRun {
		fmt.Fprintf(s.out, "[DRY RUN] Would send %d commands to %s\n", len(records), s.cfg.API.BaseURL)
		batcher.Progress = func(record filter.Record, _ error) {
			fmt.Fprintf(s.out, "  - %s\n", record.Text)
		}
	} else {
		batcher.Progress = func(record filter.Record, err error) {
			if err == nil {
				fmt.Fprintf(s.out, "%s Sent: %s...\n", color.GreenString("✓"), preview(record.Text))
			} else {
				fmt.Fprintf(s.out, "%s Failed to send: %s... (%v)\n", color.RedString("✗"), preview(record.Text), err)
			}
		}
	}

	outcome, err := batcher.Deliver(ctx, records, s.transport)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Successfully sent %d/%d commands to SeanStash\n", outcome.Succeeded, len(records))

	if outcome.Succeeded == 0 || dryRun {
		return nil
	}

	hashes := lo.Map(records, func(record filter.Record, _ int) string {
		return record.Hash
	})
	if err := s.ledger.Commit(led, hashes, s.clock.Now()); err != nil {
		return fmt.Errorf("failed to save sent history: %w", err)
	}

	s.recordDelivered(records, outcome)

	fmt.Fprintln(s.out, "Sync completed successfully!")
	return nil
}

// recordDelivered archives the records that were actually accepted.
func (s *Syncer) recordDelivered(records []filter.Record, outcome deliver.Outcome) {
	if s.archive == nil {
		return
	}
	failed := make(map[string]struct{}, len(outcome.Failures))
	for _, failure := range outcome.Failures {
		failed[failure.Record.Hash] = struct{}{}
	}
	for _, record := range records {
		if _, ok := failed[record.Hash]; ok {
			continue
		}
		if err := s.archive.Record(record); err != nil {
			s.logger.Warn("could not archive command", zap.Error(err))
			return
		}
	}
}

func preview(text string) string {
	if runes := []rune(text); len(runes) > previewLen {
		return string(runes[:previewLen])
	}
	return text
}
