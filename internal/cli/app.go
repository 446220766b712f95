package cli

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/seanstash/seanstash-cli/internal/archive"
	"github.com/seanstash/seanstash-cli/internal/config"
	"github.com/seanstash/seanstash-cli/internal/core"
	"github.com/seanstash/seanstash-cli/internal/filter"
	"github.com/seanstash/seanstash-cli/internal/history"
	"github.com/seanstash/seanstash-cli/internal/ledger"
	"github.com/seanstash/seanstash-cli/internal/syncer"
	"github.com/seanstash/seanstash-cli/internal/transport"
)

// app holds the per-invocation wiring shared by the CLI commands: the
// configuration snapshot and the logger. Flags are folded into the snapshot
// before any component sees it.
type app struct {
	cfg    config.Config
	logger *zap.Logger
}

func newApp(force, dryRun bool) (*app, error) {
	cfg, err := config.Load(core.ConfigFile())
	if err != nil {
		return nil, err
	}
	cfg.Behavior.Force = force
	if dryRun {
		cfg.Behavior.DryRun = true
	}

	logger, err := newLogger()
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// newLogger builds the file logger. Stdout is reserved for CLI output, so
// logs go to ~/.seanstash/seanstash.log only.
func newLogger() (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}
	return loggerConfig.Build()
}

func (a *app) close() {
	a.logger.Sync() //nolint:errcheck
}

// newSyncer assembles the full pipeline writing user output to out.
func (a *app) newSyncer(out io.Writer) *syncer.Syncer {
	arc, err := archive.Open(core.ArchiveDB())
	if err != nil {
		a.logger.Warn("could not open sync archive", zap.Error(err))
		arc = nil
	}

	return syncer.New(syncer.Options{
		Config:    a.cfg,
		Logger:    a.logger,
		Out:       out,
		Files:     history.NewFileSource(core.HistoryFiles(), a.logger),
		Session:   history.NewSessionSource("bash", a.logger),
		Filter:    filter.NewEngine(a.cfg.Filters, filter.SystemClock{}, filter.ProcessDir{}, a.logger),
		Ledger:    ledger.NewStore(core.LedgerFile(), a.logger),
		Transport: transport.NewClient(a.cfg.API, a.logger),
		Archive:   arc,
	})
}

func stdout() io.Writer {
	return os.Stdout
}
