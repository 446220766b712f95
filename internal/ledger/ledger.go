// Package ledger tracks which command hashes have already been delivered,
// persisted as a JSON file so repeated syncs are idempotent.
package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/seanstash/seanstash-cli/internal/filter"
)

// Ledger is the in-memory set of already-delivered content hashes.
type Ledger struct {
	sentHashes  map[string]struct{}
	lastUpdated time.Time
}

// Contains reports whether the hash has already been delivered.
func (l *Ledger) Contains(hash string) bool {
	_, ok := l.sentHashes[hash]
	return ok
}

// Size returns the number of recorded hashes.
func (l *Ledger) Size() int {
	return len(l.sentHashes)
}

// LastUpdated returns when the ledger was last committed, or the zero time
// for a fresh ledger.
func (l *Ledger) LastUpdated() time.Time {
	return l.lastUpdated
}

// ledgerFile is the persisted JSON shape.
type ledgerFile struct {
	SentHashes  []string `json:"sent_hashes"`
	LastUpdated string   `json:"last_updated"`
}

// Store loads and persists the ledger at a fixed path.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a Store persisting to path.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Load reads the persisted ledger. A missing or corrupt file yields an empty
// ledger with a warning: treating unreadable state as "nothing sent yet" can
// cause re-delivery but never blocks a sync.
func (s *Store) Load() *Ledger {
	ledger := &Ledger{sentHashes: map[string]struct{}{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("could not load sent history", zap.String("path", s.path), zap.Error(err))
		}
		return ledger
	}

	var file ledgerFile
	if err := json.Unmarshal(data, &file); err != nil {
		s.logger.Warn("sent history is corrupt, starting empty", zap.String("path", s.path), zap.Error(err))
		return ledger
	}

	for _, hash := range file.SentHashes {
		ledger.sentHashes[hash] = struct{}{}
	}
	if ts, err := time.Parse(time.RFC3339, file.LastUpdated); err == nil {
		ledger.lastUpdated = ts
	}
	return ledger
}

// Commit merges the given hashes into the ledger, stamps the update time,
// and persists. The file is written to a temp file and renamed so a crash
// mid-write never leaves a partially-written ledger.
func (s *Store) Commit(ledger *Ledger, hashes []string, now time.Time) error {
	for _, hash := range hashes {
		ledger.sentHashes[hash] = struct{}{}
	}
	ledger.lastUpdated = now

	all := make([]string, 0, len(ledger.sentHashes))
	for hash := range ledger.sentHashes {
		all = append(all, hash)
	}
	sort.Strings(all)

	data, err := json.MarshalIndent(ledgerFile{
		SentHashes:  all,
		LastUpdated: now.Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".sent_history-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Partition splits records into those not yet delivered and those already
// recorded in the ledger. When force is set, every record is treated as new
// and the ledger is ignored for filtering (it is still updated after
// delivery).
func Partition(records []filter.Record, ledger *Ledger, force bool) (newRecords, alreadySent []filter.Record) {
	if force {
		return records, nil
	}
	for _, record := range records {
		if ledger.Contains(record.Hash) {
			alreadySent = append(alreadySent, record)
		} else {
			newRecords = append(newRecords, record)
		}
	}
	return newRecords, alreadySent
}
