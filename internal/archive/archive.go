// Package archive keeps a local record of commands that were successfully
// delivered, so the status command can show recent sync activity without
// calling the remote API.
package archive

import (
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seanstash/seanstash-cli/internal/filter"
)

type Archive struct {
	db *gorm.DB
}

type Entry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	Command   string
	Hash      string `gorm:"index"`
	Directory string
}

// Open opens (creating if needed) the archive database at dbFilePath.
func Open(dbFilePath string) (*Archive, error) {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}

	return &Archive{
		db: db,
	}, nil
}

// Record stores one delivered command.
func (archive *Archive) Record(record filter.Record) error {
	entry := Entry{
		Command:   record.Text,
		Hash:      record.Hash,
		Directory: record.WorkingDir,
	}

	result := archive.db.Create(&entry)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// RecentEntries returns the most recently archived commands, newest first.
func (archive *Archive) RecentEntries(limit int) ([]Entry, error) {
	var entries []Entry
	result := archive.db.Order("created_at desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// Count returns the total number of archived commands.
func (archive *Archive) Count() (int64, error) {
	var count int64
	result := archive.db.Model(&Entry{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
