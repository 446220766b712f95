package core

import (
	"os"
	"path/filepath"
)

type Paths struct {
	HomeDir    string
	DataDir    string
	ConfigFile string
	LedgerFile string
	ArchiveDB  string
	LogFile    string

	HistoryFiles []string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		defaultPaths = &Paths{
			HomeDir:    homeDir,
			DataDir:    filepath.Join(homeDir, ".seanstash"),
			ConfigFile: filepath.Join(homeDir, ".seanstash", "config.yaml"),
			LedgerFile: filepath.Join(homeDir, ".seanstash", "sent_history.json"),
			ArchiveDB:  filepath.Join(homeDir, ".seanstash", "archive.db"),
			LogFile:    filepath.Join(homeDir, ".seanstash", "seanstash.log"),
			HistoryFiles: []string{
				filepath.Join(homeDir, ".zsh_history"),
				filepath.Join(homeDir, ".bash_history"),
				filepath.Join(homeDir, ".history"),
			},
		}

		err = os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

func LedgerFile() string {
	ensureDefaultPaths()
	return defaultPaths.LedgerFile
}

func ArchiveDB() string {
	ensureDefaultPaths()
	return defaultPaths.ArchiveDB
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

// HistoryFiles returns candidate shell history files in priority order.
// zsh history is preferred over bash when both exist.
func HistoryFiles() []string {
	ensureDefaultPaths()
	return defaultPaths.HistoryFiles
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
