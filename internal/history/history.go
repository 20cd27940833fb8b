// Package history persists session input lines in a sqlite database so they
// survive across sessions and feed the line editor's history navigation.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type Manager struct {
	db          *gorm.DB
	versionPath string
}

type Entry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`

	Input   string
	Dataset string
	Failed  sql.NullBool
}

const (
	schemaVersion = 1
)

// NewManager opens (creating if needed) the history database at dbFilePath.
// The schema version marker lives next to the database file.
func NewManager(dbFilePath string) (*Manager, error) {
	dbFileExists := true
	if _, err := os.Stat(dbFilePath); errors.Is(err, os.ErrNotExist) {
		dbFileExists = false
	} else if err != nil {
		return nil, fmt.Errorf("checking history db: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	m := &Manager{
		db:          db,
		versionPath: filepath.Join(filepath.Dir(dbFilePath), "history_schema_version"),
	}

	if m.needsMigration(dbFileExists) {
		if err := db.AutoMigrate(&Entry{}); err != nil {
			return nil, fmt.Errorf("migrating history schema: %w", err)
		}
		if err := m.writeSchemaVersion(schemaVersion); err != nil {
			return nil, fmt.Errorf("writing history schema version: %w", err)
		}
	}

	return m, nil
}

func (m *Manager) needsMigration(dbFileExists bool) bool {
	if !dbFileExists {
		return true
	}

	versionMatches, err := m.schemaVersionMatches()
	if err != nil || !versionMatches {
		return true
	}

	// If the version marker is present but the table is missing (corruption
	// or manual deletion), re-run migrations to restore the schema.
	return !m.db.Migrator().HasTable(&Entry{})
}

func (m *Manager) writeSchemaVersion(version int) error {
	return os.WriteFile(m.versionPath, []byte(strconv.Itoa(version)), 0644)
}

func (m *Manager) schemaVersionMatches() (bool, error) {
	data, err := os.ReadFile(m.versionPath)
	if err != nil {
		return false, err
	}
	version, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, err
	}
	if version != schemaVersion {
		return false, fmt.Errorf("history schema version mismatch: got %d, want %d", version, schemaVersion)
	}
	return true, nil
}

// StartEntry records an input line before evaluation. The dataset name ties
// the line to whatever dataset was active when it was typed.
func (m *Manager) StartEntry(input string, dataset string) (*Entry, error) {
	entry := Entry{
		Input:   input,
		Dataset: dataset,
	}

	result := m.db.Create(&entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entry, nil
}

// FinishEntry records whether evaluation of the entry's line failed.
func (m *Manager) FinishEntry(entry *Entry, failed bool) (*Entry, error) {
	entry.Failed = sql.NullBool{Bool: failed, Valid: true}

	result := m.db.Save(entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return entry, nil
}

// RecentEntries returns up to limit entries, oldest first, optionally
// filtered by the dataset that was active when they were recorded.
func (m *Manager) RecentEntries(dataset string, limit int) ([]Entry, error) {
	var entries []Entry
	db := m.db
	if dataset != "" {
		db = db.Where("dataset = ?", dataset)
	}
	result := db.Order("created_at desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	slices.Reverse(entries)
	return entries, nil
}

// EntriesByPrefix returns entries whose input starts with prefix, most
// recent first.
func (m *Manager) EntriesByPrefix(prefix string, limit int) ([]Entry, error) {
	var entries []Entry
	result := m.db.Where("input LIKE ?", prefix+"%").
		Order("created_at desc").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// Search returns entries whose input contains query, most recent first.
func (m *Manager) Search(query string, limit int) ([]Entry, error) {
	var entries []Entry
	result := m.db.Where("input LIKE ?", "%"+query+"%").
		Order("created_at desc").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// DeleteEntry removes a single entry by id.
func (m *Manager) DeleteEntry(id uint) error {
	result := m.db.Delete(&Entry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no history entry found with id %d", id)
	}

	return nil
}

// Reset deletes every recorded entry.
func (m *Manager) Reset() error {
	return m.db.Exec("DELETE FROM entries").Error
}
