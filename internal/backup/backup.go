// Package backup implements database admin operations: exporting the
// vocabulary and sentence history to xlsx snapshots, listing snapshots, and
// restoring (importing) vocabulary from xlsx or CSV files.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/hanzitutor/internal/database"
)

const (
	wordsSheet     = "Words"
	sentencesSheet = "Sentences"

	snapshotPrefix = "backup-"
	snapshotExt    = ".xlsx"
)

// Manager performs backup and restore operations against the repositories
type Manager struct {
	words     *database.WordRepository
	sentences *database.SentenceRepository
	dir       string
}

// NewManager creates a backup manager writing snapshots into dir
func NewManager(db *database.DB, dir string) *Manager {
	return &Manager{
		words:     database.NewWordRepository(db),
		sentences: database.NewSentenceRepository(db),
		dir:       dir,
	}
}

// Snapshot describes one backup file on disk
type Snapshot struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Run writes a new timestamped snapshot into the backup directory
func (m *Manager) Run() (*Snapshot, error) {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %v", err)
	}

	name := snapshotPrefix + time.Now().Format("20060102-150405") + snapshotExt
	path := filepath.Join(m.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create backup file: %v", err)
	}
	defer f.Close()

	if err := m.WriteExport(f); err != nil {
		os.Remove(path)
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup file: %v", err)
	}

	return &Snapshot{
		Name:      name,
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}

// List returns the snapshots in the backup directory, newest first
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %v", err)
	}

	snapshots := []Snapshot{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		snapshots = append(snapshots, Snapshot{
			Name:      name,
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name > snapshots[j].Name
	})
	return snapshots, nil
}

// Restore imports vocabulary from a snapshot in the backup directory.
// Existing words are updated, unknown ones created; nothing is deleted.
func (m *Manager) Restore(name string) (*ImportResult, error) {
	// Snapshot names come from clients: keep them inside the backup dir
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid snapshot name: %q", name)
	}
	return m.ImportFile(filepath.Join(m.dir, name))
}

// WriteExport writes the full vocabulary and sentence history as an xlsx
// workbook to w
func (m *Manager) WriteExport(w io.Writer) error {
	words, err := m.words.GetAll()
	if err != nil {
		return err
	}
	sentences, err := m.sentences.GetAll()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", wordsSheet)
	f.NewSheet(sentencesSheet)

	wordHeader := []interface{}{"Chinese", "Pinyin", "English", "Notes"}
	if err := f.SetSheetRow(wordsSheet, "A1", &wordHeader); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}
	for i, word := range words {
		row := []interface{}{word.Chinese, word.Pinyin, word.English, word.Notes}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(wordsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write word row: %v", err)
		}
	}

	sentenceHeader := []interface{}{"Text", "Translation", "UsedWords", "UnknownChars", "UncoveredChars", "Model"}
	if err := f.SetSheetRow(sentencesSheet, "A1", &sentenceHeader); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}
	for i, s := range sentences {
		row := []interface{}{
			s.Text,
			s.Translation,
			strings.Join(s.UsedWords, " "),
			strings.Join(s.UnknownChars, " "),
			strings.Join(s.UncoveredChars, " "),
			s.Model,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sentencesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write sentence row: %v", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %v", err)
	}
	return nil
}
