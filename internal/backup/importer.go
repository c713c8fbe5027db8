package backup

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/hanzitutor/pkg/models"
)

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int      `json:"total_processed"`
	Created        int      `json:"created"`
	Updated        int      `json:"updated"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors"`
}

// ImportFile imports vocabulary from an xlsx or CSV file. Rows are
// (chinese, pinyin, english, notes); the header row is skipped.
func (m *Manager) ImportFile(path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %v", err)
	}
	defer f.Close()

	return m.ImportReader(f, filepath.Base(path))
}

// ImportReader imports vocabulary from r; the filename selects the format
func (m *Manager) ImportReader(r io.Reader, filename string) (*ImportResult, error) {
	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		return m.importFromCSV(r)
	}
	return m.importFromExcel(r)
}

// importFromExcel imports words from the Words sheet of an xlsx workbook
func (m *Manager) importFromExcel(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(wordsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		// Skip the header row
		if i == 0 {
			continue
		}
		result.TotalProcessed++
		if err := m.processRow(row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

// importFromCSV imports words from a CSV stream
func (m *Manager) importFromCSV(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++
		// Skip the header row
		if rowNum == 1 {
			continue
		}

		result.TotalProcessed++
		if err := m.processRow(row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}
	return result, nil
}

// processRow creates or updates a single word from a row of cell values
func (m *Manager) processRow(row []string, result *ImportResult) error {
	var chinese, pinyin, english, notes string
	if len(row) > 0 {
		chinese = strings.TrimSpace(row[0])
	}
	if len(row) > 1 {
		pinyin = strings.TrimSpace(row[1])
	}
	if len(row) > 2 {
		english = strings.TrimSpace(row[2])
	}
	if len(row) > 3 {
		notes = strings.TrimSpace(row[3])
	}

	if chinese == "" && pinyin == "" && english == "" {
		result.Skipped++
		return nil
	}
	if chinese == "" {
		return fmt.Errorf("word cannot be empty")
	}
	if english == "" {
		return fmt.Errorf("translation cannot be empty")
	}

	existing, err := m.words.GetByChinese(chinese)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.Pinyin = pinyin
		existing.English = english
		existing.Notes = notes
		if err := m.words.Update(existing); err != nil {
			return err
		}
		result.Updated++
		return nil
	}

	word := &models.Word{
		Chinese: chinese,
		Pinyin:  pinyin,
		English: english,
		Notes:   notes,
	}
	if err := m.words.Create(word); err != nil {
		return err
	}
	result.Created++
	return nil
}
