package validation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Column headers of the reviewed selection tables. Any other columns are
// review-tool noise and ignored.
const (
	columnBeginFile = "Begin File"
	columnValid     = "Valid"
)

// LoadResults parses every selection table in dir, keyed by species (file
// name minus extension). The first unreadable or malformed file aborts the
// load.
func LoadResults(dir string) (map[string]*ResultSet, error) {
	pattern := filepath.Join(dir, "*.txt")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("listing selection tables: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no selection tables (*.txt) found in %s", dir)
	}
	sort.Strings(files)

	results := make(map[string]*ResultSet, len(files))
	for _, file := range files {
		rs, err := LoadResultFile(file)
		if err != nil {
			return nil, err
		}
		results[rs.Species] = rs
	}
	return results, nil
}

// LoadResultFile parses one tab-delimited selection table, retaining the
// "Begin File" and "Valid" columns, deriving each record's confidence score
// from its clip filename and dropping duplicate clips.
func LoadResultFile(path string) (*ResultSet, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("selection table not found: %s", path)
		}
		return nil, fmt.Errorf("opening selection table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	// Review tools append ragged annotation columns; field counts vary row
	// to row. Fields are tab-delimited and never quoted, so stray quote
	// characters in reviewer notes must not be parsed as quoting.
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", path, err)
	}

	fileIdx, validIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case columnBeginFile:
			fileIdx = i
		case columnValid:
			validIdx = i
		}
	}
	if fileIdx < 0 {
		return nil, fmt.Errorf("%s: missing %q column", path, columnBeginFile)
	}
	if validIdx < 0 {
		return nil, fmt.Errorf("%s: missing %q column", path, columnValid)
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%s: line %d: %w", path, line, err)
		}
		if fileIdx >= len(row) || validIdx >= len(row) {
			return nil, fmt.Errorf("%s: line %d: %w", path, line,
				&MalformedRecordError{Field: "row too short", Value: strings.Join(row, "\t")})
		}

		fileName := strings.TrimSpace(row[fileIdx])
		valid, err := parseValid(row[validIdx])
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", path, line, err)
		}
		confidence, err := ConfidenceScore(fileName)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", path, line, err)
		}

		records = append(records, Record{
			FileName:   fileName,
			Valid:      valid,
			Confidence: confidence,
		})
	}

	species := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &ResultSet{
		Species: species,
		Records: Deduplicate(records),
	}, nil
}

// parseValid interprets the reviewer's verdict. Reviewers have typed
// several spellings over the seasons; anything else is malformed.
func parseValid(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "valid", "y", "yes", "true", "1":
		return true, nil
	case "invalid", "n", "no", "false", "0":
		return false, nil
	default:
		return false, &MalformedRecordError{Field: "valid", Value: s}
	}
}
