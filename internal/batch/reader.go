package batch

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxLineSize bounds a single CSV line. Exported cardplay and
// commentary fields run long but stay far below this.
const maxLineSize = 1 << 20

// Table is a CSV file held in memory. Rows may have ragged lengths;
// exporters pad or truncate trailing fields inconsistently.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable loads a CSV file, repairing the exporter's broken quoting
// line by line before parsing. The first row is the header.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	var repaired strings.Builder
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		repaired.WriteString(repairLine(scanner.Text()))
		repaired.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	r := csv.NewReader(strings.NewReader(repaired.String()))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse csv: %s is empty", path)
	}
	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// repairLine fixes unescaped quotes inside the last quoted field of a
// line. BBO exports embed player commentary verbatim, so a field like
// ,"3S=good hand, "shrug"" breaks strict CSV parsing. Inner quotes
// become apostrophes; everything else is left alone.
func repairLine(line string) string {
	if !strings.HasSuffix(strings.TrimRight(line, " \t\r"), `"`) {
		return line
	}
	start := strings.LastIndex(line, `,"`)
	if start < 0 {
		return line
	}
	rest := line[start+2:]
	end := strings.LastIndex(rest, `"`)
	if end < 0 {
		return line
	}
	content := rest[:end]
	if !strings.Contains(content, `"`) {
		return line
	}
	return line[:start+2] + strings.ReplaceAll(content, `"`, `'`) + rest[end:]
}

// WriteTable writes a CSV file atomically: the content lands in a temp
// file in the destination directory and is renamed into place, so
// readers never observe a half-written checkpoint.
func WriteTable(path string, table *Table) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(table.Header); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}
