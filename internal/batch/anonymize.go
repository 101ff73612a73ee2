package batch

import (
	"fmt"
	"log"

	"github.com/fifthchair/tricklens/internal/anonymize"
)

// defaultNameColumns are the player-name columns rewritten when the
// caller does not pick their own.
var defaultNameColumns = []string{"N", "S", "E", "W"}

// AnonymizeFile rewrites the named columns of a CSV with stable
// aliases and writes the result to outputPath. Requested columns that
// the file lacks are skipped with a warning; it is an error when none
// of them exist. Empty cells stay empty.
func AnonymizeFile(inputPath, outputPath string, anon *anonymize.Anonymizer, columns []string) (int, error) {
	table, err := ReadTable(inputPath)
	if err != nil {
		return 0, err
	}
	if len(columns) == 0 {
		columns = defaultNameColumns
	}

	var idxs []int
	for _, name := range columns {
		found := -1
		for i, h := range table.Header {
			if h == name {
				found = i
				break
			}
		}
		if found < 0 {
			log.Printf("column %q not found, skipping", name)
			continue
		}
		idxs = append(idxs, found)
	}
	if len(idxs) == 0 {
		return 0, fmt.Errorf("none of the requested columns %v exist in %s", columns, inputPath)
	}

	rewritten := 0
	for _, row := range table.Rows {
		for _, idx := range idxs {
			if idx >= len(row) || row[idx] == "" {
				continue
			}
			row[idx] = anon.Alias(row[idx])
			rewritten++
		}
	}
	if err := WriteTable(outputPath, table); err != nil {
		return 0, err
	}
	return rewritten, nil
}
