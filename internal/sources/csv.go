package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/errors"
)

// ParseCSV reads a CSV export whose first row names the fields. Header names
// and values are trimmed. A leading byte order mark is dropped, blank lines
// are skipped, short rows simply lack the missing fields and cells beyond
// the header are ignored. Repeated header names get a _1, _2, ... suffix.
func ParseCSV(r io.Reader) ([]books.Record, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return []books.Record{}, nil
	}
	if err != nil {
		return nil, csvError(err)
	}
	names := headerNames(header)

	records := []books.Record{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		rec := make(books.Record, len(names))
		for i, name := range names {
			if i >= len(row) {
				break
			}
			if name == "" {
				continue
			}
			rec[name] = strings.TrimSpace(row[i])
		}
		records = append(records, rec)
	}
	return records, nil
}

func headerNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			continue
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

func csvError(err error) error {
	perr := errors.NewParseError("csv", "", err.Error(), err)
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		perr.Line = pe.Line
		perr.Message = pe.Err.Error()
	}
	return perr
}
