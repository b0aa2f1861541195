package csvsource

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

// Table is a delimited file read into memory. A nil cell is a null value.
type Table struct {
	Path   string
	Header []string
	Rows   [][]*string
	index  map[string]int
}

// Load reads the delimited file at path. The first row is the header.
func Load(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, domain.NewStageError(domain.StageLoad, domain.KindFileAccess, path,
			errors.Wrap(err, "file does not exist or cannot be accessed"))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, domain.NewStageError(domain.StageLoad, domain.KindFileAccess, path,
			errors.Wrap(err, "error opening file"))
	}
	defer file.Close()

	table, err := Parse(file)
	if err != nil {
		return nil, domain.NewStageError(domain.StageLoad, domain.KindParse, path, err)
	}
	table.Path = path

	log.L.WithFields(log.Fields{
		"path": path,
		"rows": len(table.Rows),
	}).Infof("Successfully loaded file: %s", path)

	return table, nil
}

// Parse reads a delimited table from r.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("file is empty, a header row is required")
	}
	if err != nil {
		return nil, errors.Wrap(err, "error reading header")
	}

	table := &Table{
		Header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		// strip a UTF-8 BOM left by spreadsheet exports
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			return nil, errors.Errorf("column %d has an empty name", i+1)
		}
		if _, dup := table.index[name]; dup {
			return nil, errors.Errorf("duplicate column %q", name)
		}
		table.Header[i] = name
		table.index[name] = i
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "error reading row")
		}

		row := make([]*string, len(record))
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if isNull(cell) {
				continue
			}
			value := cell
			row[i] = &value
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// Require fails with a ParseError when a column is missing.
func (t *Table) Require(columns ...string) error {
	for _, c := range columns {
		if _, ok := t.index[c]; !ok {
			return domain.NewStageError(domain.StageLoad, domain.KindParse, t.Path,
				errors.Errorf("missing required column %q", c))
		}
	}
	return nil
}

// Cell returns the value of column in row i, nil when null or unknown.
func (t *Table) Cell(i int, column string) *string {
	idx, ok := t.index[column]
	if !ok {
		return nil
	}
	return t.Rows[i][idx]
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

func isNull(cell string) bool {
	switch strings.ToLower(cell) {
	case "", "na", "n/a", "nan", "null", "none":
		return true
	}
	return false
}
