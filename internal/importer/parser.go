package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/spendwise/internal/encoding"
	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

var separators = []rune{';', ','}

var dateLayouts = []string{time.DateOnly, "02-01-2006", "02/01/2006"}

// Row is one data line of an import file, ready for creation.
type Row struct {
	Line   int
	Params expense.CreateParams
}

// Parse reads an expense CSV file. It normalizes the charset, detects the
// separator and locates the header by matching a known profile. Lines above
// the header and blank lines are skipped.
func Parse(r io.Reader) ([]Row, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	slog.Debug("decoding import file", "charset", charset)

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var readErr error

	for _, sep := range separators {
		rows, err := readRows(data, sep)
		if err != nil {
			readErr = err
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows, headerIdx)
	}

	if readErr != nil {
		return nil, fmt.Errorf("%w: read csv: %w", expense.ErrValidation, readErr)
	}

	return nil, fmt.Errorf("%w: no header found: expected date, category and amount columns", expense.ErrValidation)
}

func readRows(data []byte, sep rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.ToLower(strings.TrimSpace(cell)); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string, headerIdx int) ([]Row, error) {
	descIdx, hasDesc := cols[p.DescCol]
	if !hasDesc {
		descIdx = -1
	}

	var out []Row

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		line := i + 1

		if blank(row) {
			continue
		}

		date, err := parseDate(cellValue(row, cols[p.DateCol]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", expense.ErrValidation, line, err)
		}

		params := expense.CreateParams{
			Category:    cellValue(row, cols[p.CategoryCol]),
			Description: cellValue(row, descIdx),
			Date:        date,
		}

		if s := cellValue(row, cols[p.AmountCol]); s != "" {
			amount, err := parseAmount(s)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: invalid amount %q", expense.ErrValidation, line, s)
			}

			params.Amount = &amount
		}

		out = append(out, Row{Line: line, Params: params})
	}

	return out, nil
}

// parseDate returns s normalized to YYYY-MM-DD. An empty cell is passed
// through so creation reports it as a missing field.
func parseDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly), nil
		}
	}

	return "", errors.New("invalid date " + s)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
