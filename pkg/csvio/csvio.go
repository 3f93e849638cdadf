// Package csvio moves interchange entries in and out of spreadsheets.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Holastor/AION-2-Localization/pkg/interchange"
)

var (
	// ErrUnknownColumn is returned by Export for a column it cannot fill
	ErrUnknownColumn = errors.New("unknown column")
	// ErrMissingColumn is returned by InjectTranslations when the CSV header
	// lacks a requested column
	ErrMissingColumn = errors.New("missing column")
)

// DefaultColumns are exported when no columns are requested
var DefaultColumns = []string{"Key", "Value", "Russian_Value"}

type getter func(interchange.Entry) string

var columns = map[string]getter{
	"Key":               func(e interchange.Entry) string { return e.Key },
	"Value":             func(e interchange.Entry) string { return e.Value },
	"Original_Value":    func(e interchange.Entry) string { return e.Value },
	"Key_Type":          func(e interchange.Entry) string { return e.KeyType },
	"Russian_Value":     func(e interchange.Entry) string { return e.Translation },
	"Russian_Data_Type": func(e interchange.Entry) string { return e.TranslationType.String() },
}

// Export writes a header row followed by one row per entry
func Export(w io.Writer, entries []interchange.Entry, cols []string) error {
	if len(cols) == 0 {
		cols = DefaultColumns
	}
	getters := make([]getter, len(cols))
	for i, c := range cols {
		g, ok := columns[c]
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownColumn, c)
		}
		getters[i] = g
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	row := make([]string, len(cols))
	for _, e := range entries {
		for i, g := range getters {
			row[i] = g(e)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", e.Key, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// InjectTranslations reads translations from r and stores them in the
// entries with a matching key. It returns the number of entries updated. When
// a key repeats in the CSV the last row wins.
func InjectTranslations(entries []interchange.Entry, r io.Reader, keyColumn, translationColumn string) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	keyIdx, trIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case keyColumn:
			keyIdx = i
		case translationColumn:
			trIdx = i
		}
	}
	if keyIdx < 0 {
		return 0, fmt.Errorf("%w %q", ErrMissingColumn, keyColumn)
	}
	if trIdx < 0 {
		return 0, fmt.Errorf("%w %q", ErrMissingColumn, translationColumn)
	}

	translations := make(map[string]string)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read CSV: %w", err)
		}
		if keyIdx >= len(rec) || trIdx >= len(rec) {
			continue
		}
		key := strings.TrimSpace(rec[keyIdx])
		if key == "" {
			continue
		}
		translations[key] = rec[trIdx]
	}

	updated := 0
	for i := range entries {
		if tr, ok := translations[entries[i].Key]; ok {
			entries[i].Translation = tr
			updated++
		}
	}
	return updated, nil
}
