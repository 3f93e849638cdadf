package interchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Holastor/AION-2-Localization/pkg/fsutil"
)

// ErrMalformedDocument is returned when input is not a JSON array of entries
var ErrMalformedDocument = errors.New("malformed interchange document")

// Decode reads a document from r
func Decode(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if entries == nil {
		// top-level null
		return nil, fmt.Errorf("%w: expected an array", ErrMalformedDocument)
	}
	return entries, nil
}

// Load reads the document at path
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	entries, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return entries, nil
}

// Encode writes entries to w indented by four spaces. Non-ASCII text and
// markup characters are written as is.
func Encode(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}

// Save atomically writes entries to path
func Save(path string, entries []Entry) error {
	return fsutil.WriteAtomic(path, 0644, func(w io.Writer) error {
		return Encode(w, entries)
	})
}
