// Package po converts interchange documents to and from GNU gettext PO files.
//
// Each record becomes one message: msgctxt holds the key, msgid the source
// value and msgstr the translation.
package po

import (
	"fmt"
	"os"
	"strings"

	"github.com/Holastor/AION-2-Localization/pkg/fsutil"
	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	pofmt "github.com/chai2010/gettext-go/po"
)

// FuzzyFlag marks messages whose source value changed since translation
const FuzzyFlag = "fuzzy"

// StandardHeader returns the header written to every new PO file
func StandardHeader() pofmt.Header {
	return pofmt.Header{
		ProjectIdVersion:        "Aion2 Localization",
		POTCreationDate:         "2025-01-01 00:00+0000",
		PORevisionDate:          "YEAR-MO-DA HO:MI+ZONE",
		LastTranslator:          "FULL NAME <EMAIL@ADDRESS>",
		LanguageTeam:            "Russian",
		Language:                "ru",
		MimeVersion:             "1.0",
		ContentType:             "text/plain; charset=UTF-8",
		ContentTransferEncoding: "8bit",
	}
}

// NewFile returns an empty PO file carrying the standard header
func NewFile() *pofmt.File {
	return &pofmt.File{MimeHeader: StandardHeader()}
}

// Export builds a PO file from entries. Entries with an empty key or source
// value are left out: an empty msgid is reserved for the header.
func Export(entries []interchange.Entry) *pofmt.File {
	f := NewFile()
	for _, e := range entries {
		if e.Key == "" || e.Value == "" {
			continue
		}
		f.Messages = append(f.Messages, message(e))
	}
	return f
}

func message(e interchange.Entry) pofmt.Message {
	return pofmt.Message{
		MsgContext: e.Key,
		MsgId:      e.Value,
		MsgStr:     e.Translation,
	}
}

// ReadFile parses the PO file at path
func ReadFile(path string) (*pofmt.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PO file: %w", err)
	}
	f, err := pofmt.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PO file %s: %w", path, err)
	}
	return f, nil
}

// WriteFile atomically writes f to path
func WriteFile(path string, f *pofmt.File) error {
	if err := fsutil.WriteFileAtomic(path, f.Data(), 0644); err != nil {
		return fmt.Errorf("failed to write PO file: %w", err)
	}
	return nil
}

// FromFile converts the messages of f into interchange entries. Header
// messages and messages without a context are skipped. Imported entries are
// UTF-8 keys with UTF-16 translations.
func FromFile(f *pofmt.File) []interchange.Entry {
	entries := make([]interchange.Entry, 0, len(f.Messages))
	for _, m := range f.Messages {
		if m.MsgId == "" {
			continue
		}
		key := strings.TrimSpace(m.MsgContext)
		if key == "" {
			continue
		}
		entries = append(entries, interchange.Entry{
			Key:             key,
			Value:           m.MsgId,
			KeyType:         "UTF-8",
			Translation:     m.MsgStr,
			TranslationType: interchange.TagUTF16LE,
		})
	}
	return entries
}

// Import reads the PO file at path as interchange entries
func Import(path string) ([]interchange.Entry, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromFile(f), nil
}

// IsFuzzy reports whether m carries the fuzzy flag
func IsFuzzy(m pofmt.Message) bool {
	for _, flag := range m.Flags {
		if strings.TrimSpace(flag) == FuzzyFlag {
			return true
		}
	}
	return false
}
