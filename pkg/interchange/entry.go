// Package interchange implements the JSON record format shared by the unpack,
// pack, PO and CSV tooling.
//
// A document is an ordered JSON array of objects:
//
//	[
//	    {
//	        "Key": "NpcTalk_001",
//	        "Value": "Hello",
//	        "Key_Type": "UTF-8",
//	        "Russian_Value": "Привет",
//	        "Russian_Data_Type": 1
//	    }
//	]
//
// Unpacking fills Key, Value and Key_Type and leaves the translated fields
// empty. Packing writes Russian_Value as the record value, stored with the
// encoding named by Russian_Data_Type.
package interchange

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/Holastor/AION-2-Localization/pkg/codec"
)

// ValueTag selects the encoding of a translated value
type ValueTag uint8

const (
	// TagUnspecified means no encoding was given; UTF-8 is used
	TagUnspecified ValueTag = iota
	TagUTF8
	TagUTF16LE
)

// ParseValueTag converts the flag forms found in documents. Anything
// unrecognized is TagUnspecified.
func ParseValueTag(s string) ValueTag {
	switch strings.TrimSpace(s) {
	case "0":
		return TagUTF8
	case "1":
		return TagUTF16LE
	default:
		return TagUnspecified
	}
}

// Resolve returns the string encoding the tag stands for
func (t ValueTag) Resolve() codec.StringEncoding {
	if t == TagUTF16LE {
		return codec.EncodingUTF16LE
	}
	return codec.EncodingUTF8
}

func (t ValueTag) String() string {
	switch t {
	case TagUTF8:
		return "0"
	case TagUTF16LE:
		return "1"
	default:
		return ""
	}
}

// MarshalJSON writes 0 or 1, or "" when unspecified
func (t ValueTag) MarshalJSON() ([]byte, error) {
	switch t {
	case TagUTF8, TagUTF16LE:
		return []byte(t.String()), nil
	default:
		return []byte(`""`), nil
	}
}

// UnmarshalJSON accepts numbers, strings and null. It never fails: values
// other than 0 and 1 decode as TagUnspecified.
func (t *ValueTag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			*t = TagUnspecified
			return nil
		}
		*t = ParseValueTag(s)
		return nil
	}
	*t = ParseValueTag(string(data))
	return nil
}

// Entry is one record of an interchange document
type Entry struct {
	Key             string   `json:"Key"`
	Value           string   `json:"Value"`
	KeyType         string   `json:"Key_Type"`
	Translation     string   `json:"Russian_Value"`
	TranslationType ValueTag `json:"Russian_Data_Type"`
}

// KeyEncoding parses KeyType. An empty KeyType means UTF-8; an unknown name
// yields codec.EncodingInvalid.
func (e Entry) KeyEncoding() codec.StringEncoding {
	if strings.TrimSpace(e.KeyType) == "" {
		return codec.EncodingUTF8
	}
	enc, ok := codec.ParseStringEncoding(e.KeyType)
	if !ok {
		return codec.EncodingInvalid
	}
	return enc
}

// FromRecords converts decoded records into entries awaiting translation
func FromRecords(records []codec.Record) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{
			Key:     r.Key,
			Value:   r.Value,
			KeyType: r.KeyEncoding.String(),
		})
	}
	return entries
}

// ToRecords converts entries into records ready for packing. The record value
// is the translation.
func ToRecords(entries []Entry) []codec.Record {
	records := make([]codec.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, codec.Record{
			Key:           e.Key,
			Value:         e.Translation,
			KeyEncoding:   e.KeyEncoding(),
			ValueEncoding: e.TranslationType.Resolve(),
		})
	}
	return records
}

// Translated reports whether the entry carries a non-blank translation
func (e Entry) Translated() bool {
	return strings.TrimSpace(e.Translation) != ""
}
