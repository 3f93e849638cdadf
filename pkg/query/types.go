// Package query filters interchange entries by field conditions.
package query

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Holastor/AION-2-Localization/pkg/interchange"
)

// Field names, as they appear in interchange JSON
const (
	FieldKey             = "Key"
	FieldValue           = "Value"
	FieldKeyType         = "Key_Type"
	FieldTranslation     = "Russian_Value"
	FieldTranslationType = "Russian_Data_Type"
)

// Operators understood by FieldQuery
const (
	OpEqual    = "="
	OpNotEqual = "!="
	OpPrefix   = "^="
	OpSuffix   = "$="
	OpContains = "*="
	OpMatch    = "~"
)

// ErrUnknownField is returned for a field name entries do not have
var ErrUnknownField = errors.New("unknown field")

// operators in parse order: two-character operators before "=" and "~"
var operators = []string{OpNotEqual, OpPrefix, OpSuffix, OpContains, OpEqual, OpMatch}

// FieldExtractor defines how to extract field values from an entry
type FieldExtractor interface {
	Extract(e interchange.Entry, field string) (string, error)
}

// EntryFieldExtractor extracts fields by their interchange JSON name
type EntryFieldExtractor struct{}

// Extract implements FieldExtractor
func (EntryFieldExtractor) Extract(e interchange.Entry, field string) (string, error) {
	switch field {
	case FieldKey:
		return e.Key, nil
	case FieldValue:
		return e.Value, nil
	case FieldKeyType:
		return e.KeyType, nil
	case FieldTranslation:
		return e.Translation, nil
	case FieldTranslationType:
		return e.TranslationType.String(), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownField, field)
	}
}

// FieldQuery represents a single field condition
type FieldQuery struct {
	Field    string // Field name (e.g. "Key", "Russian_Value")
	Operator string // One of =, !=, ^=, $=, *=, ~
	Value    string // Operand; a regexp for ~
}

// ParseFieldQuery parses "<field><op><value>", e.g. "Key^=NpcTalk_"
func ParseFieldQuery(s string) (FieldQuery, error) {
	best, at := "", -1
	for _, op := range operators {
		i := strings.Index(s, op)
		if i < 0 {
			continue
		}
		if at < 0 || i < at || (i == at && len(op) > len(best)) {
			best, at = op, i
		}
	}
	if at < 0 {
		return FieldQuery{}, fmt.Errorf("no operator in query %q", s)
	}

	q := FieldQuery{
		Field:    strings.TrimSpace(s[:at]),
		Operator: best,
		Value:    s[at+len(best):],
	}
	if err := q.Validate(); err != nil {
		return FieldQuery{}, err
	}
	return q, nil
}

// Validate checks if the query is properly formed
func (q *FieldQuery) Validate() error {
	if q.Field == "" {
		return fmt.Errorf("field name cannot be empty")
	}
	if q.Operator == "" {
		return fmt.Errorf("operator cannot be empty")
	}
	valid := false
	for _, op := range operators {
		if q.Operator == op {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid operator: %s", q.Operator)
	}
	if q.Operator == OpMatch {
		if _, err := regexp.Compile(q.Value); err != nil {
			return fmt.Errorf("invalid pattern for %s: %w", q.Field, err)
		}
	}
	return nil
}

// String renders q in the form ParseFieldQuery accepts
func (q FieldQuery) String() string {
	return q.Field + q.Operator + q.Value
}

// Result is one matching entry and its position in the input
type Result struct {
	Index int               `json:"index"`
	Entry interchange.Entry `json:"entry"`
}

// Iterator provides streaming access to query results
type Iterator interface {
	Next() bool
	Result() Result
	Err() error
	Close() error
}

// Executor runs queries over a set of entries
type Executor interface {
	Execute(ctx context.Context, entries []interchange.Entry, queries ...FieldQuery) (Iterator, error)
}
