package codec

import (
	"fmt"
)

// DiagnosticKind classifies a problem found while decoding or encoding
type DiagnosticKind int

const (
	KindHeaderTooShort DiagnosticKind = iota + 1
	KindInvalidKeyLength
	KindTruncatedKey
	KindMissingValueLength
	KindInvalidValueLength
	KindMissingTerminator
	KindUndecodableBytes
	KindUnknownEncoding
)

var kindNames = map[DiagnosticKind]string{
	KindHeaderTooShort:     "HeaderTooShort",
	KindInvalidKeyLength:   "InvalidKeyLength",
	KindTruncatedKey:       "TruncatedKey",
	KindMissingValueLength: "MissingValueLength",
	KindInvalidValueLength: "InvalidValueLength",
	KindMissingTerminator:  "MissingTerminator",
	KindUndecodableBytes:   "UndecodableBytes",
	KindUnknownEncoding:    "UnknownEncoding",
}

func (k DiagnosticKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Fatal reports whether the kind ends a decode pass
func (k DiagnosticKind) Fatal() bool {
	return k == KindTruncatedKey || k == KindMissingValueLength
}

// MarshalText encodes the kind by name
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name
func (k *DiagnosticKind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown diagnostic kind %q", text)
}

// Diagnostic describes one recoverable or stream-ending problem.
// Offset is the byte position in the input for decode diagnostics and the
// output position the skipped record would have occupied for encode diagnostics.
type Diagnostic struct {
	Offset  int            `json:"offset"`
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%#x: %s: %s", d.Offset, d.Kind, d.Message)
}

// Diagnostics is the list accumulated during one decode or encode call
type Diagnostics []Diagnostic

// Count returns the number of diagnostics of the given kind
func (ds Diagnostics) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// HasFatal reports whether the pass ended early
func (ds Diagnostics) HasFatal() bool {
	for _, d := range ds {
		if d.Kind.Fatal() {
			return true
		}
	}
	return false
}

// ByKind groups diagnostic counts by kind
func (ds Diagnostics) ByKind() map[DiagnosticKind]int {
	counts := make(map[DiagnosticKind]int)
	for _, d := range ds {
		counts[d.Kind]++
	}
	return counts
}
