package codec

import (
	"fmt"
)

// ResyncReason says which length field was rejected
type ResyncReason int

const (
	ResyncKeyLength ResyncReason = iota + 1
	ResyncValueLength
)

// Resync returns the offset where scanning resumes after a rejected length field.
//
// For a key length, cursor is the start of the key length field and scanning
// resumes one byte later. For a value length, cursor is the start of the
// declared value data and scanning resumes right there, treating whatever
// follows as the next key length. This is a heuristic: it can resume in the
// middle of a string, and the decoder's own bounds checks catch what follows.
func Resync(cursor int, reason ResyncReason) int {
	if reason == ResyncValueLength {
		return cursor
	}
	return cursor + 1
}

// Decode scans data into a Container. It never fails; problems are returned as
// diagnostics next to every record decoded before, between and after them.
func (c *ContainerCodec) Decode(data []byte) (*Container, Diagnostics) {
	s := &scanner{data: data, limits: c.limits}
	return s.run()
}

type scanner struct {
	data   []byte
	limits Limits
	pos    int
	out    *Container
	diags  Diagnostics
}

func (s *scanner) run() (*Container, Diagnostics) {
	header, start, diag := ParseHeader(s.data)
	if diag != nil {
		s.diags = append(s.diags, *diag)
	}
	s.out = &Container{Header: header}
	s.pos = start

	for s.pos < len(s.data) && s.step() {
	}
	return s.out, s.diags
}

// step reads one record at s.pos. It returns false when scanning must stop.
func (s *scanner) step() bool {
	keyLenAt := s.pos
	if keyLenAt+LengthFieldSize > len(s.data) {
		return false
	}

	keyLen := ReadLength(s.data[keyLenAt:])
	keyEnc, keySpan := EncodingFromSignedLength(keyLen)
	if keySpan <= 0 || keySpan > int64(s.limits.MaxKeySpan) {
		s.report(keyLenAt, KindInvalidKeyLength, "implausible key length %d, skipping 1 byte", keyLen)
		s.pos = Resync(keyLenAt, ResyncKeyLength)
		return true
	}

	keyAt := keyLenAt + LengthFieldSize
	keyEnd := keyAt + int(keySpan)
	if keyEnd > len(s.data) {
		s.report(keyLenAt, KindTruncatedKey, "key length %d runs past end of buffer (%d bytes)", keyLen, len(s.data))
		return false
	}
	key := s.field(keyAt, s.data[keyAt:keyEnd], keyEnc, "key")

	if keyEnd+LengthFieldSize > len(s.data) {
		s.report(keyEnd, KindMissingValueLength, "key %q has no value length field", key)
		return false
	}

	valueLen := ReadLength(s.data[keyEnd:])
	valueEnc, valueSpan := EncodingFromSignedLength(valueLen)
	valueAt := keyEnd + LengthFieldSize
	if valueSpan > int64(s.limits.MaxValueSpan) || int64(valueAt)+valueSpan > int64(len(s.data)) {
		s.report(keyEnd, KindInvalidValueLength,
			"key %q declares value length %d (%d bytes), resuming at %#x", key, valueLen, valueSpan, valueAt)
		s.pos = Resync(valueAt, ResyncValueLength)
		return true
	}
	valueEnd := valueAt + int(valueSpan)
	value := s.field(valueAt, s.data[valueAt:valueEnd], valueEnc, "value")

	s.out.Records = append(s.out.Records, Record{
		Key:           key,
		Value:         value,
		KeyEncoding:   keyEnc,
		ValueEncoding: valueEnc,
	})
	s.pos = valueEnd
	return true
}

// field decodes one string field, reporting terminator and decoding problems
func (s *scanner) field(at int, raw []byte, enc StringEncoding, what string) string {
	f := DecodeField(raw, enc)
	if !f.Terminated {
		s.report(at, KindMissingTerminator, "%s field (%s) is not zero terminated", what, enc)
	}
	if f.Replaced {
		s.report(at, KindUndecodableBytes, "%s field contains bytes that are not valid %s", what, enc)
	}
	return f.Text
}

func (s *scanner) report(offset int, kind DiagnosticKind, format string, args ...any) {
	s.diags = append(s.diags, Diagnostic{
		Offset:  offset,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}
