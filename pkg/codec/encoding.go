package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

// LengthFieldSize is the size of every length prefix in a container
const LengthFieldSize = 4

// ErrLengthOverflow is returned when a field is too long for a 32-bit length prefix
var ErrLengthOverflow = errors.New("field length overflows 32-bit length field")

// StringEncoding selects how a string field is stored
type StringEncoding uint8

const (
	EncodingUTF8 StringEncoding = iota
	EncodingUTF16LE

	// EncodingInvalid marks an encoding name that could not be parsed.
	// The encoder reports records carrying it and skips them.
	EncodingInvalid StringEncoding = 0xFF
)

// Valid reports whether e is one of the container encodings
func (e StringEncoding) Valid() bool {
	return e == EncodingUTF8 || e == EncodingUTF16LE
}

// TerminatorSize returns the number of zero bytes that end a field
func (e StringEncoding) TerminatorSize() int {
	if e == EncodingUTF16LE {
		return 2
	}
	return 1
}

// String returns the name used by the JSON interchange files
func (e StringEncoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingUTF16LE:
		return "UTF-16"
	default:
		return fmt.Sprintf("StringEncoding(%d)", uint8(e))
	}
}

// ParseStringEncoding parses an interchange encoding name such as "UTF-8" or "UTF-16".
// Unknown names yield EncodingInvalid and false.
func ParseStringEncoding(name string) (StringEncoding, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "UTF-8", "UTF8":
		return EncodingUTF8, true
	case "UTF-16", "UTF16", "UTF-16LE", "UTF16LE":
		return EncodingUTF16LE, true
	}
	return EncodingInvalid, false
}

// ReadLength interprets the first four bytes of b as a signed little-endian length
func ReadLength(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b[:LengthFieldSize]))
}

// EncodingFromSignedLength splits a length field into its encoding and the byte
// span of the field data, terminator included. The span is int64 so that
// -MinInt32*2 stays exact on 32-bit platforms.
func EncodingFromSignedLength(n int32) (StringEncoding, int64) {
	if n >= 0 {
		return EncodingUTF8, int64(n)
	}
	return EncodingUTF16LE, -int64(n) * 2
}

// SignedLength is the inverse of EncodingFromSignedLength: a positive byte count
// for UTF-8, a negative code unit count for UTF-16LE.
func SignedLength(enc StringEncoding, span int) (int32, error) {
	switch enc {
	case EncodingUTF8:
		if span > math.MaxInt32 {
			return 0, ErrLengthOverflow
		}
		return int32(span), nil
	case EncodingUTF16LE:
		units := span / 2
		if units > math.MaxInt32 {
			return 0, ErrLengthOverflow
		}
		return -int32(units), nil
	default:
		return 0, fmt.Errorf("unknown string encoding %s", enc)
	}
}

// AppendLength appends n as a signed little-endian length field
func AppendLength(dst []byte, n int32) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(n))
}
