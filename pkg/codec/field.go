package codec

import (
	"encoding/hex"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Byte order marks are kept as text in both directions.
var (
	utf8Text    encoding.Encoding = unicode.UTF8
	utf16LEText encoding.Encoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
)

// Field is one decoded string field
type Field struct {
	Text       string
	Terminated bool // terminator bytes were present and zero
	Replaced   bool // undecodable bytes were substituted with U+FFFD
}

// DecodeField strips the terminator from raw and decodes the remainder.
// The terminator width is stripped even when those bytes are not zero.
func DecodeField(raw []byte, enc StringEncoding) Field {
	width := enc.TerminatorSize()

	f := Field{Terminated: len(raw) >= width}
	if f.Terminated {
		for _, b := range raw[len(raw)-width:] {
			if b != 0 {
				f.Terminated = false
				break
			}
		}
	}

	body := raw
	if len(body) >= width {
		body = body[:len(body)-width]
	} else {
		body = body[:0]
	}

	var dec encoding.Encoding
	if enc == EncodingUTF16LE {
		dec = utf16LEText
		f.Replaced = !validUTF16LE(body)
	} else {
		dec = utf8Text
		f.Replaced = !utf8.Valid(body)
	}

	text, err := dec.NewDecoder().Bytes(body)
	if err != nil {
		f.Text = hex.EncodeToString(body)
		f.Replaced = true
		return f
	}
	f.Text = string(text)
	return f
}

// AppendField appends the length field, text bytes and terminator for text
func AppendField(dst []byte, text string, enc StringEncoding) ([]byte, error) {
	var body []byte
	switch enc {
	case EncodingUTF8:
		body = []byte(text)
	case EncodingUTF16LE:
		b, err := utf16LEText.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return dst, fmt.Errorf("failed to encode UTF-16LE text: %w", err)
		}
		body = b
	default:
		return dst, fmt.Errorf("unknown string encoding %s", enc)
	}

	span := len(body) + enc.TerminatorSize()
	n, err := SignedLength(enc, span)
	if err != nil {
		return dst, err
	}

	dst = AppendLength(dst, n)
	dst = append(dst, body...)
	for i := 0; i < enc.TerminatorSize(); i++ {
		dst = append(dst, 0)
	}
	return dst, nil
}

// FieldSize returns the encoded size of text without its length prefix
func FieldSize(text string, enc StringEncoding) int {
	if enc != EncodingUTF16LE {
		return len(text) + 1
	}
	units := 0
	for _, r := range text {
		if r >= 0x10000 && r <= utf8.MaxRune {
			units += 2
		} else {
			units++
		}
	}
	return units*2 + 2
}

// validUTF16LE reports whether b is an even number of bytes holding
// well-formed UTF-16LE (no unpaired surrogates).
func validUTF16LE(b []byte) bool {
	if len(b)%2 != 0 {
		return false
	}
	for i := 0; i < len(b); i += 2 {
		u := rune(b[i]) | rune(b[i+1])<<8
		if !utf16.IsSurrogate(u) {
			continue
		}
		if u >= 0xDC00 || i+3 >= len(b) {
			return false
		}
		next := rune(b[i+2]) | rune(b[i+3])<<8
		if next < 0xDC00 || next > 0xDFFF {
			return false
		}
		i += 2
	}
	return true
}
