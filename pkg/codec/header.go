package codec

import (
	"bytes"
	"encoding/binary"
)

// HeaderSize is the size of the container preamble
const HeaderSize = 14

var standardHeader = [HeaderSize]byte{
	0x06, 0x00, 0x00, 0x00,
	'A', 'I', 'O', 'N', '2', 0x00,
	0x70, 0xEA, 0x01, 0x00,
}

// ContainerHeader is the fixed preamble of a container. Its content is carried
// as read and never validated.
type ContainerHeader struct {
	Tag       uint32
	Signature [6]byte
	Trailer   uint32
}

// StandardHeader returns the preamble written by Encode
func StandardHeader() ContainerHeader {
	h, _, _ := ParseHeader(standardHeader[:])
	return *h
}

// ParseHeader consumes the first HeaderSize bytes of data as the header and
// returns the offset where records start. Buffers shorter than HeaderSize have
// no header; scanning starts at 0 and a HeaderTooShort diagnostic is returned.
func ParseHeader(data []byte) (*ContainerHeader, int, *Diagnostic) {
	if len(data) < HeaderSize {
		return nil, 0, &Diagnostic{
			Offset:  0,
			Kind:    KindHeaderTooShort,
			Message: "buffer shorter than container header, scanning from offset 0",
		}
	}

	h := &ContainerHeader{
		Tag:     binary.LittleEndian.Uint32(data[0:4]),
		Trailer: binary.LittleEndian.Uint32(data[10:14]),
	}
	copy(h.Signature[:], data[4:10])
	return h, HeaderSize, nil
}

// WriteHeader returns the constant preamble every encoded container starts with
func WriteHeader() [HeaderSize]byte {
	return standardHeader
}

// AppendHeader appends the constant preamble to dst
func AppendHeader(dst []byte) []byte {
	return append(dst, standardHeader[:]...)
}

// Bytes returns the header as stored on disk
func (h ContainerHeader) Bytes() [HeaderSize]byte {
	var b [HeaderSize]byte
	binary.LittleEndian.PutUint32(b[0:4], h.Tag)
	copy(b[4:10], h.Signature[:])
	binary.LittleEndian.PutUint32(b[10:14], h.Trailer)
	return b
}

// SignatureString returns the signature with zero padding removed
func (h ContainerHeader) SignatureString() string {
	return string(bytes.TrimRight(h.Signature[:], "\x00"))
}

// IsStandard reports whether h matches the preamble written by Encode
func (h ContainerHeader) IsStandard() bool {
	return h.Bytes() == standardHeader
}
