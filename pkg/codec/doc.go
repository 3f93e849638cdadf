// Package codec reads and writes AION2 localization containers.
//
// A container is a flat binary blob of key/value string pairs preceded by a
// fixed preamble. The package decodes raw container bytes into ordered records
// and encodes records back into byte-exact container bytes.
//
// # Container Format
//
//	[Header(14)][KeyLen(4)][Key...][ValueLen(4)][Value...][KeyLen(4)]...
//
// Fields:
//   - Header: 06 00 00 00, "AION2\0", 70 EA 01 00
//   - KeyLen/ValueLen: signed 32-bit little-endian length
//   - Key/Value: string bytes followed by a zero terminator
//
// Records follow each other with no padding or alignment.
//
// # Signed Lengths
//
// The sign of a length field selects the string encoding:
//   - n >= 0: UTF-8, n bytes including a 1-byte terminator
//   - n < 0: UTF-16LE, |n| code units including a 2-byte terminator
//
// # Usage
//
//	c := codec.NewContainerCodec()
//
//	container, diags := c.Decode(data)
//	for _, d := range diags {
//	    log.Println(d)
//	}
//
//	out, diags, err := c.Encode(container.Records, codec.SkipEmptyValues)
//	if err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Decoding never fails. Implausible length fields, truncation, missing
// terminators and undecodable bytes are reported as Diagnostic values next to
// whatever records could be recovered. After an implausible length the decoder
// resynchronizes with a fixed heuristic (see Resync); this is best-effort and may
// misread bytes that follow a corrupt region.
//
// Encoding reports records with an invalid encoding as diagnostics and skips
// them. It only returns an error when a field cannot be represented in a 32-bit
// length field.
//
// # Thread Safety
//
// ContainerCodec instances hold no mutable state and are safe for concurrent
// use. Every Decode and Encode call owns its buffers and results.
package codec
