package codec

import (
	"fmt"
	"strings"
)

// Filter decides whether a record is written by Encode
type Filter func(Record) bool

// SkipEmptyValues keeps records whose value is not blank. Untranslated entries
// are dropped so that only translated records make it back into a container.
func SkipEmptyValues(r Record) bool {
	return strings.TrimSpace(r.Value) != ""
}

// KeepAll keeps every record
func KeepAll(Record) bool {
	return true
}

// Encode serializes records into container bytes, header first. Records
// rejected by filter are omitted; nil means SkipEmptyValues. Records with an
// invalid encoding are skipped with an UnknownEncoding diagnostic. The output is
// built in memory and returned only once complete.
func (c *ContainerCodec) Encode(records []Record, filter Filter) ([]byte, Diagnostics, error) {
	if filter == nil {
		filter = SkipEmptyValues
	}

	size := HeaderSize
	for _, r := range records {
		size += r.Size()
	}
	buf := AppendHeader(make([]byte, 0, size))

	var diags Diagnostics
	for i, r := range records {
		if !filter(r) {
			continue
		}
		if !r.KeyEncoding.Valid() || !r.ValueEncoding.Valid() {
			diags = append(diags, Diagnostic{
				Offset: len(buf),
				Kind:   KindUnknownEncoding,
				Message: fmt.Sprintf("record %d key %q: unknown encoding (key %s, value %s), skipped",
					i, r.Key, r.KeyEncoding, r.ValueEncoding),
			})
			continue
		}

		var err error
		if buf, err = AppendField(buf, r.Key, r.KeyEncoding); err != nil {
			return nil, diags, fmt.Errorf("failed to encode key of record %d: %w", i, err)
		}
		if buf, err = AppendField(buf, r.Value, r.ValueEncoding); err != nil {
			return nil, diags, fmt.Errorf("failed to encode value of record %d (key %q): %w", i, r.Key, err)
		}
	}

	return buf, diags, nil
}

// EncodeContainer encodes every record of c with filter. The stored header is
// ignored: encoded containers always start with the standard preamble.
func (c *ContainerCodec) EncodeContainer(container *Container, filter Filter) ([]byte, Diagnostics, error) {
	return c.Encode(container.Records, filter)
}
