package codec

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// rawField builds a length field followed by data, exactly as given
func rawField(n int32, data []byte) []byte {
	return append(AppendLength(nil, n), data...)
}

// withHeader prefixes the standard header to the concatenated parts
func withHeader(parts ...[]byte) []byte {
	out := AppendHeader(nil)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestDecode_RoundTrip(t *testing.T) {
	c := NewContainerCodec()

	testCases := []struct {
		name    string
		records []Record
	}{
		{
			name:    "single utf8 record",
			records: []Record{NewRecord("NpcTalk_001", "Hello")},
		},
		{
			name: "utf16 value",
			records: []Record{
				{Key: "QuestString_01", Value: "Привет, мир", KeyEncoding: EncodingUTF8, ValueEncoding: EncodingUTF16LE},
			},
		},
		{
			name: "utf16 key and value",
			records: []Record{
				{Key: "Ключ", Value: "Значение 😀", KeyEncoding: EncodingUTF16LE, ValueEncoding: EncodingUTF16LE},
			},
		},
		{
			name: "order is preserved",
			records: []Record{
				NewRecord("String_UI_3", "three"),
				NewRecord("String_UI_1", "one"),
				{Key: "String_UI_2", Value: "два", KeyEncoding: EncodingUTF8, ValueEncoding: EncodingUTF16LE},
			},
		},
		{
			name:    "multiline value",
			records: []Record{NewRecord("Post_Body", "line one\nline two\r\n\ttabbed")},
		},
		{
			name:    "large value",
			records: []Record{NewRecord("CutsceneSubtitle_1", strings.Repeat("v", 64*1024))},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, diags, err := c.Encode(tc.records, nil)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if len(diags) != 0 {
				t.Fatalf("unexpected encode diagnostics: %v", diags)
			}

			container, diags := c.Decode(encoded)
			if len(diags) != 0 {
				t.Fatalf("unexpected decode diagnostics: %v", diags)
			}
			if container.Header == nil || !container.Header.IsStandard() {
				t.Errorf("expected standard header, got %+v", container.Header)
			}
			if diff := cmp.Diff(tc.records, container.Records); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_UTF16LengthField(t *testing.T) {
	c := NewContainerCodec()
	records := []Record{
		{Key: "Quest_01", Value: "Привет", KeyEncoding: EncodingUTF8, ValueEncoding: EncodingUTF16LE},
	}

	encoded, _, err := c.Encode(records, nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	valueLenAt := HeaderSize + LengthFieldSize + len("Quest_01") + 1
	if got := ReadLength(encoded[valueLenAt:]); got != -7 {
		t.Errorf("value length field = %d, want -7", got)
	}
	if len(encoded) != valueLenAt+LengthFieldSize+14 {
		t.Errorf("encoded length = %d, want %d", len(encoded), valueLenAt+LengthFieldSize+14)
	}
}

func TestDecode_ConcreteScenario(t *testing.T) {
	c := NewContainerCodec()
	records := []Record{
		NewRecord("NpcTalk_001", "Hello"),
		NewRecord("NpcTalk_002", ""),
	}

	encoded, diags, err := c.Encode(records, nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if bytes.Contains(encoded, []byte("NpcTalk_002")) {
		t.Error("empty record was written")
	}
	if want := HeaderSize + records[0].Size(); len(encoded) != want {
		t.Errorf("encoded length = %d, want %d", len(encoded), want)
	}

	container, diags := c.Decode(encoded)
	if len(diags) != 0 {
		t.Errorf("unexpected decode diagnostics: %v", diags)
	}
	if container.Len() != 1 {
		t.Fatalf("got %d records, want 1", container.Len())
	}
	if container.Records[0].Key != "NpcTalk_001" || container.Records[0].Value != "Hello" {
		t.Errorf("unexpected record %+v", container.Records[0])
	}
}

func TestDecode_HeaderTolerance(t *testing.T) {
	c := NewContainerCodec()

	t.Run("short legacy buffer", func(t *testing.T) {
		data := append(rawField(2, []byte("k\x00")), rawField(2, []byte("v\x00"))...)
		if len(data) >= HeaderSize {
			t.Fatalf("test buffer too long: %d", len(data))
		}

		container, diags := c.Decode(data)
		if container.Header != nil {
			t.Errorf("expected no header, got %+v", container.Header)
		}
		if len(diags) != 1 || diags[0].Kind != KindHeaderTooShort {
			t.Errorf("expected single HeaderTooShort diagnostic, got %v", diags)
		}
		want := []Record{NewRecord("k", "v")}
		if diff := cmp.Diff(want, container.Records); diff != "" {
			t.Errorf("records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty buffer", func(t *testing.T) {
		container, diags := c.Decode(nil)
		if container.Len() != 0 {
			t.Errorf("expected no records, got %d", container.Len())
		}
		if diags.Count(KindHeaderTooShort) != 1 {
			t.Errorf("expected HeaderTooShort, got %v", diags)
		}
	})

	t.Run("header only", func(t *testing.T) {
		container, diags := c.Decode(withHeader())
		if container.Len() != 0 || len(diags) != 0 {
			t.Errorf("expected empty result, got %d records, diagnostics %v", container.Len(), diags)
		}
	})
}

func TestDecode_ValueLengthResync(t *testing.T) {
	c := NewContainerCodec()

	good := append(rawField(12, []byte("NpcTalk_002\x00")), rawField(6, []byte("World\x00"))...)

	testCases := []struct {
		name     string
		valueLen int32
	}{
		{name: "past end of buffer", valueLen: 4096},
		{name: "above ceiling", valueLen: 0x7FFFFFF0},
		{name: "negative above ceiling", valueLen: -0x40000000},
		{name: "most negative length", valueLen: math.MinInt32},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data := withHeader(
				rawField(7, []byte("Broken\x00")),
				AppendLength(nil, tc.valueLen),
				good,
			)

			container, diags := c.Decode(data)
			if diags.Count(KindInvalidValueLength) != 1 || len(diags) != 1 {
				t.Fatalf("expected one InvalidValueLength diagnostic, got %v", diags)
			}
			if want := HeaderSize + LengthFieldSize + 7; diags[0].Offset != want {
				t.Errorf("diagnostic offset = %d, want %d", diags[0].Offset, want)
			}
			want := []Record{NewRecord("NpcTalk_002", "World")}
			if diff := cmp.Diff(want, container.Records); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_KeyLengthResync(t *testing.T) {
	c := NewContainerCodec()

	// A 99 byte key has a length field whose low byte (100) makes every
	// shifted read over the zero garbage implausible.
	key := strings.Repeat("a", 99)
	record := append(rawField(100, []byte(key+"\x00")), rawField(2, []byte("v\x00"))...)
	data := withHeader([]byte{0, 0, 0, 0}, record)

	container, diags := c.Decode(data)
	if got := diags.Count(KindInvalidKeyLength); got != 4 || len(diags) != 4 {
		t.Errorf("expected 4 InvalidKeyLength diagnostics, got %v", diags)
	}
	for i, d := range diags {
		if d.Offset != HeaderSize+i {
			t.Errorf("diagnostic %d offset = %d, want %d", i, d.Offset, HeaderSize+i)
		}
	}
	want := []Record{NewRecord(key, "v")}
	if diff := cmp.Diff(want, container.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_MostNegativeKeyLength(t *testing.T) {
	c := NewContainerCodec()
	key := strings.Repeat("a", 99)
	record := append(rawField(100, []byte(key+"\x00")), rawField(2, []byte("v\x00"))...)
	data := withHeader(AppendLength(nil, math.MinInt32), record)

	container, diags := c.Decode(data)
	if got := diags.Count(KindInvalidKeyLength); got != 4 || len(diags) != 4 {
		t.Fatalf("expected 4 InvalidKeyLength diagnostics, got %v", diags)
	}
	if diags[0].Offset != HeaderSize {
		t.Errorf("diagnostic offset = %d, want %d", diags[0].Offset, HeaderSize)
	}
	want := []Record{NewRecord(key, "v")}
	if diff := cmp.Diff(want, container.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_KeyCeiling(t *testing.T) {
	c := NewContainerCodecWithLimits(Limits{MaxKeySpan: 8})
	data := withHeader(rawField(9, []byte("123456789")))

	container, diags := c.Decode(data)
	if container.Len() != 0 {
		t.Errorf("expected no records, got %d", container.Len())
	}
	if diags.Count(KindInvalidKeyLength) == 0 {
		t.Errorf("expected InvalidKeyLength, got %v", diags)
	}
}

func TestDecode_TrailingGarbage(t *testing.T) {
	c := NewContainerCodec()
	record := append(rawField(2, []byte("k\x00")), rawField(2, []byte("v\x00"))...)
	data := withHeader(record, []byte{0, 0, 0, 0, 0})

	container, diags := c.Decode(data)
	if container.Len() != 1 {
		t.Errorf("expected 1 record, got %d", container.Len())
	}
	if diags.Count(KindInvalidKeyLength) != 2 {
		t.Errorf("expected 2 InvalidKeyLength diagnostics, got %v", diags)
	}
}

func TestDecode_StreamEndingErrors(t *testing.T) {
	c := NewContainerCodec()
	first := append(rawField(2, []byte("a\x00")), rawField(2, []byte("b\x00"))...)

	testCases := []struct {
		name     string
		tail     []byte
		wantKind DiagnosticKind
	}{
		{
			name:     "truncated key",
			tail:     rawField(50, []byte("abc")),
			wantKind: KindTruncatedKey,
		},
		{
			name:     "missing value length",
			tail:     append(rawField(2, []byte("K\x00")), 0x01, 0x00),
			wantKind: KindMissingValueLength,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			container, diags := c.Decode(withHeader(first, tc.tail))
			if len(diags) != 1 || diags[0].Kind != tc.wantKind {
				t.Fatalf("expected single %s diagnostic, got %v", tc.wantKind, diags)
			}
			if !diags.HasFatal() {
				t.Error("expected diagnostics to be fatal")
			}
			want := []Record{NewRecord("a", "b")}
			if diff := cmp.Diff(want, container.Records); diff != "" {
				t.Errorf("prior records not retained (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_NonFatalFieldProblems(t *testing.T) {
	c := NewContainerCodec()

	t.Run("missing key terminator", func(t *testing.T) {
		data := withHeader(rawField(3, []byte("abc")), rawField(2, []byte("v\x00")))
		container, diags := c.Decode(data)
		if diags.Count(KindMissingTerminator) != 1 {
			t.Errorf("expected MissingTerminator, got %v", diags)
		}
		if container.Len() != 1 || container.Records[0].Key != "ab" {
			t.Errorf("unexpected records %+v", container.Records)
		}
	})

	t.Run("zero length value", func(t *testing.T) {
		data := withHeader(rawField(2, []byte("k\x00")), rawField(0, nil))
		container, diags := c.Decode(data)
		if diags.Count(KindMissingTerminator) != 1 {
			t.Errorf("expected MissingTerminator, got %v", diags)
		}
		if container.Len() != 1 || container.Records[0].Value != "" {
			t.Errorf("unexpected records %+v", container.Records)
		}
	})

	t.Run("undecodable value bytes", func(t *testing.T) {
		data := withHeader(rawField(2, []byte("k\x00")), rawField(3, []byte{0xC3, 0x28, 0x00}))
		container, diags := c.Decode(data)
		if diags.Count(KindUndecodableBytes) != 1 {
			t.Errorf("expected UndecodableBytes, got %v", diags)
		}
		if container.Len() != 1 || !strings.Contains(container.Records[0].Value, "�") {
			t.Errorf("unexpected records %+v", container.Records)
		}
	})
}

func TestResync(t *testing.T) {
	if got := Resync(100, ResyncKeyLength); got != 101 {
		t.Errorf("key resync = %d, want 101", got)
	}
	if got := Resync(100, ResyncValueLength); got != 100 {
		t.Errorf("value resync = %d, want 100", got)
	}
}
