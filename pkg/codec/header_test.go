package codec

import (
	"bytes"
	"testing"
)

func TestWriteHeader(t *testing.T) {
	want := []byte{0x06, 0x00, 0x00, 0x00, 'A', 'I', 'O', 'N', '2', 0x00, 0x70, 0xEA, 0x01, 0x00}
	got := WriteHeader()
	if !bytes.Equal(got[:], want) {
		t.Errorf("header mismatch:\n got % x\nwant % x", got, want)
	}
	if !bytes.Equal(AppendHeader(nil), want) {
		t.Error("AppendHeader differs from WriteHeader")
	}
}

func TestParseHeader(t *testing.T) {
	t.Run("standard header", func(t *testing.T) {
		hb := WriteHeader()
		data := append(hb[:], 0xAA, 0xBB)

		h, next, diag := ParseHeader(data)
		if diag != nil {
			t.Fatalf("unexpected diagnostic: %v", diag)
		}
		if next != HeaderSize {
			t.Errorf("next offset = %d, want %d", next, HeaderSize)
		}
		if h.Tag != 6 || h.Trailer != 0x0001EA70 {
			t.Errorf("unexpected header fields: %+v", h)
		}
		if h.SignatureString() != "AION2" {
			t.Errorf("signature = %q, want AION2", h.SignatureString())
		}
		if !h.IsStandard() {
			t.Error("standard header not recognized")
		}
	})

	t.Run("foreign header is consumed unchecked", func(t *testing.T) {
		data := bytes.Repeat([]byte{0x11}, HeaderSize)

		h, next, diag := ParseHeader(data)
		if diag != nil {
			t.Fatalf("unexpected diagnostic: %v", diag)
		}
		if next != HeaderSize {
			t.Errorf("next offset = %d, want %d", next, HeaderSize)
		}
		if h.IsStandard() {
			t.Error("foreign header reported as standard")
		}
		if got := h.Bytes(); !bytes.Equal(got[:], data) {
			t.Errorf("Bytes() = % x, want % x", got, data)
		}
	})

	t.Run("short buffer", func(t *testing.T) {
		h, next, diag := ParseHeader(make([]byte, HeaderSize-1))
		if h != nil {
			t.Errorf("expected no header, got %+v", h)
		}
		if next != 0 {
			t.Errorf("next offset = %d, want 0", next)
		}
		if diag == nil || diag.Kind != KindHeaderTooShort {
			t.Errorf("expected HeaderTooShort diagnostic, got %v", diag)
		}
	})
}

func TestStandardHeader(t *testing.T) {
	h := StandardHeader()
	if got, want := h.Bytes(), WriteHeader(); got != want {
		t.Errorf("StandardHeader().Bytes() = % x, want % x", got, want)
	}
}
