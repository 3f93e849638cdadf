package interchange

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	input := `[
		{"Key": "NpcTalk_001", "Value": "Hello", "Key_Type": "UTF-8", "Russian_Value": "Привет", "Russian_Data_Type": "1"},
		{"Key": "NpcTalk_002", "Value": "World", "Key_Type": "UTF-8", "Russian_Value": "", "Russian_Data_Type": ""},
		{"Key": "NpcTalk_003", "Value": "Bye", "Extra": true}
	]`

	entries, err := Decode(strings.NewReader(input))
	require.NoError(t, err)

	want := []Entry{
		{Key: "NpcTalk_001", Value: "Hello", KeyType: "UTF-8", Translation: "Привет", TranslationType: TagUTF16LE},
		{Key: "NpcTalk_002", Value: "World", KeyType: "UTF-8"},
		{Key: "NpcTalk_003", Value: "Bye"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, input := range []string{
		`{"Key": "NpcTalk_001"}`,
		`null`,
		`[{"Key": 1}]`,
		`not json`,
		``,
	} {
		_, err := Decode(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrMalformedDocument, "input %q", input)
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, []Entry{{Key: "UI_<b>", Value: "Hello & bye", KeyType: "UTF-8", Translation: "Привет"}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "\n    {\n        \"Key\": \"UI_<b>\"")
	assert.Contains(t, out, `"Value": "Hello & bye"`)
	assert.Contains(t, out, `"Russian_Value": "Привет"`)
	assert.Contains(t, out, `"Russian_Data_Type": ""`)

	buf.Reset()
	require.NoError(t, Encode(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localization.json")
	entries := []Entry{
		{Key: "NpcTalk_001", Value: "Hello", KeyType: "UTF-8", Translation: "Привет", TranslationType: TagUTF16LE},
		{Key: "NpcTalk_002", Value: "World", KeyType: "UTF-16"},
	}

	require.NoError(t, Save(path, entries))

	loaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(entries, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
