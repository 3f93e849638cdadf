package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Holastor/AION-2-Localization/pkg/codec"
	"github.com/Holastor/AION-2-Localization/pkg/config"
	"github.com/Holastor/AION-2-Localization/pkg/di"
	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// writeContainer builds a small container with one untranslated record
func writeContainer(t *testing.T, dir string) string {
	t.Helper()
	data := codec.AppendHeader(nil)
	var err error
	for _, kv := range [][2]string{{"NpcTalk_001", "Hello"}, {"NpcTalk_002", "World"}} {
		data, err = codec.AppendField(data, kv[0], codec.EncodingUTF8)
		require.NoError(t, err)
		data, err = codec.AppendField(data, kv[1], codec.EncodingUTF16LE)
		require.NoError(t, err)
	}
	path := filepath.Join(dir, "l10n.dat")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// executeCommand runs the root command with args and returns its output
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	SetContainer(di.NewContainer())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestReplaceExt(t *testing.T) {
	tests := []struct {
		path string
		ext  string
		want string
	}{
		{"l10n.dat", ".json", "l10n.json"},
		{filepath.Join("dir", "en.po"), ".json", filepath.Join("dir", "en.json")},
		{"noext", ".po", "noext.po"},
		{"ru.json", "", "ru"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, replaceExt(tt.path, tt.ext))
	}
}

func TestDefaultUnpackOutput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"l10n.dat", "extracted_localization_l10n_dat.json"},
		{filepath.Join("game", "en.json"), filepath.Join("game", "extracted_localization_en_json.json")},
		{"noext", "extracted_localization_noext.json"},
	}
	for _, tt := range tests {
		got := defaultUnpackOutput(tt.input)
		assert.Equal(t, tt.want, got)
		assert.NotEqual(t, tt.input, got)
	}
}

func TestUnpackKeepsJSONNamedInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "l10n.json")
	require.NoError(t, os.Rename(writeContainer(t, dir), input))
	original, err := os.ReadFile(input)
	require.NoError(t, err)

	c := codec.NewContainerCodec()
	_, err = unpackFile(c, zap.NewNop(), input, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to overwrite input")

	_, err = unpackFile(c, zap.NewNop(), input, filepath.Join(dir, ".", "l10n.json"))
	require.Error(t, err)

	res, err := unpackFile(c, zap.NewNop(), input, defaultUnpackOutput(input))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Records)

	after, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, original, after)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "При...", truncate("Привет мир", 6))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "a⏎b c", oneLine("a\nb\tc"))
}

func TestDescribeHeader(t *testing.T) {
	assert.Contains(t, describeHeader(nil), "missing")

	h := codec.StandardHeader()
	assert.Contains(t, describeHeader(&h), "standard")

	h.Tag = 7
	assert.Contains(t, describeHeader(&h), "non-standard")
}

func TestNewApp(t *testing.T) {
	dir := t.TempDir()

	t.Run("defaults without config file", func(t *testing.T) {
		a, err := newApp(filepath.Join(dir, "missing.yaml"), "")
		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig(), a.config)
		assert.NotNil(t, a.codec)
		assert.NotNil(t, a.logger)
	})

	t.Run("config file and level override", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Codec.MaxKeySpan = 512
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, config.SaveConfig(cfg, path))

		a, err := newApp(path, "debug")
		require.NoError(t, err)
		assert.Equal(t, 512, a.codec.Limits().MaxKeySpan)
		assert.Equal(t, "debug", a.config.Logging.Level)
		assert.Equal(t, path, a.configPath)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := newApp(filepath.Join(dir, "missing.yaml"), "loud")
		assert.Error(t, err)
	})
}

func TestUnpackPackRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := writeContainer(t, dir)
	c := codec.NewContainerCodec()
	logger := zap.NewNop()

	jsonPath := filepath.Join(dir, "en.json")
	res, err := unpackFile(c, logger, input, jsonPath)
	require.NoError(t, err)
	assert.Equal(t, unpackResult{Records: 2}, res)

	entries, err := interchange.Load(jsonPath)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "World", entries[1].Value)
	assert.Equal(t, "UTF-8", entries[1].KeyType)

	entries[0].Translation = "Привет"
	entries[0].TranslationType = interchange.TagUTF16LE
	require.NoError(t, interchange.Save(jsonPath, entries))

	outPath := filepath.Join(dir, "ru.dat")
	packed, err := packFile(c, logger, jsonPath, outPath, false)
	require.NoError(t, err)
	assert.Equal(t, 2, packed.Entries)
	assert.Equal(t, 1, packed.Written)
	assert.Equal(t, 1, packed.Skipped)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, packed.Bytes, len(data))

	container, diags := c.Decode(data)
	assert.Empty(t, diags)
	require.Equal(t, 1, container.Len())
	assert.Equal(t, "NpcTalk_001", container.Records[0].Key)
	assert.Equal(t, "Привет", container.Records[0].Value)
	assert.Equal(t, codec.EncodingUTF16LE, container.Records[0].ValueEncoding)

	// keep-empty writes the untranslated record too
	packed, err = packFile(c, logger, jsonPath, outPath, true)
	require.NoError(t, err)
	assert.Equal(t, 2, packed.Written)
}

func TestLoadEntries(t *testing.T) {
	dir := t.TempDir()
	input := writeContainer(t, dir)
	c := codec.NewContainerCodec()

	fromContainer, err := loadEntries(c, zap.NewNop(), input)
	require.NoError(t, err)
	require.Len(t, fromContainer, 2)

	jsonPath := filepath.Join(dir, "doc.JSON")
	require.NoError(t, interchange.Save(jsonPath, fromContainer[:1]))
	fromJSON, err := loadEntries(c, zap.NewNop(), jsonPath)
	require.NoError(t, err)
	assert.Equal(t, fromContainer[:1], fromJSON)

	_, err = loadEntries(c, zap.NewNop(), filepath.Join(dir, "missing.dat"))
	assert.Error(t, err)
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	input := writeContainer(t, dir)

	cfg := config.DefaultConfig()
	cfg.Snapshots.Dir = filepath.Join(dir, "snapshots")
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.SaveConfig(cfg, configPath))

	t.Run("inspect json", func(t *testing.T) {
		out, err := executeCommand(t, "inspect", input, "--config", configPath, "--format", "json")
		require.NoError(t, err)
		assert.Contains(t, out, `"records": 2`)
		assert.Contains(t, out, "AION2 (standard)")
	})

	t.Run("inspect unknown format", func(t *testing.T) {
		_, err := executeCommand(t, "inspect", input, "--config", configPath, "--format", "xml")
		assert.Error(t, err)
	})

	t.Run("unpack", func(t *testing.T) {
		out, err := executeCommand(t, "unpack", input, "--config", configPath, "-o", filepath.Join(dir, "out.json"))
		require.NoError(t, err)
		assert.Contains(t, out, "Extracted 2 records")
	})

	t.Run("unpack default output", func(t *testing.T) {
		out, err := executeCommand(t, "unpack", input, "--config", configPath)
		require.NoError(t, err)
		want := filepath.Join(dir, "extracted_localization_l10n_dat.json")
		assert.Contains(t, out, want)
		entries, err := interchange.Load(want)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("merge", func(t *testing.T) {
		base := []interchange.Entry{
			{Key: "NpcTalk_001", Value: "Hello", Translation: "Привет"},
			{Key: "Gone_001", Value: "Old"},
		}
		basePath := filepath.Join(dir, "base.json")
		require.NoError(t, interchange.Save(basePath, base))

		mergedPath := filepath.Join(dir, "merged.json")
		out, err := executeCommand(t, "merge", basePath, input, "--config", configPath, "-o", mergedPath)
		require.NoError(t, err)
		assert.Contains(t, out, "kept 1, changed 0, added 1, removed 1")

		merged, err := interchange.Load(mergedPath)
		require.NoError(t, err)
		require.Len(t, merged, 2)
		assert.Equal(t, "Привет", merged[0].Translation)
		assert.Equal(t, "NpcTalk_002", merged[1].Key)
	})

	t.Run("snapshots", func(t *testing.T) {
		out, err := executeCommand(t, "snapshot", "save", input, "--config", configPath, "--name", "v1")
		require.NoError(t, err)
		assert.Contains(t, out, "Saved snapshot")

		changed := []interchange.Entry{{Key: "NpcTalk_001", Value: "Hi"}, {Key: "NpcTalk_003", Value: "New"}}
		changedPath := filepath.Join(dir, "v2.json")
		require.NoError(t, interchange.Save(changedPath, changed))
		_, err = executeCommand(t, "snapshot", "save", changedPath, "--config", configPath, "--name", "v2")
		require.NoError(t, err)

		out, err = executeCommand(t, "snapshot", "list", "--config", configPath, "--format", "table")
		require.NoError(t, err)
		assert.Contains(t, out, "v1")
		assert.Contains(t, out, "v2")

		out, err = executeCommand(t, "snapshot", "diff", "v1", "v2", "--config", configPath, "--format", "table")
		require.NoError(t, err)
		assert.Contains(t, out, "Added: 1  Removed: 1  Changed: 1")
		assert.Contains(t, out, "+ NpcTalk_003")
		assert.Contains(t, out, "- NpcTalk_002")

		out, err = executeCommand(t, "snapshot", "rm", "v1", "--config", configPath)
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted snapshot")

		_, err = executeCommand(t, "snapshot", "diff", "v1", "v2", "--config", configPath, "--format", "table")
		assert.Error(t, err)
	})

	t.Run("search", func(t *testing.T) {
		out, err := executeCommand(t, "search", input, "--config", configPath, "--where", "Key$=_002", "--format", "table")
		require.NoError(t, err)
		assert.Contains(t, out, "NpcTalk_002")
		assert.NotContains(t, out, "NpcTalk_001")
	})

	t.Run("po export and import", func(t *testing.T) {
		poPath := filepath.Join(dir, "en.po")
		out, err := executeCommand(t, "po", "export", input, "--config", configPath, "-o", poPath)
		require.NoError(t, err)
		assert.Contains(t, out, "Exported 2 messages")

		data, err := os.ReadFile(poPath)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(data), `msgctxt "NpcTalk_001"`))

		jsonPath := filepath.Join(dir, "from_po.json")
		out, err = executeCommand(t, "po", "import", poPath, "--config", configPath, "-o", jsonPath)
		require.NoError(t, err)
		assert.Contains(t, out, "Imported 2 entries")
	})
}
