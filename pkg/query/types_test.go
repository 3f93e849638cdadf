package query

import (
	"testing"

	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   FieldQuery
		wantErr bool
	}{
		{"valid equality query", FieldQuery{Field: "Key", Operator: "=", Value: "NpcTalk_001"}, false},
		{"valid prefix query", FieldQuery{Field: "Key", Operator: "^=", Value: "NpcTalk"}, false},
		{"valid regexp", FieldQuery{Field: "Value", Operator: "~", Value: `^\d+$`}, false},
		{"empty field", FieldQuery{Field: "", Operator: "=", Value: "x"}, true},
		{"empty operator", FieldQuery{Field: "Key", Operator: "", Value: "x"}, true},
		{"invalid operator", FieldQuery{Field: "Key", Operator: ">", Value: "x"}, true},
		{"bad regexp", FieldQuery{Field: "Key", Operator: "~", Value: "("}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseFieldQuery(t *testing.T) {
	tests := []struct {
		in      string
		want    FieldQuery
		wantErr bool
	}{
		{in: "Key=NpcTalk_001", want: FieldQuery{Field: "Key", Operator: "=", Value: "NpcTalk_001"}},
		{in: "Key^=NpcTalk_", want: FieldQuery{Field: "Key", Operator: "^=", Value: "NpcTalk_"}},
		{in: "Key$=_01", want: FieldQuery{Field: "Key", Operator: "$=", Value: "_01"}},
		{in: "Value*=a=b", want: FieldQuery{Field: "Value", Operator: "*=", Value: "a=b"}},
		{in: "Russian_Value!=", want: FieldQuery{Field: "Russian_Value", Operator: "!=", Value: ""}},
		{in: "Russian_Value=", want: FieldQuery{Field: "Russian_Value", Operator: "=", Value: ""}},
		{in: "Key~^Quest.*=", want: FieldQuery{Field: "Key", Operator: "~", Value: "^Quest.*="}},
		{in: " Key =x", want: FieldQuery{Field: "Key", Operator: "=", Value: "x"}},
		{in: "Key", wantErr: true},
		{in: "=x", wantErr: true},
		{in: "Key~(", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFieldQuery(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) FieldQuery {
	t.Helper()
	q, err := ParseFieldQuery(s)
	require.NoError(t, err)
	return q
}

func TestEntryFieldExtractor_Extract(t *testing.T) {
	e := interchange.Entry{
		Key:             "NpcTalk_001",
		Value:           "Hello",
		KeyType:         "UTF-8",
		Translation:     "Привет",
		TranslationType: interchange.TagUTF16LE,
	}
	extractor := EntryFieldExtractor{}

	tests := []struct {
		field string
		want  string
	}{
		{FieldKey, "NpcTalk_001"},
		{FieldValue, "Hello"},
		{FieldKeyType, "UTF-8"},
		{FieldTranslation, "Привет"},
		{FieldTranslationType, "1"},
	}
	for _, tt := range tests {
		got, err := extractor.Extract(e, tt.field)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.field)
	}

	_, err := extractor.Extract(e, "key")
	assert.ErrorIs(t, err, ErrUnknownField)
}
