package interchange

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	base := []Entry{
		{Key: "A", Value: "alpha", Translation: "альфа"},
		{Key: "B", Value: "beta", Translation: "бета"},
		{Key: "C", Value: "gamma", Translation: "гамма"},
	}
	source := []Entry{
		{Key: "D", Value: "delta"},
		{Key: "B", Value: "beta v2"},
		{Key: "A", Value: "alpha"},
	}

	res := Merge(base, source)

	want := []Entry{
		{Key: "A", Value: "alpha", Translation: "альфа"},
		{Key: "B", Value: "beta v2"},
		{Key: "D", Value: "delta"},
	}
	if diff := cmp.Diff(want, res.Entries); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, res.Kept)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Removed)
}

func TestMergeEmptyBase(t *testing.T) {
	source := []Entry{{Key: "A", Value: "alpha"}, {Key: "A", Value: "dup"}}
	res := Merge(nil, source)

	assert.Equal(t, []Entry{{Key: "A", Value: "alpha"}}, res.Entries)
	assert.Equal(t, 1, res.Added)
}

func TestDiff(t *testing.T) {
	older := []Entry{
		{Key: "A", Value: "alpha"},
		{Key: "B", Value: "beta"},
		{Key: "C", Value: "gamma"},
	}
	newer := []Entry{
		{Key: "B", Value: "beta v2"},
		{Key: "A", Value: "alpha", Translation: "ignored"},
		{Key: "D", Value: "delta"},
	}

	want := Delta{
		Added:   []string{"D"},
		Removed: []string{"C"},
		Changed: []Change{{Key: "B", OldValue: "beta", NewValue: "beta v2"}},
	}
	d := Diff(older, newer)
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("Diff mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, d.Empty())
	assert.True(t, Diff(older, older).Empty())
}
