package interchange

// MergeResult is the outcome of Merge
type MergeResult struct {
	Entries []Entry
	Kept    int // same source value, translation preserved
	Updated int // source value changed, translation cleared
	Added   int
	Removed int
}

// Merge brings base in line with a freshly unpacked source. Keys whose value
// is unchanged keep their base entry. Keys whose value changed take the
// source entry. Keys only in base are dropped and keys only in source are
// appended in source order.
func Merge(base, source []Entry) MergeResult {
	incoming := make(map[string]Entry, len(source))
	for _, e := range source {
		if _, dup := incoming[e.Key]; !dup {
			incoming[e.Key] = e
		}
	}

	var res MergeResult
	seen := make(map[string]bool, len(base))
	res.Entries = make([]Entry, 0, len(source))

	for _, e := range base {
		if seen[e.Key] {
			continue
		}
		seen[e.Key] = true

		next, ok := incoming[e.Key]
		switch {
		case !ok:
			res.Removed++
		case next.Value == e.Value:
			res.Entries = append(res.Entries, e)
			res.Kept++
		default:
			res.Entries = append(res.Entries, next)
			res.Updated++
		}
	}

	for _, e := range source {
		if seen[e.Key] {
			continue
		}
		seen[e.Key] = true
		res.Entries = append(res.Entries, e)
		res.Added++
	}

	return res
}

// Change is a key whose source value differs between two documents
type Change struct {
	Key      string
	OldValue string
	NewValue string
}

// Delta lists the differences between two documents
type Delta struct {
	Added   []string
	Removed []string
	Changed []Change
}

// Empty reports whether the documents hold the same keys and values
func (d Delta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Diff compares the source values of two documents. Added and changed keys
// follow the order of newer, removed keys the order of older. Only the first
// entry of a repeated key is considered.
func Diff(older, newer []Entry) Delta {
	before := firstByKey(older)
	after := firstByKey(newer)

	var d Delta
	seen := make(map[string]bool, len(newer))
	for _, e := range newer {
		if seen[e.Key] {
			continue
		}
		seen[e.Key] = true

		prev, ok := before[e.Key]
		switch {
		case !ok:
			d.Added = append(d.Added, e.Key)
		case prev.Value != e.Value:
			d.Changed = append(d.Changed, Change{Key: e.Key, OldValue: prev.Value, NewValue: e.Value})
		}
	}

	seen = make(map[string]bool, len(older))
	for _, e := range older {
		if seen[e.Key] {
			continue
		}
		seen[e.Key] = true
		if _, ok := after[e.Key]; !ok {
			d.Removed = append(d.Removed, e.Key)
		}
	}
	return d
}

func firstByKey(entries []Entry) map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if _, ok := m[e.Key]; !ok {
			m[e.Key] = e
		}
	}
	return m
}
