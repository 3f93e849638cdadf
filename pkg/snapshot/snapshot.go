// Package snapshot archives unpacked documents in a pebble database so that
// successive game patches can be compared.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// ErrNotFound is returned when no snapshot matches a reference
var ErrNotFound = errors.New("snapshot not found")

var (
	metaPrefix = []byte("meta/")
	dataPrefix = []byte("data/")
)

// Meta describes a stored snapshot
type Meta struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Source  string    `json:"source"`
	Created time.Time `json:"created"`
	Entries int       `json:"entries"`
}

// Store is a snapshot archive
type Store struct {
	db *pebble.DB

	mu   sync.Mutex
	last time.Time // newest Created handed out, keeps Save strictly increasing
}

// Open opens or creates the archive in dir
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store %s: %w", dir, err)
	}
	s := &Store{db: db}
	metas, err := s.List()
	if err != nil {
		db.Close()
		return nil, err
	}
	if n := len(metas); n > 0 {
		s.last = metas[n-1].Created
	}
	return s, nil
}

// Close closes the archive
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores entries under a new id. Created has nanosecond resolution and
// never repeats within a store, so same-name saves order by it.
func (s *Store) Save(name, source string, entries []interchange.Entry) (Meta, error) {
	meta := Meta{
		ID:      ksuid.New().String(),
		Name:    name,
		Source:  source,
		Created: s.nextCreated(),
		Entries: len(entries),
	}

	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return Meta{}, fmt.Errorf("failed to marshal snapshot meta: %w", err)
	}
	var data bytes.Buffer
	if err := interchange.Encode(&data, entries); err != nil {
		return Meta{}, err
	}

	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Set(key(metaPrefix, meta.ID), metaBytes, nil); err != nil {
		return Meta{}, fmt.Errorf("failed to stage snapshot meta: %w", err)
	}
	if err := b.Set(key(dataPrefix, meta.ID), data.Bytes(), nil); err != nil {
		return Meta{}, fmt.Errorf("failed to stage snapshot data: %w", err)
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return Meta{}, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return meta, nil
}

// nextCreated returns the current time, bumped past the previous save when
// the clock has not advanced
func (s *Store) nextCreated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	if !now.After(s.last) {
		now = s.last.Add(time.Nanosecond)
	}
	s.last = now
	return now
}

// List returns every snapshot, oldest first
func (s *Store) List() ([]Meta, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: metaPrefix,
		UpperBound: upperBound(metaPrefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	var metas []Meta
	for iter.First(); iter.Valid(); iter.Next() {
		var m Meta
		if err := json.Unmarshal(iter.Value(), &m); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot meta %s: %w", iter.Key(), err)
		}
		metas = append(metas, m)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	// ksuid keys only order to the second
	sort.SliceStable(metas, func(i, j int) bool {
		if !metas[i].Created.Equal(metas[j].Created) {
			return metas[i].Created.Before(metas[j].Created)
		}
		return metas[i].ID < metas[j].ID
	})
	return metas, nil
}

// Resolve finds a snapshot by id, or else the newest snapshot with that name
func (s *Store) Resolve(ref string) (Meta, error) {
	if _, err := ksuid.Parse(ref); err == nil {
		var m Meta
		raw, err := s.get(key(metaPrefix, ref))
		if err == nil {
			if err := json.Unmarshal(raw, &m); err != nil {
				return Meta{}, fmt.Errorf("failed to decode snapshot meta %s: %w", ref, err)
			}
			return m, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Meta{}, err
		}
	}

	metas, err := s.List()
	if err != nil {
		return Meta{}, err
	}
	for i := len(metas) - 1; i >= 0; i-- {
		if metas[i].Name == ref {
			return metas[i], nil
		}
	}
	return Meta{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// Get returns the snapshot referenced by ref and its entries
func (s *Store) Get(ref string) (Meta, []interchange.Entry, error) {
	meta, err := s.Resolve(ref)
	if err != nil {
		return Meta{}, nil, err
	}
	raw, err := s.get(key(dataPrefix, meta.ID))
	if err != nil {
		return Meta{}, nil, err
	}
	entries, err := interchange.Decode(bytes.NewReader(raw))
	if err != nil {
		return Meta{}, nil, fmt.Errorf("failed to decode snapshot %s: %w", meta.ID, err)
	}
	return meta, entries, nil
}

// Delete removes the snapshot referenced by ref
func (s *Store) Delete(ref string) (Meta, error) {
	meta, err := s.Resolve(ref)
	if err != nil {
		return Meta{}, err
	}

	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Delete(key(metaPrefix, meta.ID), nil); err != nil {
		return Meta{}, fmt.Errorf("failed to stage delete: %w", err)
	}
	if err := b.Delete(key(dataPrefix, meta.ID), nil); err != nil {
		return Meta{}, fmt.Errorf("failed to stage delete: %w", err)
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return Meta{}, fmt.Errorf("failed to delete snapshot %s: %w", meta.ID, err)
	}
	return meta, nil
}

// get copies the value out before releasing it
func (s *Store) get(k []byte) ([]byte, error) {
	v, closer, err := s.db.Get(k)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, k)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", k, err)
	}
	defer closer.Close()
	return append([]byte(nil), v...), nil
}

func key(prefix []byte, id string) []byte {
	return append(append([]byte(nil), prefix...), id...)
}

func upperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	end[len(end)-1]++
	return end
}
