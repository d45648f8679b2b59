package snapshot

import (
	"context"
	"slices"
	"strings"

	"github.com/clearway/teamsdb/internal/raw"
)

// MemSource is an in-memory Source for tests. Records iterate in insertion
// order, which stands in for the snapshot's fixed (store, key, source)
// order as long as tests insert deterministically.
type MemSource struct {
	entries []memEntry
}

var _ Source = (*MemSource)(nil)

type memEntry struct {
	rec       raw.Record
	malformed bool
}

// NewMemSource returns an empty in-memory source.
func NewMemSource() *MemSource {
	return &MemSource{}
}

// Add appends a record.
func (m *MemSource) Add(store, key, source string, fields raw.Map) *MemSource {
	m.entries = append(m.entries, memEntry{rec: raw.Record{
		Store:     store,
		Key:       key,
		SourceTag: source,
		Fields:    fields,
	}})
	return m
}

// AddMalformed appends a record whose value fails to decode. Iteration
// reports it with a non-nil error, as the SQLite source does.
func (m *MemSource) AddMalformed(store, key, source string) *MemSource {
	m.entries = append(m.entries, memEntry{
		rec:       raw.Record{Store: store, Key: key, SourceTag: source},
		malformed: true,
	})
	return m
}

// Stores returns the distinct store names, sorted.
func (m *MemSource) Stores(ctx context.Context) ([]string, error) {
	var stores []string
	for _, e := range m.entries {
		if !slices.Contains(stores, e.rec.Store) {
			stores = append(stores, e.rec.Store)
		}
	}
	slices.Sort(stores)
	return stores, nil
}

// Iterate calls fn for records whose store contains namePattern, in
// insertion order.
func (m *MemSource) Iterate(ctx context.Context, namePattern string, fn WalkFunc) error {
	for _, e := range m.entries {
		if namePattern != "" && !strings.Contains(e.rec.Store, namePattern) {
			continue
		}
		var decodeErr error
		if e.malformed {
			decodeErr = errMalformedEntry
		}
		if err := fn(e.rec, decodeErr); err != nil {
			return err
		}
	}
	return nil
}

var errMalformedEntry = &malformedEntryError{}

type malformedEntryError struct{}

func (*malformedEntryError) Error() string { return "malformed record value" }
