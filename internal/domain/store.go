package domain

import (
	"context"
	"encoding/json"
	"fmt"
)

// DefaultStorageKey is the key under which the snapshot blob is persisted.
const DefaultStorageKey = "shoresquad_data"

// StateStore reads and writes one serialized blob per key.
// Get returns ErrNotFound when nothing has been stored under key.
type StateStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Snapshot is the persisted subset of the application state.
type Snapshot struct {
	Events []*Event `json:"events"`
	Crews  []*Crew  `json:"crews"`
}

// EncodeSnapshot serializes s; nil collections are written as empty arrays.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	if s.Events == nil {
		s.Events = []*Event{}
	}
	if s.Crews == nil {
		s.Crews = []*Crew{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// DecodeSnapshot parses a persisted blob. Absent fields default to empty
// collections and null entries are dropped. An entry whose id repeats an
// earlier one in the same collection is dropped, and repeated names in
// joined and members lists keep only their first occurrence.
func DecodeSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	events := make([]*Event, 0, len(s.Events))
	seenEvents := make(map[int64]struct{}, len(s.Events))
	for _, e := range s.Events {
		if e == nil {
			continue
		}
		if _, dup := seenEvents[e.ID]; dup {
			continue
		}
		seenEvents[e.ID] = struct{}{}
		e.Joined = uniqueNames(e.Joined)
		events = append(events, e)
	}
	crews := make([]*Crew, 0, len(s.Crews))
	seenCrews := make(map[int64]struct{}, len(s.Crews))
	for _, c := range s.Crews {
		if c == nil {
			continue
		}
		if _, dup := seenCrews[c.ID]; dup {
			continue
		}
		seenCrews[c.ID] = struct{}{}
		c.Members = uniqueNames(c.Members)
		crews = append(crews, c)
	}
	return Snapshot{Events: events, Crews: crews}, nil
}

// uniqueNames keeps the first occurrence of each name; nil becomes empty.
func uniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
