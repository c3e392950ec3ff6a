// Package store holds the in-memory travel collection and its persisted
// mirror. The collection is loaded once and rewritten in full after every
// mutation; there is no incremental write path.
//
// Store is not safe for concurrent use. Callers serialise access (the planner
// controller and the travel service share one lock).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/pkordes/travel-calendar/internal/domain"
	"github.com/pkordes/travel-calendar/internal/repo"
)

// DefaultKey is the storage key the browser version of the planner used.
const DefaultKey = "travelCalendar"

// Store is an ordered collection of travel records backed by a repo.KV.
type Store struct {
	kv      repo.KV
	key     string
	log     *slog.Logger
	travels []domain.Travel
}

// New constructs an empty Store. Call Load before use to read persisted data.
func New(kv repo.KV, key string, log *slog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{kv: kv, key: key, log: log}
}

// Load reads the serialized collection. A missing key yields an empty
// collection. Malformed content returns a *domain.ParseError and leaves both
// the in-memory collection and the stored value untouched.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.travels = nil
			s.log.InfoContext(ctx, "no stored travels, starting empty", "key", s.key)
			return nil
		}
		return fmt.Errorf("store.Store.Load: %w", err)
	}

	travels, err := decode(raw)
	if err != nil {
		return fmt.Errorf("store.Store.Load: %w", &domain.ParseError{Key: s.key, Err: err})
	}
	s.travels = travels
	s.log.InfoContext(ctx, "travels loaded", "key", s.key, "count", len(travels))
	return nil
}

// decode accepts a JSON array of travels. A blank value or JSON null is an
// empty collection.
func decode(raw string) ([]domain.Travel, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var travels []domain.Travel
	if err := json.Unmarshal([]byte(raw), &travels); err != nil {
		return nil, err
	}
	return travels, nil
}

// Save serializes the whole collection and overwrites the stored value.
func (s *Store) Save(ctx context.Context) error {
	travels := s.travels
	if travels == nil {
		travels = []domain.Travel{}
	}
	data, err := json.Marshal(travels)
	if err != nil {
		return fmt.Errorf("store.Store.Save: encode: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("store.Store.Save: %w", err)
	}
	return nil
}

// Upsert replaces the record with the same ID in place, or appends it.
// The collection is saved afterwards; if the save fails the previous
// collection is restored and the error returned.
func (s *Store) Upsert(ctx context.Context, t domain.Travel) error {
	prev := s.travels
	next := slices.Clone(prev)
	if i := s.index(t.ID); i >= 0 {
		next[i] = t
	} else {
		next = append(next, t)
	}
	return s.commit(ctx, prev, next, "store.Store.Upsert")
}

// Delete removes the record with id. It reports whether a record was removed;
// an absent id is a no-op and nothing is written.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	prev := s.travels
	next := slices.Delete(slices.Clone(prev), i, i+1)
	if err := s.commit(ctx, prev, next, "store.Store.Delete"); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) commit(ctx context.Context, prev, next []domain.Travel, op string) error {
	s.travels = next
	if err := s.Save(ctx); err != nil {
		s.travels = prev
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Get returns the record with id.
func (s *Store) Get(id string) (domain.Travel, bool) {
	if i := s.index(id); i >= 0 {
		return s.travels[i], true
	}
	return domain.Travel{}, false
}

// List returns a copy ordered by StartDate ascending. The sort is stable, so
// records with equal start dates keep their storage order. Storage order
// itself is unaffected.
func (s *Store) List() []domain.Travel {
	out := slices.Clone(s.travels)
	slices.SortStableFunc(out, func(a, b domain.Travel) int {
		return compareStart(a, b)
	})
	if out == nil {
		out = []domain.Travel{}
	}
	return out
}

// All returns a copy in storage order.
func (s *Store) All() []domain.Travel {
	out := slices.Clone(s.travels)
	if out == nil {
		out = []domain.Travel{}
	}
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.travels)
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.travels, func(t domain.Travel) bool { return t.ID == id })
}

// compareStart orders by parsed start date. Unparsable dates sort after
// every valid one, in storage order among themselves.
func compareStart(a, b domain.Travel) int {
	ta, errA := domain.ParseDate(a.StartDate)
	tb, errB := domain.ParseDate(b.StartDate)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	return ta.Compare(tb)
}
