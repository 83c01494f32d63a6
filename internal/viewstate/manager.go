// Package viewstate owns the client's canonical copies of server-side
// collections. Each Manager holds one collection, serves pure derived
// views of it, and runs optimistic mutations with a re-fetch rollback
// path. Every page-level flow (inbox, board, follow-ups) is an instance
// of the same manager, so the invariants hold uniformly: derived data is
// always recomputed from the canonical slice, a record shows either the
// last confirmed server state or a single pending optimistic value, and
// a failed load never clobbers what was already on screen.
package viewstate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sharkgitz/eboxai/pkg/metrics"
)

var (
	// ErrMutationPending rejects a second optimistic mutation on a record
	// whose first mutation has not resolved yet.
	ErrMutationPending = errors.New("mutation already pending for record")
	// ErrStaleLoad marks a load whose result was superseded by a newer
	// load before it finished; its result has been discarded.
	ErrStaleLoad = errors.New("load superseded by newer load")
	// ErrNotFound means the record is not in the canonical collection.
	ErrNotFound = errors.New("record not in collection")
)

// ListFunc fetches the full canonical collection.
type ListFunc[T any] func(ctx context.Context) ([]T, error)

// FetchFunc re-fetches a single record; it is the rollback path. The
// server is the source of truth for AI-derived fields, so rollback
// re-fetches rather than applying an inverse patch.
type FetchFunc[ID comparable, T any] func(ctx context.Context, id ID) (T, error)

// Transform is one step of a derived view: it receives a working copy of
// the collection and returns the projected slice. Transforms may reorder
// or subslice their input but must not mutate records.
type Transform[T any] func([]T) []T

// Manager holds one canonical collection keyed by idOf.
type Manager[ID comparable, T any] struct {
	name  string
	idOf  func(T) ID
	list  ListFunc[T]
	fetch FetchFunc[ID, T]

	mu      sync.Mutex
	items   []T
	loaded  bool
	loadErr error
	loadGen uint64 // bumped when a load starts; detects superseded loads
	snapGen uint64 // bumped when a load succeeds; detects replaced snapshots
	pending map[ID]struct{}
}

func NewManager[ID comparable, T any](name string, idOf func(T) ID, list ListFunc[T], fetch FetchFunc[ID, T]) *Manager[ID, T] {
	return &Manager[ID, T]{
		name:    name,
		idOf:    idOf,
		list:    list,
		fetch:   fetch,
		pending: make(map[ID]struct{}),
	}
}

// Load replaces the canonical collection wholesale. On failure the
// previous collection stays intact and the error is also retained for
// LoadErr. A load that finishes after a newer load has started discards
// its result and reports ErrStaleLoad.
func (m *Manager[ID, T]) Load(ctx context.Context) error {
	m.mu.Lock()
	m.loadGen++
	gen := m.loadGen
	m.mu.Unlock()

	items, err := m.list(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.loadGen {
		return ErrStaleLoad
	}
	if err != nil {
		m.loadErr = err
		return err
	}

	m.items = append([]T(nil), items...)
	m.loaded = true
	m.loadErr = nil
	m.snapGen++
	// A fresh snapshot obsoletes any pending optimistic markers.
	m.pending = make(map[ID]struct{})
	return nil
}

// Loaded reports whether at least one load has succeeded.
func (m *Manager[ID, T]) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// LoadErr returns the error of the most recent failed load, or nil if
// the last load succeeded.
func (m *Manager[ID, T]) LoadErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadErr
}

func (m *Manager[ID, T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Items returns a copy of the canonical collection.
func (m *Manager[ID, T]) Items() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]T(nil), m.items...)
}

// View applies transforms to a copy of the canonical collection. The
// canonical slice is never touched; calling View twice with the same
// transforms and unchanged state yields equal output.
func (m *Manager[ID, T]) View(transforms ...Transform[T]) []T {
	out := m.Items()
	for _, t := range transforms {
		out = t(out)
	}
	return out
}

// Get returns the current (possibly optimistic) value of one record.
func (m *Manager[ID, T]) Get(id ID) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(id); i >= 0 {
		return m.items[i], true
	}
	var zero T
	return zero, false
}

// Mutate applies patch to the record immediately and marks it pending.
// The caller then makes the confirming gateway call and resolves the
// returned Mutation: Commit on success (the optimistic value becomes
// canonical), Rollback on failure (the record is re-fetched). A record
// with an unresolved mutation rejects further mutations, which keeps two
// optimistic patches from racing each other.
func (m *Manager[ID, T]) Mutate(id ID, patch func(*T)) (*Mutation[ID, T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, busy := m.pending[id]; busy {
		return nil, ErrMutationPending
	}
	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	patch(&m.items[i])
	m.pending[id] = struct{}{}
	return &Mutation[ID, T]{mgr: m, id: id, gen: m.snapGen}, nil
}

// RemoveLocal drops a record from the canonical collection. Used after a
// confirmed delete; there is no rollback path because deletes are never
// applied optimistically.
func (m *Manager[ID, T]) RemoveLocal(id ID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	delete(m.pending, id)
}

// indexOf finds a record by id. Callers hold m.mu.
func (m *Manager[ID, T]) indexOf(id ID) int {
	for i := range m.items {
		if m.idOf(m.items[i]) == id {
			return i
		}
	}
	return -1
}

// Mutation is the handle for one in-flight optimistic mutation.
type Mutation[ID comparable, T any] struct {
	mgr  *Manager[ID, T]
	id   ID
	gen  uint64
	once sync.Once
}

// Commit resolves the mutation in place: the optimistic value is now the
// canonical one.
func (mu *Mutation[ID, T]) Commit() {
	mu.once.Do(func() {
		mu.mgr.mu.Lock()
		defer mu.mgr.mu.Unlock()
		delete(mu.mgr.pending, mu.id)
	})
}

// Rollback restores the record to the server's current state by
// re-fetching it. If a load *succeeded* while the mutation was in flight
// the fresh snapshot already is the truth (and cleared the pending set),
// so the rollback is a no-op; a load that merely failed changes nothing
// and the re-fetch still runs. A failed re-fetch leaves the optimistic
// value in place and returns the error; callers recover with a full
// Load.
func (mu *Mutation[ID, T]) Rollback(ctx context.Context) error {
	var err error
	mu.once.Do(func() {
		metrics.IncrementMutationRollback(mu.mgr.name)

		mu.mgr.mu.Lock()
		replaced := mu.gen != mu.mgr.snapGen
		mu.mgr.mu.Unlock()
		if replaced {
			return
		}

		fresh, fetchErr := mu.mgr.fetch(ctx, mu.id)

		mu.mgr.mu.Lock()
		defer mu.mgr.mu.Unlock()
		delete(mu.mgr.pending, mu.id)
		if fetchErr != nil {
			err = fmt.Errorf("rollback re-fetch failed: %w", fetchErr)
			return
		}
		if mu.gen != mu.mgr.snapGen {
			return
		}
		if i := mu.mgr.indexOf(mu.id); i >= 0 {
			mu.mgr.items[i] = fresh
		}
	})
	return err
}
