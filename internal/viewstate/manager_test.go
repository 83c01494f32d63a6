package viewstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID     int
	Status string
}

type fakeBackend struct {
	mu       sync.Mutex
	records  []record
	listErr  error
	fetchErr error
	lists    int
	fetches  int
}

func (b *fakeBackend) list(ctx context.Context) ([]record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lists++
	if b.listErr != nil {
		return nil, b.listErr
	}
	return append([]record(nil), b.records...), nil
}

func (b *fakeBackend) fetch(ctx context.Context, id int) (record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetches++
	if b.fetchErr != nil {
		return record{}, b.fetchErr
	}
	for _, r := range b.records {
		if r.ID == id {
			return r, nil
		}
	}
	return record{}, ErrNotFound
}

func (b *fakeBackend) set(records ...record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = records
}

func newTestManager(b *fakeBackend) *Manager[int, record] {
	return NewManager("test", func(r record) int { return r.ID }, b.list, b.fetch)
}

func TestLoadReplacesCollection(t *testing.T) {
	b := &fakeBackend{}
	b.set(record{1, "pending"}, record{2, "completed"})
	m := newTestManager(b)

	require.False(t, m.Loaded())
	require.NoError(t, m.Load(context.Background()))
	require.True(t, m.Loaded())
	assert.Equal(t, 2, m.Len())

	b.set(record{3, "pending"})
	require.NoError(t, m.Load(context.Background()))
	assert.Equal(t, 1, m.Len())
	got, ok := m.Get(3)
	require.True(t, ok)
	assert.Equal(t, "pending", got.Status)
}

func TestLoadFailureKeepsPriorItems(t *testing.T) {
	b := &fakeBackend{}
	b.set(record{1, "pending"})
	m := newTestManager(b)
	require.NoError(t, m.Load(context.Background()))

	b.listErr = errors.New("backend down")
	err := m.Load(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1, m.Len())
	assert.Equal(t, err, m.LoadErr())
	assert.True(t, m.Loaded())

	b.listErr = nil
	require.NoError(t, m.Load(context.Background()))
	assert.NoError(t, m.LoadErr())
}

func TestStaleLoadDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls int
	var mu sync.Mutex

	m := NewManager("test",
		func(r record) int { return r.ID },
		func(ctx context.Context) ([]record, error) {
			mu.Lock()
			calls++
			first := calls == 1
			mu.Unlock()
			if first {
				close(started)
				<-release
				return []record{{1, "old"}}, nil
			}
			return []record{{1, "new"}}, nil
		},
		func(ctx context.Context, id int) (record, error) {
			return record{}, ErrNotFound
		})

	slowErr := make(chan error, 1)
	go func() { slowErr <- m.Load(context.Background()) }()
	<-started

	// Second load supersedes the one still in flight.
	require.NoError(t, m.Load(context.Background()))
	close(release)

	assert.ErrorIs(t, <-slowErr, ErrStaleLoad)
	got, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, "new", got.Status)
}

func TestMutateCommit(t *testing.T) {
	b := &fakeBackend{}
	b.set(record{1, "pending"})
	m := newTestManager(b)
	require.NoError(t, m.Load(context.Background()))

	mu, err := m.Mutate(1, func(r *record) { r.Status = "completed" })
	require.NoError(t, err)

	got, _ := m.Get(1)
	assert.Equal(t, "completed", got.Status, "patch applies before confirmation")

	mu.Commit()
	got, _ = m.Get(1)
	assert.Equal(t, "completed", got.Status)

	// Resolved record accepts a new mutation.
	_, err = m.Mutate(1, func(r *record) { r.Status = "pending" })
	assert.NoError(t, err)
}

func TestMutateRollbackRestoresServerState(t *testing.T) {
	b := &fakeBackend{}
	b.set(record{1, "pending"})
	m := newTestManager(b)
	require.NoError(t, m.Load(context.Background()))

	mu, err := m.Mutate(1, func(r *record) { r.Status = "completed" })
	require.NoError(t, err)

	require.NoError(t, mu.Rollback(context.Background()))

	got, _ := m.Get(1)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, 1, b.fetches, "rollback re-fetches the record")

	_, err = m.Mutate(1, func(r *record) { r.Status = "completed" })
	assert.NoError(t, err, "rollback clears the pending marker")
}

func TestMutatePendingRejected(t *testing.T) {
	b := &fakeBackend{}
	b.set(record{1, "pending"})
	m := newTestManager(b)
	require.NoError(t, m.Load(context.Background()))

	first, err := m.Mutate(1, func(r *record) { r.Status = "completed" })
	require.NoError(t, err)

	_, err = m.Mutate(1, func(r *record) { r.Status = "pending" })
	assert.ErrorIs(t, err, ErrMutationPending)

	first.Commit()
}

func TestMutateUnknownRecord(t *testing.T) {
	b := &fakeBackend{}
	m := newTestManager(b)
	require.NoError(t, m.Load(context.Background()))

	_, err := m.Mutate(99, func(r *record) {})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRollbackFailedRefetch(t *testing.T) {
	b := &fakeBackend{}
	b.set(record{1, "pending"})
	m := newTestManager(b)
	require.NoError(t, m.Load(context.Background()))

	mu, err := m.Mutate(1, func(r *record) { r.Status = "completed" })
	require.NoError(t, err)

	b.fetchErr = errors.New("backend down")
	err = mu.Rollback(context.Background())
	require.Error(t, err)

	// Optimistic value survives until the caller reloads.
	got, _ := m.Get(1)
	assert.Equal(t, "completed", got.Status)

	b.fetchErr = nil
	require.NoError(t, m.Load(context.Background()))
	got, _ = m.Get(1)
	assert.Equal(t, "pending", got.Status)
}

func TestRollbackAfterReloadIsNoop(t *testing.T) {
	b := &fakeBackend{}
	b.set(record{1, "pending"})
	m := newTestManager(b)
	require.NoError(t, m.Load(context.Background()))

	mu, err := m.Mutate(1, func(r *record) { r.Status = "completed" })
	require.NoError(t, err)

	// A full reload lands before the mutation resolves.
	require.NoError(t, m.Load(context.Background()))

	require.NoError(t, mu.Rollback(context.Background()))
	assert.Equal(t, 0, b.fetches, "fresh snapshot makes the re-fetch redundant")
}

func TestRollbackAfterFailedReload(t *testing.T) {
	b := &fakeBackend{}
	b.set(record{1, "pending"})
	m := newTestManager(b)
	require.NoError(t, m.Load(context.Background()))

	mu, err := m.Mutate(1, func(r *record) { r.Status = "completed" })
	require.NoError(t, err)

	// A reload fails while the mutation is unresolved. That is not a
	// fresh snapshot, so the rollback must still re-fetch.
	b.listErr = errors.New("backend down")
	require.Error(t, m.Load(context.Background()))
	b.listErr = nil

	require.NoError(t, mu.Rollback(context.Background()))

	got, _ := m.Get(1)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, 1, b.fetches)

	_, err = m.Mutate(1, func(r *record) { r.Status = "completed" })
	assert.NoError(t, err, "rollback released the record")
}

func TestRemoveLocal(t *testing.T) {
	b := &fakeBackend{}
	b.set(record{1, "pending"}, record{2, "pending"})
	m := newTestManager(b)
	require.NoError(t, m.Load(context.Background()))

	m.RemoveLocal(1)
	assert.Equal(t, 1, m.Len())
	_, ok := m.Get(1)
	assert.False(t, ok)

	m.RemoveLocal(99)
	assert.Equal(t, 1, m.Len())
}

func TestViewLeavesCanonicalUntouched(t *testing.T) {
	b := &fakeBackend{}
	b.set(record{1, "pending"}, record{2, "completed"}, record{3, "pending"})
	m := newTestManager(b)
	require.NoError(t, m.Load(context.Background()))

	onlyPending := func(in []record) []record {
		out := in[:0]
		for _, r := range in {
			if r.Status == "pending" {
				out = append(out, r)
			}
		}
		return out
	}

	first := m.View(onlyPending)
	assert.Len(t, first, 2)
	assert.Equal(t, 3, m.Len(), "canonical collection unchanged")

	second := m.View(onlyPending)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("same state, same transforms, different view (-first +second):\n%s", diff)
	}
}

func TestMutationResolveIsOnce(t *testing.T) {
	b := &fakeBackend{}
	b.set(record{1, "pending"})
	m := newTestManager(b)
	require.NoError(t, m.Load(context.Background()))

	mu, err := m.Mutate(1, func(r *record) { r.Status = "completed" })
	require.NoError(t, err)

	mu.Commit()
	require.NoError(t, mu.Rollback(context.Background()))
	assert.Equal(t, 0, b.fetches, "rollback after commit does nothing")

	got, _ := m.Get(1)
	assert.Equal(t, "completed", got.Status)
}

func ExampleManager_View() {
	m := NewManager("example",
		func(r record) int { return r.ID },
		func(ctx context.Context) ([]record, error) {
			return []record{{1, "pending"}, {2, "completed"}}, nil
		},
		func(ctx context.Context, id int) (record, error) {
			return record{}, ErrNotFound
		})
	_ = m.Load(context.Background())

	view := m.View(func(in []record) []record {
		out := make([]record, 0, len(in))
		for _, r := range in {
			if r.Status == "pending" {
				out = append(out, r)
			}
		}
		return out
	})
	fmt.Println(len(view), m.Len())
	// Output: 1 2
}
