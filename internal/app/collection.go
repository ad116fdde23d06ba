package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"hostel_manager/internal/adapters/observability"
	"hostel_manager/internal/domain"
)

// Entity is anything a Collection can cache.
type Entity interface {
	EntityID() string
}

// Collection is the in-memory cache of one entity kind plus its CRUD
// operations against a Transport. Construct one per kind at startup and
// pass it to whoever needs it; there are no package-level instances.
//
// Local state changes commit only after the transport call succeeds, so a
// failed operation leaves the cache exactly as it was. Every failure is
// appended to the collection's error log and the operation resolves to
// nil/false rather than panicking past its boundary.
type Collection[T Entity] struct {
	name       string
	tr         domain.Transport
	fromRecord func(map[string]any) T
	toRecord   func(T) map[string]any
	log        zerolog.Logger

	mu    sync.Mutex
	items []T
	errs  []error
	busy  bool
}

func NewCollection[T Entity](
	name string,
	tr domain.Transport,
	fromRecord func(map[string]any) T,
	toRecord func(T) map[string]any,
	log zerolog.Logger,
) *Collection[T] {
	return &Collection[T]{
		name:       name,
		tr:         tr,
		fromRecord: fromRecord,
		toRecord:   toRecord,
		log:        log.With().Str("collection", name).Logger(),
	}
}

func (c *Collection[T]) Name() string { return c.name }

// Items returns a snapshot copy of the cached set.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Errs returns the recorded operation failures, oldest first.
func (c *Collection[T]) Errs() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]error, len(c.errs))
	copy(out, c.errs)
	return out
}

// Busy reports whether an operation is currently in flight. It is a plain
// boolean, not a counter: when two operations against the same collection
// overlap, whichever finishes first clears it. That mirrors the upstream
// client's behavior; callers needing precision should track their own calls.
func (c *Collection[T]) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *Collection[T]) begin() {
	c.mu.Lock()
	c.busy = true
	c.mu.Unlock()
}

func (c *Collection[T]) end() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func (c *Collection[T]) fail(op string, err error) error {
	wrapped := fmt.Errorf("%s %s: %w", op, c.name, err)
	c.mu.Lock()
	c.errs = append(c.errs, wrapped)
	c.mu.Unlock()
	c.log.Error().Err(err).Str("op", op).Msg("collection operation failed")
	observability.ObserveCollection(c.name, op, "error")
	return wrapped
}

// FetchAll replaces the whole cached set from the backend. A non-success
// status empties the set and records one error; a transport error leaves
// the set untouched.
func (c *Collection[T]) FetchAll(ctx context.Context) error {
	c.begin()
	defer c.end()

	res, err := c.tr.GetAll(ctx)
	if err != nil {
		return c.fail("fetch", err)
	}

	recs := RecordsFromResult(res, c.name, c.log)
	items := make([]T, 0, len(recs))
	for _, rec := range recs {
		items = append(items, c.fromRecord(rec))
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()

	if !res.OK() {
		return c.fail("fetch", fmt.Errorf("status %d %s", res.Status, res.Reason))
	}
	observability.ObserveCollection(c.name, "fetch", "ok")
	return nil
}

// GetByID is a server round trip; it never mutates the cached set.
func (c *Collection[T]) GetByID(ctx context.Context, id string) (*T, error) {
	c.begin()
	defer c.end()

	res, err := c.tr.GetByID(ctx, id)
	if err != nil {
		return nil, c.fail("get", err)
	}
	rec, ok := RecordFromResult(res)
	if !ok {
		return nil, c.fail("get", fmt.Errorf("id %s: status %d: %w", id, res.Status, domain.ErrNotFound))
	}
	item := c.fromRecord(rec)
	observability.ObserveCollection(c.name, "get", "ok")
	return &item, nil
}

// Create sends a normalized record and appends the server-confirmed entity.
func (c *Collection[T]) Create(ctx context.Context, v T) (*T, error) {
	c.begin()
	defer c.end()

	res, err := c.tr.Create(ctx, c.toRecord(v))
	if err != nil {
		return nil, c.fail("create", err)
	}
	rec, ok := RecordFromResult(res)
	if !ok {
		return nil, c.fail("create", fmt.Errorf("status %d %s", res.Status, res.Reason))
	}
	created := c.fromRecord(rec)

	c.mu.Lock()
	c.items = append(c.items, created)
	c.mu.Unlock()

	observability.ObserveCollection(c.name, "create", "ok")
	return &created, nil
}

// Update sends a full replacement by id and swaps the matching cached
// element for the server-confirmed entity.
func (c *Collection[T]) Update(ctx context.Context, v T) (*T, error) {
	c.begin()
	defer c.end()

	res, err := c.tr.Update(ctx, v.EntityID(), c.toRecord(v))
	if err != nil {
		return nil, c.fail("update", err)
	}
	rec, ok := RecordFromResult(res)
	if !ok {
		return nil, c.fail("update", fmt.Errorf("id %s: status %d %s", v.EntityID(), res.Status, res.Reason))
	}
	updated := c.fromRecord(rec)

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].EntityID() == updated.EntityID() {
			c.items[i] = updated
			break
		}
	}
	c.mu.Unlock()

	observability.ObserveCollection(c.name, "update", "ok")
	return &updated, nil
}

// Delete removes the element locally only after the backend confirms.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.begin()
	defer c.end()

	res, err := c.tr.Delete(ctx, id)
	if err != nil {
		return c.fail("delete", err)
	}
	if !res.OK() {
		return c.fail("delete", fmt.Errorf("id %s: status %d %s", id, res.Status, res.Reason))
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].EntityID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	observability.ObserveCollection(c.name, "delete", "ok")
	return nil
}
