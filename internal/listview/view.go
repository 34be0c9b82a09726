package listview

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"smartride-portal/pkg/metrics"

	"go.uber.org/zap"
)

var ErrBusy = errors.New("action already in progress for this row")

type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Snapshot is what a table renders: the current page plus fetch and busy state.
type Snapshot[T any] struct {
	Page[T]
	Error     string    `json:"error,omitempty"`
	Busy      []string  `json:"busy"`
	Mounted   bool      `json:"mounted"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// View owns one table's collection. Mount fetches and starts polling;
// results that land after Unmount are dropped.
type View[T any] struct {
	spec   Spec[T]
	fetch  Fetcher[T]
	poller *Poller
	log    *zap.Logger

	mu         sync.Mutex
	items      []T
	errText    string
	query      Query
	generation uint64
	mounted    bool
	busy       map[string]bool
	fetchedAt  time.Time
	lastAccess time.Time
	now        func() time.Time
}

func NewView[T any](spec Spec[T], fetch Fetcher[T], interval time.Duration, log *zap.Logger, opts ...PollerOption) *View[T] {
	v := &View[T]{
		spec:  spec,
		fetch: fetch,
		log:   log.With(zap.String("view", spec.Resource)),
		items: []T{},
		query: Query{Page: 1, SortBy: spec.DefaultSort},
		busy:  make(map[string]bool),
		now:   time.Now,
	}
	v.poller = NewPoller(interval, v.poll, opts...)
	return v
}

func (v *View[T]) Resource() string { return v.spec.Resource }

// Mount loads the collection and starts polling. The poll loop keeps the
// values of ctx (the session token) but not its cancellation.
func (v *View[T]) Mount(ctx context.Context) {
	v.mu.Lock()
	if v.mounted {
		v.lastAccess = v.now()
		v.mu.Unlock()
		return
	}
	v.mounted = true
	v.generation++
	gen := v.generation
	v.lastAccess = v.now()
	v.mu.Unlock()

	metrics.MountedViews.WithLabelValues(v.spec.Resource).Inc()
	v.load(ctx, gen)

	// An Unmount during the first fetch wins; the poller is never started.
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mounted && v.generation == gen {
		v.poller.Start(context.WithoutCancel(ctx))
	}
}

func (v *View[T]) Unmount() {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}
	v.mounted = false
	v.generation++
	v.mu.Unlock()

	// Outside the lock: a tick in progress needs it to finish.
	v.poller.Stop()
	metrics.MountedViews.WithLabelValues(v.spec.Resource).Dec()
}

func (v *View[T]) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted
}

func (v *View[T]) poll(ctx context.Context) {
	v.mu.Lock()
	gen := v.generation
	v.mu.Unlock()
	v.load(ctx, gen)
}

// RefreshNow fetches immediately and restarts the poll interval.
func (v *View[T]) RefreshNow(ctx context.Context) {
	v.touch()
	v.poller.RefreshNow(ctx)
}

func (v *View[T]) load(ctx context.Context, gen uint64) {
	items, err := v.fetch(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation || !v.mounted {
		v.log.Debug("Discarding fetch result after unmount")
		return
	}

	if err != nil {
		v.log.Warn("Failed to fetch collection", zap.Error(err))
		metrics.ListFetchesTotal.WithLabelValues(v.spec.Resource, "error").Inc()
		v.items = []T{}
		v.errText = v.spec.FetchError
		return
	}

	metrics.ListFetchesTotal.WithLabelValues(v.spec.Resource, "ok").Inc()
	if items == nil {
		items = []T{}
	}
	v.items = items
	v.errText = ""
	v.fetchedAt = v.now()
}

// SetQuery replaces the table's query. A new search text goes back to page 1.
func (v *View[T]) SetQuery(q Query) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if q.Search != v.query.Search {
		q.Page = 1
	}
	if q.Page < 1 {
		q.Page = 1
	}
	q.SortBy = v.spec.SortColumn(q.SortBy)
	v.query = q
	v.lastAccess = v.now()
}

func (v *View[T]) Query() Query {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

func (v *View[T]) Snapshot() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lastAccess = v.now()
	page := v.spec.Apply(v.items, v.query)
	v.query.Page = page.Page

	busy := make([]string, 0, len(v.busy))
	for id := range v.busy {
		busy = append(busy, id)
	}
	sort.Strings(busy)

	return Snapshot[T]{
		Page:      page,
		Error:     v.errText,
		Busy:      busy,
		Mounted:   v.mounted,
		FetchedAt: v.fetchedAt,
	}
}

// Items returns a copy of the whole fetched collection.
func (v *View[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]T(nil), v.items...)
}

func (v *View[T]) Find(id string) (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, item := range v.items {
		if v.spec.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// RunAction performs a mutating call for one row. The row is busy until the
// call and the following full re-fetch finish; a second action on a busy row
// fails with ErrBusy. On failure the collection is left untouched.
func (v *View[T]) RunAction(ctx context.Context, id string, action func(ctx context.Context) (string, error)) (string, error) {
	v.mu.Lock()
	if v.busy[id] {
		v.mu.Unlock()
		return "", ErrBusy
	}
	v.busy[id] = true
	v.lastAccess = v.now()
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		delete(v.busy, id)
		v.mu.Unlock()
	}()

	msg, err := action(ctx)
	if err != nil {
		return "", err
	}

	v.mu.Lock()
	gen := v.generation
	v.mu.Unlock()
	v.load(ctx, gen)

	return msg, nil
}

func (v *View[T]) IsBusy(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.busy[id]
}

func (v *View[T]) LastAccess() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastAccess
}

func (v *View[T]) touch() {
	v.mu.Lock()
	v.lastAccess = v.now()
	v.mu.Unlock()
}
