// Package client is the rider-side sync layer: cached queries with a bounded
// staleness window, a websocket invalidation bridge, and a persistent
// profile store. The realtime path is a latency optimization; polling is the
// consistency mechanism, so everything here stays correct if the socket
// silently dies.
package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

type FetchFunc func(ctx context.Context) (any, error)

var ErrUnknownQuery = errors.New("query not registered")

const (
	// DefaultStaleAfter is the window inside which a cached result is
	// served without touching the network.
	DefaultStaleAfter = 30 * time.Second

	// DefaultPollEvery bounds staleness even when no invalidation arrives.
	DefaultPollEvery = 60 * time.Second
)

type entry struct {
	fetch     FetchFunc
	value     any
	fetchedAt time.Time
	stale     bool
	loaded    bool
	inflight  bool
}

// QueryCache is a stale-while-revalidate cache for remote list/detail
// queries. Invalidate marks an entry stale and refetches in the background;
// reads inside the staleness window are served from memory. Concurrent
// refetches of the same key are collapsed; whichever fetch resolves last
// wins.
type QueryCache struct {
	mu         sync.Mutex
	entries    map[string]*entry
	staleAfter time.Duration
	pollEvery  time.Duration
}

func NewQueryCache(staleAfter, pollEvery time.Duration) *QueryCache {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	if pollEvery <= 0 {
		pollEvery = DefaultPollEvery
	}
	return &QueryCache{
		entries:    make(map[string]*entry),
		staleAfter: staleAfter,
		pollEvery:  pollEvery,
	}
}

// Register binds a key to its fetch function. Re-registering replaces the
// fetch and drops any cached value.
func (q *QueryCache) Register(key string, fetch FetchFunc) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries[key] = &entry{fetch: fetch}
}

// Get returns the cached value, refetching first when the entry is missing,
// stale, or past its staleness window.
func (q *QueryCache) Get(ctx context.Context, key string) (any, error) {
	q.mu.Lock()
	e, ok := q.entries[key]
	if !ok {
		q.mu.Unlock()
		return nil, ErrUnknownQuery
	}
	fresh := e.loaded && !e.stale && time.Since(e.fetchedAt) < q.staleAfter
	if fresh {
		v := e.value
		q.mu.Unlock()
		return v, nil
	}
	fetch := e.fetch
	q.mu.Unlock()

	value, err := fetch(ctx)
	q.store(key, value, err)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Invalidate marks the entry stale and refetches in the background. The
// operation is idempotent: invalidating an already-stale entry with a fetch
// in flight does nothing extra.
func (q *QueryCache) Invalidate(key string) {
	q.mu.Lock()
	e, ok := q.entries[key]
	if !ok {
		q.mu.Unlock()
		return
	}
	e.stale = true
	if e.inflight {
		q.mu.Unlock()
		return
	}
	e.inflight = true
	fetch := e.fetch
	q.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		value, err := fetch(ctx)
		q.store(key, value, err)
		if err != nil {
			zap.L().Debug("background refetch failed",
				zap.String("query", key), zap.Error(err))
		}
	}()
}

// InvalidateAll is what the bridge calls on a change event when it does not
// care which list the row lands in.
func (q *QueryCache) InvalidateAll(keys ...string) {
	for _, k := range keys {
		q.Invalidate(k)
	}
}

func (q *QueryCache) store(key string, value any, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[key]
	if !ok {
		return
	}
	e.inflight = false
	if err != nil {
		// a failed fetch leaves the entry stale so the next read retries
		e.stale = true
		return
	}
	e.value = value
	e.fetchedAt = time.Now()
	e.loaded = true
	e.stale = false
}

// Start runs the polling loop until ctx is done. Every tick refetches every
// registered query, bounding staleness by pollEvery even when the realtime
// path never fires.
func (q *QueryCache) Start(ctx context.Context) {
	ticker := time.NewTicker(q.pollEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			q.mu.Lock()
			keys := make([]string, 0, len(q.entries))
			for k := range q.entries {
				keys = append(keys, k)
			}
			q.mu.Unlock()
			q.InvalidateAll(keys...)
		}
	}
}
