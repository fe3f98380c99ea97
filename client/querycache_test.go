package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFetch returns successive values and counts calls.
type countingFetch struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingFetch) fetch(context.Context) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.calls, nil
}

func (c *countingFetch) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestGetUnknownQuery(t *testing.T) {
	q := NewQueryCache(0, 0)
	_, err := q.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrUnknownQuery)
}

func TestGetServesCachedInsideStaleWindow(t *testing.T) {
	q := NewQueryCache(time.Minute, time.Hour)
	cf := &countingFetch{}
	q.Register("orders", cf.fetch)

	v, err := q.Get(context.Background(), "orders")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// second read inside the window hits memory, not the fetch
	v, err = q.Get(context.Background(), "orders")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, cf.count())
}

func TestGetRefetchesPastStaleWindow(t *testing.T) {
	q := NewQueryCache(time.Millisecond, time.Hour)
	cf := &countingFetch{}
	q.Register("orders", cf.fetch)

	_, err := q.Get(context.Background(), "orders")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	v, err := q.Get(context.Background(), "orders")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestInvalidateTriggersBackgroundRefetch(t *testing.T) {
	q := NewQueryCache(time.Minute, time.Hour)
	cf := &countingFetch{}
	q.Register("orders", cf.fetch)

	_, err := q.Get(context.Background(), "orders")
	require.NoError(t, err)

	q.Invalidate("orders")
	require.Eventually(t, func() bool {
		v, err := q.Get(context.Background(), "orders")
		return err == nil && v.(int) >= 2
	}, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, cf.count(), 2)
}

func TestInvalidateUnknownKeyIsNoop(t *testing.T) {
	q := NewQueryCache(time.Minute, time.Hour)
	q.Invalidate("nope") // must not panic
}

func TestFetchErrorIsReturnedAndRetried(t *testing.T) {
	q := NewQueryCache(time.Minute, time.Hour)
	cf := &countingFetch{err: errors.New("network down")}
	q.Register("orders", cf.fetch)

	_, err := q.Get(context.Background(), "orders")
	require.Error(t, err)

	// recovery: the next read after the error refetches
	cf.mu.Lock()
	cf.err = nil
	cf.mu.Unlock()
	v, err := q.Get(context.Background(), "orders")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestPollingBoundsStaleness(t *testing.T) {
	q := NewQueryCache(time.Hour, 10*time.Millisecond)
	cf := &countingFetch{}
	q.Register("orders", cf.fetch)

	_, err := q.Get(context.Background(), "orders")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Start(ctx)

	require.Eventually(t, func() bool { return cf.count() >= 3 },
		time.Second, 5*time.Millisecond)
}
