package client

import (
	"context"
	"time"

	"github.com/Deji-py/eco-rider/ws"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Query keys the bridge invalidates. They match the screens that render
// assignment lists.
const (
	QueryPendingRequests = "pending-requests"
	QueryActiveOrders    = "active-orders"
	QueryOrderHistory    = "order-history"
)

// Bridge consumes the assignment change feed and turns every event into a
// cache invalidation. It never delivers data itself: the cache refetches
// through the normal query path, so a duplicate or missed event costs at
// most one redundant or delayed fetch.
type Bridge struct {
	URL     string // ws endpoint including the token query param
	Cache   *QueryCache
	Backoff time.Duration
}

func NewBridge(url string, cache *QueryCache) *Bridge {
	return &Bridge{URL: url, Cache: cache, Backoff: 30 * time.Second}
}

// Run connects and dispatches until ctx is done, reconnecting after errors.
// Failures are logged at debug only: the polling loop already bounds
// staleness, so a dead socket degrades latency, not correctness.
func (b *Bridge) Run(ctx context.Context) {
	for {
		if err := b.consume(ctx); err != nil {
			zap.L().Debug("change feed disconnected", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(b.Backoff):
		}
	}
}

func (b *Bridge) consume(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, b.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var ev ws.Event
		if err := conn.ReadJSON(&ev); err != nil {
			return err
		}
		b.dispatch(ev)
	}
}

func (b *Bridge) dispatch(ev ws.Event) {
	// any change can move a row between the lists, so both go stale
	b.Cache.InvalidateAll(QueryPendingRequests, QueryActiveOrders, QueryOrderHistory)
}
