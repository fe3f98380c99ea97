package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/Deji-py/eco-rider/entity"
	"github.com/Deji-py/eco-rider/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedHistory adds one assignment per status with distinct amounts.
func seedHistory(t *testing.T, f *fixture) {
	t.Helper()
	statuses := []entity.AssignmentStatus{
		entity.StatusAssigned, entity.StatusPickedUp, entity.StatusInTransit,
		entity.StatusDelivered, entity.StatusCancelled,
	}
	for i, st := range statuses {
		req := &entity.DeliveryRequest{
			TraderID:        f.trader.ID,
			Items:           `[]`,
			DeliveryAddress: fmt.Sprintf("Address %d", i),
			CustomerName:    fmt.Sprintf("Customer %d", i),
			Amount:          int64(1000 * (i + 1)),
		}
		require.NoError(t, f.db.Create(req).Error)
		require.NoError(t, f.db.Create(&entity.Assignment{
			DeliveryRequestID: req.ID,
			RiderID:           f.rider.ID,
			AssignedAt:        time.Now().Add(-time.Duration(i) * time.Hour),
			Status:            st,
		}).Error)
	}
}

func newHistoryService(f *fixture) *HistoryService {
	return NewHistoryService(
		repository.NewAssignmentRepository(f.db),
		repository.NewRiderRepository(f.db),
	)
}

func TestHistoryUnfilteredAndStats(t *testing.T) {
	f := newFixture(t)
	seedHistory(t, f)
	svc := newHistoryService(f)

	rows, stats, err := svc.List(f.user.ID, "all", SortRecent)
	require.NoError(t, err)
	assert.Len(t, rows, 6) // fixture assignment + five seeded
	assert.Equal(t, 6, stats.TotalOrders)
	assert.Equal(t, 1, stats.CompletedOrders)
	assert.Equal(t, 1, stats.CancelledOrders)
}

func TestHistoryDeliveredFilterIsExactIntersection(t *testing.T) {
	f := newFixture(t)
	seedHistory(t, f)
	svc := newHistoryService(f)

	all, _, err := svc.List(f.user.ID, "all", SortRecent)
	require.NoError(t, err)
	filtered, _, err := svc.List(f.user.ID, "delivered", SortRecent)
	require.NoError(t, err)

	want := map[uint]bool{}
	for _, row := range all {
		if row.Status == entity.StatusDelivered {
			want[row.ID] = true
		}
	}
	require.Len(t, filtered, len(want))
	for _, row := range filtered {
		assert.True(t, want[row.ID])
		assert.Equal(t, entity.StatusDelivered, row.Status)
	}
}

func TestHistoryPickedUpFilterIncludesInTransit(t *testing.T) {
	f := newFixture(t)
	seedHistory(t, f)
	svc := newHistoryService(f)

	rows, _, err := svc.List(f.user.ID, "picked_up", SortRecent)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Contains(t,
			[]entity.AssignmentStatus{entity.StatusPickedUp, entity.StatusInTransit},
			row.Status)
	}
}

func TestHistorySortAmountHighIsNonIncreasing(t *testing.T) {
	f := newFixture(t)
	seedHistory(t, f)
	svc := newHistoryService(f)

	rows, _, err := svc.List(f.user.ID, "all", SortAmountHigh)
	require.NoError(t, err)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Amount, rows[i].Amount)
	}
}

func TestHistorySortOldestFirst(t *testing.T) {
	f := newFixture(t)
	seedHistory(t, f)
	svc := newHistoryService(f)

	rows, _, err := svc.List(f.user.ID, "all", SortOldest)
	require.NoError(t, err)
	for i := 1; i < len(rows); i++ {
		assert.True(t, !rows[i-1].AssignedAt.After(rows[i].AssignedAt))
	}
}
