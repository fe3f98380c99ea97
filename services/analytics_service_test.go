package services

import (
	"testing"
	"time"

	"github.com/Deji-py/eco-rider/entity"
	"github.com/Deji-py/eco-rider/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsStatsBucketsByStatus(t *testing.T) {
	f := newFixture(t)
	seedHistory(t, f)

	svc := NewAnalyticsService(
		repository.NewRiderRepository(f.db),
		repository.NewAssignmentRepository(f.db),
	)

	data, err := svc.Stats(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, data.TotalDeliveries)
	assert.Equal(t, 2, data.OrderStats.Pending) // fixture assignment + seeded one
	assert.Equal(t, 2, data.OrderStats.Active)  // picked_up and in_transit
	assert.Equal(t, 1, data.OrderStats.Completed)
	assert.Equal(t, 1, data.OrderStats.Cancelled)
	assert.Len(t, data.MonthlyOrders, 6)
}

func TestMonthlyBucketsTrailingSixMonths(t *testing.T) {
	now := time.Date(2026, time.March, 31, 12, 0, 0, 0, time.UTC)

	assignments := []entity.Assignment{
		{AssignedAt: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{AssignedAt: time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)},
		{AssignedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{AssignedAt: time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)},
		// outside the window
		{AssignedAt: time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC)},
	}

	buckets := monthlyBuckets(assignments, now)
	require.Len(t, buckets, 6)

	assert.Equal(t, MonthlyOrders{Month: "Oct", Year: 2025, Count: 1}, buckets[0])
	assert.Equal(t, MonthlyOrders{Month: "Nov", Year: 2025, Count: 0}, buckets[1])
	assert.Equal(t, MonthlyOrders{Month: "Jan", Year: 2026, Count: 1}, buckets[3])
	assert.Equal(t, MonthlyOrders{Month: "Mar", Year: 2026, Count: 2}, buckets[5])
}

func TestMonthlyBucketsStableAtMonthEnd(t *testing.T) {
	// Jan 31 must still yield six distinct consecutive months.
	buckets := monthlyBuckets(nil, time.Date(2026, time.January, 31, 23, 0, 0, 0, time.UTC))
	require.Len(t, buckets, 6)

	want := []string{"Aug", "Sep", "Oct", "Nov", "Dec", "Jan"}
	for i, b := range buckets {
		assert.Equal(t, want[i], b.Month)
	}
}
