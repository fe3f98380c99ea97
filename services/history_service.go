package services

import (
	"sort"

	"github.com/Deji-py/eco-rider/entity"
	"github.com/Deji-py/eco-rider/repository"
)

type SortBy string

const (
	SortRecent     SortBy = "recent"
	SortOldest     SortBy = "oldest"
	SortAmountHigh SortBy = "amount-high"
	SortAmountLow  SortBy = "amount-low"
)

type HistoryStats struct {
	TotalOrders     int `json:"totalOrders"`
	CompletedOrders int `json:"completedOrders"`
	CancelledOrders int `json:"cancelledOrders"`
}

type HistoryService struct {
	Repo      *repository.AssignmentRepository
	RiderRepo *repository.RiderRepository
}

func NewHistoryService(repo *repository.AssignmentRepository, riderRepo *repository.RiderRepository) *HistoryService {
	return &HistoryService{Repo: repo, RiderRepo: riderRepo}
}

// List fetches the rider's full history and applies status filtering and
// sorting in memory. The remote query stays unfiltered on purpose: one
// cacheable fetch serves every filter tab.
func (s *HistoryService) List(userID uint, status string, sortBy SortBy) ([]repository.HistoryRow, HistoryStats, error) {
	r, err := s.RiderRepo.GetByUserID(userID)
	if err != nil {
		return nil, HistoryStats{}, err
	}
	rows, err := s.Repo.ListHistory(r.ID)
	if err != nil {
		return nil, HistoryStats{}, err
	}

	stats := HistoryStats{TotalOrders: len(rows)}
	for _, row := range rows {
		switch row.Status {
		case entity.StatusDelivered:
			stats.CompletedOrders++
		case entity.StatusCancelled:
			stats.CancelledOrders++
		}
	}

	filtered := filterByStatus(rows, status)
	sortRows(filtered, sortBy)
	return filtered, stats, nil
}

// filterByStatus keeps the tab semantics of the order history screen: the
// "picked_up" tab shows everything in motion, in_transit included.
func filterByStatus(rows []repository.HistoryRow, status string) []repository.HistoryRow {
	if status == "" || status == "all" {
		return rows
	}
	out := make([]repository.HistoryRow, 0, len(rows))
	for _, row := range rows {
		switch status {
		case "assigned":
			if row.Status == entity.StatusAssigned {
				out = append(out, row)
			}
		case "picked_up":
			if row.Status == entity.StatusPickedUp || row.Status == entity.StatusInTransit {
				out = append(out, row)
			}
		case "delivered":
			if row.Status == entity.StatusDelivered {
				out = append(out, row)
			}
		case "cancelled":
			if row.Status == entity.StatusCancelled {
				out = append(out, row)
			}
		}
	}
	return out
}

func sortRows(rows []repository.HistoryRow, sortBy SortBy) {
	switch sortBy {
	case SortOldest:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].AssignedAt.Before(rows[j].AssignedAt)
		})
	case SortAmountHigh:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Amount > rows[j].Amount
		})
	case SortAmountLow:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Amount < rows[j].Amount
		})
	default: // recent
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].AssignedAt.After(rows[j].AssignedAt)
		})
	}
}
