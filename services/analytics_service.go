package services

import (
	"time"

	"github.com/Deji-py/eco-rider/entity"
	"github.com/Deji-py/eco-rider/repository"
)

type OrderStats struct {
	Pending   int `json:"pending"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

type MonthlyOrders struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
	Count int    `json:"count"`
}

type AnalyticsData struct {
	TotalDeliveries int             `json:"totalDeliveries"`
	Rating          float64         `json:"rating"`
	OrderStats      OrderStats      `json:"orderStats"`
	MonthlyOrders   []MonthlyOrders `json:"monthlyOrders"`
}

type AnalyticsService struct {
	RiderRepo *repository.RiderRepository
	Repo      *repository.AssignmentRepository
}

func NewAnalyticsService(riderRepo *repository.RiderRepository, repo *repository.AssignmentRepository) *AnalyticsService {
	return &AnalyticsService{RiderRepo: riderRepo, Repo: repo}
}

// Stats buckets the rider's assignments and counts the trailing six months.
func (s *AnalyticsService) Stats(userID uint) (*AnalyticsData, error) {
	rider, err := s.RiderRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.Repo.ListForAnalytics(rider.ID)
	if err != nil {
		return nil, err
	}

	data := &AnalyticsData{
		TotalDeliveries: rider.CompletedDeliveries,
		Rating:          rider.Rating,
	}

	for _, a := range assignments {
		switch a.Status {
		case entity.StatusAssigned:
			data.OrderStats.Pending++
		case entity.StatusPickedUp, entity.StatusInTransit:
			data.OrderStats.Active++
		case entity.StatusDelivered:
			data.OrderStats.Completed++
		case entity.StatusCancelled:
			data.OrderStats.Cancelled++
		}
	}

	data.MonthlyOrders = monthlyBuckets(assignments, time.Now())
	return data, nil
}

func monthlyBuckets(assignments []entity.Assignment, now time.Time) []MonthlyOrders {
	type key struct {
		year  int
		month time.Month
	}

	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	months := make([]key, 0, 6)
	counts := make(map[key]int, 6)
	for i := 5; i >= 0; i-- {
		t := anchor.AddDate(0, -i, 0)
		k := key{t.Year(), t.Month()}
		months = append(months, k)
		counts[k] = 0
	}

	for _, a := range assignments {
		k := key{a.AssignedAt.Year(), a.AssignedAt.Month()}
		if _, ok := counts[k]; ok {
			counts[k]++
		}
	}

	out := make([]MonthlyOrders, 0, len(months))
	for _, k := range months {
		out = append(out, MonthlyOrders{
			Month: k.month.String()[:3],
			Year:  k.year,
			Count: counts[k],
		})
	}
	return out
}
