package repository

import (
	"math"
	"sort"
	"time"

	"github.com/Deji-py/eco-rider/entity"
	"github.com/Deji-py/eco-rider/utils"

	"gorm.io/gorm"
)

type RiderRepository struct{ DB *gorm.DB }

func NewRiderRepository(db *gorm.DB) *RiderRepository { return &RiderRepository{DB: db} }

func (r *RiderRepository) GetByUserID(userID uint) (*entity.Rider, error) {
	var rd entity.Rider
	if err := r.DB.Where("user_id = ?", userID).First(&rd).Error; err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *RiderRepository) GetByID(riderID uint) (*entity.Rider, error) {
	var rd entity.Rider
	if err := r.DB.First(&rd, riderID).Error; err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *RiderRepository) GetByUserIDWithVehicle(userID uint) (*entity.Rider, error) {
	var rd entity.Rider
	if err := r.DB.Preload("VehicleType").Where("user_id = ?", userID).First(&rd).Error; err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *RiderRepository) Create(tx *gorm.DB, rd *entity.Rider) error {
	return tx.Create(rd).Error
}

func (r *RiderRepository) Update(tx *gorm.DB, riderID uint, updates map[string]any) error {
	return tx.Model(&entity.Rider{}).Where("id = ?", riderID).Updates(updates).Error
}

func (r *RiderRepository) UpdateStatus(tx *gorm.DB, riderID uint, status entity.RiderStatus) error {
	return tx.Model(&entity.Rider{}).Where("id = ?", riderID).
		Update("status", status).Error
}

// IncrementDeliveries is the delivery-completion counter bump
// (increment_rider_deliveries on the hosted backend).
func (r *RiderRepository) IncrementDeliveries(tx *gorm.DB, riderID uint) error {
	return tx.Model(&entity.Rider{}).Where("id = ?", riderID).
		Update("completed_deliveries", gorm.Expr("completed_deliveries + 1")).Error
}

func (r *RiderRepository) SavePushToken(riderID uint, token string) error {
	return r.DB.Model(&entity.Rider{}).Where("id = ?", riderID).
		Update("push_token", token).Error
}

func (r *RiderRepository) UpdateLocation(riderID uint, lat, lon float64, at time.Time) error {
	return r.DB.Model(&entity.Rider{}).Where("id = ?", riderID).
		Updates(map[string]any{
			"latitude":            lat,
			"longitude":           lon,
			"location_updated_at": at,
		}).Error
}

// ---------------- Nearby riders ----------------

type NearbyRider struct {
	ID         uint    `json:"id"`
	FirstName  string  `json:"firstname"`
	LastName   string  `json:"lastname"`
	Phone      string  `json:"phone"`
	Rating     float64 `json:"rating"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distanceKm"`
}

// Nearby returns available riders within radiusKm of a point, closest first
// (get_nearby_riders on the hosted backend). Distance is computed in Go:
// sqlite has no trig functions, and the candidate set is small.
func (r *RiderRepository) Nearby(lat, lon, radiusKm float64) ([]NearbyRider, error) {
	var riders []entity.Rider
	err := r.DB.Model(&entity.Rider{}).
		Select("id, first_name, last_name, phone, rating, latitude, longitude").
		Where("status = ? AND location_updated_at IS NOT NULL", entity.RiderAvailable).
		Find(&riders).Error
	if err != nil {
		return nil, err
	}

	out := make([]NearbyRider, 0, len(riders))
	for _, rd := range riders {
		d := utils.HaversineKm(lat, lon, rd.Latitude, rd.Longitude)
		if d > radiusKm {
			continue
		}
		out = append(out, NearbyRider{
			ID:         rd.ID,
			FirstName:  rd.FirstName,
			LastName:   rd.LastName,
			Phone:      rd.Phone,
			Rating:     rd.Rating,
			Latitude:   rd.Latitude,
			Longitude:  rd.Longitude,
			DistanceKm: math.Round(d*100) / 100,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}
