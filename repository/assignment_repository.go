package repository

import (
	"errors"
	"time"

	"github.com/Deji-py/eco-rider/entity"

	"gorm.io/gorm"
)

var ErrMissingJoin = errors.New("assignment row missing joined request fields")

type AssignmentRepository struct{ DB *gorm.DB }

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

// ---------------- List shapes ----------------

// OrderRow is the flat shape for the pending/active order lists: the
// assignment plus the request and trader display fields riders see on cards.
type OrderRow struct {
	ID           uint                    `json:"id"`
	AssignedAt   time.Time               `json:"assignedAt"`
	PickupTime   *time.Time              `json:"pickupTime,omitempty"`
	DeliveryTime *time.Time              `json:"deliveryTime,omitempty"`
	Status       entity.AssignmentStatus `json:"status"`
	Notes        string                  `json:"notes,omitempty"`

	RequestID       uint    `json:"requestId"`
	Items           string  `json:"items"`
	DeliveryAddress string  `json:"deliveryAddress"`
	DeliveryNotes   string  `json:"deliveryNotes,omitempty"`
	Amount          int64   `json:"amount"`
	DistanceKm      float64 `json:"distanceKm"`

	BusinessName    string `json:"businessName"`
	BusinessAddress string `json:"businessAddress"`
	ContactPerson   string `json:"contactPerson"`
	PhoneNumbers    string `json:"phoneNumbers"`
}

// HistoryRow is the flat shape for the history list (customer-facing fields
// instead of the trader contact block).
type HistoryRow struct {
	ID           uint                    `json:"id"`
	AssignedAt   time.Time               `json:"assignedAt"`
	PickupTime   *time.Time              `json:"pickupTime,omitempty"`
	DeliveryTime *time.Time              `json:"deliveryTime,omitempty"`
	Status       entity.AssignmentStatus `json:"status"`
	Notes        string                  `json:"notes,omitempty"`

	CustomerName    string  `json:"customerName"`
	CustomerAvatar  string  `json:"customerAvatar,omitempty"`
	DeliveryAddress string  `json:"deliveryAddress"`
	AggregatorName  string  `json:"aggregatorName"`
	DistanceKm      float64 `json:"distanceKm"`
	Amount          int64   `json:"amount"`
}

// AssignmentDetail is the tracking-screen shape: both endpoints with
// coordinates, plus the verification codes for the service-side gate.
// Codes stay out of JSON.
type AssignmentDetail struct {
	ID           uint                    `json:"id"`
	RequestID    uint                    `json:"requestId"`
	RiderID      uint                    `json:"riderId"`
	AssignedAt   time.Time               `json:"assignedAt"`
	PickupTime   *time.Time              `json:"pickupTime,omitempty"`
	DeliveryTime *time.Time              `json:"deliveryTime,omitempty"`
	Status       entity.AssignmentStatus `json:"status"`
	Notes        string                  `json:"notes,omitempty"`

	AggregatorName      string  `json:"aggregatorName"`
	AggregatorAddress   string  `json:"aggregatorAddress"`
	AggregatorLatitude  float64 `json:"aggregatorLatitude"`
	AggregatorLongitude float64 `json:"aggregatorLongitude"`

	DeliveryAddress   string  `json:"deliveryAddress"`
	DeliveryLatitude  float64 `json:"deliveryLatitude"`
	DeliveryLongitude float64 `json:"deliveryLongitude"`

	PickupCode   string `json:"-"`
	DeliveryCode string `json:"-"`
}

const orderSelect = `a.id, a.assigned_at, a.pickup_time, a.delivery_time, a.status, a.notes,
r.id AS request_id, r.items, r.delivery_address, r.delivery_notes, r.amount, r.distance_km,
t.business_name, t.business_address, t.contact_person, t.phone_numbers`

func (rep *AssignmentRepository) joined() *gorm.DB {
	return rep.DB.Table("dispatch_assignments AS a").
		Joins("JOIN bulk_food_requests r ON r.id = a.delivery_request_id").
		Joins("JOIN bulk_traders t ON t.id = r.trader_id")
}

// GET /orders/pending → status=assigned, newest first
func (rep *AssignmentRepository) ListPending(riderID uint) ([]OrderRow, error) {
	var out []OrderRow
	err := rep.joined().
		Select(orderSelect).
		Where("a.rider_id = ? AND a.status = ?", riderID, entity.StatusAssigned).
		Order("a.assigned_at DESC").
		Scan(&out).Error
	return out, err
}

// GET /orders/active → status in (picked_up, in_transit), newest first
func (rep *AssignmentRepository) ListActive(riderID uint) ([]OrderRow, error) {
	var out []OrderRow
	err := rep.joined().
		Select(orderSelect).
		Where("a.rider_id = ? AND a.status IN ?", riderID,
			[]entity.AssignmentStatus{entity.StatusPickedUp, entity.StatusInTransit}).
		Order("a.assigned_at DESC").
		Scan(&out).Error
	return out, err
}

// GET /orders/history → everything for the rider, newest first.
// Status filtering and sorting happen in the service, not here.
func (rep *AssignmentRepository) ListHistory(riderID uint) ([]HistoryRow, error) {
	var out []HistoryRow
	err := rep.joined().
		Select(`a.id, a.assigned_at, a.pickup_time, a.delivery_time, a.status, a.notes,
r.customer_name, r.customer_avatar, r.delivery_address, r.distance_km, r.amount,
t.business_name AS aggregator_name`).
		Where("a.rider_id = ?", riderID).
		Order("a.assigned_at DESC").
		Scan(&out).Error
	return out, err
}

// ---------------- Detail / single rows ----------------

func (rep *AssignmentRepository) GetByID(id uint) (*entity.Assignment, error) {
	var a entity.Assignment
	if err := rep.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (rep *AssignmentRepository) GetDetail(id uint) (*AssignmentDetail, error) {
	var d AssignmentDetail
	err := rep.joined().
		Select(`a.id, a.delivery_request_id AS request_id, a.rider_id,
a.assigned_at, a.pickup_time, a.delivery_time, a.status, a.notes,
t.business_name AS aggregator_name, t.business_address AS aggregator_address,
t.latitude AS aggregator_latitude, t.longitude AS aggregator_longitude,
r.delivery_address, r.delivery_latitude, r.delivery_longitude,
r.pickup_code, r.delivery_code`).
		Where("a.id = ?", id).
		Limit(1).
		Scan(&d).Error
	if err != nil {
		return nil, err
	}
	if d.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	if d.RequestID == 0 || d.AggregatorName == "" {
		return nil, ErrMissingJoin
	}
	return &d, nil
}

// GetCodes loads just the verification pair for an assignment.
func (rep *AssignmentRepository) GetCodes(id uint) (pickup, delivery string, err error) {
	var row struct {
		PickupCode   string
		DeliveryCode string
	}
	err = rep.DB.Table("dispatch_assignments AS a").
		Joins("JOIN bulk_food_requests r ON r.id = a.delivery_request_id").
		Select("r.pickup_code, r.delivery_code").
		Where("a.id = ?", id).
		Limit(1).
		Scan(&row).Error
	return row.PickupCode, row.DeliveryCode, err
}

// ---------------- Transitions (guarded) ----------------

// UpdateStatusGuard commits a forward step only if the current status is one
// of the expected prior statuses. Returns affected rows so the caller can
// distinguish a lost race from success.
func (rep *AssignmentRepository) UpdateStatusGuard(
	tx *gorm.DB, id uint, from []entity.AssignmentStatus,
	to entity.AssignmentStatus, timeColumn string, at time.Time,
) (int64, error) {
	updates := map[string]any{"status": to}
	if timeColumn != "" {
		updates[timeColumn] = at
	}
	res := tx.Model(&entity.Assignment{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// Reject cancels a still-pending assignment and records the reason.
func (rep *AssignmentRepository) Reject(tx *gorm.DB, id uint, reason string) (int64, error) {
	res := tx.Model(&entity.Assignment{}).
		Where("id = ? AND status = ?", id, entity.StatusAssigned).
		Updates(map[string]any{"status": entity.StatusCancelled, "notes": reason})
	return res.RowsAffected, res.Error
}

// CountActive reports whether the rider still has undelivered work.
func (rep *AssignmentRepository) CountActive(riderID uint) (int64, error) {
	var cnt int64
	err := rep.DB.Model(&entity.Assignment{}).
		Where("rider_id = ? AND status IN ?", riderID,
			[]entity.AssignmentStatus{entity.StatusAssigned, entity.StatusPickedUp, entity.StatusInTransit}).
		Count(&cnt).Error
	return cnt, err
}

// ListForAnalytics pulls the minimal columns the analytics buckets need.
func (rep *AssignmentRepository) ListForAnalytics(riderID uint) ([]entity.Assignment, error) {
	var out []entity.Assignment
	err := rep.DB.Model(&entity.Assignment{}).
		Select("id, status, assigned_at, delivery_time").
		Where("rider_id = ?", riderID).
		Find(&out).Error
	return out, err
}
