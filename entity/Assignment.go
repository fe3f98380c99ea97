package entity

import (
	"time"

	"gorm.io/gorm"
)

type AssignmentStatus string

const (
	StatusAssigned  AssignmentStatus = "assigned"
	StatusPickedUp  AssignmentStatus = "picked_up"
	StatusInTransit AssignmentStatus = "in_transit"
	StatusDelivered AssignmentStatus = "delivered"
	StatusCancelled AssignmentStatus = "cancelled"
)

// Assignment is the rider's unit of work, one per delivery request.
type Assignment struct {
	gorm.Model
	AssignedAt   time.Time  `json:"assignedAt"`
	PickupTime   *time.Time `json:"pickupTime,omitempty"`
	DeliveryTime *time.Time `json:"deliveryTime,omitempty"`

	Status AssignmentStatus `json:"status" gorm:"index"`
	Notes  string           `json:"notes,omitempty"`

	DeliveryRequestID uint            `json:"deliveryRequestId"`
	DeliveryRequest   DeliveryRequest `json:"-"` // preload only on detail

	RiderID uint  `json:"riderId" gorm:"index"`
	Rider   Rider `json:"-"`
}

func (Assignment) TableName() string { return "dispatch_assignments" }

// CanTransition reports whether moving from the current status to target is
// a legal forward step. Backward moves are never legal.
func (a *Assignment) CanTransition(target AssignmentStatus) bool {
	switch target {
	case StatusPickedUp:
		return a.Status == StatusAssigned
	case StatusInTransit:
		return a.Status == StatusPickedUp
	case StatusDelivered:
		return a.Status == StatusPickedUp || a.Status == StatusInTransit
	case StatusCancelled:
		return a.Status == StatusAssigned
	default:
		return false
	}
}
