package entity

import (
	"gorm.io/gorm"
)

// DeliveryRequest is owned by the trader side and read-only for riders.
// PickupCode/DeliveryCode are secrets: never serialized, never logged.
type DeliveryRequest struct {
	gorm.Model
	Items         string `json:"items"` // JSON array of line items
	DeliveryNotes string `json:"deliveryNotes,omitempty"`

	DeliveryAddress   string  `json:"deliveryAddress"`
	DeliveryLatitude  float64 `json:"deliveryLatitude"`
	DeliveryLongitude float64 `json:"deliveryLongitude"`

	CustomerName   string `json:"customerName"`
	CustomerAvatar string `json:"customerAvatar,omitempty"`

	Amount     int64   `json:"amount"`
	DistanceKm float64 `json:"distanceKm"`

	PickupCode   string `json:"-"`
	DeliveryCode string `json:"-"`

	TraderID uint   `json:"traderId"`
	Trader   Trader `json:"-"` // preload only on tracking detail
}

func (DeliveryRequest) TableName() string { return "bulk_food_requests" }
