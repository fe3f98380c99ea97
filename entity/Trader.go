package entity

import (
	"gorm.io/gorm"
)

// Trader is the pickup-side business (the aggregator) a request comes from.
type Trader struct {
	gorm.Model
	BusinessName    string  `json:"businessName"`
	BusinessAddress string  `json:"businessAddress"`
	ContactPerson   string  `json:"contactPerson"`
	PhoneNumbers    string  `json:"phoneNumbers"`
	LocalGovArea    string  `json:"localGovArea"`
	State           string  `json:"state"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`

	Requests []DeliveryRequest `json:"-"`
}

func (Trader) TableName() string { return "bulk_traders" }
