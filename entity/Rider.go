package entity

import (
	"time"

	"gorm.io/gorm"
)

type RiderStatus string

const (
	RiderAvailable RiderStatus = "available"
	RiderBusy      RiderStatus = "busy"
	RiderOffline   RiderStatus = "offline"
)

type Rider struct {
	gorm.Model
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Phone     string `json:"phone"`

	VehicleNumber string      `json:"vehicleNumber"`
	VehicleTypeID uint        `json:"vehicleTypeId"`
	VehicleType   VehicleType `json:"-"` // preload only on profile detail

	Status              RiderStatus `json:"status" gorm:"index"`
	Rating              float64     `json:"rating"`
	CompletedDeliveries int         `json:"completedDeliveries"`

	LocalGovArea string `json:"localGovArea"`
	State        string `json:"state"`

	PhoneVerified  bool   `json:"phoneVerified"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	PushToken      string `json:"-"`

	Latitude          float64    `json:"latitude"`
	Longitude         float64    `json:"longitude"`
	LocationUpdatedAt *time.Time `json:"locationUpdatedAt,omitempty"`

	UserID uint `json:"userId" gorm:"uniqueIndex"`
	User   User `json:"-"`

	Assignments []Assignment `json:"-"` // preload only on history endpoints
}

func (Rider) TableName() string { return "dispatch_riders" }
