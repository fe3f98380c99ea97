package entity

import (
	"gorm.io/gorm"
)

type VehicleType struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex"`

	Riders []Rider `json:"-"`
}

func (VehicleType) TableName() string { return "vehicle_types" }
