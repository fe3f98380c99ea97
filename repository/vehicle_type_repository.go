package repository

import (
	"github.com/Deji-py/eco-rider/entity"

	"gorm.io/gorm"
)

type VehicleTypeRepository struct{ DB *gorm.DB }

func NewVehicleTypeRepository(db *gorm.DB) *VehicleTypeRepository {
	return &VehicleTypeRepository{DB: db}
}

func (r *VehicleTypeRepository) List() ([]entity.VehicleType, error) {
	var out []entity.VehicleType
	err := r.DB.Order("name ASC").Find(&out).Error
	return out, err
}

func (r *VehicleTypeRepository) GetByName(name string) (*entity.VehicleType, error) {
	var vt entity.VehicleType
	if err := r.DB.Where("name = ?", name).First(&vt).Error; err != nil {
		return nil, err
	}
	return &vt, nil
}
