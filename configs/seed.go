package configs

import (
	"log"
	"time"

	"github.com/Deji-py/eco-rider/entity"
	"github.com/Deji-py/eco-rider/utils"
)

var vehicleTypeNames = []string{"Bicycle", "Motorcycle", "Tricycle", "Van"}

// SeedVehicleTypes fills the lookup table on first run.
func SeedVehicleTypes() error {
	db := DB()
	for _, name := range vehicleTypeNames {
		var count int64
		if err := db.Model(&entity.VehicleType{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&entity.VehicleType{Name: name}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedDemo creates a trader, a request and a pending assignment for the
// first registered rider so a fresh checkout has something to accept.
// Dev only (SEED_DEMO=1).
func SeedDemo() error {
	db := DB()

	var count int64
	if err := db.Model(&entity.Trader{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var rider entity.Rider
	if err := db.First(&rider).Error; err != nil {
		log.Println("skip demo seed: no rider profile yet")
		return nil
	}

	trader := entity.Trader{
		BusinessName:    "Mama Nkechi Foods",
		BusinessAddress: "12 Allen Avenue, Ikeja",
		ContactPerson:   "Nkechi Obi",
		PhoneNumbers:    "+2348012345678",
		LocalGovArea:    "Ikeja",
		State:           "Lagos",
		Latitude:        6.6018,
		Longitude:       3.3515,
	}
	if err := db.Create(&trader).Error; err != nil {
		return err
	}

	pickupCode, _ := utils.GenerateCode(6)
	deliveryCode, _ := utils.GenerateCode(6)
	req := entity.DeliveryRequest{
		TraderID:          trader.ID,
		Items:             `[{"name":"Rice 50kg","qty":2},{"name":"Beans 25kg","qty":1}]`,
		DeliveryAddress:   "4 Admiralty Way, Lekki Phase 1",
		DeliveryLatitude:  6.4478,
		DeliveryLongitude: 3.4723,
		CustomerName:      "Tunde Bakare",
		Amount:            8500,
		DistanceKm:        18.4,
		PickupCode:        pickupCode,
		DeliveryCode:      deliveryCode,
	}
	if err := db.Create(&req).Error; err != nil {
		return err
	}

	assignment := entity.Assignment{
		DeliveryRequestID: req.ID,
		RiderID:           rider.ID,
		AssignedAt:        time.Now(),
		Status:            entity.StatusAssigned,
	}
	if err := db.Create(&assignment).Error; err != nil {
		return err
	}

	log.Println("seeded demo trader/request/assignment")
	return nil
}
