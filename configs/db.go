package configs

import (
	"github.com/Deji-py/eco-rider/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(dsn string) {
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(
		&entity.User{},
		&entity.VehicleType{}, &entity.Rider{},
		&entity.Trader{}, &entity.DeliveryRequest{},
		&entity.Assignment{},
	)
}
