package services

import (
	"testing"
	"time"

	"github.com/Deji-py/eco-rider/entity"
	"github.com/Deji-py/eco-rider/repository"
	"github.com/Deji-py/eco-rider/ws"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.VehicleType{}, &entity.Rider{},
		&entity.Trader{}, &entity.DeliveryRequest{},
		&entity.Assignment{},
	))
	return db
}

// recordingFeed captures published change events.
type recordingFeed struct{ events []ws.Event }

func (f *recordingFeed) Publish(ev ws.Event) { f.events = append(f.events, ev) }

type fixture struct {
	db         *gorm.DB
	user       *entity.User
	rider      *entity.Rider
	trader     *entity.Trader
	request    *entity.DeliveryRequest
	assignment *entity.Assignment
	feed       *recordingFeed
	svc        *AssignmentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testDB(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &entity.User{Email: "rider@example.com", Password: string(hash), EmailVerified: true}
	require.NoError(t, db.Create(user).Error)

	vt := &entity.VehicleType{Name: "Motorcycle"}
	require.NoError(t, db.Create(vt).Error)

	rider := &entity.Rider{
		UserID: user.ID, FirstName: "Ade", LastName: "Okafor",
		Phone: "+2348000000000", VehicleTypeID: vt.ID, VehicleNumber: "LAG-123-XY",
		Status: entity.RiderAvailable, CompletedDeliveries: 10,
		LocalGovArea: "Ikeja", State: "Lagos",
	}
	require.NoError(t, db.Create(rider).Error)

	trader := &entity.Trader{
		BusinessName: "Mama Nkechi Foods", BusinessAddress: "12 Allen Avenue",
		ContactPerson: "Nkechi Obi", PhoneNumbers: "+2348012345678",
		Latitude: 6.6018, Longitude: 3.3515,
	}
	require.NoError(t, db.Create(trader).Error)

	request := &entity.DeliveryRequest{
		TraderID: trader.ID, Items: `[{"name":"Rice 50kg","qty":2}]`,
		DeliveryAddress: "4 Admiralty Way", DeliveryLatitude: 6.4478, DeliveryLongitude: 3.4723,
		CustomerName: "Tunde Bakare", Amount: 8500, DistanceKm: 18.4,
		PickupCode: "123456", DeliveryCode: "654321",
	}
	require.NoError(t, db.Create(request).Error)

	assignment := &entity.Assignment{
		DeliveryRequestID: request.ID, RiderID: rider.ID,
		AssignedAt: time.Now().Add(-time.Hour), Status: entity.StatusAssigned,
	}
	require.NoError(t, db.Create(assignment).Error)

	feed := &recordingFeed{}
	svc := NewAssignmentService(db,
		repository.NewAssignmentRepository(db),
		repository.NewRiderRepository(db),
		feed,
	)

	return &fixture{
		db: db, user: user, rider: rider, trader: trader,
		request: request, assignment: assignment, feed: feed, svc: svc,
	}
}

func (f *fixture) reloadAssignment(t *testing.T) *entity.Assignment {
	t.Helper()
	var a entity.Assignment
	require.NoError(t, f.db.First(&a, f.assignment.ID).Error)
	return &a
}

func (f *fixture) reloadRider(t *testing.T) *entity.Rider {
	t.Helper()
	var r entity.Rider
	require.NoError(t, f.db.First(&r, f.rider.ID).Error)
	return &r
}

func (f *fixture) setStatus(t *testing.T, status entity.AssignmentStatus, pickupAt *time.Time) {
	t.Helper()
	updates := map[string]any{"status": status}
	if pickupAt != nil {
		updates["pickup_time"] = *pickupAt
	}
	require.NoError(t, f.db.Model(&entity.Assignment{}).
		Where("id = ?", f.assignment.ID).Updates(updates).Error)
}
