package services

import (
	"errors"
	"time"

	"github.com/Deji-py/eco-rider/entity"
	"github.com/Deji-py/eco-rider/repository"
	"github.com/Deji-py/eco-rider/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProfileExists  = errors.New("rider profile already submitted")
	ErrHasActiveWork  = errors.New("cannot go offline with active work")
	ErrUnknownVehicle = errors.New("unknown vehicle type")
)

// Location writes are throttled: skip the remote write when the rider moved
// less than minLocationDeltaKm and the last write is fresher than
// minLocationInterval. Staleness, not corruption, is the only risk of a
// dropped write, since each write fully replaces the position.
const (
	minLocationInterval = 15 * time.Second
	minLocationDeltaKm  = 0.05
)

type RiderService struct {
	DB          *gorm.DB
	RiderRepo   *repository.RiderRepository
	UserRepo    *repository.UserRepository
	VehicleRepo *repository.VehicleTypeRepository
	Assignments *repository.AssignmentRepository
}

func NewRiderService(
	db *gorm.DB,
	riderRepo *repository.RiderRepository,
	userRepo *repository.UserRepository,
	vehicleRepo *repository.VehicleTypeRepository,
	assignments *repository.AssignmentRepository,
) *RiderService {
	return &RiderService{
		DB: db, RiderRepo: riderRepo, UserRepo: userRepo,
		VehicleRepo: vehicleRepo, Assignments: assignments,
	}
}

// ---- Profile ----

type ProfileSnapshot struct {
	User  *entity.User  `json:"user"`
	Rider *entity.Rider `json:"rider,omitempty"`
}

type SubmitProfileInput struct {
	FirstName      string
	LastName       string
	Phone          string
	VehicleType    string
	VehicleNumber  string
	LocalGovArea   string
	State          string
	ProfilePicture string
}

// GetProfileSnapshot returns the user plus the rider row, nil rider when the
// profile has not been submitted yet.
func (s *RiderService) GetProfileSnapshot(userID uint) (*ProfileSnapshot, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	rider, err := s.RiderRepo.GetByUserIDWithVehicle(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ProfileSnapshot{User: user}, nil
		}
		return nil, err
	}
	return &ProfileSnapshot{User: user, Rider: rider}, nil
}

// SubmitProfile creates the rider row, completing the session. One profile
// per user; resubmission is a conflict, not an upsert.
func (s *RiderService) SubmitProfile(userID uint, in SubmitProfileInput) (*entity.Rider, error) {
	vt, err := s.VehicleRepo.GetByName(in.VehicleType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownVehicle
		}
		return nil, err
	}

	var rider *entity.Rider
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.RiderRepo.GetByUserID(userID); err == nil {
			return ErrProfileExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		rider = &entity.Rider{
			UserID:         userID,
			FirstName:      in.FirstName,
			LastName:       in.LastName,
			Phone:          in.Phone,
			VehicleTypeID:  vt.ID,
			VehicleNumber:  in.VehicleNumber,
			LocalGovArea:   in.LocalGovArea,
			State:          in.State,
			ProfilePicture: in.ProfilePicture,
			Status:         entity.RiderAvailable,
		}
		return s.RiderRepo.Create(tx, rider)
	})
	if err != nil {
		return nil, err
	}
	return rider, nil
}

// UpdateProfile patches mutable profile fields.
func (s *RiderService) UpdateProfile(userID uint, updates map[string]any) (*entity.Rider, error) {
	rider, err := s.RiderRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.RiderRepo.Update(tx, rider.ID, updates)
	})
	if err != nil {
		return nil, err
	}
	return s.RiderRepo.GetByUserID(userID)
}

// ---- Availability ----

// SetAvailability flips the rider between available and offline. Going
// offline is refused while undelivered work exists.
func (s *RiderService) SetAvailability(userID uint, status entity.RiderStatus) error {
	if status != entity.RiderAvailable && status != entity.RiderOffline {
		return ErrConflict
	}
	rider, err := s.RiderRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	if status == entity.RiderOffline {
		cnt, err := s.Assignments.CountActive(rider.ID)
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrHasActiveWork
		}
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.RiderRepo.UpdateStatus(tx, rider.ID, status)
	})
}

// ---- Location ----

// UpdateLocation writes the rider's position, throttled by time and
// distance. Returns whether a write actually happened.
func (s *RiderService) UpdateLocation(userID uint, lat, lon float64) (bool, error) {
	rider, err := s.RiderRepo.GetByUserID(userID)
	if err != nil {
		return false, err
	}

	if rider.LocationUpdatedAt != nil {
		fresh := time.Since(*rider.LocationUpdatedAt) < minLocationInterval
		near := utils.HaversineKm(rider.Latitude, rider.Longitude, lat, lon) < minLocationDeltaKm
		if fresh && near {
			return false, nil
		}
	}

	if err := s.RiderRepo.UpdateLocation(rider.ID, lat, lon, time.Now()); err != nil {
		return false, err
	}
	return true, nil
}

// ---- Push / nearby / vehicles ----

// RegisterPushDevice stores the device push token against the rider row and
// hands back a device id for the client to keep.
func (s *RiderService) RegisterPushDevice(userID uint, token string) (string, error) {
	rider, err := s.RiderRepo.GetByUserID(userID)
	if err != nil {
		return "", err
	}
	if err := s.RiderRepo.SavePushToken(rider.ID, token); err != nil {
		return "", err
	}
	return uuid.NewString(), nil
}

func (s *RiderService) Nearby(lat, lon, radiusKm float64) ([]repository.NearbyRider, error) {
	if radiusKm <= 0 {
		radiusKm = 5
	}
	return s.RiderRepo.Nearby(lat, lon, radiusKm)
}

func (s *RiderService) VehicleTypes() ([]entity.VehicleType, error) {
	return s.VehicleRepo.List()
}
