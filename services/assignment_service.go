package services

import (
	"errors"

	"github.com/Deji-py/eco-rider/repository"
	"github.com/Deji-py/eco-rider/ws"

	"gorm.io/gorm"
)

var (
	// ErrInvalidCode is the verification-gate rejection. Expected and
	// user-correctable: never logged as a system error.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrConflict means the assignment was not in the expected prior status
	// (lost race, double submit, or an illegal step).
	ErrConflict = errors.New("assignment not in expected status")

	ErrForbidden = errors.New("assignment belongs to another rider")
)

// FeedPublisher receives change events after a transition commits.
type FeedPublisher interface {
	Publish(ev ws.Event)
}

type AssignmentService struct {
	DB        *gorm.DB
	Repo      *repository.AssignmentRepository
	RiderRepo *repository.RiderRepository
	Feed      FeedPublisher
}

func NewAssignmentService(
	db *gorm.DB,
	repo *repository.AssignmentRepository,
	riderRepo *repository.RiderRepository,
	feed FeedPublisher,
) *AssignmentService {
	return &AssignmentService{DB: db, Repo: repo, RiderRepo: riderRepo, Feed: feed}
}

// Pending lists the rider's not-yet-accepted assignments, newest first.
func (s *AssignmentService) Pending(userID uint) ([]repository.OrderRow, error) {
	r, err := s.RiderRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListPending(r.ID)
}

// Active lists assignments the rider is currently moving, newest first.
func (s *AssignmentService) Active(userID uint) ([]repository.OrderRow, error) {
	r, err := s.RiderRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListActive(r.ID)
}

// Detail loads the tracking shape for one assignment, with an ownership
// check so a rider cannot read another rider's codes.
func (s *AssignmentService) Detail(userID, assignmentID uint) (*repository.AssignmentDetail, error) {
	r, err := s.RiderRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	d, err := s.Repo.GetDetail(assignmentID)
	if err != nil {
		return nil, err
	}
	if d.RiderID != r.ID {
		return nil, ErrForbidden
	}
	return d, nil
}
