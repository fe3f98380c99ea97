package services

import (
	"time"

	"github.com/Deji-py/eco-rider/entity"
	"github.com/Deji-py/eco-rider/internal/metrics"
	"github.com/Deji-py/eco-rider/ws"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ----- Rider actions -----
//
// Canonical transition model: Accept is the un-gated rider commitment and
// touches only the rider row (available -> busy); the assignment stays
// `assigned` until the code-gated Confirm moves it forward. The old order
// list treated accept as an implicit pickup while the tracking screen gated
// pickup behind a code; the gated flow is the one kept.

// Accept marks the rider busy for a pending assignment.
func (s *AssignmentService) Accept(userID, assignmentID uint) error {
	r, err := s.RiderRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	a, err := s.Repo.GetByID(assignmentID)
	if err != nil {
		return err
	}
	if a.RiderID != r.ID {
		return ErrForbidden
	}
	if a.Status != entity.StatusAssigned {
		return ErrConflict
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.RiderRepo.UpdateStatus(tx, r.ID, entity.RiderBusy)
	})
}

// Reject cancels a still-pending assignment, storing the decline reason in
// notes. No code gate; only legal from `assigned`.
func (s *AssignmentService) Reject(userID, assignmentID uint, reason string) error {
	r, err := s.RiderRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	a, err := s.Repo.GetByID(assignmentID)
	if err != nil {
		return err
	}
	if a.RiderID != r.ID {
		return ErrForbidden
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.Reject(tx, assignmentID, reason)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		// a declined rider is free again
		return s.RiderRepo.UpdateStatus(tx, r.ID, entity.RiderAvailable)
	})
	if err != nil {
		if err == ErrConflict {
			metrics.TransitionConflictsTotal.Inc()
		}
		return err
	}

	metrics.TransitionsTotal.WithLabelValues(string(entity.StatusCancelled)).Inc()
	s.Feed.Publish(ws.Event{
		Type: "update", AssignmentID: assignmentID, RiderID: r.ID,
		Status: entity.StatusCancelled,
	})
	return nil
}

// MarkInTransit is the un-gated picked_up -> in_transit step.
func (s *AssignmentService) MarkInTransit(userID, assignmentID uint) error {
	r, err := s.RiderRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	a, err := s.Repo.GetByID(assignmentID)
	if err != nil {
		return err
	}
	if a.RiderID != r.ID {
		return ErrForbidden
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, assignmentID,
			[]entity.AssignmentStatus{entity.StatusPickedUp},
			entity.StatusInTransit, "", time.Time{})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		if err == ErrConflict {
			metrics.TransitionConflictsTotal.Inc()
		}
		return err
	}

	metrics.TransitionsTotal.WithLabelValues(string(entity.StatusInTransit)).Inc()
	s.Feed.Publish(ws.Event{
		Type: "update", AssignmentID: assignmentID, RiderID: r.ID,
		Status: entity.StatusInTransit,
	})
	return nil
}

// Confirm commits a code-gated transition: `picked_up` against the pickup
// code, `delivered` against the delivery code. On a mismatch nothing is
// written. Exactly one of success-with-mutation or failure-unchanged is
// observable per call.
func (s *AssignmentService) Confirm(
	userID, assignmentID uint,
	target entity.AssignmentStatus, code string,
) error {
	if target != entity.StatusPickedUp && target != entity.StatusDelivered {
		return ErrConflict
	}

	r, err := s.RiderRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	a, err := s.Repo.GetByID(assignmentID)
	if err != nil {
		return err
	}
	if a.RiderID != r.ID {
		return ErrForbidden
	}
	if !a.CanTransition(target) {
		metrics.TransitionConflictsTotal.Inc()
		return ErrConflict
	}

	pickupCode, deliveryCode, err := s.Repo.GetCodes(assignmentID)
	if err != nil {
		return err
	}

	var from []entity.AssignmentStatus
	var timeColumn, want string
	if target == entity.StatusPickedUp {
		from = []entity.AssignmentStatus{entity.StatusAssigned}
		timeColumn, want = "pickup_time", pickupCode
	} else {
		from = []entity.AssignmentStatus{entity.StatusPickedUp, entity.StatusInTransit}
		timeColumn, want = "delivery_time", deliveryCode
	}

	if code != want {
		metrics.VerificationFailuresTotal.Inc()
		return ErrInvalidCode
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, assignmentID, from, target, timeColumn, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		if err == ErrConflict {
			metrics.TransitionConflictsTotal.Inc()
		}
		return err
	}

	metrics.TransitionsTotal.WithLabelValues(string(target)).Inc()

	if target == entity.StatusDelivered {
		metrics.DeliveriesCompletedTotal.Inc()
		// Best effort: a failure here is logged, never rolled back into the
		// already-committed status transition.
		if err := s.RiderRepo.IncrementDeliveries(s.DB, r.ID); err != nil {
			zap.L().Error("increment deliveries failed",
				zap.Uint("riderId", r.ID), zap.Error(err))
		}
		if err := s.RiderRepo.UpdateStatus(s.DB, r.ID, entity.RiderAvailable); err != nil {
			zap.L().Error("rider status reset failed",
				zap.Uint("riderId", r.ID), zap.Error(err))
		}
	}

	s.Feed.Publish(ws.Event{
		Type: "update", AssignmentID: assignmentID, RiderID: r.ID, Status: target,
	})
	return nil
}
