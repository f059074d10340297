package services

import (
	"fmt"
	"log"

	"alumnihub/internal/apperr"
	"alumnihub/internal/models"
	"alumnihub/internal/repositories"
)

// Allowed ride status transitions.
var rideTransitions = map[models.RideStatus]map[models.RideStatus]bool{
	models.RidePending:    {models.RideAccepted: true},
	models.RideAccepted:   {models.RideInProgress: true},
	models.RideInProgress: {models.RideCompleted: true},
	models.RideCompleted:  {},
}

func canTransition(current, to models.RideStatus) bool {
	nexts, ok := rideTransitions[current]
	if !ok {
		return false
	}
	return nexts[to]
}

type RideService interface {
	RequestRide(riderID int, pickup, dropOff string) (*models.Ride, error)
	ListPending() ([]*models.Ride, error)
	Accept(rideID, driverID int) (*models.Ride, error)
	Start(rideID, driverID int) (*models.Ride, error)
	Complete(rideID, driverID int) (*models.Ride, error)
	MyTrips(userID int) ([]*models.Ride, error)
}

type rideService struct {
	repo repositories.RideRepository
}

func NewRideService(repo repositories.RideRepository) RideService {
	return &rideService{repo: repo}
}

func (s *rideService) RequestRide(riderID int, pickup, dropOff string) (*models.Ride, error) {
	if pickup == "" || dropOff == "" {
		return nil, apperr.Validation("Pickup location and drop-off location are required")
	}
	ride := &models.Ride{
		RiderID:         riderID,
		PickupLocation:  pickup,
		DropOffLocation: dropOff,
		Status:          models.RidePending,
	}
	if err := s.repo.Create(ride); err != nil {
		return nil, apperr.Internal("failed to create ride", err)
	}
	log.Printf("[ride][request] created ride=%d rider=%d", ride.ID, riderID)
	return ride, nil
}

func (s *rideService) ListPending() ([]*models.Ride, error) {
	rides, err := s.repo.ListByStatus(models.RidePending)
	if err != nil {
		return nil, apperr.Internal("failed to list pending rides", err)
	}
	return rides, nil
}

func (s *rideService) getRide(rideID int) (*models.Ride, error) {
	ride, err := s.repo.GetByID(rideID)
	if err != nil {
		return nil, apperr.Internal("failed to look up ride", err)
	}
	if ride == nil {
		return nil, apperr.NotFound("Ride not found")
	}
	return ride, nil
}

func (s *rideService) transition(ride *models.Ride, to models.RideStatus, driverID *int) (*models.Ride, error) {
	if !canTransition(ride.Status, to) {
		return nil, apperr.Conflict(fmt.Sprintf("Ride cannot go from %s to %s", ride.Status, to))
	}
	if err := s.repo.UpdateStatus(ride.ID, to, driverID); err != nil {
		return nil, apperr.Internal("failed to update ride status", err)
	}
	ride.Status = to
	if driverID != nil {
		ride.DriverID = driverID
	}
	log.Printf("[ride][status] ride=%d -> %s", ride.ID, to)
	return ride, nil
}

func (s *rideService) Accept(rideID, driverID int) (*models.Ride, error) {
	ride, err := s.getRide(rideID)
	if err != nil {
		return nil, err
	}
	return s.transition(ride, models.RideAccepted, &driverID)
}

// Start and Complete require the acting driver to be the one assigned.
func (s *rideService) Start(rideID, driverID int) (*models.Ride, error) {
	ride, err := s.getRide(rideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID == nil || *ride.DriverID != driverID {
		return nil, apperr.Forbidden("Ride is assigned to another driver")
	}
	return s.transition(ride, models.RideInProgress, nil)
}

func (s *rideService) Complete(rideID, driverID int) (*models.Ride, error) {
	ride, err := s.getRide(rideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID == nil || *ride.DriverID != driverID {
		return nil, apperr.Forbidden("Ride is assigned to another driver")
	}
	return s.transition(ride, models.RideCompleted, nil)
}

func (s *rideService) MyTrips(userID int) ([]*models.Ride, error) {
	rides, err := s.repo.ListForUser(userID)
	if err != nil {
		return nil, apperr.Internal("failed to list trips", err)
	}
	return rides, nil
}
