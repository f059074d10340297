package models

import "time"

type RideStatus string

const (
	RidePending    RideStatus = "pending"
	RideAccepted   RideStatus = "accepted"
	RideInProgress RideStatus = "in_progress"
	RideCompleted  RideStatus = "completed"
)

type Ride struct {
	ID              int        `json:"id"`
	RiderID         int        `json:"rider_id"`
	DriverID        *int       `json:"driver_id,omitempty"`
	PickupLocation  string     `json:"pickup_location"`
	DropOffLocation string     `json:"drop_off_location"`
	Status          RideStatus `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type RequestRideRequest struct {
	PickupLocation  string `json:"pickup_location"`
	DropOffLocation string `json:"drop_off_location"`
}
