package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"alumnihub/internal/apperr"
	"alumnihub/internal/models"
	"alumnihub/internal/services"
)

type RideHandler struct {
	rides services.RideService
}

func NewRideHandler(rides services.RideService) *RideHandler {
	return &RideHandler{rides: rides}
}

func rideID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apperr.Validation("Invalid ride ID")
	}
	return id, nil
}

// @Summary      Request a ride
// @Tags         Rides
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.RequestRideRequest  true  "Pickup and drop-off"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Router       /rides/request [post]
func (h *RideHandler) RequestRide(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperr.Authentication("Unauthorized"))
		return
	}

	var req models.RequestRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation(err.Error()))
		return
	}

	ride, err := h.rides.RequestRide(userID, req.PickupLocation, req.DropOffLocation)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Ride requested successfully.", gin.H{"data": ride})
}

// @Summary      List pending rides
// @Tags         Rides
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /rides/pending [get]
func (h *RideHandler) ListPending(c *gin.Context) {
	rides, err := h.rides.ListPending()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Pending rides fetched successfully.", gin.H{"data": rides})
}

// @Summary      Accept a ride
// @Tags         Rides
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Ride ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /rides/{id}/accept [patch]
func (h *RideHandler) Accept(c *gin.Context) {
	h.updateStatus(c, h.rides.Accept, "Ride accepted successfully.")
}

// @Summary      Start a ride
// @Tags         Rides
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Ride ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /rides/{id}/start [patch]
func (h *RideHandler) Start(c *gin.Context) {
	h.updateStatus(c, h.rides.Start, "Ride started successfully.")
}

// @Summary      Complete a ride
// @Tags         Rides
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Ride ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /rides/{id}/complete [patch]
func (h *RideHandler) Complete(c *gin.Context) {
	h.updateStatus(c, h.rides.Complete, "Ride completed successfully.")
}

func (h *RideHandler) updateStatus(
	c *gin.Context,
	op func(rideID, driverID int) (*models.Ride, error),
	message string,
) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperr.Authentication("Unauthorized"))
		return
	}
	id, err := rideID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ride, err := op(id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, message, gin.H{"data": ride})
}

// @Summary      List own trips
// @Tags         Rides
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /rides/my-trips [get]
func (h *RideHandler) MyTrips(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperr.Authentication("Unauthorized"))
		return
	}

	rides, err := h.rides.MyTrips(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Trips fetched successfully.", gin.H{"data": rides})
}
