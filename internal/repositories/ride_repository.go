package repositories

import (
	"database/sql"
	"errors"

	"alumnihub/internal/models"
)

type RideRepository interface {
	Create(ride *models.Ride) error
	GetByID(id int) (*models.Ride, error)
	ListByStatus(status models.RideStatus) ([]*models.Ride, error)
	ListForUser(userID int) ([]*models.Ride, error)
	UpdateStatus(id int, status models.RideStatus, driverID *int) error
}

type rideRepository struct {
	DB *sql.DB
}

func NewRideRepository(db *sql.DB) RideRepository {
	return &rideRepository{DB: db}
}

func (r *rideRepository) Create(ride *models.Ride) error {
	const q = `
		INSERT INTO rides (rider_id, pickup_location, drop_off_location, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(q,
		ride.RiderID,
		ride.PickupLocation,
		ride.DropOffLocation,
		ride.Status,
	).Scan(&ride.ID, &ride.CreatedAt, &ride.UpdatedAt)
}

func scanRide(scan func(...any) error) (*models.Ride, error) {
	ride := &models.Ride{}
	var (
		driverID sql.NullInt64
		status   string
	)
	err := scan(
		&ride.ID, &ride.RiderID, &driverID,
		&ride.PickupLocation, &ride.DropOffLocation, &status,
		&ride.CreatedAt, &ride.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	ride.Status = models.RideStatus(status)
	if driverID.Valid {
		id := int(driverID.Int64)
		ride.DriverID = &id
	}
	return ride, nil
}

const rideColumns = `
	id, rider_id, driver_id, pickup_location, drop_off_location, status,
	created_at, updated_at
`

func (r *rideRepository) GetByID(id int) (*models.Ride, error) {
	row := r.DB.QueryRow(`SELECT `+rideColumns+` FROM rides WHERE id = $1`, id)
	ride, err := scanRide(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return ride, err
}

func (r *rideRepository) listQuery(q string, args ...any) ([]*models.Ride, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*models.Ride
	for rows.Next() {
		ride, err := scanRide(rows.Scan)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

func (r *rideRepository) ListByStatus(status models.RideStatus) ([]*models.Ride, error) {
	return r.listQuery(`SELECT `+rideColumns+` FROM rides WHERE status = $1 ORDER BY created_at`, status)
}

func (r *rideRepository) ListForUser(userID int) ([]*models.Ride, error) {
	return r.listQuery(
		`SELECT `+rideColumns+` FROM rides WHERE rider_id = $1 OR driver_id = $1 ORDER BY created_at DESC`,
		userID,
	)
}

func (r *rideRepository) UpdateStatus(id int, status models.RideStatus, driverID *int) error {
	if driverID != nil {
		const q = `UPDATE rides SET status=$1, driver_id=$2, updated_at=NOW() WHERE id=$3`
		_, err := r.DB.Exec(q, status, *driverID, id)
		return err
	}
	const q = `UPDATE rides SET status=$1, updated_at=NOW() WHERE id=$2`
	_, err := r.DB.Exec(q, status, id)
	return err
}
