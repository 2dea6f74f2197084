package location

import (
	"context"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/models"
)

type Repository interface {
	GetByID(
		ctx context.Context,
		id uint,
	) (*models.Location, error)

	ListByCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Location, error)

	Create(
		ctx context.Context,
		loc *models.Location,
	) error

	Update(
		ctx context.Context,
		loc *models.Location,
	) error

	Delete(
		ctx context.Context,
		id uint,
	) error

	// CountBookings reports how many bookings reference the location,
	// regardless of booking status. Any reference blocks deletion.
	CountBookings(
		ctx context.Context,
		locationID uint,
	) (int64, error)
}
