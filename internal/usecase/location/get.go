package location

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/Tech-Care-Rwanda/tech-care-sub001/internal/domain/location"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/httperr"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/models"
)

type GetLocation struct {
	repo domain.Repository
}

func NewGetLocation(repo domain.Repository) *GetLocation {
	return &GetLocation{repo: repo}
}

// Execute returns the location when the requester owns it. Technicians
// may read any customer's location: they need the address and map link
// to carry out bookings there.
func (uc *GetLocation) Execute(
	ctx context.Context,
	requesterID uint,
	requesterRole models.Role,
	id uint,
) (*models.Location, error) {

	loc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(CodeNotFound)
		}
		return nil, err
	}

	if loc.CustomerID != requesterID && requesterRole != models.RoleTechnician {
		return nil, httperr.ErrBusiness(CodeForbidden)
	}

	return loc, nil
}
