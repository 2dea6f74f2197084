package location

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/audit"
	domain "github.com/Tech-Care-Rwanda/tech-care-sub001/internal/domain/location"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/httperr"
)

type DeleteLocation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteLocation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteLocation {
	return &DeleteLocation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteLocation) Execute(
	ctx context.Context,
	customerID uint,
	locationID uint,
) error {

	loc, err := uc.repo.GetByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness(CodeNotFound)
		}
		return err
	}

	if loc.CustomerID != customerID {
		return httperr.ErrBusiness(CodeForbidden)
	}

	count, err := uc.repo.CountBookings(ctx, locationID)
	if err != nil {
		return err
	}
	if count > 0 {
		return httperr.ErrBusiness(CodeHasBookings)
	}

	if err := uc.repo.Delete(ctx, locationID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &customerID,
		Action:   "location_deleted",
		Entity:   "location",
		EntityID: &locationID,
	})

	return nil
}
