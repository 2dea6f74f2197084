package location

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/audit"
	domain "github.com/Tech-Care-Rwanda/tech-care-sub001/internal/domain/location"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/geocode"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/httperr"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/models"
)

type UpdateLocationInput struct {
	CustomerID uint
	LocationID uint

	AddressName string
	Description string
	District    string
	Province    string
}

type UpdateLocation struct {
	repo     domain.Repository
	geocoder geocode.Geocoder
	audit    *audit.Dispatcher
}

func NewUpdateLocation(
	repo domain.Repository,
	geocoder geocode.Geocoder,
	audit *audit.Dispatcher,
) *UpdateLocation {
	return &UpdateLocation{
		repo:     repo,
		geocoder: geocoder,
		audit:    audit,
	}
}

func (uc *UpdateLocation) Execute(
	ctx context.Context,
	in UpdateLocationInput,
) (*models.Location, error) {

	loc, err := uc.repo.GetByID(ctx, in.LocationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(CodeNotFound)
		}
		return nil, err
	}

	if loc.CustomerID != in.CustomerID {
		return nil, httperr.ErrBusiness(CodeForbidden)
	}

	description := strings.TrimSpace(in.Description)
	district := strings.TrimSpace(in.District)
	province := strings.TrimSpace(in.Province)

	if description == "" || district == "" || province == "" {
		return nil, httperr.ErrBusiness(CodeMissingFields)
	}

	// Geocode before touching the record so a failed resolve leaves
	// the stored coordinates untouched.
	result, err := uc.geocoder.Geocode(ctx, description, district, province)
	if err != nil {
		return nil, err
	}

	if addressName := strings.TrimSpace(in.AddressName); addressName != "" {
		loc.AddressName = addressName
	}

	loc.Description = description
	loc.District = district
	loc.Province = province
	loc.Latitude = result.Latitude
	loc.Longitude = result.Longitude
	loc.GoogleMapURL = result.GoogleMapURL

	if err := uc.repo.Update(ctx, loc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.CustomerID,
		Action:   "location_updated",
		Entity:   "location",
		EntityID: &loc.ID,
	})

	return loc, nil
}
