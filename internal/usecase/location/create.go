package location

import (
	"context"
	"strings"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/audit"
	domain "github.com/Tech-Care-Rwanda/tech-care-sub001/internal/domain/location"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/geocode"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/httperr"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/models"
)

type CreateLocationInput struct {
	CustomerID uint

	AddressName string
	Description string
	District    string
	Province    string
}

type CreateLocation struct {
	repo     domain.Repository
	geocoder geocode.Geocoder
	audit    *audit.Dispatcher
}

func NewCreateLocation(
	repo domain.Repository,
	geocoder geocode.Geocoder,
	audit *audit.Dispatcher,
) *CreateLocation {
	return &CreateLocation{
		repo:     repo,
		geocoder: geocoder,
		audit:    audit,
	}
}

func (uc *CreateLocation) Execute(
	ctx context.Context,
	in CreateLocationInput,
) (*models.Location, error) {

	description := strings.TrimSpace(in.Description)
	district := strings.TrimSpace(in.District)
	province := strings.TrimSpace(in.Province)

	if description == "" || district == "" || province == "" {
		return nil, httperr.ErrBusiness(CodeMissingFields)
	}

	addressName := strings.TrimSpace(in.AddressName)
	if addressName == "" {
		addressName = defaultAddressName
	}

	// Geocode first: nothing is persisted unless the address resolves.
	result, err := uc.geocoder.Geocode(ctx, description, district, province)
	if err != nil {
		return nil, err
	}

	loc := &models.Location{
		CustomerID:   in.CustomerID,
		AddressName:  addressName,
		Description:  description,
		District:     district,
		Province:     province,
		Latitude:     result.Latitude,
		Longitude:    result.Longitude,
		GoogleMapURL: result.GoogleMapURL,
	}

	if err := uc.repo.Create(ctx, loc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.CustomerID,
		Action:   "location_created",
		Entity:   "location",
		EntityID: &loc.ID,
	})

	return loc, nil
}
