package location

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/audit"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/geocode"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/httperr"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/models"
)

// ------------------------------
// Fakes
// ------------------------------

type fakeRepo struct {
	locations map[uint]*models.Location
	bookings  map[uint]int64
	nextID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		locations: map[uint]*models.Location{},
		bookings:  map[uint]int64{},
		nextID:    1,
	}
}

func (r *fakeRepo) GetByID(_ context.Context, id uint) (*models.Location, error) {
	loc, ok := r.locations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *loc
	return &copied, nil
}

func (r *fakeRepo) ListByCustomer(_ context.Context, customerID uint) ([]models.Location, error) {
	var out []models.Location
	for _, loc := range r.locations {
		if loc.CustomerID == customerID {
			out = append(out, *loc)
		}
	}
	return out, nil
}

func (r *fakeRepo) Create(_ context.Context, loc *models.Location) error {
	loc.ID = r.nextID
	r.nextID++
	copied := *loc
	r.locations[loc.ID] = &copied
	return nil
}

func (r *fakeRepo) Update(_ context.Context, loc *models.Location) error {
	copied := *loc
	r.locations[loc.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	delete(r.locations, id)
	return nil
}

func (r *fakeRepo) CountBookings(_ context.Context, locationID uint) (int64, error) {
	return r.bookings[locationID], nil
}

type fakeGeocoder struct {
	result *geocode.Result
	err    error
	calls  int
}

func (g *fakeGeocoder) Geocode(_ context.Context, _, _, _ string) (*geocode.Result, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func kigaliGeocoder() *fakeGeocoder {
	return &fakeGeocoder{result: &geocode.Result{
		Latitude:     -1.95,
		Longitude:    30.06,
		GoogleMapURL: geocode.MapURL(-1.95, 30.06),
	}}
}

func nopAudit() *audit.Dispatcher {
	return audit.NewDispatcher(nil)
}

// ------------------------------
// Create
// ------------------------------

func TestCreateLocationPersistsGeocodedCoordinates(t *testing.T) {
	repo := newFakeRepo()
	geo := kigaliGeocoder()
	uc := NewCreateLocation(repo, geo, nopAudit())

	loc, err := uc.Execute(context.Background(), CreateLocationInput{
		CustomerID:  7,
		Description: "KN 4 Ave",
		District:    "Nyarugenge",
		Province:    "Kigali",
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if loc.Latitude != -1.95 || loc.Longitude != 30.06 {
		t.Fatalf("expected geocoder coordinates, got (%v, %v)", loc.Latitude, loc.Longitude)
	}
	if loc.GoogleMapURL != "https://www.google.com/maps?q=-1.95,30.06" {
		t.Fatalf("unexpected map URL: %s", loc.GoogleMapURL)
	}
	if loc.AddressName != "Home" {
		t.Fatalf("expected default address name, got %q", loc.AddressName)
	}
	if len(repo.locations) != 1 {
		t.Fatalf("expected exactly one persisted location, got %d", len(repo.locations))
	}
}

func TestCreateLocationMissingFields(t *testing.T) {
	tests := []CreateLocationInput{
		{CustomerID: 1, District: "Nyarugenge", Province: "Kigali"},
		{CustomerID: 1, Description: "KN 4 Ave", Province: "Kigali"},
		{CustomerID: 1, Description: "KN 4 Ave", District: "Nyarugenge"},
		{CustomerID: 1, Description: "  ", District: "Nyarugenge", Province: "Kigali"},
	}

	for _, in := range tests {
		repo := newFakeRepo()
		geo := kigaliGeocoder()
		uc := NewCreateLocation(repo, geo, nopAudit())

		_, err := uc.Execute(context.Background(), in)
		if !httperr.IsBusiness(err, CodeMissingFields) {
			t.Fatalf("expected %s for %+v, got %v", CodeMissingFields, in, err)
		}
		if len(repo.locations) != 0 {
			t.Fatalf("expected nothing persisted for %+v", in)
		}
		if geo.calls != 0 {
			t.Fatal("geocoder must not be called on validation failure")
		}
	}
}

func TestCreateLocationGeocodeFailurePersistsNothing(t *testing.T) {
	repo := newFakeRepo()
	geo := &fakeGeocoder{err: httperr.ErrBusiness(geocode.CodeGeocodeFailed)}
	uc := NewCreateLocation(repo, geo, nopAudit())

	_, err := uc.Execute(context.Background(), CreateLocationInput{
		CustomerID:  1,
		Description: "KN 4 Ave",
		District:    "Nyarugenge",
		Province:    "Kigali",
	})
	if !httperr.IsBusiness(err, geocode.CodeGeocodeFailed) {
		t.Fatalf("expected geocode failure, got %v", err)
	}
	if len(repo.locations) != 0 {
		t.Fatal("expected no record created when geocoding fails")
	}
}

// ------------------------------
// Get
// ------------------------------

func TestGetLocationOwnerAndTechnicianVisibility(t *testing.T) {
	repo := newFakeRepo()
	repo.locations[1] = &models.Location{ID: 1, CustomerID: 7, Description: "KN 4 Ave"}
	repo.nextID = 2
	uc := NewGetLocation(repo)

	if _, err := uc.Execute(context.Background(), 7, models.RoleCustomer, 1); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}

	// Technicians may read any customer's saved location.
	if _, err := uc.Execute(context.Background(), 99, models.RoleTechnician, 1); err != nil {
		t.Fatalf("technician read failed: %v", err)
	}

	_, err := uc.Execute(context.Background(), 99, models.RoleCustomer, 1)
	if !httperr.IsBusiness(err, CodeForbidden) {
		t.Fatalf("expected %s for foreign customer, got %v", CodeForbidden, err)
	}

	_, err = uc.Execute(context.Background(), 7, models.RoleCustomer, 42)
	if !httperr.IsBusiness(err, CodeNotFound) {
		t.Fatalf("expected %s for unknown id, got %v", CodeNotFound, err)
	}
}

// ------------------------------
// Update
// ------------------------------

func seedLocation(repo *fakeRepo) *models.Location {
	loc := &models.Location{
		ID:           1,
		CustomerID:   7,
		AddressName:  "Office",
		Description:  "KN 4 Ave",
		District:     "Nyarugenge",
		Province:     "Kigali",
		Latitude:     -1.95,
		Longitude:    30.06,
		GoogleMapURL: geocode.MapURL(-1.95, 30.06),
	}
	repo.locations[1] = loc
	repo.nextID = 2
	return loc
}

func TestUpdateLocationOverwritesCoordinates(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)

	geo := &fakeGeocoder{result: &geocode.Result{
		Latitude:     -2.6,
		Longitude:    29.74,
		GoogleMapURL: geocode.MapURL(-2.6, 29.74),
	}}
	uc := NewUpdateLocation(repo, geo, nopAudit())

	loc, err := uc.Execute(context.Background(), UpdateLocationInput{
		CustomerID:  7,
		LocationID:  1,
		Description: "Huye town",
		District:    "Huye",
		Province:    "Southern",
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if loc.Latitude != -2.6 || loc.Longitude != 29.74 {
		t.Fatalf("expected overwritten coordinates, got (%v, %v)", loc.Latitude, loc.Longitude)
	}
	if loc.AddressName != "Office" {
		t.Fatalf("blank address name must keep the stored value, got %q", loc.AddressName)
	}

	stored := repo.locations[1]
	if stored.District != "Huye" || stored.Latitude != -2.6 {
		t.Fatalf("expected stored record updated, got %+v", stored)
	}
}

func TestUpdateLocationNotFoundBeforeOwnership(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateLocation(repo, kigaliGeocoder(), nopAudit())

	_, err := uc.Execute(context.Background(), UpdateLocationInput{
		CustomerID:  99,
		LocationID:  1,
		Description: "KN 4 Ave",
		District:    "Nyarugenge",
		Province:    "Kigali",
	})
	if !httperr.IsBusiness(err, CodeNotFound) {
		t.Fatalf("expected %s, got %v", CodeNotFound, err)
	}
}

func TestUpdateLocationForbiddenForForeignCustomer(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)
	geo := kigaliGeocoder()
	uc := NewUpdateLocation(repo, geo, nopAudit())

	_, err := uc.Execute(context.Background(), UpdateLocationInput{
		CustomerID:  99,
		LocationID:  1,
		Description: "KN 4 Ave",
		District:    "Nyarugenge",
		Province:    "Kigali",
	})
	if !httperr.IsBusiness(err, CodeForbidden) {
		t.Fatalf("expected %s, got %v", CodeForbidden, err)
	}
	if geo.calls != 0 {
		t.Fatal("geocoder must not be called for a forbidden update")
	}
}

func TestUpdateLocationGeocodeFailureLeavesRecordUntouched(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)

	geo := &fakeGeocoder{err: httperr.ErrBusiness(geocode.CodeGeocodeFailed)}
	uc := NewUpdateLocation(repo, geo, nopAudit())

	_, err := uc.Execute(context.Background(), UpdateLocationInput{
		CustomerID:  7,
		LocationID:  1,
		Description: "somewhere unresolvable",
		District:    "Huye",
		Province:    "Southern",
	})
	if !httperr.IsBusiness(err, geocode.CodeGeocodeFailed) {
		t.Fatalf("expected geocode failure, got %v", err)
	}

	stored := repo.locations[1]
	if stored.Description != "KN 4 Ave" || stored.Latitude != -1.95 {
		t.Fatalf("stored record must be unchanged, got %+v", stored)
	}
}

// ------------------------------
// Delete
// ------------------------------

func TestDeleteLocationBlockedByBookings(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)
	repo.bookings[1] = 2

	uc := NewDeleteLocation(repo, nopAudit())

	err := uc.Execute(context.Background(), 7, 1)
	if !httperr.IsBusiness(err, CodeHasBookings) {
		t.Fatalf("expected %s, got %v", CodeHasBookings, err)
	}
	if _, ok := repo.locations[1]; !ok {
		t.Fatal("location must remain when deletion is blocked")
	}
}

func TestDeleteLocationWithoutBookings(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)

	uc := NewDeleteLocation(repo, nopAudit())

	if err := uc.Execute(context.Background(), 7, 1); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if _, ok := repo.locations[1]; ok {
		t.Fatal("expected location removed")
	}
}

func TestDeleteLocationOwnershipAndExistence(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)
	uc := NewDeleteLocation(repo, nopAudit())

	if err := uc.Execute(context.Background(), 99, 1); !httperr.IsBusiness(err, CodeForbidden) {
		t.Fatalf("expected %s, got %v", CodeForbidden, err)
	}
	if err := uc.Execute(context.Background(), 7, 42); !httperr.IsBusiness(err, CodeNotFound) {
		t.Fatalf("expected %s, got %v", CodeNotFound, err)
	}
}
