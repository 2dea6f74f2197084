package location

import (
	"context"

	domain "github.com/Tech-Care-Rwanda/tech-care-sub001/internal/domain/location"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/models"
)

type ListLocations struct {
	repo domain.Repository
}

func NewListLocations(repo domain.Repository) *ListLocations {
	return &ListLocations{repo: repo}
}

func (uc *ListLocations) Execute(
	ctx context.Context,
	customerID uint,
) ([]models.Location, error) {
	return uc.repo.ListByCustomer(ctx, customerID)
}
