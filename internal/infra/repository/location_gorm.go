package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/models"
)

type LocationGormRepository struct {
	db *gorm.DB
}

func NewLocationGormRepository(db *gorm.DB) *LocationGormRepository {
	return &LocationGormRepository{db: db}
}

func (r *LocationGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Location, error) {

	var loc models.Location
	if err := r.db.WithContext(ctx).First(&loc, id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *LocationGormRepository) ListByCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Location, error) {

	var locations []models.Location
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *LocationGormRepository) Create(
	ctx context.Context,
	loc *models.Location,
) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *LocationGormRepository) Update(
	ctx context.Context,
	loc *models.Location,
) error {
	return r.db.WithContext(ctx).Save(loc).Error
}

func (r *LocationGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Location{}, id).Error
}

func (r *LocationGormRepository) CountBookings(
	ctx context.Context,
	locationID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("location_id = ?", locationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
