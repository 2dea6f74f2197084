package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) FindAccountByID(
	ctx context.Context,
	id uint,
) (*models.Account, error) {

	var account models.Account
	if err := r.db.WithContext(ctx).
		Preload("TechnicianProfile").
		First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
