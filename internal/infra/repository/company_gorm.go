package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// CompanyGormRepository reads companies by owner. Companies are the tenant
// root, so they are scoped by user rather than by active company.
type CompanyGormRepository struct {
	db *gorm.DB
}

func NewCompanyGormRepository(db *gorm.DB) *CompanyGormRepository {
	return &CompanyGormRepository{db: db}
}

func (r *CompanyGormRepository) FindOwned(
	ctx context.Context,
	companyID uint,
	userID uint,
) (*models.Company, error) {

	var company models.Company
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", companyID, userID).
		Take(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyGormRepository) ListByUser(
	ctx context.Context,
	userID uint,
) ([]models.Company, error) {

	var companies []models.Company
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("trade_name ASC").
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompanyGormRepository) Create(
	ctx context.Context,
	company *models.Company,
) error {
	return r.db.WithContext(ctx).Omit("User").Create(company).Error
}

func (r *CompanyGormRepository) UpdateImage(
	ctx context.Context,
	companyID uint,
	key string,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Company{}).
		Where("id = ?", companyID).
		Update("image_key", key)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

// FindByID loads a company without an owner check. Only operator tooling
// uses it.
func (r *CompanyGormRepository) FindByID(
	ctx context.Context,
	companyID uint,
) (*models.Company, error) {

	var company models.Company
	err := r.db.WithContext(ctx).Take(&company, companyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}
