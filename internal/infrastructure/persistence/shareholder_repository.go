package persistence

import (
	"context"
	"errors"

	"github.com/companies-office/backend/internal/domain/registry"
	"github.com/companies-office/backend/internal/domain/shared"
	"github.com/companies-office/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormShareholderRepository implements registry.ShareholderRepository using GORM
type GormShareholderRepository struct {
	db *gorm.DB
}

// NewGormShareholderRepository creates a new GormShareholderRepository
func NewGormShareholderRepository(db *gorm.DB) *GormShareholderRepository {
	return &GormShareholderRepository{db: db}
}

// FindByID finds a shareholder by its ID
func (r *GormShareholderRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Shareholder, error) {
	var model models.ShareholderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCompany returns all shareholders registered against a company
func (r *GormShareholderRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]registry.Shareholder, error) {
	var shareholderModels []models.ShareholderModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("full_name ASC").
		Find(&shareholderModels).Error; err != nil {
		return nil, err
	}
	shareholders := make([]registry.Shareholder, len(shareholderModels))
	for i, model := range shareholderModels {
		shareholders[i] = *model.ToDomain()
	}
	return shareholders, nil
}

// Save creates or updates a shareholder
func (r *GormShareholderRepository) Save(ctx context.Context, shareholder *registry.Shareholder) error {
	model := models.ShareholderModelFromDomain(shareholder)
	return r.db.WithContext(ctx).Save(model).Error
}
