package persistence

import (
	"context"
	"errors"

	"github.com/companies-office/backend/internal/domain/capital"
	"github.com/companies-office/backend/internal/domain/shared"
	"github.com/companies-office/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormShareClassRepository implements capital.ShareClassRepository using GORM
type GormShareClassRepository struct {
	db *gorm.DB
}

// NewGormShareClassRepository creates a new GormShareClassRepository
func NewGormShareClassRepository(db *gorm.DB) *GormShareClassRepository {
	return &GormShareClassRepository{db: db}
}

// FindByID finds a share class by its ID
func (r *GormShareClassRepository) FindByID(ctx context.Context, id uuid.UUID) (*capital.ShareClass, error) {
	var model models.ShareClassModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a share class by company and class code
func (r *GormShareClassRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*capital.ShareClass, error) {
	var model models.ShareClassModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND class_code = ?", companyID, code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllByCompany returns all share classes of a company
func (r *GormShareClassRepository) FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]*capital.ShareClass, error) {
	var classModels []models.ShareClassModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("class_code ASC").
		Find(&classModels).Error; err != nil {
		return nil, err
	}
	classes := make([]*capital.ShareClass, len(classModels))
	for i := range classModels {
		classes[i] = classModels[i].ToDomain()
	}
	return classes, nil
}

// ExistsByCode checks whether a class code is already in use for a company
func (r *GormShareClassRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShareClassModel{}).
		Where("company_id = ? AND class_code = ?", companyID, code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a share class
func (r *GormShareClassRepository) Save(ctx context.Context, class *capital.ShareClass) error {
	model := models.ShareClassModelFromDomain(class)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock updates a share class only if the stored version matches the
// expected one. A zero-row update means another write got there first.
func (r *GormShareClassRepository) SaveWithLock(ctx context.Context, class *capital.ShareClass, expectedVersion int) error {
	model := models.ShareClassModelFromDomain(class)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", class.ID, expectedVersion).
		Select("*").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}
