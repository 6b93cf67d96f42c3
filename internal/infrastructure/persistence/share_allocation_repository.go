package persistence

import (
	"context"
	"errors"

	"github.com/companies-office/backend/internal/domain/capital"
	"github.com/companies-office/backend/internal/domain/shared"
	"github.com/companies-office/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormShareAllocationRepository implements capital.ShareAllocationRepository using GORM
type GormShareAllocationRepository struct {
	db *gorm.DB
}

// NewGormShareAllocationRepository creates a new GormShareAllocationRepository
func NewGormShareAllocationRepository(db *gorm.DB) *GormShareAllocationRepository {
	return &GormShareAllocationRepository{db: db}
}

// FindByID finds an allocation by its ID
func (r *GormShareAllocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*capital.ShareAllocation, error) {
	var model models.ShareAllocationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCompany returns all allocations of a company regardless of status
func (r *GormShareAllocationRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]*capital.ShareAllocation, error) {
	return r.findAll(ctx, r.db.WithContext(ctx).
		Where("company_id = ?", companyID))
}

// FindActiveByCompany returns the live ledger of a company
func (r *GormShareAllocationRepository) FindActiveByCompany(ctx context.Context, companyID uuid.UUID) ([]*capital.ShareAllocation, error) {
	return r.findAll(ctx, r.db.WithContext(ctx).
		Where("company_id = ? AND status = ?", companyID, capital.AllocationStatusActive))
}

// FindActiveByShareholder returns a shareholder's live holdings in a company
func (r *GormShareAllocationRepository) FindActiveByShareholder(ctx context.Context, companyID, shareholderID uuid.UUID) ([]*capital.ShareAllocation, error) {
	return r.findAll(ctx, r.db.WithContext(ctx).
		Where("company_id = ? AND shareholder_id = ? AND status = ?",
			companyID, shareholderID, capital.AllocationStatusActive))
}

// FindActiveByCompanyAndClass returns live allocations of one class
func (r *GormShareAllocationRepository) FindActiveByCompanyAndClass(ctx context.Context, companyID uuid.UUID, shareClass string) ([]*capital.ShareAllocation, error) {
	return r.findAll(ctx, r.db.WithContext(ctx).
		Where("company_id = ? AND share_class = ? AND status = ?",
			companyID, shareClass, capital.AllocationStatusActive))
}

func (r *GormShareAllocationRepository) findAll(_ context.Context, query *gorm.DB) ([]*capital.ShareAllocation, error) {
	var allocationModels []models.ShareAllocationModel
	if err := query.Order("allocation_date ASC, created_at ASC").
		Find(&allocationModels).Error; err != nil {
		return nil, err
	}
	allocations := make([]*capital.ShareAllocation, len(allocationModels))
	for i := range allocationModels {
		allocations[i] = allocationModels[i].ToDomain()
	}
	return allocations, nil
}

// Save creates or updates an allocation
func (r *GormShareAllocationRepository) Save(ctx context.Context, allocation *capital.ShareAllocation) error {
	model := models.ShareAllocationModelFromDomain(allocation)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock updates an allocation only if the stored version matches the
// expected one
func (r *GormShareAllocationRepository) SaveWithLock(ctx context.Context, allocation *capital.ShareAllocation, expectedVersion int) error {
	return saveAllocationWithLock(r.db.WithContext(ctx), allocation, expectedVersion)
}

func saveAllocationWithLock(db *gorm.DB, allocation *capital.ShareAllocation, expectedVersion int) error {
	model := models.ShareAllocationModelFromDomain(allocation)
	result := db.
		Model(model).
		Where("id = ? AND version = ?", allocation.ID, expectedVersion).
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

// Transfer persists the TRANSFERRED source and the recipient's new row in one
// transaction. The version check on the source serialises competing transfers
// of the same allocation; the loser sees a conflict and no recipient row.
func (r *GormShareAllocationRepository) Transfer(ctx context.Context, source *capital.ShareAllocation, sourceExpectedVersion int, recipient *capital.ShareAllocation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveAllocationWithLock(tx, source, sourceExpectedVersion); err != nil {
			return err
		}
		recipientModel := models.ShareAllocationModelFromDomain(recipient)
		return tx.Create(recipientModel).Error
	})
}

// ExistsByClass checks whether any allocation, live or historical, references
// the class
func (r *GormShareAllocationRepository) ExistsByClass(ctx context.Context, companyID uuid.UUID, shareClass string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShareAllocationModel{}).
		Where("company_id = ? AND share_class = ?", companyID, shareClass).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsActiveByClass checks whether any live allocation references the class
func (r *GormShareAllocationRepository) ExistsActiveByClass(ctx context.Context, companyID uuid.UUID, shareClass string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShareAllocationModel{}).
		Where("company_id = ? AND share_class = ? AND status = ?",
			companyID, shareClass, capital.AllocationStatusActive).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SumActiveSharesByCompany returns the total number of shares on issue
func (r *GormShareAllocationRepository) SumActiveSharesByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShareAllocationModel{}).
		Where("company_id = ? AND status = ?", companyID, capital.AllocationStatusActive).
		Select("COALESCE(SUM(number_of_shares), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

type classTotalsRow struct {
	ShareClass      string
	AllocationCount int64
	TotalShares     int64
	TotalValue      decimal.Decimal
	TotalPaid       decimal.Decimal
}

// AggregateActiveByClass computes per-class totals over the live ledger
func (r *GormShareAllocationRepository) AggregateActiveByClass(ctx context.Context, companyID uuid.UUID) ([]capital.ClassTotals, error) {
	var rows []classTotalsRow
	if err := r.db.WithContext(ctx).
		Model(&models.ShareAllocationModel{}).
		Where("company_id = ? AND status = ?", companyID, capital.AllocationStatusActive).
		Select("share_class, COUNT(*) AS allocation_count, " +
			"COALESCE(SUM(number_of_shares), 0) AS total_shares, " +
			"COALESCE(SUM(number_of_shares * nominal_value), 0) AS total_value, " +
			"COALESCE(SUM(amount_paid), 0) AS total_paid").
		Group("share_class").
		Order("share_class ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]capital.ClassTotals, len(rows))
	for i, row := range rows {
		totals[i] = capital.ClassTotals{
			ShareClass:      row.ShareClass,
			AllocationCount: row.AllocationCount,
			TotalShares:     row.TotalShares,
			TotalValue:      row.TotalValue,
			TotalPaid:       row.TotalPaid,
		}
	}
	return totals, nil
}
