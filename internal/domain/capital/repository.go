package capital

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClassTotals is an aggregated row of the ACTIVE ledger for one share class
type ClassTotals struct {
	ShareClass      string
	AllocationCount int64
	TotalShares     int64
	TotalValue      decimal.Decimal
	TotalPaid       decimal.Decimal
}

// ShareClassRepository defines the persistence interface for share classes
type ShareClassRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ShareClass, error)
	FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*ShareClass, error)
	FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]*ShareClass, error)
	ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, class *ShareClass) error
	SaveWithLock(ctx context.Context, class *ShareClass, expectedVersion int) error
}

// ShareAllocationRepository defines the persistence interface for the
// allocation ledger. Transfer persists the source's TRANSFERRED state and the
// recipient's new row in one transaction, so a version conflict on the source
// leaves no orphan recipient.
type ShareAllocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ShareAllocation, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]*ShareAllocation, error)
	FindActiveByCompany(ctx context.Context, companyID uuid.UUID) ([]*ShareAllocation, error)
	FindActiveByShareholder(ctx context.Context, companyID, shareholderID uuid.UUID) ([]*ShareAllocation, error)
	FindActiveByCompanyAndClass(ctx context.Context, companyID uuid.UUID, shareClass string) ([]*ShareAllocation, error)
	Save(ctx context.Context, allocation *ShareAllocation) error
	SaveWithLock(ctx context.Context, allocation *ShareAllocation, expectedVersion int) error
	Transfer(ctx context.Context, source *ShareAllocation, sourceExpectedVersion int, recipient *ShareAllocation) error
	ExistsByClass(ctx context.Context, companyID uuid.UUID, shareClass string) (bool, error)
	ExistsActiveByClass(ctx context.Context, companyID uuid.UUID, shareClass string) (bool, error)
	SumActiveSharesByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
	AggregateActiveByClass(ctx context.Context, companyID uuid.UUID) ([]ClassTotals, error)
}
