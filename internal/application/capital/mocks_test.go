package capital

import (
	"context"

	"github.com/companies-office/backend/internal/domain/capital"
	"github.com/companies-office/backend/internal/domain/registry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByCompanyNumber(ctx context.Context, companyNumber string) (*registry.Company, error) {
	args := m.Called(ctx, companyNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context) ([]registry.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]registry.Company), args.Error(1)
}

func (m *MockCompanyRepository) ExistsByCompanyNumber(ctx context.Context, companyNumber string) (bool, error) {
	args := m.Called(ctx, companyNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *registry.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

type MockShareholderRepository struct {
	mock.Mock
}

func (m *MockShareholderRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Shareholder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Shareholder), args.Error(1)
}

func (m *MockShareholderRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]registry.Shareholder, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]registry.Shareholder), args.Error(1)
}

func (m *MockShareholderRepository) Save(ctx context.Context, shareholder *registry.Shareholder) error {
	args := m.Called(ctx, shareholder)
	return args.Error(0)
}

type MockShareClassRepository struct {
	mock.Mock
}

func (m *MockShareClassRepository) FindByID(ctx context.Context, id uuid.UUID) (*capital.ShareClass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capital.ShareClass), args.Error(1)
}

func (m *MockShareClassRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*capital.ShareClass, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capital.ShareClass), args.Error(1)
}

func (m *MockShareClassRepository) FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]*capital.ShareClass, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]*capital.ShareClass), args.Error(1)
}

func (m *MockShareClassRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, companyID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockShareClassRepository) Save(ctx context.Context, class *capital.ShareClass) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

func (m *MockShareClassRepository) SaveWithLock(ctx context.Context, class *capital.ShareClass, expectedVersion int) error {
	args := m.Called(ctx, class, expectedVersion)
	return args.Error(0)
}

type MockShareAllocationRepository struct {
	mock.Mock
}

func (m *MockShareAllocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*capital.ShareAllocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capital.ShareAllocation), args.Error(1)
}

func (m *MockShareAllocationRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]*capital.ShareAllocation, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]*capital.ShareAllocation), args.Error(1)
}

func (m *MockShareAllocationRepository) FindActiveByCompany(ctx context.Context, companyID uuid.UUID) ([]*capital.ShareAllocation, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]*capital.ShareAllocation), args.Error(1)
}

func (m *MockShareAllocationRepository) FindActiveByShareholder(ctx context.Context, companyID, shareholderID uuid.UUID) ([]*capital.ShareAllocation, error) {
	args := m.Called(ctx, companyID, shareholderID)
	return args.Get(0).([]*capital.ShareAllocation), args.Error(1)
}

func (m *MockShareAllocationRepository) FindActiveByCompanyAndClass(ctx context.Context, companyID uuid.UUID, shareClass string) ([]*capital.ShareAllocation, error) {
	args := m.Called(ctx, companyID, shareClass)
	return args.Get(0).([]*capital.ShareAllocation), args.Error(1)
}

func (m *MockShareAllocationRepository) Save(ctx context.Context, allocation *capital.ShareAllocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockShareAllocationRepository) SaveWithLock(ctx context.Context, allocation *capital.ShareAllocation, expectedVersion int) error {
	args := m.Called(ctx, allocation, expectedVersion)
	return args.Error(0)
}

func (m *MockShareAllocationRepository) Transfer(ctx context.Context, source *capital.ShareAllocation, sourceExpectedVersion int, recipient *capital.ShareAllocation) error {
	args := m.Called(ctx, source, sourceExpectedVersion, recipient)
	return args.Error(0)
}

func (m *MockShareAllocationRepository) ExistsByClass(ctx context.Context, companyID uuid.UUID, shareClass string) (bool, error) {
	args := m.Called(ctx, companyID, shareClass)
	return args.Bool(0), args.Error(1)
}

func (m *MockShareAllocationRepository) ExistsActiveByClass(ctx context.Context, companyID uuid.UUID, shareClass string) (bool, error) {
	args := m.Called(ctx, companyID, shareClass)
	return args.Bool(0), args.Error(1)
}

func (m *MockShareAllocationRepository) SumActiveSharesByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShareAllocationRepository) AggregateActiveByClass(ctx context.Context, companyID uuid.UUID) ([]capital.ClassTotals, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]capital.ClassTotals), args.Error(1)
}
