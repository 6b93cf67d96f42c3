package registry

import (
	"context"

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
