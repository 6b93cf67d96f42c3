package registry

import (
	"context"
	"testing"
	"time"

	"github.com/companies-office/backend/internal/domain/registry"
	"github.com/companies-office/backend/internal/domain/shared"
	"github.com/companies-office/backend/internal/domain/shared/valueobject"
	"github.com/companies-office/backend/internal/infrastructure/audit"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testOfficeAddress(t *testing.T) valueobject.Address {
	addr, err := valueobject.NewAddress("1 Willis Street", "", "Wellington", "6011", "")
	require.NoError(t, err)
	return addr
}

func testCompany(t *testing.T) *registry.Company {
	company, err := registry.NewCompany("1234567", "Example Limited", time.Now(), testOfficeAddress(t))
	require.NoError(t, err)
	return company
}

func TestCompanyService_RegisterCompany(t *testing.T) {
	companyRepo := new(MockCompanyRepository)
	sink := audit.NewRecordingSink()
	service := NewCompanyService(companyRepo, sink)
	ctx := context.Background()

	companyRepo.On("ExistsByCompanyNumber", ctx, "1234567").Return(false, nil)
	companyRepo.On("Save", ctx, mock.AnythingOfType("*registry.Company")).Return(nil)

	company, err := service.RegisterCompany(ctx, RegisterCompanyRequest{
		CompanyNumber:    "1234567",
		Name:             "Example Limited",
		RegisteredOffice: testOfficeAddress(t),
	})
	require.NoError(t, err)
	assert.Equal(t, registry.CompanyStatusActive, company.Status)
	assert.Equal(t, 1, company.Version)

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "company.register", entries[0].Action)
	companyRepo.AssertExpectations(t)
}

func TestCompanyService_RegisterCompany_DuplicateNumber(t *testing.T) {
	companyRepo := new(MockCompanyRepository)
	service := NewCompanyService(companyRepo, audit.NewRecordingSink())
	ctx := context.Background()

	companyRepo.On("ExistsByCompanyNumber", ctx, "1234567").Return(true, nil)

	_, err := service.RegisterCompany(ctx, RegisterCompanyRequest{
		CompanyNumber:    "1234567",
		Name:             "Example Limited",
		RegisteredOffice: testOfficeAddress(t),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrCodeAlreadyExists, domainErr.Code)
	companyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCompanyService_RegisterCompany_InvalidNumber(t *testing.T) {
	companyRepo := new(MockCompanyRepository)
	service := NewCompanyService(companyRepo, audit.NewRecordingSink())
	ctx := context.Background()

	companyRepo.On("ExistsByCompanyNumber", ctx, "NOT-A-NUMBER").Return(false, nil)

	_, err := service.RegisterCompany(ctx, RegisterCompanyRequest{
		CompanyNumber:    "NOT-A-NUMBER",
		Name:             "Example Limited",
		RegisteredOffice: testOfficeAddress(t),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrCodeValidation, domainErr.Code)
}

func TestCompanyService_RenameCompany(t *testing.T) {
	companyRepo := new(MockCompanyRepository)
	sink := audit.NewRecordingSink()
	service := NewCompanyService(companyRepo, sink)
	ctx := context.Background()
	company := testCompany(t)

	companyRepo.On("FindByID", ctx, company.ID).Return(company, nil)
	companyRepo.On("Save", ctx, company).Return(nil)

	renamed, err := service.RenameCompany(ctx, company.ID, "Example Holdings Limited")
	require.NoError(t, err)
	assert.Equal(t, "Example Holdings Limited", renamed.Name)
	assert.Equal(t, 2, renamed.Version)

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Detail, "Example Limited")
	assert.Contains(t, entries[0].Detail, "Example Holdings Limited")
}

func TestCompanyService_RenameCompany_Removed(t *testing.T) {
	companyRepo := new(MockCompanyRepository)
	service := NewCompanyService(companyRepo, audit.NewRecordingSink())
	ctx := context.Background()
	company := testCompany(t)
	require.NoError(t, company.Remove())

	companyRepo.On("FindByID", ctx, company.ID).Return(company, nil)

	_, err := service.RenameCompany(ctx, company.ID, "New Name Limited")
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrCodeBusinessRule, domainErr.Code)
}

func TestCompanyService_RemoveCompany(t *testing.T) {
	companyRepo := new(MockCompanyRepository)
	sink := audit.NewRecordingSink()
	service := NewCompanyService(companyRepo, sink)
	ctx := context.Background()
	company := testCompany(t)

	companyRepo.On("FindByID", ctx, company.ID).Return(company, nil)
	companyRepo.On("Save", ctx, company).Return(nil)

	removed, err := service.RemoveCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, registry.CompanyStatusRemoved, removed.Status)
	assert.False(t, removed.IsActive())

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "company.remove", entries[0].Action)
}

func TestCompanyService_RemoveCompany_AlreadyRemoved(t *testing.T) {
	companyRepo := new(MockCompanyRepository)
	service := NewCompanyService(companyRepo, audit.NewRecordingSink())
	ctx := context.Background()
	company := testCompany(t)
	require.NoError(t, company.Remove())

	companyRepo.On("FindByID", ctx, company.ID).Return(company, nil)

	_, err := service.RemoveCompany(ctx, company.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrCodeBusinessRule, domainErr.Code)
	companyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCompanyService_GetCompany_NotFound(t *testing.T) {
	companyRepo := new(MockCompanyRepository)
	service := NewCompanyService(companyRepo, audit.NewRecordingSink())
	ctx := context.Background()
	id := uuid.New()

	companyRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, err := service.GetCompany(ctx, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
