package capital

import (
	"context"
	"testing"
	"time"

	"github.com/companies-office/backend/internal/domain/capital"
	"github.com/companies-office/backend/internal/domain/registry"
	"github.com/companies-office/backend/internal/domain/shared"
	"github.com/companies-office/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capTableFixture struct {
	companyRepo     *MockCompanyRepository
	shareholderRepo *MockShareholderRepository
	classRepo       *MockShareClassRepository
	allocationRepo  *MockShareAllocationRepository
	service         *CapTableService

	company     *registry.Company
	shareholder *registry.Shareholder
}

func newCapTableFixture(t *testing.T) *capTableFixture {
	f := &capTableFixture{
		companyRepo:     new(MockCompanyRepository),
		shareholderRepo: new(MockShareholderRepository),
		classRepo:       new(MockShareClassRepository),
		allocationRepo:  new(MockShareAllocationRepository),
	}
	f.service = NewCapTableService(f.companyRepo, f.shareholderRepo, f.classRepo, f.allocationRepo)

	addr, err := valueobject.NewAddress("1 Willis Street", "", "Wellington", "6011", "")
	require.NoError(t, err)
	f.company, err = registry.NewCompany("1234567", "Example Limited", time.Now(), addr)
	require.NoError(t, err)
	f.shareholder, err = registry.NewShareholder(f.company.ID, "Jordan Smith", false, addr)
	require.NoError(t, err)
	return f
}

func (f *capTableFixture) newClass(t *testing.T, code, name string) *capital.ShareClass {
	class, err := capital.NewShareClass(f.company.ID, capital.ShareClassSpec{
		ClassCode:           code,
		ClassName:           name,
		VotingRights:        capital.VotingOrdinary,
		VotesPerShare:       decimal.NewFromInt(1),
		DividendRights:      capital.DividendOrdinary,
		CapitalDistribution: capital.DistributionOrdinary,
		ParValue:            decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	return class
}

func (f *capTableFixture) newAllocation(t *testing.T, holderID uuid.UUID, class string, shares int64, paid int64) *capital.ShareAllocation {
	a, err := capital.NewShareAllocation(
		f.company.ID, holderID, class,
		shares, decimal.NewFromInt(1), decimal.NewFromInt(paid),
		time.Now(), "", "")
	require.NoError(t, err)
	return a
}

func TestCapTableService_Statistics(t *testing.T) {
	f := newCapTableFixture(t)
	ctx := context.Background()

	ord := f.newClass(t, "ORD", "Ordinary Shares")
	pref := f.newClass(t, "PREF-A", "Series A Preference Shares")

	f.companyRepo.On("FindByID", ctx, f.company.ID).Return(f.company, nil)
	f.classRepo.On("FindAllByCompany", ctx, f.company.ID).
		Return([]*capital.ShareClass{ord, pref}, nil)
	f.allocationRepo.On("AggregateActiveByClass", ctx, f.company.ID).
		Return([]capital.ClassTotals{
			{
				ShareClass:      "ORD",
				AllocationCount: 2,
				TotalShares:     1000,
				TotalValue:      decimal.NewFromInt(1000),
				TotalPaid:       decimal.NewFromInt(700),
			},
		}, nil)
	f.allocationRepo.On("FindActiveByCompany", ctx, f.company.ID).
		Return([]*capital.ShareAllocation{
			f.newAllocation(t, f.shareholder.ID, "ORD", 600, 600),
			f.newAllocation(t, f.shareholder.ID, "ORD", 400, 100),
		}, nil)

	stats, err := f.service.Statistics(ctx, f.company.ID)
	require.NoError(t, err)

	assert.Equal(t, f.company.CompanyNumber, stats.CompanyNumber)
	assert.Equal(t, int64(1000), stats.TotalShares)
	assert.True(t, stats.TotalValue.Amount().Equal(decimal.NewFromInt(1000)))
	assert.True(t, stats.TotalPaid.Amount().Equal(decimal.NewFromInt(700)))
	assert.Equal(t, valueobject.NZD, stats.TotalValue.Currency())
	// both allocations belong to the same holder
	assert.Equal(t, 1, stats.ShareholderCount)

	// PREF-A has nothing on issue but still appears, zero-filled
	require.Len(t, stats.Classes, 2)
	assert.Equal(t, "ORD", stats.Classes[0].ClassCode)
	assert.Equal(t, int64(2), stats.Classes[0].AllocationCount)
	assert.Equal(t, "PREF-A", stats.Classes[1].ClassCode)
	assert.Equal(t, int64(0), stats.Classes[1].TotalShares)
	assert.True(t, stats.Classes[1].TotalValue.IsZero())
}

func TestCapTableService_Statistics_CompanyNotFound(t *testing.T) {
	f := newCapTableFixture(t)
	ctx := context.Background()
	companyID := uuid.New()

	f.companyRepo.On("FindByID", ctx, companyID).Return(nil, shared.ErrNotFound)

	_, err := f.service.Statistics(ctx, companyID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCapTableService_Portfolio(t *testing.T) {
	f := newCapTableFixture(t)
	ctx := context.Background()

	f.shareholderRepo.On("FindByID", ctx, f.shareholder.ID).Return(f.shareholder, nil)
	f.allocationRepo.On("FindActiveByShareholder", ctx, f.company.ID, f.shareholder.ID).
		Return([]*capital.ShareAllocation{
			f.newAllocation(t, f.shareholder.ID, "ORD", 1000, 1000),
		}, nil)
	f.allocationRepo.On("SumActiveSharesByCompany", ctx, f.company.ID).Return(int64(3000), nil)

	portfolio, err := f.service.Portfolio(ctx, f.shareholder.ID)
	require.NoError(t, err)

	assert.Equal(t, "Jordan Smith", portfolio.ShareholderName)
	assert.Equal(t, int64(1000), portfolio.TotalShares)
	require.Len(t, portfolio.Holdings, 1)
	assert.Equal(t, "ORD", portfolio.Holdings[0].ShareClass)
	require.Len(t, portfolio.Holdings[0].Allocations, 1)
	assert.True(t, portfolio.Holdings[0].Allocations[0].FullyPaid)
	assert.True(t, portfolio.TotalUnpaid.IsZero())
	// 1000 of 3000 on issue, banker's rounding at 4dp
	assert.Equal(t, "33.3333", portfolio.OwnershipPercentage.String())
}

func TestCapTableService_Portfolio_GroupsByClass(t *testing.T) {
	f := newCapTableFixture(t)
	ctx := context.Background()

	f.shareholderRepo.On("FindByID", ctx, f.shareholder.ID).Return(f.shareholder, nil)
	f.allocationRepo.On("FindActiveByShareholder", ctx, f.company.ID, f.shareholder.ID).
		Return([]*capital.ShareAllocation{
			f.newAllocation(t, f.shareholder.ID, "ORD", 600, 600),
			f.newAllocation(t, f.shareholder.ID, "ORD", 400, 100),
			f.newAllocation(t, f.shareholder.ID, "PREF-A", 50, 50),
		}, nil)
	f.allocationRepo.On("SumActiveSharesByCompany", ctx, f.company.ID).Return(int64(1050), nil)

	portfolio, err := f.service.Portfolio(ctx, f.shareholder.ID)
	require.NoError(t, err)

	require.Len(t, portfolio.Holdings, 2)

	ord := portfolio.Holdings[0]
	assert.Equal(t, "ORD", ord.ShareClass)
	assert.Equal(t, 2, ord.AllocationCount)
	assert.Equal(t, int64(1000), ord.NumberOfShares)
	assert.True(t, ord.TotalValue.Amount().Equal(decimal.NewFromInt(1000)))
	assert.True(t, ord.AmountPaid.Amount().Equal(decimal.NewFromInt(700)))
	assert.True(t, ord.UnpaidAmount.Amount().Equal(decimal.NewFromInt(300)))
	require.Len(t, ord.Allocations, 2)
	assert.True(t, ord.Allocations[0].FullyPaid)
	assert.False(t, ord.Allocations[1].FullyPaid)

	pref := portfolio.Holdings[1]
	assert.Equal(t, "PREF-A", pref.ShareClass)
	assert.Equal(t, 1, pref.AllocationCount)
	assert.Equal(t, int64(50), pref.NumberOfShares)
	assert.True(t, pref.UnpaidAmount.IsZero())

	assert.Equal(t, int64(1050), portfolio.TotalShares)
	assert.True(t, portfolio.TotalUnpaid.Amount().Equal(decimal.NewFromInt(300)))
	assert.True(t, portfolio.OwnershipPercentage.Equal(decimal.NewFromInt(100)))
}

func TestCapTableService_Portfolio_NothingOnIssue(t *testing.T) {
	f := newCapTableFixture(t)
	ctx := context.Background()

	f.shareholderRepo.On("FindByID", ctx, f.shareholder.ID).Return(f.shareholder, nil)
	f.allocationRepo.On("FindActiveByShareholder", ctx, f.company.ID, f.shareholder.ID).
		Return([]*capital.ShareAllocation{}, nil)
	f.allocationRepo.On("SumActiveSharesByCompany", ctx, f.company.ID).Return(int64(0), nil)

	portfolio, err := f.service.Portfolio(ctx, f.shareholder.ID)
	require.NoError(t, err)
	assert.True(t, portfolio.OwnershipPercentage.IsZero())
	assert.Empty(t, portfolio.Holdings)
}

func TestCapTableService_Portfolio_UnknownShareholder(t *testing.T) {
	f := newCapTableFixture(t)
	ctx := context.Background()
	id := uuid.New()

	f.shareholderRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, err := f.service.Portfolio(ctx, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
