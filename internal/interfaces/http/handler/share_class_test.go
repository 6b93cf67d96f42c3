package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	capitalapp "github.com/companies-office/backend/internal/application/capital"
	"github.com/companies-office/backend/internal/domain/capital"
	"github.com/companies-office/backend/internal/domain/registry"
	"github.com/companies-office/backend/internal/domain/shared/valueobject"
	"github.com/companies-office/backend/internal/infrastructure/audit"
	"github.com/companies-office/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shareClassHandlerFixture struct {
	handler         *ShareClassHandler
	companyRepo     *mockCompanyRepository
	shareholderRepo *mockShareholderRepository
	classRepo       *mockShareClassRepository
	allocationRepo  *mockShareAllocationRepository

	company     *registry.Company
	shareholder *registry.Shareholder
}

func setupShareClassHandler(t *testing.T) *shareClassHandlerFixture {
	gin.SetMode(gin.TestMode)

	f := &shareClassHandlerFixture{
		companyRepo:     newMockCompanyRepository(),
		shareholderRepo: newMockShareholderRepository(),
		classRepo:       newMockShareClassRepository(),
		allocationRepo:  newMockShareAllocationRepository(),
	}

	sink := audit.NewRecordingSink()
	classService := capitalapp.NewShareClassService(
		f.companyRepo, f.classRepo, f.allocationRepo, sink)
	capTableService := capitalapp.NewCapTableService(
		f.companyRepo, f.shareholderRepo, f.classRepo, f.allocationRepo)
	f.handler = NewShareClassHandler(classService, capTableService, func(c *gin.Context) { c.Next() })

	addr, err := valueobject.NewAddress("1 Willis Street", "", "Wellington", "6011", "")
	require.NoError(t, err)
	f.company, err = registry.NewCompany("1234567", "Example Limited", time.Now(), addr)
	require.NoError(t, err)
	f.companyRepo.companies[f.company.ID] = f.company

	f.shareholder, err = registry.NewShareholder(f.company.ID, "Jordan Smith", false, addr)
	require.NoError(t, err)
	f.shareholderRepo.shareholders[f.shareholder.ID] = f.shareholder

	class, err := capital.NewShareClass(f.company.ID, capital.ShareClassSpec{
		ClassCode:           "ORD",
		ClassName:           "Ordinary Shares",
		VotingRights:        capital.VotingOrdinary,
		VotesPerShare:       decimal.NewFromInt(1),
		DividendRights:      capital.DividendOrdinary,
		CapitalDistribution: capital.DistributionOrdinary,
		ParValue:            decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	require.NoError(t, f.classRepo.Save(context.Background(), class))

	return f
}

func (f *shareClassHandlerFixture) seedAllocation(t *testing.T, shares int64, paid int64) {
	a, err := capital.NewShareAllocation(
		f.company.ID, f.shareholder.ID, "ORD",
		shares, decimal.NewFromInt(1), decimal.NewFromInt(paid),
		time.Now(), "", "")
	require.NoError(t, err)
	require.NoError(t, f.allocationRepo.Save(context.Background(), a))
}

func TestShareClassHandler_List(t *testing.T) {
	f := setupShareClassHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/companies/"+f.company.ID.String()+"/share-classes", nil)
	c.Params = gin.Params{{Key: "id", Value: f.company.ID.String()}}

	f.handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var classes []*capital.ShareClass
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &classes))
	require.Len(t, classes, 1)
	assert.Equal(t, "ORD", classes[0].ClassCode)
}

func TestShareClassHandler_Statistics(t *testing.T) {
	f := setupShareClassHandler(t)
	f.seedAllocation(t, 600, 600)
	f.seedAllocation(t, 400, 100)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/companies/"+f.company.ID.String()+"/share-classes/statistics", nil)
	c.Params = gin.Params{{Key: "id", Value: f.company.ID.String()}}

	f.handler.Statistics(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats capitalapp.CompanyStatistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, f.company.ID, stats.CompanyID)
	assert.Equal(t, int64(1000), stats.TotalShares)
	require.Len(t, stats.Classes, 1)
	assert.Equal(t, "ORD", stats.Classes[0].ClassCode)
}

func TestShareClassHandler_Statistics_BadID(t *testing.T) {
	f := setupShareClassHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/companies/not-a-uuid/share-classes/statistics", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	f.handler.Statistics(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "BAD_REQUEST", resp.Error)
}
