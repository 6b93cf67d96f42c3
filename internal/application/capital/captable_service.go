package capital

import (
	"context"

	"github.com/companies-office/backend/internal/domain/capital"
	"github.com/companies-office/backend/internal/domain/registry"
	"github.com/companies-office/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CapTableService computes aggregate views over the live ledger
type CapTableService struct {
	companyRepo     registry.CompanyRepository
	shareholderRepo registry.ShareholderRepository
	classRepo       capital.ShareClassRepository
	allocationRepo  capital.ShareAllocationRepository
}

// NewCapTableService creates a new CapTableService
func NewCapTableService(
	companyRepo registry.CompanyRepository,
	shareholderRepo registry.ShareholderRepository,
	classRepo capital.ShareClassRepository,
	allocationRepo capital.ShareAllocationRepository,
) *CapTableService {
	return &CapTableService{
		companyRepo:     companyRepo,
		shareholderRepo: shareholderRepo,
		classRepo:       classRepo,
		allocationRepo:  allocationRepo,
	}
}

// ClassStatistics is the aggregate position of one share class
type ClassStatistics struct {
	ClassCode       string            `json:"class_code"`
	ClassName       string            `json:"class_name"`
	Active          bool              `json:"active"`
	AllocationCount int64             `json:"allocation_count"`
	TotalShares     int64             `json:"total_shares"`
	TotalValue      valueobject.Money `json:"total_value"`
	TotalPaid       valueobject.Money `json:"total_paid"`
}

// CompanyStatistics is the aggregate position of a company's capital
type CompanyStatistics struct {
	CompanyID        uuid.UUID         `json:"company_id"`
	CompanyNumber    string            `json:"company_number"`
	TotalShares      int64             `json:"total_shares"`
	TotalValue       valueobject.Money `json:"total_value"`
	TotalPaid        valueobject.Money `json:"total_paid"`
	ShareholderCount int               `json:"shareholder_count"`
	Classes          []ClassStatistics `json:"classes"`
}

// Statistics aggregates the live ledger per share class. Every registered
// class appears in the result, zero-filled when nothing is on issue.
func (s *CapTableService) Statistics(ctx context.Context, companyID uuid.UUID) (*CompanyStatistics, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	classes, err := s.classRepo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	totals, err := s.allocationRepo.AggregateActiveByClass(ctx, companyID)
	if err != nil {
		return nil, err
	}
	totalsByClass := make(map[string]capital.ClassTotals, len(totals))
	for _, t := range totals {
		totalsByClass[t.ShareClass] = t
	}

	holders := make(map[uuid.UUID]struct{})
	active, err := s.allocationRepo.FindActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for _, a := range active {
		holders[a.ShareholderID] = struct{}{}
	}

	stats := &CompanyStatistics{
		CompanyID:        company.ID,
		CompanyNumber:    company.CompanyNumber,
		TotalValue:       valueobject.ZeroNZD(),
		TotalPaid:        valueobject.ZeroNZD(),
		ShareholderCount: len(holders),
		Classes:          make([]ClassStatistics, 0, len(classes)),
	}

	for _, class := range classes {
		row := ClassStatistics{
			ClassCode:  class.ClassCode,
			ClassName:  class.ClassName,
			Active:     class.Active,
			TotalValue: valueobject.ZeroNZD(),
			TotalPaid:  valueobject.ZeroNZD(),
		}
		if t, ok := totalsByClass[class.ClassCode]; ok {
			row.AllocationCount = t.AllocationCount
			row.TotalShares = t.TotalShares
			row.TotalValue = valueobject.NewMoneyNZD(t.TotalValue)
			row.TotalPaid = valueobject.NewMoneyNZD(t.TotalPaid)
		}
		stats.TotalShares += row.TotalShares
		stats.TotalValue, err = stats.TotalValue.Add(row.TotalValue)
		if err != nil {
			return nil, err
		}
		stats.TotalPaid, err = stats.TotalPaid.Add(row.TotalPaid)
		if err != nil {
			return nil, err
		}
		stats.Classes = append(stats.Classes, row)
	}

	return stats, nil
}

// PortfolioAllocation is one live allocation backing a holding
type PortfolioAllocation struct {
	AllocationID   uuid.UUID       `json:"allocation_id"`
	NumberOfShares int64           `json:"number_of_shares"`
	NominalValue   decimal.Decimal `json:"nominal_value"`
	FullyPaid      bool            `json:"is_fully_paid"`
}

// PortfolioHolding is a shareholder's aggregate position in one share class,
// summed over every live allocation of that class
type PortfolioHolding struct {
	ShareClass      string                `json:"share_class"`
	AllocationCount int                   `json:"allocation_count"`
	NumberOfShares  int64                 `json:"number_of_shares"`
	TotalValue      valueobject.Money     `json:"total_value"`
	AmountPaid      valueobject.Money     `json:"amount_paid"`
	UnpaidAmount    valueobject.Money     `json:"unpaid_amount"`
	Allocations     []PortfolioAllocation `json:"allocations"`
}

// Portfolio is a shareholder's aggregate position in one company
type Portfolio struct {
	CompanyID           uuid.UUID          `json:"company_id"`
	ShareholderID       uuid.UUID          `json:"shareholder_id"`
	ShareholderName     string             `json:"shareholder_name"`
	Holdings            []PortfolioHolding `json:"holdings"`
	TotalShares         int64              `json:"total_shares"`
	TotalValue          valueobject.Money  `json:"total_value"`
	TotalUnpaid         valueobject.Money  `json:"total_unpaid"`
	OwnershipPercentage decimal.Decimal    `json:"ownership_percentage"`
}

// Portfolio computes a shareholder's live holdings and their share of the
// total on issue, as a percentage rounded to 4 decimal places with banker's
// rounding.
func (s *CapTableService) Portfolio(ctx context.Context, shareholderID uuid.UUID) (*Portfolio, error) {
	shareholder, err := s.shareholderRepo.FindByID(ctx, shareholderID)
	if err != nil {
		return nil, err
	}
	companyID := shareholder.CompanyID

	allocations, err := s.allocationRepo.FindActiveByShareholder(ctx, companyID, shareholderID)
	if err != nil {
		return nil, err
	}
	totalOnIssue, err := s.allocationRepo.SumActiveSharesByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	portfolio := &Portfolio{
		CompanyID:       companyID,
		ShareholderID:   shareholderID,
		ShareholderName: shareholder.FullName,
		Holdings:        make([]PortfolioHolding, 0, len(allocations)),
		TotalValue:      valueobject.ZeroNZD(),
		TotalUnpaid:     valueobject.ZeroNZD(),
	}

	holdingIdx := make(map[string]int)
	for _, a := range allocations {
		idx, ok := holdingIdx[a.ShareClass]
		if !ok {
			portfolio.Holdings = append(portfolio.Holdings, PortfolioHolding{
				ShareClass:   a.ShareClass,
				TotalValue:   valueobject.ZeroNZD(),
				AmountPaid:   valueobject.ZeroNZD(),
				UnpaidAmount: valueobject.ZeroNZD(),
			})
			idx = len(portfolio.Holdings) - 1
			holdingIdx[a.ShareClass] = idx
		}

		value := valueobject.NewMoneyNZD(a.TotalValue())
		unpaid := valueobject.NewMoneyNZD(a.UnpaidAmount())

		h := &portfolio.Holdings[idx]
		h.AllocationCount++
		h.NumberOfShares += a.NumberOfShares
		if h.TotalValue, err = h.TotalValue.Add(value); err != nil {
			return nil, err
		}
		if h.AmountPaid, err = h.AmountPaid.Add(valueobject.NewMoneyNZD(a.AmountPaid)); err != nil {
			return nil, err
		}
		if h.UnpaidAmount, err = h.UnpaidAmount.Add(unpaid); err != nil {
			return nil, err
		}
		h.Allocations = append(h.Allocations, PortfolioAllocation{
			AllocationID:   a.ID,
			NumberOfShares: a.NumberOfShares,
			NominalValue:   a.NominalValue,
			FullyPaid:      a.FullyPaid,
		})

		portfolio.TotalShares += a.NumberOfShares
		if portfolio.TotalValue, err = portfolio.TotalValue.Add(value); err != nil {
			return nil, err
		}
		if portfolio.TotalUnpaid, err = portfolio.TotalUnpaid.Add(unpaid); err != nil {
			return nil, err
		}
	}

	if totalOnIssue > 0 {
		portfolio.OwnershipPercentage = decimal.NewFromInt(portfolio.TotalShares).
			Div(decimal.NewFromInt(totalOnIssue)).
			Mul(decimal.NewFromInt(100)).
			RoundBank(4)
	} else {
		portfolio.OwnershipPercentage = decimal.Zero
	}

	return portfolio, nil
}
