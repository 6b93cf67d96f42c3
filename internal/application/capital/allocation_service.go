package capital

import (
	"context"
	"fmt"
	"time"

	"github.com/companies-office/backend/internal/domain/capital"
	"github.com/companies-office/backend/internal/domain/registry"
	"github.com/companies-office/backend/internal/domain/shared"
	"github.com/companies-office/backend/internal/infrastructure/audit"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationService handles the share allocation ledger use cases
type AllocationService struct {
	companyRepo     registry.CompanyRepository
	shareholderRepo registry.ShareholderRepository
	classRepo       capital.ShareClassRepository
	allocationRepo  capital.ShareAllocationRepository
	auditSink       audit.Sink
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(
	companyRepo registry.CompanyRepository,
	shareholderRepo registry.ShareholderRepository,
	classRepo capital.ShareClassRepository,
	allocationRepo capital.ShareAllocationRepository,
	auditSink audit.Sink,
) *AllocationService {
	return &AllocationService{
		companyRepo:     companyRepo,
		shareholderRepo: shareholderRepo,
		classRepo:       classRepo,
		allocationRepo:  allocationRepo,
		auditSink:       auditSink,
	}
}

// AllocateSharesRequest carries the inputs for issuing shares
type AllocateSharesRequest struct {
	CompanyID         uuid.UUID
	ShareholderID     uuid.UUID
	ShareClass        string
	NumberOfShares    int64
	NominalValue      decimal.Decimal
	AmountPaid        decimal.Decimal
	AllocationDate    time.Time
	CertificateNumber string
	Restrictions      string
}

// AllocateShares issues new shares to a shareholder
func (s *AllocationService) AllocateShares(ctx context.Context, req AllocateSharesRequest) (*capital.ShareAllocation, error) {
	company, err := s.companyRepo.FindByID(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if !company.IsActive() {
		return nil, shared.NewBusinessRuleError("Cannot allocate shares for a company removed from the register")
	}

	shareholder, err := s.shareholderRepo.FindByID(ctx, req.ShareholderID)
	if err != nil {
		return nil, err
	}
	if !shareholder.BelongsTo(req.CompanyID) {
		return nil, shared.NewBusinessRuleError("Shareholder is not registered against this company")
	}

	class, err := s.classRepo.FindByCode(ctx, req.CompanyID, req.ShareClass)
	if err != nil {
		return nil, err
	}
	if !class.Active {
		return nil, shared.NewBusinessRuleError(
			fmt.Sprintf("Share class %s is deactivated and cannot be allocated", class.ClassCode))
	}

	allocation, err := capital.NewShareAllocation(
		req.CompanyID, req.ShareholderID, req.ShareClass,
		req.NumberOfShares, req.NominalValue, req.AmountPaid,
		req.AllocationDate, req.CertificateNumber, req.Restrictions)
	if err != nil {
		return nil, err
	}

	if err := s.allocationRepo.Save(ctx, allocation); err != nil {
		return nil, fmt.Errorf("failed to save allocation: %w", err)
	}

	s.auditSink.Record(ctx, audit.Entry{
		Actor:      audit.ActorFromContext(ctx),
		Action:     "allocation.issue",
		Resource:   "share_allocation",
		ResourceID: allocation.ID,
		Detail: fmt.Sprintf("company=%s holder=%s class=%s shares=%d",
			company.CompanyNumber, shareholder.FullName, allocation.ShareClass, allocation.NumberOfShares),
	})
	return allocation, nil
}

// GetAllocation returns an allocation by ID
func (s *AllocationService) GetAllocation(ctx context.Context, allocationID uuid.UUID) (*capital.ShareAllocation, error) {
	return s.allocationRepo.FindByID(ctx, allocationID)
}

// ListAllocations returns a company's allocations, live only or full history
func (s *AllocationService) ListAllocations(ctx context.Context, companyID uuid.UUID, includeHistory bool) ([]*capital.ShareAllocation, error) {
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		return nil, err
	}
	if includeHistory {
		return s.allocationRepo.FindByCompany(ctx, companyID)
	}
	return s.allocationRepo.FindActiveByCompany(ctx, companyID)
}

// ListAllocationsByClass returns a company's live allocations of one class
func (s *AllocationService) ListAllocationsByClass(ctx context.Context, companyID uuid.UUID, classCode string) ([]*capital.ShareAllocation, error) {
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.allocationRepo.FindActiveByCompanyAndClass(ctx, companyID, classCode)
}

// ListAllocationsByShareholder returns a shareholder's live allocations
func (s *AllocationService) ListAllocationsByShareholder(ctx context.Context, shareholderID uuid.UUID) ([]*capital.ShareAllocation, error) {
	shareholder, err := s.shareholderRepo.FindByID(ctx, shareholderID)
	if err != nil {
		return nil, err
	}
	return s.allocationRepo.FindActiveByShareholder(ctx, shareholder.CompanyID, shareholderID)
}

// TransferSharesRequest carries the inputs for transferring an allocation
type TransferSharesRequest struct {
	AllocationID      uuid.UUID
	ToShareholderID   uuid.UUID
	TransferDate      time.Time
	CertificateNumber string
}

// TransferResult pairs the closed source allocation with the recipient's new
// one, plus any transfer restriction flagged by the share class.
type TransferResult struct {
	Source              *capital.ShareAllocation `json:"source"`
	Recipient           *capital.ShareAllocation `json:"recipient"`
	RestrictedTransfer  bool                     `json:"restricted_transfer"`
	RestrictionsApplied string                   `json:"restrictions_applied,omitempty"`
}

// TransferShares moves an allocation to a new holder. The source's version is
// checked on write, so two concurrent transfers of the same allocation cannot
// both succeed.
func (s *AllocationService) TransferShares(ctx context.Context, req TransferSharesRequest) (*TransferResult, error) {
	source, err := s.allocationRepo.FindByID(ctx, req.AllocationID)
	if err != nil {
		return nil, err
	}

	recipientHolder, err := s.shareholderRepo.FindByID(ctx, req.ToShareholderID)
	if err != nil {
		return nil, err
	}
	if !recipientHolder.BelongsTo(source.CompanyID) {
		return nil, shared.NewBusinessRuleError("Recipient shareholder is not registered against this company")
	}

	class, err := s.classRepo.FindByCode(ctx, source.CompanyID, source.ShareClass)
	if err != nil {
		return nil, err
	}

	expectedVersion := source.Version
	recipient, err := source.TransferTo(req.ToShareholderID, req.TransferDate, req.CertificateNumber)
	if err != nil {
		return nil, err
	}

	if err := s.allocationRepo.Transfer(ctx, source, expectedVersion, recipient); err != nil {
		return nil, err
	}

	s.auditSink.Record(ctx, audit.Entry{
		Actor:      audit.ActorFromContext(ctx),
		Action:     "allocation.transfer",
		Resource:   "share_allocation",
		ResourceID: source.ID,
		Detail: fmt.Sprintf("to=%s recipient_allocation=%s shares=%d",
			recipientHolder.FullName, recipient.ID, recipient.NumberOfShares),
	})

	return &TransferResult{
		Source:              source,
		Recipient:           recipient,
		RestrictedTransfer:  class.RestrictsTransfer(),
		RestrictionsApplied: class.TransferRestrictions,
	}, nil
}

// RecordPayment applies a further payment against an allocation
func (s *AllocationService) RecordPayment(ctx context.Context, allocationID uuid.UUID, amount decimal.Decimal) (*capital.ShareAllocation, error) {
	allocation, err := s.allocationRepo.FindByID(ctx, allocationID)
	if err != nil {
		return nil, err
	}

	expectedVersion := allocation.Version
	if err := allocation.ApplyPayment(amount); err != nil {
		return nil, err
	}
	if err := s.allocationRepo.SaveWithLock(ctx, allocation, expectedVersion); err != nil {
		return nil, err
	}

	s.auditSink.Record(ctx, audit.Entry{
		Actor:      audit.ActorFromContext(ctx),
		Action:     "allocation.payment",
		Resource:   "share_allocation",
		ResourceID: allocation.ID,
		Detail:     fmt.Sprintf("amount=%s paid=%s", amount.String(), allocation.AmountPaid.String()),
	})
	return allocation, nil
}

// CancelAllocation cancels a live allocation. The reason is recorded in the
// audit trail only, not on the ledger row.
func (s *AllocationService) CancelAllocation(ctx context.Context, allocationID uuid.UUID, reason string) (*capital.ShareAllocation, error) {
	allocation, err := s.allocationRepo.FindByID(ctx, allocationID)
	if err != nil {
		return nil, err
	}

	expectedVersion := allocation.Version
	if err := allocation.Cancel(); err != nil {
		return nil, err
	}
	if err := s.allocationRepo.SaveWithLock(ctx, allocation, expectedVersion); err != nil {
		return nil, err
	}

	s.auditSink.Record(ctx, audit.Entry{
		Actor:      audit.ActorFromContext(ctx),
		Action:     "allocation.cancel",
		Resource:   "share_allocation",
		ResourceID: allocation.ID,
		Detail:     fmt.Sprintf("reason: %s", reason),
	})
	return allocation, nil
}
