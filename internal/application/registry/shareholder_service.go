package registry

import (
	"context"
	"fmt"

	"github.com/companies-office/backend/internal/domain/registry"
	"github.com/companies-office/backend/internal/domain/shared"
	"github.com/companies-office/backend/internal/domain/shared/valueobject"
	"github.com/companies-office/backend/internal/infrastructure/audit"
	"github.com/google/uuid"
)

// ShareholderService handles shareholder directory use cases
type ShareholderService struct {
	companyRepo     registry.CompanyRepository
	shareholderRepo registry.ShareholderRepository
	auditSink       audit.Sink
}

// NewShareholderService creates a new ShareholderService
func NewShareholderService(
	companyRepo registry.CompanyRepository,
	shareholderRepo registry.ShareholderRepository,
	auditSink audit.Sink,
) *ShareholderService {
	return &ShareholderService{
		companyRepo:     companyRepo,
		shareholderRepo: shareholderRepo,
		auditSink:       auditSink,
	}
}

// AddShareholderRequest carries the inputs for adding a shareholder
type AddShareholderRequest struct {
	CompanyID   uuid.UUID
	FullName    string
	IsCorporate bool
	Address     valueobject.Address
}

// AddShareholder records a new shareholder against a company
func (s *ShareholderService) AddShareholder(ctx context.Context, req AddShareholderRequest) (*registry.Shareholder, error) {
	company, err := s.companyRepo.FindByID(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if !company.IsActive() {
		return nil, shared.NewBusinessRuleError("Cannot add a shareholder to a company removed from the register")
	}

	shareholder, err := registry.NewShareholder(req.CompanyID, req.FullName, req.IsCorporate, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.shareholderRepo.Save(ctx, shareholder); err != nil {
		return nil, fmt.Errorf("failed to save shareholder: %w", err)
	}

	s.auditSink.Record(ctx, audit.Entry{
		Actor:      audit.ActorFromContext(ctx),
		Action:     "shareholder.add",
		Resource:   "shareholder",
		ResourceID: shareholder.ID,
		Detail:     fmt.Sprintf("company=%s name=%s", company.CompanyNumber, shareholder.FullName),
	})
	return shareholder, nil
}

// GetShareholderByID returns a shareholder by ID
func (s *ShareholderService) GetShareholderByID(ctx context.Context, shareholderID uuid.UUID) (*registry.Shareholder, error) {
	return s.shareholderRepo.FindByID(ctx, shareholderID)
}

// GetShareholder returns a shareholder by ID, scoped to the company
func (s *ShareholderService) GetShareholder(ctx context.Context, companyID, shareholderID uuid.UUID) (*registry.Shareholder, error) {
	shareholder, err := s.shareholderRepo.FindByID(ctx, shareholderID)
	if err != nil {
		return nil, err
	}
	if !shareholder.BelongsTo(companyID) {
		return nil, shared.ErrNotFound
	}
	return shareholder, nil
}

// ListShareholders returns all shareholders of a company
func (s *ShareholderService) ListShareholders(ctx context.Context, companyID uuid.UUID) ([]registry.Shareholder, error) {
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.shareholderRepo.FindByCompany(ctx, companyID)
}

// UpdateShareholderAddress changes a shareholder's recorded address
func (s *ShareholderService) UpdateShareholderAddress(ctx context.Context, companyID, shareholderID uuid.UUID, address valueobject.Address) (*registry.Shareholder, error) {
	shareholder, err := s.GetShareholder(ctx, companyID, shareholderID)
	if err != nil {
		return nil, err
	}

	shareholder.UpdateAddress(address)
	if err := s.shareholderRepo.Save(ctx, shareholder); err != nil {
		return nil, fmt.Errorf("failed to save shareholder: %w", err)
	}

	s.auditSink.Record(ctx, audit.Entry{
		Actor:      audit.ActorFromContext(ctx),
		Action:     "shareholder.update_address",
		Resource:   "shareholder",
		ResourceID: shareholder.ID,
		Detail:     address.String(),
	})
	return shareholder, nil
}
