package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/companies-office/backend/internal/domain/registry"
	"github.com/companies-office/backend/internal/domain/shared"
	"github.com/companies-office/backend/internal/domain/shared/valueobject"
	"github.com/companies-office/backend/internal/infrastructure/audit"
	"github.com/google/uuid"
)

// CompanyService handles company registration use cases
type CompanyService struct {
	companyRepo registry.CompanyRepository
	auditSink   audit.Sink
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo registry.CompanyRepository, auditSink audit.Sink) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		auditSink:   auditSink,
	}
}

// RegisterCompanyRequest carries the inputs for registering a company
type RegisterCompanyRequest struct {
	CompanyNumber     string
	Name              string
	IncorporationDate time.Time
	RegisteredOffice  valueobject.Address
}

// RegisterCompany places a new company on the register
func (s *CompanyService) RegisterCompany(ctx context.Context, req RegisterCompanyRequest) (*registry.Company, error) {
	exists, err := s.companyRepo.ExistsByCompanyNumber(ctx, req.CompanyNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check company number: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError(shared.ErrCodeAlreadyExists,
			fmt.Sprintf("Company number %s is already registered", req.CompanyNumber))
	}

	company, err := registry.NewCompany(req.CompanyNumber, req.Name, req.IncorporationDate, req.RegisteredOffice)
	if err != nil {
		return nil, err
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	s.auditSink.Record(ctx, audit.Entry{
		Actor:      audit.ActorFromContext(ctx),
		Action:     "company.register",
		Resource:   "company",
		ResourceID: company.ID,
		Detail:     fmt.Sprintf("number=%s name=%s", company.CompanyNumber, company.Name),
	})
	return company, nil
}

// GetCompany returns a company by its ID
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*registry.Company, error) {
	return s.companyRepo.FindByID(ctx, id)
}

// GetCompanyByNumber returns a company by its register number
func (s *CompanyService) GetCompanyByNumber(ctx context.Context, companyNumber string) (*registry.Company, error) {
	return s.companyRepo.FindByCompanyNumber(ctx, companyNumber)
}

// ListCompanies returns all companies on the register
func (s *CompanyService) ListCompanies(ctx context.Context) ([]registry.Company, error) {
	return s.companyRepo.FindAll(ctx)
}

// RenameCompany changes a company's registered name
func (s *CompanyService) RenameCompany(ctx context.Context, id uuid.UUID, name string) (*registry.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !company.IsActive() {
		return nil, shared.NewBusinessRuleError("Cannot rename a company that has been removed from the register")
	}

	previous := company.Name
	if err := company.Rename(name); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	s.auditSink.Record(ctx, audit.Entry{
		Actor:      audit.ActorFromContext(ctx),
		Action:     "company.rename",
		Resource:   "company",
		ResourceID: company.ID,
		Detail:     fmt.Sprintf("from=%s to=%s", previous, company.Name),
	})
	return company, nil
}

// RemoveCompany strikes a company off the register. The allocation ledger is
// retained as history.
func (s *CompanyService) RemoveCompany(ctx context.Context, id uuid.UUID) (*registry.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := company.Remove(); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	s.auditSink.Record(ctx, audit.Entry{
		Actor:      audit.ActorFromContext(ctx),
		Action:     "company.remove",
		Resource:   "company",
		ResourceID: company.ID,
		Detail:     fmt.Sprintf("number=%s", company.CompanyNumber),
	})
	return company, nil
}
