package capital

import (
	"context"
	"fmt"

	"github.com/companies-office/backend/internal/domain/capital"
	"github.com/companies-office/backend/internal/domain/registry"
	"github.com/companies-office/backend/internal/domain/shared"
	"github.com/companies-office/backend/internal/infrastructure/audit"
	"github.com/google/uuid"
)

// ShareClassService handles share class registry use cases
type ShareClassService struct {
	companyRepo    registry.CompanyRepository
	classRepo      capital.ShareClassRepository
	allocationRepo capital.ShareAllocationRepository
	auditSink      audit.Sink
}

// NewShareClassService creates a new ShareClassService
func NewShareClassService(
	companyRepo registry.CompanyRepository,
	classRepo capital.ShareClassRepository,
	allocationRepo capital.ShareAllocationRepository,
	auditSink audit.Sink,
) *ShareClassService {
	return &ShareClassService{
		companyRepo:    companyRepo,
		classRepo:      classRepo,
		allocationRepo: allocationRepo,
		auditSink:      auditSink,
	}
}

// CreateShareClass registers a new class of shares for a company
func (s *ShareClassService) CreateShareClass(ctx context.Context, companyID uuid.UUID, spec capital.ShareClassSpec) (*capital.ShareClass, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if !company.IsActive() {
		return nil, shared.NewBusinessRuleError("Cannot create a share class for a company removed from the register")
	}

	exists, err := s.classRepo.ExistsByCode(ctx, companyID, spec.ClassCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check class code: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError(shared.ErrCodeAlreadyExists,
			fmt.Sprintf("Share class %s already exists for this company", spec.ClassCode))
	}

	class, err := capital.NewShareClass(companyID, spec)
	if err != nil {
		return nil, err
	}

	if err := s.classRepo.Save(ctx, class); err != nil {
		return nil, fmt.Errorf("failed to save share class: %w", err)
	}

	s.auditSink.Record(ctx, audit.Entry{
		Actor:      audit.ActorFromContext(ctx),
		Action:     "share_class.create",
		Resource:   "share_class",
		ResourceID: class.ID,
		Detail:     fmt.Sprintf("company=%s code=%s", company.CompanyNumber, class.ClassCode),
	})
	return class, nil
}

// GetShareClass returns a class by company and code
func (s *ShareClassService) GetShareClass(ctx context.Context, companyID uuid.UUID, code string) (*capital.ShareClass, error) {
	return s.classRepo.FindByCode(ctx, companyID, code)
}

// ListShareClasses returns all classes of a company
func (s *ShareClassService) ListShareClasses(ctx context.Context, companyID uuid.UUID) ([]*capital.ShareClass, error) {
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.classRepo.FindAllByCompany(ctx, companyID)
}

// UpdateShareClass replaces the attributes of an existing class. The class
// code is frozen once any allocation, live or historical, references it.
func (s *ShareClassService) UpdateShareClass(ctx context.Context, companyID uuid.UUID, code string, spec capital.ShareClassSpec) (*capital.ShareClass, error) {
	class, err := s.classRepo.FindByCode(ctx, companyID, code)
	if err != nil {
		return nil, err
	}

	if spec.ClassCode != class.ClassCode {
		referenced, err := s.allocationRepo.ExistsByClass(ctx, companyID, class.ClassCode)
		if err != nil {
			return nil, fmt.Errorf("failed to check class references: %w", err)
		}
		if referenced {
			return nil, shared.NewBusinessRuleError(
				fmt.Sprintf("Cannot change code of class %s while allocations reference it", class.ClassCode))
		}
		exists, err := s.classRepo.ExistsByCode(ctx, companyID, spec.ClassCode)
		if err != nil {
			return nil, fmt.Errorf("failed to check class code: %w", err)
		}
		if exists {
			return nil, shared.NewDomainError(shared.ErrCodeAlreadyExists,
				fmt.Sprintf("Share class %s already exists for this company", spec.ClassCode))
		}
	}

	expectedVersion := class.Version
	if err := class.UpdateFromSpec(spec); err != nil {
		return nil, err
	}
	if err := s.classRepo.SaveWithLock(ctx, class, expectedVersion); err != nil {
		return nil, err
	}

	s.auditSink.Record(ctx, audit.Entry{
		Actor:      audit.ActorFromContext(ctx),
		Action:     "share_class.update",
		Resource:   "share_class",
		ResourceID: class.ID,
		Detail:     fmt.Sprintf("code=%s", class.ClassCode),
	})
	return class, nil
}

// DeactivateShareClass soft-deletes a class that no live allocation uses
func (s *ShareClassService) DeactivateShareClass(ctx context.Context, companyID uuid.UUID, code string) error {
	class, err := s.classRepo.FindByCode(ctx, companyID, code)
	if err != nil {
		return err
	}

	inUse, err := s.allocationRepo.ExistsActiveByClass(ctx, companyID, class.ClassCode)
	if err != nil {
		return fmt.Errorf("failed to check class references: %w", err)
	}
	if inUse {
		return shared.NewBusinessRuleError(
			fmt.Sprintf("Cannot deactivate class %s while active allocations reference it", class.ClassCode))
	}

	expectedVersion := class.Version
	if err := class.Deactivate(); err != nil {
		return err
	}
	if err := s.classRepo.SaveWithLock(ctx, class, expectedVersion); err != nil {
		return err
	}

	s.auditSink.Record(ctx, audit.Entry{
		Actor:      audit.ActorFromContext(ctx),
		Action:     "share_class.deactivate",
		Resource:   "share_class",
		ResourceID: class.ID,
		Detail:     fmt.Sprintf("code=%s", class.ClassCode),
	})
	return nil
}
