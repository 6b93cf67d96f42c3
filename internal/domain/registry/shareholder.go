package registry

import (
	"strings"
	"time"

	"github.com/companies-office/backend/internal/domain/shared"
	"github.com/companies-office/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Shareholder is an allocation counterparty. It belongs to one company and is
// weakly referenced by allocations for portfolio lookup.
type Shareholder struct {
	shared.BaseAggregateRoot
	CompanyID   uuid.UUID           `json:"company_id"`
	FullName    string              `json:"full_name"`
	IsCorporate bool                `json:"is_corporate"`
	Address     valueobject.Address `json:"address"`
}

// NewShareholder creates a new shareholder record for a company
func NewShareholder(companyID uuid.UUID, fullName string, isCorporate bool, address valueobject.Address) (*Shareholder, error) {
	fullName = strings.TrimSpace(fullName)

	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("Company ID cannot be empty")
	}
	if fullName == "" {
		return nil, shared.NewValidationError("Shareholder name cannot be empty")
	}
	if len(fullName) > 200 {
		return nil, shared.NewValidationError("Shareholder name cannot exceed 200 characters")
	}

	return &Shareholder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyID:         companyID,
		FullName:          fullName,
		IsCorporate:       isCorporate,
		Address:           address,
	}, nil
}

// UpdateAddress changes the shareholder's recorded address
func (s *Shareholder) UpdateAddress(address valueobject.Address) {
	s.Address = address
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// BelongsTo returns true if the shareholder is registered against the company
func (s *Shareholder) BelongsTo(companyID uuid.UUID) bool {
	return s.CompanyID == companyID
}
