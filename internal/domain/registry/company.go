package registry

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/companies-office/backend/internal/domain/shared"
	"github.com/companies-office/backend/internal/domain/shared/valueobject"
)

// CompanyStatus represents the registration status of a company
type CompanyStatus string

const (
	CompanyStatusActive  CompanyStatus = "ACTIVE"
	CompanyStatusRemoved CompanyStatus = "REMOVED" // Struck off the register
)

// IsValid checks if the status is a valid CompanyStatus
func (s CompanyStatus) IsValid() bool {
	return s == CompanyStatusActive || s == CompanyStatusRemoved
}

// String returns the string representation of CompanyStatus
func (s CompanyStatus) String() string {
	return string(s)
}

var companyNumberPattern = regexp.MustCompile(`^[0-9]{1,13}$`)

// Company is the identity anchor of the register. It owns its share classes
// and share allocations; its identity is immutable once allocations exist
// against it, so no operation to change the company number is exposed.
type Company struct {
	shared.BaseAggregateRoot
	CompanyNumber     string              `json:"company_number"`
	Name              string              `json:"name"`
	IncorporationDate time.Time           `json:"incorporation_date"`
	RegisteredOffice  valueobject.Address `json:"registered_office"`
	Status            CompanyStatus       `json:"status"`
}

// NewCompany creates a new company in ACTIVE status
func NewCompany(companyNumber, name string, incorporationDate time.Time, registeredOffice valueobject.Address) (*Company, error) {
	companyNumber = strings.TrimSpace(companyNumber)
	name = strings.TrimSpace(name)

	if companyNumber == "" {
		return nil, shared.NewValidationError("Company number cannot be empty")
	}
	if !companyNumberPattern.MatchString(companyNumber) {
		return nil, shared.NewValidationError(fmt.Sprintf("Company number %q is not a valid register number", companyNumber))
	}
	if name == "" {
		return nil, shared.NewValidationError("Company name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("Company name cannot exceed 200 characters")
	}
	if incorporationDate.IsZero() {
		incorporationDate = time.Now()
	}

	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyNumber:     companyNumber,
		Name:              name,
		IncorporationDate: incorporationDate,
		RegisteredOffice:  registeredOffice,
		Status:            CompanyStatusActive,
	}, nil
}

// Rename changes the registered company name
func (c *Company) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Company name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Company name cannot exceed 200 characters")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Remove strikes the company off the register. Its ledger rows are kept as
// history; no further capital operations are accepted against it.
func (c *Company) Remove() error {
	if c.Status == CompanyStatusRemoved {
		return shared.NewBusinessRuleError("Company has already been removed from the register")
	}
	c.Status = CompanyStatusRemoved
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// IsActive returns true if the company is on the register
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}
