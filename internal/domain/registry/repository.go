package registry

import (
	"context"

	"github.com/google/uuid"
)

// CompanyRepository defines persistence operations for companies
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByCompanyNumber(ctx context.Context, companyNumber string) (*Company, error)
	FindAll(ctx context.Context) ([]Company, error)
	ExistsByCompanyNumber(ctx context.Context, companyNumber string) (bool, error)
	Save(ctx context.Context, company *Company) error
}

// ShareholderRepository defines persistence operations for shareholders
type ShareholderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shareholder, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]Shareholder, error)
	Save(ctx context.Context, shareholder *Shareholder) error
}
