package models

import (
	"time"

	"github.com/companies-office/backend/internal/domain/registry"
	"github.com/companies-office/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CompanyModel is the persistence model for the Company aggregate root.
type CompanyModel struct {
	AggregateModel
	CompanyNumber     string                 `gorm:"type:varchar(12);not null;uniqueIndex"`
	Name              string                 `gorm:"type:varchar(200);not null"`
	IncorporationDate time.Time              `gorm:"not null"`
	RegisteredOffice  valueobject.Address    `gorm:"type:jsonb"`
	Status            registry.CompanyStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *registry.Company {
	c := &registry.Company{
		CompanyNumber:     m.CompanyNumber,
		Name:              m.Name,
		IncorporationDate: m.IncorporationDate,
		RegisteredOffice:  m.RegisteredOffice,
		Status:            m.Status,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Company entity.
func (m *CompanyModel) FromDomain(c *registry.Company) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.CompanyNumber = c.CompanyNumber
	m.Name = c.Name
	m.IncorporationDate = c.IncorporationDate
	m.RegisteredOffice = c.RegisteredOffice
	m.Status = c.Status
}

// CompanyModelFromDomain creates a new persistence model from a domain Company.
func CompanyModelFromDomain(c *registry.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}

// ShareholderModel is the persistence model for the Shareholder aggregate root.
type ShareholderModel struct {
	AggregateModel
	CompanyID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	FullName    string              `gorm:"type:varchar(200);not null"`
	IsCorporate bool                `gorm:"not null;default:false"`
	Address     valueobject.Address `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (ShareholderModel) TableName() string {
	return "shareholders"
}

// ToDomain converts the persistence model to a domain Shareholder entity.
func (m *ShareholderModel) ToDomain() *registry.Shareholder {
	s := &registry.Shareholder{
		CompanyID:   m.CompanyID,
		FullName:    m.FullName,
		IsCorporate: m.IsCorporate,
		Address:     m.Address,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)
	return s
}

// FromDomain populates the persistence model from a domain Shareholder entity.
func (m *ShareholderModel) FromDomain(s *registry.Shareholder) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.CompanyID = s.CompanyID
	m.FullName = s.FullName
	m.IsCorporate = s.IsCorporate
	m.Address = s.Address
}

// ShareholderModelFromDomain creates a new persistence model from a domain Shareholder.
func ShareholderModelFromDomain(s *registry.Shareholder) *ShareholderModel {
	m := &ShareholderModel{}
	m.FromDomain(s)
	return m
}
