package models

import (
	"time"

	"github.com/companies-office/backend/internal/domain/capital"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShareClassModel is the persistence model for the ShareClass aggregate root.
type ShareClassModel struct {
	AggregateModel
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_share_class_company_code,priority:1"`
	ClassCode   string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_share_class_company_code,priority:2"`
	ClassName   string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`

	VotingRights  capital.VotingRightsKind `gorm:"type:varchar(20);not null"`
	VotesPerShare decimal.Decimal          `gorm:"type:decimal(18,4);not null"`

	DividendRights capital.DividendRightsKind `gorm:"type:varchar(20);not null"`
	DividendRate   decimal.Decimal            `gorm:"type:decimal(9,6);not null"`

	CapitalDistribution   capital.CapitalDistributionKind `gorm:"type:varchar(20);not null"`
	LiquidationPreference decimal.Decimal                 `gorm:"type:decimal(18,4);not null"`
	LiquidationPriority   int                             `gorm:"not null;default:0"`

	BoardApprovalRequired bool   `gorm:"not null;default:false"`
	PreemptiveRights      bool   `gorm:"not null;default:false"`
	TagAlongRights        bool   `gorm:"not null;default:false"`
	DragAlongRights       bool   `gorm:"not null;default:false"`
	TransferRestrictions  string `gorm:"type:text"`

	ParValue   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NoParValue bool            `gorm:"not null;default:false"`

	Active bool `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ShareClassModel) TableName() string {
	return "share_classes"
}

// ToDomain converts the persistence model to a domain ShareClass entity.
func (m *ShareClassModel) ToDomain() *capital.ShareClass {
	sc := &capital.ShareClass{
		CompanyID:             m.CompanyID,
		ClassCode:             m.ClassCode,
		ClassName:             m.ClassName,
		Description:           m.Description,
		VotingRights:          m.VotingRights,
		VotesPerShare:         m.VotesPerShare,
		DividendRights:        m.DividendRights,
		DividendRate:          m.DividendRate,
		CapitalDistribution:   m.CapitalDistribution,
		LiquidationPreference: m.LiquidationPreference,
		LiquidationPriority:   m.LiquidationPriority,
		BoardApprovalRequired: m.BoardApprovalRequired,
		PreemptiveRights:      m.PreemptiveRights,
		TagAlongRights:        m.TagAlongRights,
		DragAlongRights:       m.DragAlongRights,
		TransferRestrictions:  m.TransferRestrictions,
		ParValue:              m.ParValue,
		NoParValue:            m.NoParValue,
		Active:                m.Active,
	}
	m.PopulateAggregateRoot(&sc.BaseAggregateRoot)
	return sc
}

// FromDomain populates the persistence model from a domain ShareClass entity.
func (m *ShareClassModel) FromDomain(sc *capital.ShareClass) {
	m.FromDomainAggregateRoot(sc.BaseAggregateRoot)
	m.CompanyID = sc.CompanyID
	m.ClassCode = sc.ClassCode
	m.ClassName = sc.ClassName
	m.Description = sc.Description
	m.VotingRights = sc.VotingRights
	m.VotesPerShare = sc.VotesPerShare
	m.DividendRights = sc.DividendRights
	m.DividendRate = sc.DividendRate
	m.CapitalDistribution = sc.CapitalDistribution
	m.LiquidationPreference = sc.LiquidationPreference
	m.LiquidationPriority = sc.LiquidationPriority
	m.BoardApprovalRequired = sc.BoardApprovalRequired
	m.PreemptiveRights = sc.PreemptiveRights
	m.TagAlongRights = sc.TagAlongRights
	m.DragAlongRights = sc.DragAlongRights
	m.TransferRestrictions = sc.TransferRestrictions
	m.ParValue = sc.ParValue
	m.NoParValue = sc.NoParValue
	m.Active = sc.Active
}

// ShareClassModelFromDomain creates a new persistence model from a domain ShareClass.
func ShareClassModelFromDomain(sc *capital.ShareClass) *ShareClassModel {
	m := &ShareClassModel{}
	m.FromDomain(sc)
	return m
}

// ShareAllocationModel is the persistence model for the ShareAllocation aggregate root.
type ShareAllocationModel struct {
	AggregateModel
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;index:idx_allocation_company_status"`
	ShareholderID uuid.UUID `gorm:"type:uuid;not null;index"`
	ShareClass    string    `gorm:"type:varchar(10);not null;index"`

	NumberOfShares int64           `gorm:"not null"`
	NominalValue   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AmountPaid     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	FullyPaid      bool            `gorm:"not null;default:false"`

	AllocationDate          time.Time `gorm:"not null"`
	TransferDate            *time.Time
	TransferToShareholderID *uuid.UUID               `gorm:"type:uuid"`
	CertificateNumber       string                   `gorm:"type:varchar(50)"`
	Restrictions            string                   `gorm:"type:text"`
	Status                  capital.AllocationStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_allocation_company_status"`
}

// TableName returns the table name for GORM
func (ShareAllocationModel) TableName() string {
	return "share_allocations"
}

// ToDomain converts the persistence model to a domain ShareAllocation entity.
func (m *ShareAllocationModel) ToDomain() *capital.ShareAllocation {
	a := &capital.ShareAllocation{
		CompanyID:               m.CompanyID,
		ShareholderID:           m.ShareholderID,
		ShareClass:              m.ShareClass,
		NumberOfShares:          m.NumberOfShares,
		NominalValue:            m.NominalValue,
		AmountPaid:              m.AmountPaid,
		FullyPaid:               m.FullyPaid,
		AllocationDate:          m.AllocationDate,
		TransferDate:            m.TransferDate,
		TransferToShareholderID: m.TransferToShareholderID,
		CertificateNumber:       m.CertificateNumber,
		Restrictions:            m.Restrictions,
		Status:                  m.Status,
	}
	m.PopulateAggregateRoot(&a.BaseAggregateRoot)
	return a
}

// FromDomain populates the persistence model from a domain ShareAllocation entity.
func (m *ShareAllocationModel) FromDomain(a *capital.ShareAllocation) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.CompanyID = a.CompanyID
	m.ShareholderID = a.ShareholderID
	m.ShareClass = a.ShareClass
	m.NumberOfShares = a.NumberOfShares
	m.NominalValue = a.NominalValue
	m.AmountPaid = a.AmountPaid
	m.FullyPaid = a.FullyPaid
	m.AllocationDate = a.AllocationDate
	m.TransferDate = a.TransferDate
	m.TransferToShareholderID = a.TransferToShareholderID
	m.CertificateNumber = a.CertificateNumber
	m.Restrictions = a.Restrictions
	m.Status = a.Status
}

// ShareAllocationModelFromDomain creates a new persistence model from a domain ShareAllocation.
func ShareAllocationModelFromDomain(a *capital.ShareAllocation) *ShareAllocationModel {
	m := &ShareAllocationModel{}
	m.FromDomain(a)
	return m
}
