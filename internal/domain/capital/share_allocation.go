package capital

import (
	"fmt"
	"strings"
	"time"

	"github.com/companies-office/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationStatus represents the lifecycle state of a share allocation
type AllocationStatus string

const (
	AllocationStatusActive      AllocationStatus = "ACTIVE"
	AllocationStatusTransferred AllocationStatus = "TRANSFERRED"
	AllocationStatusCancelled   AllocationStatus = "CANCELLED"
)

// IsValid checks if the status is a valid AllocationStatus
func (s AllocationStatus) IsValid() bool {
	switch s {
	case AllocationStatusActive, AllocationStatusTransferred, AllocationStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of AllocationStatus
func (s AllocationStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transition may leave this status
func (s AllocationStatus) IsTerminal() bool {
	return s == AllocationStatusTransferred || s == AllocationStatusCancelled
}

// ShareAllocation is a ledger entry: shares of one class held by one
// shareholder of one company. Transitions: ACTIVE -> TRANSFERRED via
// TransferTo, ACTIVE -> CANCELLED via Cancel; both are terminal.
type ShareAllocation struct {
	shared.BaseAggregateRoot
	CompanyID     uuid.UUID `json:"company_id"`
	ShareholderID uuid.UUID `json:"shareholder_id"`
	ShareClass    string    `json:"share_class"`

	NumberOfShares int64           `json:"number_of_shares"`
	NominalValue   decimal.Decimal `json:"nominal_value"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	FullyPaid      bool            `json:"is_fully_paid"`

	AllocationDate          time.Time        `json:"allocation_date"`
	TransferDate            *time.Time       `json:"transfer_date,omitempty"`
	TransferToShareholderID *uuid.UUID       `json:"transfer_to_shareholder_id,omitempty"`
	CertificateNumber       string           `json:"certificate_number,omitempty"`
	Restrictions            string           `json:"restrictions,omitempty"`
	Status                  AllocationStatus `json:"status"`
}

// NewShareAllocation creates a new ACTIVE allocation. The amount paid may be
// zero (unpaid shares) up to the full nominal total; anything beyond is an
// overpayment and rejected.
func NewShareAllocation(
	companyID, shareholderID uuid.UUID,
	shareClass string,
	numberOfShares int64,
	nominalValue, amountPaid decimal.Decimal,
	allocationDate time.Time,
	certificateNumber, restrictions string,
) (*ShareAllocation, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("Company ID cannot be empty")
	}
	if shareholderID == uuid.Nil {
		return nil, shared.NewValidationError("Shareholder ID cannot be empty")
	}
	if strings.TrimSpace(shareClass) == "" {
		return nil, shared.NewValidationError("Share class cannot be blank")
	}
	if numberOfShares <= 0 {
		return nil, shared.NewValidationError("numberOfShares must be positive")
	}
	if !nominalValue.IsPositive() {
		return nil, shared.NewValidationError("nominalValue must be positive")
	}
	if amountPaid.IsNegative() {
		return nil, shared.NewValidationError("amountPaid cannot be negative")
	}

	total := nominalValue.Mul(decimal.NewFromInt(numberOfShares))
	if amountPaid.GreaterThan(total) {
		return nil, shared.NewValidationError(fmt.Sprintf(
			"amountPaid %s exceeds total value %s", amountPaid.String(), total.String()))
	}
	if allocationDate.IsZero() {
		allocationDate = time.Now()
	}

	a := &ShareAllocation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyID:         companyID,
		ShareholderID:     shareholderID,
		ShareClass:        strings.TrimSpace(shareClass),
		NumberOfShares:    numberOfShares,
		NominalValue:      nominalValue,
		AmountPaid:        amountPaid,
		AllocationDate:    allocationDate,
		CertificateNumber: strings.TrimSpace(certificateNumber),
		Restrictions:      strings.TrimSpace(restrictions),
		Status:            AllocationStatusActive,
	}
	a.recalculateFullyPaid()
	return a, nil
}

// TotalValue returns numberOfShares x nominalValue
func (a *ShareAllocation) TotalValue() decimal.Decimal {
	return a.NominalValue.Mul(decimal.NewFromInt(a.NumberOfShares))
}

// UnpaidAmount returns the outstanding amount, floored at zero
func (a *ShareAllocation) UnpaidAmount() decimal.Decimal {
	unpaid := a.TotalValue().Sub(a.AmountPaid)
	if unpaid.IsNegative() {
		return decimal.Zero
	}
	return unpaid
}

// recalculateFullyPaid derives the fully-paid flag. The comparison is exact
// decimal equality, amountPaid >= total never occurs past construction
// because payments reject overpayment.
func (a *ShareAllocation) recalculateFullyPaid() {
	a.FullyPaid = a.AmountPaid.GreaterThanOrEqual(a.TotalValue())
}

// IsActive returns true if the allocation is live on the ledger
func (a *ShareAllocation) IsActive() bool {
	return a.Status == AllocationStatusActive
}

// ApplyPayment adds a further payment against the allocation. The amount paid
// is monotone non-decreasing; overpayment beyond the nominal total is rejected
// before any state changes.
func (a *ShareAllocation) ApplyPayment(additionalPayment decimal.Decimal) error {
	if !a.IsActive() {
		return shared.NewBusinessRuleError(fmt.Sprintf(
			"Cannot record a payment against a %s allocation", a.Status))
	}
	if !additionalPayment.IsPositive() {
		return shared.NewValidationError("additionalPayment must be positive")
	}

	newPaid := a.AmountPaid.Add(additionalPayment)
	if newPaid.GreaterThan(a.TotalValue()) {
		return shared.NewValidationError(fmt.Sprintf(
			"overpayment: %s would exceed total value %s", newPaid.String(), a.TotalValue().String()))
	}

	a.AmountPaid = newPaid
	a.recalculateFullyPaid()
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// TransferTo marks this allocation TRANSFERRED and returns the new ACTIVE
// allocation for the recipient. The recipient inherits the share count, class,
// nominal value and paid-up state in full, so the ACTIVE total per class is
// conserved across the pair of writes. The caller must persist both records
// atomically.
func (a *ShareAllocation) TransferTo(toShareholderID uuid.UUID, transferDate time.Time, certificateNumber string) (*ShareAllocation, error) {
	if !a.IsActive() {
		return nil, shared.NewBusinessRuleError(fmt.Sprintf(
			"Cannot transfer a %s allocation", a.Status))
	}
	if toShareholderID == uuid.Nil {
		return nil, shared.NewValidationError("Recipient shareholder ID cannot be empty")
	}
	if toShareholderID == a.ShareholderID {
		return nil, shared.NewBusinessRuleError("Cannot transfer an allocation to its current holder")
	}
	if transferDate.IsZero() {
		transferDate = time.Now()
	}

	recipient := &ShareAllocation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyID:         a.CompanyID,
		ShareholderID:     toShareholderID,
		ShareClass:        a.ShareClass,
		NumberOfShares:    a.NumberOfShares,
		NominalValue:      a.NominalValue,
		AmountPaid:        a.AmountPaid,
		AllocationDate:    transferDate,
		CertificateNumber: strings.TrimSpace(certificateNumber),
		Restrictions:      a.Restrictions,
		Status:            AllocationStatusActive,
	}
	recipient.recalculateFullyPaid()

	a.Status = AllocationStatusTransferred
	a.TransferDate = &transferDate
	a.TransferToShareholderID = &toShareholderID
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return recipient, nil
}

// Cancel moves an ACTIVE allocation to CANCELLED. The cancellation reason is
// an audit concern and not recorded on the entity.
func (a *ShareAllocation) Cancel() error {
	if !a.IsActive() {
		return shared.NewBusinessRuleError(fmt.Sprintf(
			"Cannot cancel a %s allocation", a.Status))
	}
	a.Status = AllocationStatusCancelled
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}
