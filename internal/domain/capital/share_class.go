package capital

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/companies-office/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VotingRightsKind classifies the voting rights attached to a share class
type VotingRightsKind string

const (
	VotingNone       VotingRightsKind = "NONE"
	VotingOrdinary   VotingRightsKind = "ORDINARY"
	VotingWeighted   VotingRightsKind = "WEIGHTED"
	VotingRestricted VotingRightsKind = "RESTRICTED"
)

// IsValid checks if the kind is a valid VotingRightsKind
func (k VotingRightsKind) IsValid() bool {
	switch k {
	case VotingNone, VotingOrdinary, VotingWeighted, VotingRestricted:
		return true
	}
	return false
}

// String returns the string representation of VotingRightsKind
func (k VotingRightsKind) String() string {
	return string(k)
}

// DividendRightsKind classifies the dividend rights attached to a share class
type DividendRightsKind string

const (
	DividendNone       DividendRightsKind = "NONE"
	DividendOrdinary   DividendRightsKind = "ORDINARY"
	DividendPreferred  DividendRightsKind = "PREFERRED"
	DividendCumulative DividendRightsKind = "CUMULATIVE"
)

// IsValid checks if the kind is a valid DividendRightsKind
func (k DividendRightsKind) IsValid() bool {
	switch k {
	case DividendNone, DividendOrdinary, DividendPreferred, DividendCumulative:
		return true
	}
	return false
}

// RequiresRate returns true if the kind requires a dividend rate
func (k DividendRightsKind) RequiresRate() bool {
	return k == DividendPreferred || k == DividendCumulative
}

// CapitalDistributionKind classifies rights on a distribution of capital
type CapitalDistributionKind string

const (
	DistributionOrdinary  CapitalDistributionKind = "ORDINARY"
	DistributionPreferred CapitalDistributionKind = "PREFERRED"
	DistributionNone      CapitalDistributionKind = "NONE"
)

// IsValid checks if the kind is a valid CapitalDistributionKind
func (k CapitalDistributionKind) IsValid() bool {
	switch k {
	case DistributionOrdinary, DistributionPreferred, DistributionNone:
		return true
	}
	return false
}

var classCodePattern = regexp.MustCompile(`^[A-Z0-9\-]{1,10}$`)

// ShareClassSpec carries the attributes of a share class for create and
// update operations. Validate enforces the rights-consistency rules before
// any state is touched.
type ShareClassSpec struct {
	ClassCode   string
	ClassName   string
	Description string

	VotingRights  VotingRightsKind
	VotesPerShare decimal.Decimal

	DividendRights DividendRightsKind
	DividendRate   decimal.Decimal // fraction in [0,1]

	CapitalDistribution   CapitalDistributionKind
	LiquidationPreference decimal.Decimal // multiple, > 0 when distribution is PREFERRED
	LiquidationPriority   int             // rank on winding up, lower pays out first

	BoardApprovalRequired bool
	PreemptiveRights      bool
	TagAlongRights        bool
	DragAlongRights       bool
	TransferRestrictions  string

	ParValue   decimal.Decimal
	NoParValue bool
}

// Validate checks the spec's internal consistency. Each violation is reported
// as a VALIDATION_ERROR naming the field and rule that failed.
func (s *ShareClassSpec) Validate() error {
	code := strings.TrimSpace(s.ClassCode)
	name := strings.TrimSpace(s.ClassName)

	if code == "" {
		return shared.NewValidationError("classCode cannot be blank")
	}
	if !classCodePattern.MatchString(code) {
		return shared.NewValidationError(fmt.Sprintf("classCode %q must be 1-10 uppercase letters, digits or hyphens", code))
	}
	if name == "" {
		return shared.NewValidationError("className cannot be blank")
	}
	if len(name) > 100 {
		return shared.NewValidationError("className cannot exceed 100 characters")
	}

	if !s.VotingRights.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("votingRights %q is not a recognised kind", s.VotingRights))
	}
	if s.VotingRights == VotingNone && !s.VotesPerShare.IsZero() {
		return shared.NewValidationError("votesPerShare must be 0 when votingRights is NONE")
	}
	if s.VotingRights != VotingNone && !s.VotesPerShare.IsPositive() {
		return shared.NewValidationError(fmt.Sprintf("votesPerShare must be positive when votingRights is %s", s.VotingRights))
	}

	if !s.DividendRights.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("dividendRights %q is not a recognised kind", s.DividendRights))
	}
	if s.DividendRate.IsNegative() || s.DividendRate.GreaterThan(decimal.NewFromInt(1)) {
		return shared.NewValidationError("dividendRate must be a fraction between 0 and 1")
	}
	if s.DividendRights.RequiresRate() && s.DividendRate.IsZero() {
		return shared.NewValidationError(fmt.Sprintf("dividendRate is required when dividendRights is %s", s.DividendRights))
	}

	if !s.CapitalDistribution.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("capitalDistribution %q is not a recognised kind", s.CapitalDistribution))
	}
	if s.CapitalDistribution == DistributionPreferred && !s.LiquidationPreference.IsPositive() {
		return shared.NewValidationError("liquidationPreference must be positive when capitalDistribution is PREFERRED")
	}
	if s.CapitalDistribution != DistributionPreferred && !s.LiquidationPreference.IsZero() {
		return shared.NewValidationError("liquidationPreference requires capitalDistribution PREFERRED")
	}
	if s.LiquidationPriority < 0 {
		return shared.NewValidationError("liquidationPriority cannot be negative")
	}

	if s.NoParValue && !s.ParValue.IsZero() {
		return shared.NewValidationError("parValue and noParValue are mutually exclusive")
	}
	if !s.NoParValue && !s.ParValue.IsPositive() {
		return shared.NewValidationError("parValue must be positive unless noParValue is set")
	}

	return nil
}

// ShareClass is the rights template allocations reference by class code.
// It belongs to one company; the class code is unique within the company.
type ShareClass struct {
	shared.BaseAggregateRoot
	CompanyID   uuid.UUID `json:"company_id"`
	ClassCode   string    `json:"class_code"`
	ClassName   string    `json:"class_name"`
	Description string    `json:"description,omitempty"`

	VotingRights  VotingRightsKind `json:"voting_rights"`
	VotesPerShare decimal.Decimal  `json:"votes_per_share"`

	DividendRights DividendRightsKind `json:"dividend_rights"`
	DividendRate   decimal.Decimal    `json:"dividend_rate"`

	CapitalDistribution   CapitalDistributionKind `json:"capital_distribution"`
	LiquidationPreference decimal.Decimal         `json:"liquidation_preference"`
	LiquidationPriority   int                     `json:"liquidation_priority"`

	BoardApprovalRequired bool   `json:"board_approval_required"`
	PreemptiveRights      bool   `json:"preemptive_rights"`
	TagAlongRights        bool   `json:"tag_along_rights"`
	DragAlongRights       bool   `json:"drag_along_rights"`
	TransferRestrictions  string `json:"transfer_restrictions,omitempty"`

	ParValue   decimal.Decimal `json:"par_value"`
	NoParValue bool            `json:"no_par_value"`

	Active bool `json:"active"`
}

// NewShareClass creates a new share class for a company in active state
func NewShareClass(companyID uuid.UUID, spec ShareClassSpec) (*ShareClass, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("Company ID cannot be empty")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	sc := &ShareClass{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyID:         companyID,
		Active:            true,
	}
	sc.apply(spec)
	return sc, nil
}

// UpdateFromSpec replaces the class attributes after validating the spec.
// The caller is responsible for rejecting class-code changes while
// allocations reference this class.
func (sc *ShareClass) UpdateFromSpec(spec ShareClassSpec) error {
	if !sc.Active {
		return shared.NewBusinessRuleError("Cannot update a deactivated share class")
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	sc.apply(spec)
	sc.UpdatedAt = time.Now()
	sc.IncrementVersion()
	return nil
}

func (sc *ShareClass) apply(spec ShareClassSpec) {
	sc.ClassCode = strings.TrimSpace(spec.ClassCode)
	sc.ClassName = strings.TrimSpace(spec.ClassName)
	sc.Description = strings.TrimSpace(spec.Description)
	sc.VotingRights = spec.VotingRights
	sc.VotesPerShare = spec.VotesPerShare
	sc.DividendRights = spec.DividendRights
	sc.DividendRate = spec.DividendRate
	sc.CapitalDistribution = spec.CapitalDistribution
	sc.LiquidationPreference = spec.LiquidationPreference
	sc.LiquidationPriority = spec.LiquidationPriority
	sc.BoardApprovalRequired = spec.BoardApprovalRequired
	sc.PreemptiveRights = spec.PreemptiveRights
	sc.TagAlongRights = spec.TagAlongRights
	sc.DragAlongRights = spec.DragAlongRights
	sc.TransferRestrictions = strings.TrimSpace(spec.TransferRestrictions)
	sc.ParValue = spec.ParValue
	sc.NoParValue = spec.NoParValue
}

// Deactivate soft-deletes the class. The caller must first ensure no ACTIVE
// allocation still references it.
func (sc *ShareClass) Deactivate() error {
	if !sc.Active {
		return shared.NewBusinessRuleError("Share class is already deactivated")
	}
	sc.Active = false
	sc.UpdatedAt = time.Now()
	sc.IncrementVersion()
	return nil
}

// RestrictsTransfer returns true if the class does not permit free transfer.
// Rights are informational at the ledger layer; enforcement of the approval
// workflow is the caller's concern.
func (sc *ShareClass) RestrictsTransfer() bool {
	return sc.BoardApprovalRequired || sc.TransferRestrictions != ""
}
