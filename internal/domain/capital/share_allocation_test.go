package capital

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestAllocation(t *testing.T) *ShareAllocation {
	a, err := NewShareAllocation(
		uuid.New(),
		uuid.New(),
		"ORD",
		1000,
		decimal.NewFromInt(1),
		decimal.NewFromInt(250),
		time.Now(),
		"CERT-001",
		"",
	)
	require.NoError(t, err)
	return a
}

// ============================================
// AllocationStatus Tests
// ============================================

func TestAllocationStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  AllocationStatus
		isValid bool
	}{
		{AllocationStatusActive, true},
		{AllocationStatusTransferred, true},
		{AllocationStatusCancelled, true},
		{AllocationStatus("PENDING"), false},
		{AllocationStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestAllocationStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status     AllocationStatus
		isTerminal bool
	}{
		{AllocationStatusActive, false},
		{AllocationStatusTransferred, true},
		{AllocationStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
		})
	}
}

// ============================================
// NewShareAllocation Tests
// ============================================

func TestNewShareAllocation(t *testing.T) {
	companyID := uuid.New()
	shareholderID := uuid.New()

	a, err := NewShareAllocation(
		companyID, shareholderID, "ORD",
		1000, decimal.NewFromInt(1), decimal.NewFromInt(250),
		time.Now(), "CERT-001", "")
	require.NoError(t, err)

	assert.Equal(t, companyID, a.CompanyID)
	assert.Equal(t, shareholderID, a.ShareholderID)
	assert.Equal(t, AllocationStatusActive, a.Status)
	assert.Equal(t, int64(1000), a.NumberOfShares)
	assert.False(t, a.FullyPaid)
	assert.Equal(t, 1, a.GetVersion())
	assert.Nil(t, a.TransferDate)
	assert.Nil(t, a.TransferToShareholderID)
}

func TestNewShareAllocation_FullyPaidAtIssue(t *testing.T) {
	a, err := NewShareAllocation(
		uuid.New(), uuid.New(), "ORD",
		100, decimal.NewFromInt(2), decimal.NewFromInt(200),
		time.Now(), "", "")
	require.NoError(t, err)
	assert.True(t, a.FullyPaid)
	assert.True(t, a.UnpaidAmount().IsZero())
}

func TestNewShareAllocation_Validation(t *testing.T) {
	companyID := uuid.New()
	shareholderID := uuid.New()
	nominal := decimal.NewFromInt(1)

	tests := []struct {
		name          string
		companyID     uuid.UUID
		shareholderID uuid.UUID
		shareClass    string
		shares        int64
		nominal       decimal.Decimal
		paid          decimal.Decimal
	}{
		{"nil company", uuid.Nil, shareholderID, "ORD", 100, nominal, decimal.Zero},
		{"nil shareholder", companyID, uuid.Nil, "ORD", 100, nominal, decimal.Zero},
		{"blank class", companyID, shareholderID, "  ", 100, nominal, decimal.Zero},
		{"zero shares", companyID, shareholderID, "ORD", 0, nominal, decimal.Zero},
		{"negative shares", companyID, shareholderID, "ORD", -10, nominal, decimal.Zero},
		{"zero nominal", companyID, shareholderID, "ORD", 100, decimal.Zero, decimal.Zero},
		{"negative paid", companyID, shareholderID, "ORD", 100, nominal, decimal.NewFromInt(-1)},
		{"paid exceeds total", companyID, shareholderID, "ORD", 100, nominal, decimal.NewFromInt(101)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShareAllocation(
				tt.companyID, tt.shareholderID, tt.shareClass,
				tt.shares, tt.nominal, tt.paid, time.Now(), "", "")
			assert.Error(t, err)
		})
	}
}

// ============================================
// Value Calculation Tests
// ============================================

func TestShareAllocation_TotalValue(t *testing.T) {
	a, err := NewShareAllocation(
		uuid.New(), uuid.New(), "ORD",
		3, decimal.NewFromFloat(0.1), decimal.Zero,
		time.Now(), "", "")
	require.NoError(t, err)

	assert.True(t, a.TotalValue().Equal(decimal.NewFromFloat(0.3)))
	assert.True(t, a.UnpaidAmount().Equal(decimal.NewFromFloat(0.3)))
}

func TestShareAllocation_UnpaidAmount_NeverNegative(t *testing.T) {
	a := createTestAllocation(t)
	a.AmountPaid = a.TotalValue().Add(decimal.NewFromInt(1))
	assert.True(t, a.UnpaidAmount().IsZero())
}

// ============================================
// ApplyPayment Tests
// ============================================

func TestShareAllocation_ApplyPayment(t *testing.T) {
	a := createTestAllocation(t)

	err := a.ApplyPayment(decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.True(t, a.AmountPaid.Equal(decimal.NewFromInt(500)))
	assert.False(t, a.FullyPaid)
	assert.Equal(t, 2, a.GetVersion())

	err = a.ApplyPayment(decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, a.FullyPaid)
	assert.True(t, a.UnpaidAmount().IsZero())
	assert.Equal(t, 3, a.GetVersion())
}

func TestShareAllocation_ApplyPayment_ExactDecimal(t *testing.T) {
	a, err := NewShareAllocation(
		uuid.New(), uuid.New(), "ORD",
		3, decimal.NewFromFloat(0.1), decimal.Zero,
		time.Now(), "", "")
	require.NoError(t, err)

	require.NoError(t, a.ApplyPayment(decimal.NewFromFloat(0.1)))
	require.NoError(t, a.ApplyPayment(decimal.NewFromFloat(0.2)))
	assert.True(t, a.FullyPaid, "0.1 + 0.2 must equal 0.3 exactly")
}

func TestShareAllocation_ApplyPayment_Overpayment(t *testing.T) {
	a := createTestAllocation(t)

	err := a.ApplyPayment(decimal.NewFromInt(751))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overpayment")
	assert.True(t, a.AmountPaid.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, 1, a.GetVersion())
}

func TestShareAllocation_ApplyPayment_NonPositive(t *testing.T) {
	a := createTestAllocation(t)

	assert.Error(t, a.ApplyPayment(decimal.Zero))
	assert.Error(t, a.ApplyPayment(decimal.NewFromInt(-5)))
	assert.True(t, a.AmountPaid.Equal(decimal.NewFromInt(250)))
}

func TestShareAllocation_ApplyPayment_TerminalStatus(t *testing.T) {
	transferred := createTestAllocation(t)
	_, err := transferred.TransferTo(uuid.New(), time.Now(), "")
	require.NoError(t, err)
	assert.Error(t, transferred.ApplyPayment(decimal.NewFromInt(1)))

	cancelled := createTestAllocation(t)
	require.NoError(t, cancelled.Cancel())
	assert.Error(t, cancelled.ApplyPayment(decimal.NewFromInt(1)))
}

// ============================================
// TransferTo Tests
// ============================================

func TestShareAllocation_TransferTo(t *testing.T) {
	source := createTestAllocation(t)
	recipientID := uuid.New()
	transferDate := time.Now()

	recipient, err := source.TransferTo(recipientID, transferDate, "CERT-002")
	require.NoError(t, err)

	// source side
	assert.Equal(t, AllocationStatusTransferred, source.Status)
	require.NotNil(t, source.TransferDate)
	assert.True(t, source.TransferDate.Equal(transferDate))
	require.NotNil(t, source.TransferToShareholderID)
	assert.Equal(t, recipientID, *source.TransferToShareholderID)
	assert.Equal(t, 2, source.GetVersion())

	// recipient side
	assert.Equal(t, AllocationStatusActive, recipient.Status)
	assert.Equal(t, recipientID, recipient.ShareholderID)
	assert.Equal(t, source.CompanyID, recipient.CompanyID)
	assert.Equal(t, source.ShareClass, recipient.ShareClass)
	assert.Equal(t, source.NumberOfShares, recipient.NumberOfShares)
	assert.True(t, recipient.NominalValue.Equal(source.NominalValue))
	assert.True(t, recipient.AmountPaid.Equal(source.AmountPaid))
	assert.True(t, recipient.AllocationDate.Equal(transferDate))
	assert.Equal(t, "CERT-002", recipient.CertificateNumber)
	assert.NotEqual(t, source.ID, recipient.ID)
	assert.Equal(t, 1, recipient.GetVersion())
}

func TestShareAllocation_TransferTo_Conservation(t *testing.T) {
	source := createTestAllocation(t)
	sharesBefore := source.NumberOfShares
	paidBefore := source.AmountPaid

	recipient, err := source.TransferTo(uuid.New(), time.Now(), "")
	require.NoError(t, err)

	// the ACTIVE side of the ledger carries exactly what it did before
	assert.Equal(t, sharesBefore, recipient.NumberOfShares)
	assert.True(t, recipient.AmountPaid.Equal(paidBefore))
	assert.False(t, source.IsActive())
	assert.True(t, recipient.IsActive())
}

func TestShareAllocation_TransferTo_SelfTransfer(t *testing.T) {
	source := createTestAllocation(t)

	_, err := source.TransferTo(source.ShareholderID, time.Now(), "")
	require.Error(t, err)
	assert.Equal(t, AllocationStatusActive, source.Status)
}

func TestShareAllocation_TransferTo_NilRecipient(t *testing.T) {
	source := createTestAllocation(t)

	_, err := source.TransferTo(uuid.Nil, time.Now(), "")
	assert.Error(t, err)
	assert.Equal(t, AllocationStatusActive, source.Status)
}

func TestShareAllocation_TransferTo_TerminalStatus(t *testing.T) {
	source := createTestAllocation(t)
	_, err := source.TransferTo(uuid.New(), time.Now(), "")
	require.NoError(t, err)

	// transferring twice must fail
	_, err = source.TransferTo(uuid.New(), time.Now(), "")
	assert.Error(t, err)

	cancelled := createTestAllocation(t)
	require.NoError(t, cancelled.Cancel())
	_, err = cancelled.TransferTo(uuid.New(), time.Now(), "")
	assert.Error(t, err)
}

// ============================================
// Cancel Tests
// ============================================

func TestShareAllocation_Cancel(t *testing.T) {
	a := createTestAllocation(t)

	err := a.Cancel()
	require.NoError(t, err)
	assert.Equal(t, AllocationStatusCancelled, a.Status)
	assert.Equal(t, 2, a.GetVersion())

	// terminal, no further transitions
	assert.Error(t, a.Cancel())
	_, err = a.TransferTo(uuid.New(), time.Now(), "")
	assert.Error(t, err)
	assert.Error(t, a.ApplyPayment(decimal.NewFromInt(1)))
}
