package handler

import (
	"time"

	capitalapp "github.com/companies-office/backend/internal/application/capital"
	"github.com/companies-office/backend/internal/infrastructure/auth"
	"github.com/companies-office/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationHandler handles the allocation ledger and cap table endpoints
type AllocationHandler struct {
	BaseHandler
	allocationService *capitalapp.AllocationService
	capTableService   *capitalapp.CapTableService
	authn             gin.HandlerFunc
}

// NewAllocationHandler creates a new AllocationHandler
func NewAllocationHandler(
	allocationService *capitalapp.AllocationService,
	capTableService *capitalapp.CapTableService,
	authn gin.HandlerFunc,
) *AllocationHandler {
	return &AllocationHandler{
		allocationService: allocationService,
		capTableService:   capTableService,
		authn:             authn,
	}
}

// AllocateRequest is the body of POST /share-allocations/allocate. Amounts
// travel as decimal strings.
type AllocateRequest struct {
	CompanyID         string     `json:"company_id" binding:"required,uuid"`
	ShareholderID     string     `json:"shareholder_id" binding:"required,uuid"`
	ShareClass        string     `json:"share_class" binding:"required,max=20"`
	NumberOfShares    int64      `json:"number_of_shares" binding:"required,gt=0"`
	NominalValue      string     `json:"nominal_value" binding:"required"`
	AmountPaid        string     `json:"amount_paid"`
	AllocationDate    *time.Time `json:"allocation_date"`
	CertificateNumber string     `json:"certificate_number" binding:"max=50"`
	Restrictions      string     `json:"restrictions" binding:"max=2000"`
}

// TransferRequest is the body of POST /share-allocations/:id/transfer
type TransferRequest struct {
	ToShareholderID   string     `json:"to_shareholder_id" binding:"required,uuid"`
	TransferDate      *time.Time `json:"transfer_date"`
	CertificateNumber string     `json:"certificate_number" binding:"max=50"`
}

// PaymentRequest is the body of POST /share-allocations/:id/payment
type PaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// CancelRequest is the body of POST /share-allocations/:id/cancel
type CancelRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// Allocate issues new shares to a shareholder
func (h *AllocationHandler) Allocate(c *gin.Context) {
	var req AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	nominal, err := decimal.NewFromString(req.NominalValue)
	if err != nil {
		h.BadRequest(c, "nominal_value is not a valid decimal")
		return
	}
	paid, err := parseDecimal(req.AmountPaid)
	if err != nil {
		h.BadRequest(c, "amount_paid is not a valid decimal")
		return
	}

	var allocationDate time.Time
	if req.AllocationDate != nil {
		allocationDate = *req.AllocationDate
	}

	allocation, err := h.allocationService.AllocateShares(c.Request.Context(), capitalapp.AllocateSharesRequest{
		CompanyID:         uuid.MustParse(req.CompanyID),
		ShareholderID:     uuid.MustParse(req.ShareholderID),
		ShareClass:        req.ShareClass,
		NumberOfShares:    req.NumberOfShares,
		NominalValue:      nominal,
		AmountPaid:        paid,
		AllocationDate:    allocationDate,
		CertificateNumber: req.CertificateNumber,
		Restrictions:      req.Restrictions,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, allocation)
}

// Transfer moves an allocation to a new holder
func (h *AllocationHandler) Transfer(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	var transferDate time.Time
	if req.TransferDate != nil {
		transferDate = *req.TransferDate
	}

	result, err := h.allocationService.TransferShares(c.Request.Context(), capitalapp.TransferSharesRequest{
		AllocationID:      id,
		ToShareholderID:   uuid.MustParse(req.ToShareholderID),
		TransferDate:      transferDate,
		CertificateNumber: req.CertificateNumber,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, result)
}

// Payment applies a further payment against an allocation
func (h *AllocationHandler) Payment(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "amount is not a valid decimal")
		return
	}

	allocation, err := h.allocationService.RecordPayment(c.Request.Context(), id, amount)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, allocation)
}

// Cancel cancels a live allocation
func (h *AllocationHandler) Cancel(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	allocation, err := h.allocationService.CancelAllocation(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, allocation)
}

// Get returns an allocation by ID
func (h *AllocationHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	allocation, err := h.allocationService.GetAllocation(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, allocation)
}

// ListByCompany returns a company's allocations, live by default or the full
// history with ?include_history=true
func (h *AllocationHandler) ListByCompany(c *gin.Context) {
	companyID, ok := h.uuidParam(c, "companyId")
	if !ok {
		return
	}
	includeHistory := c.Query("include_history") == "true"

	allocations, err := h.allocationService.ListAllocations(c.Request.Context(), companyID, includeHistory)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, allocations)
}

// ListByClass returns a company's live allocations of one class
func (h *AllocationHandler) ListByClass(c *gin.Context) {
	companyID, ok := h.uuidParam(c, "companyId")
	if !ok {
		return
	}
	allocations, err := h.allocationService.ListAllocationsByClass(c.Request.Context(), companyID, c.Param("classCode"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, allocations)
}

// ListByShareholder returns a shareholder's live allocations
func (h *AllocationHandler) ListByShareholder(c *gin.Context) {
	shareholderID, ok := h.uuidParam(c, "shareholderId")
	if !ok {
		return
	}
	allocations, err := h.allocationService.ListAllocationsByShareholder(c.Request.Context(), shareholderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, allocations)
}

// Statistics returns the aggregate cap table of a company
func (h *AllocationHandler) Statistics(c *gin.Context) {
	companyID, ok := h.uuidParam(c, "companyId")
	if !ok {
		return
	}
	stats, err := h.capTableService.Statistics(c.Request.Context(), companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, stats)
}

// Portfolio returns a shareholder's live holdings and ownership percentage
func (h *AllocationHandler) Portfolio(c *gin.Context) {
	shareholderID, ok := h.uuidParam(c, "shareholderId")
	if !ok {
		return
	}
	portfolio, err := h.capTableService.Portfolio(c.Request.Context(), shareholderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, portfolio)
}

// RegisterRoutes registers allocation ledger and cap table routes
func (h *AllocationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	registrar := middleware.RequireRoles(auth.RoleAdmin, auth.RoleRegistrar)

	allocations := rg.Group("/share-allocations")
	{
		allocations.GET("/:id", h.Get)
		allocations.GET("/company/:companyId", h.ListByCompany)
		allocations.GET("/company/:companyId/class/:classCode", h.ListByClass)
		allocations.GET("/company/:companyId/statistics", h.Statistics)
		allocations.GET("/shareholder/:shareholderId", h.ListByShareholder)
		allocations.GET("/shareholder/:shareholderId/portfolio", h.Portfolio)

		allocations.POST("/allocate", h.authn, registrar, h.Allocate)
		allocations.POST("/:id/transfer", h.authn, registrar, h.Transfer)
		allocations.POST("/:id/payment", h.authn, registrar, h.Payment)
		allocations.POST("/:id/cancel", h.authn, middleware.RequireRoles(auth.RoleAdmin), h.Cancel)
	}
}
