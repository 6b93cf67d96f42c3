package handler

import (
	capitalapp "github.com/companies-office/backend/internal/application/capital"
	"github.com/companies-office/backend/internal/domain/capital"
	"github.com/companies-office/backend/internal/infrastructure/auth"
	"github.com/companies-office/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ShareClassHandler handles share class registry endpoints
type ShareClassHandler struct {
	BaseHandler
	classService    *capitalapp.ShareClassService
	capTableService *capitalapp.CapTableService
	authn           gin.HandlerFunc
}

// NewShareClassHandler creates a new ShareClassHandler
func NewShareClassHandler(
	classService *capitalapp.ShareClassService,
	capTableService *capitalapp.CapTableService,
	authn gin.HandlerFunc,
) *ShareClassHandler {
	return &ShareClassHandler{
		classService:    classService,
		capTableService: capTableService,
		authn:           authn,
	}
}

// ShareClassRequest is the body of create and update share class calls.
// Monetary and rate fields travel as decimal strings to keep the arithmetic
// exact end to end.
type ShareClassRequest struct {
	ClassCode   string `json:"class_code" binding:"required,max=20"`
	ClassName   string `json:"class_name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=2000"`

	VotingRights  string `json:"voting_rights" binding:"required,oneof=NONE ORDINARY WEIGHTED RESTRICTED"`
	VotesPerShare string `json:"votes_per_share"`

	DividendRights string `json:"dividend_rights" binding:"required,oneof=NONE ORDINARY PREFERRED CUMULATIVE"`
	DividendRate   string `json:"dividend_rate"`

	CapitalDistribution   string `json:"capital_distribution" binding:"required,oneof=ORDINARY PREFERRED NONE"`
	LiquidationPreference string `json:"liquidation_preference"`
	LiquidationPriority   int    `json:"liquidation_priority"`

	BoardApprovalRequired bool   `json:"board_approval_required"`
	PreemptiveRights      bool   `json:"preemptive_rights"`
	TagAlongRights        bool   `json:"tag_along_rights"`
	DragAlongRights       bool   `json:"drag_along_rights"`
	TransferRestrictions  string `json:"transfer_restrictions" binding:"max=2000"`

	ParValue   string `json:"par_value"`
	NoParValue bool   `json:"no_par_value"`
}

func (r ShareClassRequest) toSpec() (capital.ShareClassSpec, error) {
	spec := capital.ShareClassSpec{
		ClassCode:             r.ClassCode,
		ClassName:             r.ClassName,
		Description:           r.Description,
		VotingRights:          capital.VotingRightsKind(r.VotingRights),
		DividendRights:        capital.DividendRightsKind(r.DividendRights),
		CapitalDistribution:   capital.CapitalDistributionKind(r.CapitalDistribution),
		LiquidationPriority:   r.LiquidationPriority,
		BoardApprovalRequired: r.BoardApprovalRequired,
		PreemptiveRights:      r.PreemptiveRights,
		TagAlongRights:        r.TagAlongRights,
		DragAlongRights:       r.DragAlongRights,
		TransferRestrictions:  r.TransferRestrictions,
		NoParValue:            r.NoParValue,
	}

	var err error
	if spec.VotesPerShare, err = parseDecimal(r.VotesPerShare); err != nil {
		return spec, err
	}
	if spec.DividendRate, err = parseDecimal(r.DividendRate); err != nil {
		return spec, err
	}
	if spec.LiquidationPreference, err = parseDecimal(r.LiquidationPreference); err != nil {
		return spec, err
	}
	if spec.ParValue, err = parseDecimal(r.ParValue); err != nil {
		return spec, err
	}
	return spec, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// Create registers a new share class for a company
func (h *ShareClassHandler) Create(c *gin.Context) {
	companyID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req ShareClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	spec, err := req.toSpec()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	class, err := h.classService.CreateShareClass(c.Request.Context(), companyID, spec)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, class)
}

// Get returns one share class by company and code
func (h *ShareClassHandler) Get(c *gin.Context) {
	companyID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	class, err := h.classService.GetShareClass(c.Request.Context(), companyID, c.Param("classCode"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, class)
}

// List returns all share classes of a company
func (h *ShareClassHandler) List(c *gin.Context) {
	companyID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	classes, err := h.classService.ListShareClasses(c.Request.Context(), companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, classes)
}

// Update replaces the attributes of an existing share class
func (h *ShareClassHandler) Update(c *gin.Context) {
	companyID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req ShareClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	spec, err := req.toSpec()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	class, err := h.classService.UpdateShareClass(c.Request.Context(), companyID, c.Param("classCode"), spec)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, class)
}

// Deactivate soft-deletes a share class that no live allocation uses
func (h *ShareClassHandler) Deactivate(c *gin.Context) {
	companyID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.classService.DeactivateShareClass(c.Request.Context(), companyID, c.Param("classCode")); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Statistics returns the aggregate cap table of a company, broken down by
// share class. It mirrors the cap table endpoint on the allocation ledger
// for callers navigating from the share class registry.
func (h *ShareClassHandler) Statistics(c *gin.Context) {
	companyID, ok := h.uuidParam(c, "id")
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

// RegisterRoutes registers share class routes
func (h *ShareClassHandler) RegisterRoutes(rg *gin.RouterGroup) {
	registrar := middleware.RequireRoles(auth.RoleAdmin, auth.RoleRegistrar)

	classes := rg.Group("/companies/:id/share-classes")
	{
		classes.GET("", h.List)
		classes.GET("/statistics", h.Statistics)
		classes.GET("/:classCode", h.Get)
		classes.POST("", h.authn, registrar, h.Create)
		classes.PUT("/:classCode", h.authn, registrar, h.Update)
		classes.POST("/:classCode/deactivate", h.authn, middleware.RequireRoles(auth.RoleAdmin), h.Deactivate)
	}
}
