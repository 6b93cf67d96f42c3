package handler

import (
	registryapp "github.com/companies-office/backend/internal/application/registry"
	"github.com/companies-office/backend/internal/infrastructure/auth"
	"github.com/companies-office/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ShareholderHandler handles shareholder directory endpoints
type ShareholderHandler struct {
	BaseHandler
	shareholderService *registryapp.ShareholderService
	authn              gin.HandlerFunc
}

// NewShareholderHandler creates a new ShareholderHandler
func NewShareholderHandler(shareholderService *registryapp.ShareholderService, authn gin.HandlerFunc) *ShareholderHandler {
	return &ShareholderHandler{
		shareholderService: shareholderService,
		authn:              authn,
	}
}

// AddShareholderRequest is the body of POST /companies/:id/shareholders
type AddShareholderRequest struct {
	FullName    string         `json:"full_name" binding:"required,max=200"`
	IsCorporate bool           `json:"is_corporate"`
	Address     AddressRequest `json:"address" binding:"required"`
}

// UpdateAddressRequest is the body of PUT /companies/:id/shareholders/:shareholderId/address
type UpdateAddressRequest struct {
	Address AddressRequest `json:"address" binding:"required"`
}

// Add records a new shareholder against a company
func (h *ShareholderHandler) Add(c *gin.Context) {
	companyID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req AddShareholderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	address, err := req.Address.toAddress()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	shareholder, err := h.shareholderService.AddShareholder(c.Request.Context(), registryapp.AddShareholderRequest{
		CompanyID:   companyID,
		FullName:    req.FullName,
		IsCorporate: req.IsCorporate,
		Address:     address,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, shareholder)
}

// Get returns a shareholder by ID
func (h *ShareholderHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	shareholder, err := h.shareholderService.GetShareholderByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, shareholder)
}

// ListByCompany returns a company's shareholders
func (h *ShareholderHandler) ListByCompany(c *gin.Context) {
	companyID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	shareholders, err := h.shareholderService.ListShareholders(c.Request.Context(), companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, shareholders)
}

// UpdateAddress changes a shareholder's recorded address
func (h *ShareholderHandler) UpdateAddress(c *gin.Context) {
	companyID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	shareholderID, ok := h.uuidParam(c, "shareholderId")
	if !ok {
		return
	}
	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	address, err := req.Address.toAddress()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	shareholder, err := h.shareholderService.UpdateShareholderAddress(c.Request.Context(), companyID, shareholderID, address)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, shareholder)
}

// RegisterRoutes registers shareholder routes
func (h *ShareholderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	registrar := middleware.RequireRoles(auth.RoleAdmin, auth.RoleRegistrar)

	companies := rg.Group("/companies")
	{
		companies.GET("/:id/shareholders", h.ListByCompany)
		companies.POST("/:id/shareholders", h.authn, registrar, h.Add)
		companies.PUT("/:id/shareholders/:shareholderId/address", h.authn, registrar, h.UpdateAddress)
	}

	shareholders := rg.Group("/shareholders")
	{
		shareholders.GET("/:id", h.Get)
	}
}
