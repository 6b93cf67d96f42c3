package handler

import (
	"time"

	registryapp "github.com/companies-office/backend/internal/application/registry"
	"github.com/companies-office/backend/internal/domain/shared/valueobject"
	"github.com/companies-office/backend/internal/infrastructure/auth"
	"github.com/companies-office/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CompanyHandler handles company register endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *registryapp.CompanyService
	authn          gin.HandlerFunc
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *registryapp.CompanyService, authn gin.HandlerFunc) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		authn:          authn,
	}
}

// AddressRequest is the wire shape of an address
type AddressRequest struct {
	Line1    string `json:"line1" binding:"required,max=200"`
	Line2    string `json:"line2" binding:"max=200"`
	City     string `json:"city" binding:"required,max=100"`
	Postcode string `json:"postcode" binding:"max=10"`
	Country  string `json:"country" binding:"max=100"`
}

func (r AddressRequest) toAddress() (valueobject.Address, error) {
	return valueobject.NewAddress(r.Line1, r.Line2, r.City, r.Postcode, r.Country)
}

// RegisterCompanyRequest is the body of POST /companies
type RegisterCompanyRequest struct {
	CompanyNumber     string         `json:"company_number" binding:"required,max=13"`
	Name              string         `json:"name" binding:"required,max=200"`
	IncorporationDate *time.Time     `json:"incorporation_date"`
	RegisteredOffice  AddressRequest `json:"registered_office" binding:"required"`
}

// RenameCompanyRequest is the body of PUT /companies/:id/name
type RenameCompanyRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// Register places a new company on the register
func (h *CompanyHandler) Register(c *gin.Context) {
	var req RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	office, err := req.RegisteredOffice.toAddress()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var incorporated time.Time
	if req.IncorporationDate != nil {
		incorporated = *req.IncorporationDate
	}

	company, err := h.companyService.RegisterCompany(c.Request.Context(), registryapp.RegisterCompanyRequest{
		CompanyNumber:     req.CompanyNumber,
		Name:              req.Name,
		IncorporationDate: incorporated,
		RegisteredOffice:  office,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, company)
}

// Get returns a company by ID
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	company, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, company)
}

// GetByNumber returns a company by its register number
func (h *CompanyHandler) GetByNumber(c *gin.Context) {
	company, err := h.companyService.GetCompanyByNumber(c.Request.Context(), c.Param("companyNumber"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, company)
}

// List returns all companies on the register
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, companies)
}

// Rename changes a company's registered name
func (h *CompanyHandler) Rename(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req RenameCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	company, err := h.companyService.RenameCompany(c.Request.Context(), id, req.Name)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, company)
}

// Remove strikes a company off the register
func (h *CompanyHandler) Remove(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	company, err := h.companyService.RemoveCompany(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, company)
}

// RegisterRoutes registers company routes
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	{
		companies.GET("", h.List)
		companies.GET("/:id", h.Get)
		companies.GET("/number/:companyNumber", h.GetByNumber)

		registrar := middleware.RequireRoles(auth.RoleAdmin, auth.RoleRegistrar)
		companies.POST("", h.authn, registrar, h.Register)
		companies.PUT("/:id/name", h.authn, registrar, h.Rename)
		companies.DELETE("/:id", h.authn, middleware.RequireRoles(auth.RoleAdmin), h.Remove)
	}
}
