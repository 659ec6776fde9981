package handler

import (
	accountingapp "github.com/erp/erpapp/internal/application/accounting"
	crmapp "github.com/erp/erpapp/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// CRMHandler serves /api/crm. Customers are shared with accounting.
type CRMHandler struct {
	BaseHandler
	crmService        *crmapp.CRMService
	accountingService *accountingapp.AccountingService
}

// NewCRMHandler creates a new CRMHandler
func NewCRMHandler(crmService *crmapp.CRMService, accountingService *accountingapp.AccountingService) *CRMHandler {
	return &CRMHandler{crmService: crmService, accountingService: accountingService}
}

// ListLeads handles GET /api/crm/leads
func (h *CRMHandler) ListLeads(c *gin.Context) {
	var q crmapp.LeadListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.crmService.ListLeads(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetLead handles GET /api/crm/leads/:id
func (h *CRMHandler) GetLead(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.crmService.GetLead(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateLead handles POST /api/crm/leads
func (h *CRMHandler) CreateLead(c *gin.Context) {
	var req crmapp.LeadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.crmService.CreateLead(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateLead handles PUT /api/crm/leads/:id
func (h *CRMHandler) UpdateLead(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req crmapp.LeadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.crmService.UpdateLead(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// ListContacts handles GET /api/crm/contacts
func (h *CRMHandler) ListContacts(c *gin.Context) {
	var q crmapp.ContactListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.crmService.ListContacts(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetContact handles GET /api/crm/contacts/:id
func (h *CRMHandler) GetContact(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.crmService.GetContact(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateContact handles POST /api/crm/contacts
func (h *CRMHandler) CreateContact(c *gin.Context) {
	var req crmapp.ContactRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.crmService.CreateContact(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListDeals handles GET /api/crm/deals
func (h *CRMHandler) ListDeals(c *gin.Context) {
	var q crmapp.DealListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.crmService.ListDeals(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetDeal handles GET /api/crm/deals/:id
func (h *CRMHandler) GetDeal(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.crmService.GetDeal(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateDeal handles POST /api/crm/deals
func (h *CRMHandler) CreateDeal(c *gin.Context) {
	var req crmapp.DealRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.crmService.CreateDeal(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListActivities handles GET /api/crm/activities
func (h *CRMHandler) ListActivities(c *gin.Context) {
	var q crmapp.ActivityListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.crmService.ListActivities(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetActivity handles GET /api/crm/activities/:id
func (h *CRMHandler) GetActivity(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.crmService.GetActivity(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateActivity handles POST /api/crm/activities
func (h *CRMHandler) CreateActivity(c *gin.Context) {
	var req crmapp.ActivityRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.crmService.CreateActivity(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// CompleteActivity handles POST /api/crm/activities/:id/complete
func (h *CRMHandler) CompleteActivity(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.crmService.CompleteActivity(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// ListCustomers handles GET /api/crm/customers
func (h *CRMHandler) ListCustomers(c *gin.Context) {
	listCustomers(&h.BaseHandler, h.accountingService, c)
}

// GetCustomer handles GET /api/crm/customers/:id
func (h *CRMHandler) GetCustomer(c *gin.Context) {
	getCustomer(&h.BaseHandler, h.accountingService, c)
}

// CreateCustomer handles POST /api/crm/customers
func (h *CRMHandler) CreateCustomer(c *gin.Context) {
	createCustomer(&h.BaseHandler, h.accountingService, c)
}
