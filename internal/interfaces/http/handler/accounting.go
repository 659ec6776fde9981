package handler

import (
	accountingapp "github.com/erp/erpapp/internal/application/accounting"
	"github.com/gin-gonic/gin"
)

// AccountingHandler serves /api/accounting
type AccountingHandler struct {
	BaseHandler
	accountingService *accountingapp.AccountingService
}

// NewAccountingHandler creates a new AccountingHandler
func NewAccountingHandler(accountingService *accountingapp.AccountingService) *AccountingHandler {
	return &AccountingHandler{accountingService: accountingService}
}

// ListCustomers handles GET /api/accounting/customers
func (h *AccountingHandler) ListCustomers(c *gin.Context) {
	listCustomers(&h.BaseHandler, h.accountingService, c)
}

// GetCustomer handles GET /api/accounting/customers/:id
func (h *AccountingHandler) GetCustomer(c *gin.Context) {
	getCustomer(&h.BaseHandler, h.accountingService, c)
}

// CreateCustomer handles POST /api/accounting/customers
func (h *AccountingHandler) CreateCustomer(c *gin.Context) {
	createCustomer(&h.BaseHandler, h.accountingService, c)
}

// ListInvoices handles GET /api/accounting/invoices
func (h *AccountingHandler) ListInvoices(c *gin.Context) {
	var q accountingapp.InvoiceListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.accountingService.ListInvoices(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetInvoice handles GET /api/accounting/invoices/:id
func (h *AccountingHandler) GetInvoice(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.accountingService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateInvoice handles POST /api/accounting/invoices
func (h *AccountingHandler) CreateInvoice(c *gin.Context) {
	var req accountingapp.InvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.accountingService.CreateInvoice(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListPayments handles GET /api/accounting/payments
func (h *AccountingHandler) ListPayments(c *gin.Context) {
	var q accountingapp.PaymentListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.accountingService.ListPayments(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetPayment handles GET /api/accounting/payments/:id
func (h *AccountingHandler) GetPayment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.accountingService.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// RecordPayment handles POST /api/accounting/payments
func (h *AccountingHandler) RecordPayment(c *gin.Context) {
	var req accountingapp.PaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.accountingService.RecordPayment(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListExpenses handles GET /api/accounting/expenses
func (h *AccountingHandler) ListExpenses(c *gin.Context) {
	var q accountingapp.ExpenseListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.accountingService.ListExpenses(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetExpense handles GET /api/accounting/expenses/:id
func (h *AccountingHandler) GetExpense(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.accountingService.GetExpense(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateExpense handles POST /api/accounting/expenses
func (h *AccountingHandler) CreateExpense(c *gin.Context) {
	var req accountingapp.ExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.accountingService.CreateExpense(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ApproveExpense handles POST /api/accounting/expenses/:id/approve
func (h *AccountingHandler) ApproveExpense(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.accountingService.ApproveExpense(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// The customer store backs both /api/crm/customers and
// /api/accounting/customers.

func listCustomers(h *BaseHandler, svc *accountingapp.AccountingService, c *gin.Context) {
	var q accountingapp.CustomerListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := svc.ListCustomers(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func getCustomer(h *BaseHandler, svc *accountingapp.AccountingService, c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := svc.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func createCustomer(h *BaseHandler, svc *accountingapp.AccountingService, c *gin.Context) {
	var req accountingapp.CustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := svc.CreateCustomer(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
