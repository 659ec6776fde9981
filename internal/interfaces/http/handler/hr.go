package handler

import (
	"github.com/erp/erpapp/internal/application/common"
	hrapp "github.com/erp/erpapp/internal/application/hr"
	"github.com/gin-gonic/gin"
)

// HRHandler serves /api/hr
type HRHandler struct {
	BaseHandler
	hrService *hrapp.HRService
}

// NewHRHandler creates a new HRHandler
func NewHRHandler(hrService *hrapp.HRService) *HRHandler {
	return &HRHandler{hrService: hrService}
}

// ListDepartments handles GET /api/hr/departments
func (h *HRHandler) ListDepartments(c *gin.Context) {
	var q common.PageQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.hrService.ListDepartments(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetDepartment handles GET /api/hr/departments/:id
func (h *HRHandler) GetDepartment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.hrService.GetDepartment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateDepartment handles POST /api/hr/departments
func (h *HRHandler) CreateDepartment(c *gin.Context) {
	var req hrapp.DepartmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.hrService.CreateDepartment(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListEmployees handles GET /api/hr/employees
func (h *HRHandler) ListEmployees(c *gin.Context) {
	var q hrapp.EmployeeListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.hrService.ListEmployees(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetEmployee handles GET /api/hr/employees/:id
func (h *HRHandler) GetEmployee(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.hrService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateEmployee handles POST /api/hr/employees
func (h *HRHandler) CreateEmployee(c *gin.Context) {
	var req hrapp.EmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.hrService.CreateEmployee(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListAttendance handles GET /api/hr/attendance
func (h *HRHandler) ListAttendance(c *gin.Context) {
	var q hrapp.AttendanceListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.hrService.ListAttendance(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetAttendance handles GET /api/hr/attendance/:id
func (h *HRHandler) GetAttendance(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.hrService.GetAttendance(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// RecordAttendance handles POST /api/hr/attendance
func (h *HRHandler) RecordAttendance(c *gin.Context) {
	var req hrapp.AttendanceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.hrService.RecordAttendance(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListLeaveRequests handles GET /api/hr/leave-requests
func (h *HRHandler) ListLeaveRequests(c *gin.Context) {
	var q hrapp.LeaveRequestListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.hrService.ListLeaveRequests(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetLeaveRequest handles GET /api/hr/leave-requests/:id
func (h *HRHandler) GetLeaveRequest(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.hrService.GetLeaveRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateLeaveRequest handles POST /api/hr/leave-requests
func (h *HRHandler) CreateLeaveRequest(c *gin.Context) {
	var req hrapp.LeaveRequestRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.hrService.CreateLeaveRequest(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ApproveLeaveRequest handles POST /api/hr/leave-requests/:id/approve
func (h *HRHandler) ApproveLeaveRequest(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.hrService.ApproveLeaveRequest(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// RejectLeaveRequest handles POST /api/hr/leave-requests/:id/reject
func (h *HRHandler) RejectLeaveRequest(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.hrService.RejectLeaveRequest(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// ListPayrolls handles GET /api/hr/payrolls
func (h *HRHandler) ListPayrolls(c *gin.Context) {
	var q hrapp.PayrollListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.hrService.ListPayrolls(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetPayroll handles GET /api/hr/payrolls/:id
func (h *HRHandler) GetPayroll(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.hrService.GetPayroll(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreatePayroll handles POST /api/hr/payrolls
func (h *HRHandler) CreatePayroll(c *gin.Context) {
	var req hrapp.PayrollRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.hrService.CreatePayroll(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
