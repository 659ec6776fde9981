package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/erpapp/internal/domain/identity"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/internal/interfaces/http/dto"
	"github.com/erp/erpapp/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	c.Set(middleware.RequestIDKey, "req-1")
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", shared.NewDomainError("NOT_FOUND", "Lead not found"), http.StatusNotFound, dto.ErrCodeNotFound, "Lead not found"},
		{"duplicate", shared.NewDomainError("ALREADY_EXISTS", "SKU already exists"), http.StatusBadRequest, dto.ErrCodeAlreadyExists, "SKU already exists"},
		{"invalid state", shared.ErrInvalidState, http.StatusBadRequest, dto.ErrCodeInvalidState, "Operation not allowed in current state"},
		{"insufficient stock", shared.ErrInsufficientStock, http.StatusBadRequest, dto.ErrCodeInsufficientStock, "Insufficient stock available"},
		{"overpayment", shared.ErrOverpayment, http.StatusBadRequest, dto.ErrCodeOverpayment, "Payment exceeds the invoice balance"},
		{"locked", shared.ErrAccountLocked, http.StatusUnauthorized, dto.ErrCodeAccountLocked, "Account is temporarily locked"},
		{"wrapped domain error", fmt.Errorf("record payment: %w", shared.ErrOverpayment), http.StatusBadRequest, dto.ErrCodeOverpayment, "Payment exceeds the invoice balance"},
		{"plain error is hidden", errors.New("pq: connection refused"), http.StatusInternalServerError, dto.ErrCodeInternal, internalErrorMessage},
		{"unknown domain code is hidden", shared.NewDomainError("SOMETHING_ODD", "detail"), http.StatusInternalServerError, dto.ErrCodeInternal, internalErrorMessage},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/api/crm/leads/1")
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}

	t.Run("nil writes nothing", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/")
		h.HandleError(c, nil)
		assert.Empty(t, w.Body.String())
	})
}

func TestBaseHandler_ParseID(t *testing.T) {
	h := &BaseHandler{}

	t.Run("valid", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/leads/42")
		c.Params = gin.Params{{Key: "id", Value: "42"}}
		id, ok := h.parseID(c)
		assert.True(t, ok)
		assert.Equal(t, uint(42), id)
	})

	for _, raw := range []string{"abc", "0", "-3", ""} {
		t.Run("rejects "+raw, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/leads/x")
			c.Params = gin.Params{{Key: "id", Value: raw}}
			_, ok := h.parseID(c)
			assert.False(t, ok)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
			assert.Equal(t, "Invalid id", resp.Error.Message)
		})
	}
}

func TestBaseHandler_QueryInt(t *testing.T) {
	h := &BaseHandler{}

	c, _ := newTestContext(http.MethodGet, "/recent-activities")
	v, ok := h.queryInt(c, "limit", 10)
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	c, _ = newTestContext(http.MethodGet, "/recent-activities?limit=25")
	v, ok = h.queryInt(c, "limit", 10)
	assert.True(t, ok)
	assert.Equal(t, 25, v)

	c, w := newTestContext(http.MethodGet, "/recent-activities?limit=many")
	_, ok = h.queryInt(c, "limit", 10)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "limit must be an integer", decodeError(t, w).Error.Message)
}

func TestActorID(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/")
	assert.Equal(t, uint(0), actorID(c))

	user := &identity.User{Username: "jdoe"}
	user.ID = 9
	c.Set(middleware.AuthUserKey, user)
	assert.Equal(t, uint(9), actorID(c))
}

func TestBaseHandler_Responses(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext(http.MethodPost, "/")
	h.Created(c, map[string]int{"id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())

	c, w = newTestContext(http.MethodPost, "/")
	h.BadRequest(c, "bad")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_INVALID_INPUT","message":"bad","request_id":"req-1"}}`, w.Body.String())
}
