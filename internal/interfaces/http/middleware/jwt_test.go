package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/erpapp/internal/domain/identity"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/internal/infrastructure/logger"
	"github.com/erp/erpapp/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	users map[string]*identity.User
	err   error
	calls int
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*identity.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, shared.ErrUnauthorized
}

func authRouter(a Authenticator, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), JWTAuthMiddleware(a))
	router.GET("/test", handler)
	return router
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	alice := &identity.User{Username: "alice", IsActive: true}
	alice.ID = 7
	stub := &stubAuthenticator{users: map[string]*identity.User{"good-token": alice}}

	var seen *identity.User
	var ctxUserID uint
	router := authRouter(stub, func(c *gin.Context) {
		seen, _ = CurrentUser(c)
		ctxUserID = logger.GetUserID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	for _, header := range []string{"Bearer good-token", "bearer good-token"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, header)
	}
	require.NotNil(t, seen)
	assert.Equal(t, "alice", seen.Username)
	assert.Equal(t, uint(7), ctxUserID)
}

func TestJWTAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		reachesSvc bool
	}{
		{"missing header", "", false},
		{"wrong scheme", "Basic abc", false},
		{"empty token", "Bearer ", false},
		{"unknown token", "Bearer forged", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAuthenticator{}
			router := authRouter(stub, func(c *gin.Context) {
				t.Fatal("handler must not run")
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
			assert.Equal(t, "Could not validate credentials", resp.Error.Message)
			assert.Equal(t, tt.reachesSvc, stub.calls > 0)
		})
	}
}

func TestCurrentUser_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	u, ok := CurrentUser(c)
	assert.False(t, ok)
	assert.Nil(t, u)
}

func TestJWTAuthMiddleware_StoreFailure(t *testing.T) {
	stub := &stubAuthenticator{err: errors.New("connection refused")}
	router := authRouter(stub, func(c *gin.Context) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer any-token")
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("WWW-Authenticate"))

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
	assert.Equal(t, "req-42", resp.Error.RequestID)
}
