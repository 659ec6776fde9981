package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/erp/erpapp/internal/infrastructure/persistence/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	mockDB := NewMockDB(t)
	defer mockDB.Close()

	assert.NotNil(t, mockDB.DB)
	assert.NotNil(t, mockDB.Mock)
	mockDB.ExpectationsWereMet(t)
}

func TestNewSQLiteDB(t *testing.T) {
	db := NewSQLiteDB(t)

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestNewTestContext(t *testing.T) {
	tc := NewTestContext(t)

	assert.NotNil(t, tc.Context)
	assert.NotNil(t, tc.Engine)
	assert.Equal(t, http.MethodGet, tc.Context.Request.Method)
}

func TestDoRequest(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]interface{}
		require.NoError(t, c.ShouldBindJSON(&body))
		body["auth"] = c.GetHeader("Authorization")
		c.JSON(http.StatusOK, body)
	})

	w := DoRequest(t, engine, http.MethodPost, "/echo", map[string]string{"name": "x"}, "tok")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := JSONBody(t, w)
	assert.Equal(t, "x", resp["name"])
	assert.Equal(t, "Bearer tok", resp["auth"])
}

func TestAssertErrorResponse(t *testing.T) {
	engine := gin.New()
	engine.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "ERR_NOT_FOUND", "message": "x"}})
	})

	w := DoRequest(t, engine, http.MethodGet, "/fail", nil, "")
	errMap := AssertErrorResponse(t, w, http.StatusNotFound, "ERR_NOT_FOUND")
	assert.Equal(t, "x", errMap["message"])
}

func TestAssertEventually(t *testing.T) {
	n := 0
	AssertEventually(t, func() bool {
		n++
		return n > 2
	}, time.Second, time.Millisecond)
}
