package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm translated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"pq unique violation", &pq.Error{Code: "23505"}, true},
		{"pq other error", &pq.Error{Code: "23503"}, false},
		{"sqlite message", errors.New("UNIQUE constraint failed: users.username"), true},
		{"pgx message", errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`), true},
		{"unrelated", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuplicateKey(tt.err))
		})
	}
}

func TestTranslateWriteError(t *testing.T) {
	assert.NoError(t, translateWriteError(nil, "User"))

	err := translateWriteError(gorm.ErrDuplicatedKey, "User")
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "User already exists")

	other := errors.New("boom")
	assert.Equal(t, other, translateWriteError(other, "User"))
}

func TestTranslateReadError(t *testing.T) {
	assert.ErrorIs(t, translateReadError(gorm.ErrRecordNotFound), shared.ErrNotFound)
	other := errors.New("boom")
	assert.Equal(t, other, translateReadError(other))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
