package identity

import (
	"testing"
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with default role", func(t *testing.T) {
		user, err := NewUser("jdoe", "JDoe@Example.com", " John Doe ", "$2a$10$hash", "")

		require.NoError(t, err)
		assert.Equal(t, "jdoe", user.Username)
		assert.Equal(t, "jdoe@example.com", user.Email)
		assert.Equal(t, "John Doe", user.FullName)
		assert.Equal(t, RoleEmployee, user.Role)
		assert.True(t, user.IsActive)
		assert.True(t, user.IsNew())
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := NewUser("ab", "a@b.com", "", "hash", RoleAdmin)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Contains(t, err.Error(), "at least 3 characters")
	})

	t.Run("rejects invalid characters", func(t *testing.T) {
		_, err := NewUser("john doe", "a@b.com", "", "hash", RoleAdmin)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("jdoe", "not-an-email", "", "hash", RoleAdmin)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser("jdoe", "a@b.com", "", "hash", Role("pirate"))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects empty hash", func(t *testing.T) {
		_, err := NewUser("jdoe", "a@b.com", "", "", RoleAdmin)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, r)

	r, err = ParseRole("hr_manager")
	require.NoError(t, err)
	assert.Equal(t, RoleHRManager, r)

	_, err = ParseRole("root")
	assert.Error(t, err)
}

func TestUser_LoginLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("inactive user cannot login", func(t *testing.T) {
		user, _ := NewUser("jdoe", "a@b.com", "", "hash", RoleEmployee)
		user.Deactivate()
		assert.ErrorIs(t, user.CheckCanLogin(now), shared.ErrAccountInactive)
	})

	t.Run("locks after max attempts", func(t *testing.T) {
		user, _ := NewUser("jdoe", "a@b.com", "", "hash", RoleEmployee)

		for i := 0; i < 4; i++ {
			assert.False(t, user.RecordLoginFailure(now, 5, 15*time.Minute))
		}
		assert.Equal(t, 4, user.FailedLoginAttempts)

		locked := user.RecordLoginFailure(now, 5, 15*time.Minute)
		assert.True(t, locked)
		assert.True(t, user.IsLocked(now))
		assert.ErrorIs(t, user.CheckCanLogin(now), shared.ErrAccountLocked)

		// lock expires
		later := now.Add(16 * time.Minute)
		assert.False(t, user.IsLocked(later))
		assert.NoError(t, user.CheckCanLogin(later))
	})

	t.Run("success resets counter and stamps last login", func(t *testing.T) {
		user, _ := NewUser("jdoe", "a@b.com", "", "hash", RoleEmployee)
		user.RecordLoginFailure(now, 5, time.Minute)

		user.RecordLoginSuccess(now)

		assert.Equal(t, 0, user.FailedLoginAttempts)
		assert.Nil(t, user.LockedUntil)
		require.NotNil(t, user.LastLogin)
		assert.Equal(t, now, *user.LastLogin)
	})
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))
}
