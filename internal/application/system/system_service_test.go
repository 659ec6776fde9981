package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/erpapp/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type stubChecker struct {
	name string
	err  error
}

func (c stubChecker) Name() string {
	return c.name
}

func (c stubChecker) Check(context.Context) error {
	return c.err
}

type stubCounter struct {
	counts report.EntityCounts
	err    error
}

func (s stubCounter) EntityCounts(context.Context) (report.EntityCounts, error) {
	return s.counts, s.err
}

var fixedNow = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

func newTestSystemService(db Pinger, counter stubCounter, checkers ...Checker) *SystemService {
	svc := NewSystemService(db, counter, "1.0.0", zap.NewNop(), checkers...)
	svc.now = func() time.Time { return fixedNow }
	svc.sysinfo = func(context.Context) SystemInfo {
		return SystemInfo{GoVersion: "go1.25", Platform: "linux/amd64", CPUCount: 4}
	}
	return svc
}

func healthyDB() Pinger {
	return pingerFunc(func(context.Context) error { return nil })
}

func TestSystemService_Health(t *testing.T) {
	svc := newTestSystemService(healthyDB(), stubCounter{})
	h := svc.Health()
	assert.Equal(t, StatusHealthy, h.Status)
	assert.Equal(t, "1.0.0", h.Version)
	assert.Equal(t, fixedNow, h.Timestamp)
}

func TestSystemService_DetailedHealth(t *testing.T) {
	ctx := context.Background()

	t.Run("all healthy", func(t *testing.T) {
		svc := newTestSystemService(healthyDB(), stubCounter{}, stubChecker{name: "redis"})
		h := svc.DetailedHealth(ctx)
		assert.Equal(t, StatusHealthy, h.Status)
		assert.Equal(t, StatusHealthy, h.Database)
		assert.Equal(t, StatusHealthy, h.Dependencies["redis"])
		assert.Equal(t, 4, h.System.CPUCount)
	})

	t.Run("database down degrades", func(t *testing.T) {
		db := pingerFunc(func(context.Context) error { return errors.New("connection refused") })
		svc := newTestSystemService(db, stubCounter{})
		h := svc.DetailedHealth(ctx)
		assert.Equal(t, StatusDegraded, h.Status)
		assert.Equal(t, "unhealthy: connection refused", h.Database)
		assert.Nil(t, h.Dependencies)
	})

	t.Run("ping honours deadline", func(t *testing.T) {
		db := pingerFunc(func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			if !ok {
				return errors.New("no deadline")
			}
			return nil
		})
		svc := newTestSystemService(db, stubCounter{})
		assert.Equal(t, StatusHealthy, svc.DetailedHealth(ctx).Database)
	})

	t.Run("failing dependency degrades", func(t *testing.T) {
		svc := newTestSystemService(healthyDB(), stubCounter{}, stubChecker{name: "redis", err: errors.New("timeout")})
		h := svc.DetailedHealth(ctx)
		assert.Equal(t, StatusDegraded, h.Status)
		assert.Equal(t, StatusHealthy, h.Database)
		assert.Equal(t, "unhealthy: timeout", h.Dependencies["redis"])
	})
}

func TestSystemService_Metrics(t *testing.T) {
	ctx := context.Background()

	svc := newTestSystemService(healthyDB(), stubCounter{counts: report.EntityCounts{Users: 2, Leads: 5, Products: 9}})
	m := svc.Metrics(ctx)
	require.NotNil(t, m.Metrics)
	assert.Empty(t, m.Error)
	assert.Equal(t, int64(2), m.Metrics.UsersCount)
	assert.Equal(t, int64(5), m.Metrics.LeadsCount)
	assert.Equal(t, int64(9), m.Metrics.ProductsCount)

	svc = newTestSystemService(healthyDB(), stubCounter{err: errors.New("no such table: users")})
	m = svc.Metrics(ctx)
	assert.Nil(t, m.Metrics)
	assert.Equal(t, "no such table: users", m.Error)
}

func TestCollectSystemInfo(t *testing.T) {
	info := collectSystemInfo(context.Background())
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)
	assert.Positive(t, info.CPUCount)
}
