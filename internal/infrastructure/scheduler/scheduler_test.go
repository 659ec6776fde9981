package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/erpapp/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockOverdueMarker struct {
	mock.Mock
}

func (m *mockOverdueMarker) MarkOverdue(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type funcJob struct {
	name string
	fn   func(ctx context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestOverdueInvoiceSweeper_UsesStartOfDay(t *testing.T) {
	marker := new(mockOverdueMarker)
	sweeper := NewOverdueInvoiceSweeper(marker, zap.NewNop())
	sweeper.now = func() time.Time { return time.Date(2024, 5, 17, 15, 42, 9, 0, time.UTC) }

	expected := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	marker.On("MarkOverdue", mock.Anything, expected).Return(int64(3), nil)

	require.NoError(t, sweeper.Run(context.Background()))
	marker.AssertExpectations(t)
	assert.Equal(t, "overdue_invoice_sweep", sweeper.Name())
}

func TestOverdueInvoiceSweeper_PropagatesError(t *testing.T) {
	marker := new(mockOverdueMarker)
	sweeper := NewOverdueInvoiceSweeper(marker, nil)
	boom := errors.New("db down")
	marker.On("MarkOverdue", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), boom)

	err := sweeper.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestScheduler_RegisterRejectsBadSpec(t *testing.T) {
	s := New(config.SchedulerConfig{}, zap.NewNop())
	job := funcJob{name: "noop", fn: func(context.Context) error { return nil }}

	err := s.Register("not a cron spec", job)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	err = s.Register("", job)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestScheduler_NextRun(t *testing.T) {
	s := New(config.SchedulerConfig{}, zap.NewNop())
	job := funcJob{name: "hourly", fn: func(context.Context) error { return nil }}
	require.NoError(t, s.Register("@hourly", job))

	s.Start()
	defer func() { _ = s.Stop(context.Background()) }()

	next, ok := s.NextRun("hourly")
	require.True(t, ok)
	assert.True(t, next.After(time.Now()))
	assert.True(t, next.Before(time.Now().Add(61*time.Minute)))

	_, ok = s.NextRun("missing")
	assert.False(t, ok)
}

func TestScheduler_RunNowAppliesTimeout(t *testing.T) {
	s := New(config.SchedulerConfig{JobTimeout: 20 * time.Millisecond}, zap.NewNop())
	job := funcJob{name: "slow", fn: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}

	err := s.RunNow(job)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestScheduler_StopLifecycle(t *testing.T) {
	s := New(config.SchedulerConfig{}, zap.NewNop())
	assert.ErrorIs(t, s.Stop(context.Background()), ErrSchedulerNotRunning)

	s.Start()
	s.Start()
	require.NoError(t, s.Stop(context.Background()))
	assert.ErrorIs(t, s.Stop(context.Background()), ErrSchedulerNotRunning)
}
