// Package system serves the liveness, detailed health and entity metrics
// endpoints.
package system

import (
	"context"
	"runtime"
	"time"

	"github.com/erp/erpapp/internal/infrastructure/telemetry"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// Checker is a dependency probed by the detailed health check
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Pinger is satisfied by the database handle
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemService reports process and dependency health
type SystemService struct {
	db       Pinger
	checkers []Checker
	counter  telemetry.EntityCounter
	version  string
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time
	sysinfo  func(ctx context.Context) SystemInfo
}

// NewSystemService creates a new system service. Extra checkers, such as
// Redis, are reported next to the database.
func NewSystemService(db Pinger, counter telemetry.EntityCounter, version string, logger *zap.Logger, checkers ...Checker) *SystemService {
	return &SystemService{
		db:       db,
		checkers: checkers,
		counter:  counter,
		version:  version,
		timeout:  3 * time.Second,
		logger:   logger,
		now:      time.Now,
		sysinfo:  collectSystemInfo,
	}
}

// Health is the liveness probe. It never touches dependencies.
func (s *SystemService) Health() HealthResponse {
	return HealthResponse{
		Status:    StatusHealthy,
		Timestamp: s.now().UTC(),
		Version:   s.version,
	}
}

// DetailedHealth pings the database and every extra checker and attaches
// host resource usage.
func (s *SystemService) DetailedHealth(ctx context.Context) DetailedHealthResponse {
	resp := DetailedHealthResponse{
		HealthResponse: s.Health(),
		Database:       StatusHealthy,
		System:         s.sysinfo(ctx),
	}

	if err := s.probe(ctx, s.db.Ping); err != nil {
		s.logger.Warn("Database health check failed", zap.Error(err))
		resp.Database = statusUnhealthy + ": " + err.Error()
		resp.Status = StatusDegraded
	}

	if len(s.checkers) > 0 {
		resp.Dependencies = make(map[string]string, len(s.checkers))
		for _, c := range s.checkers {
			if err := s.probe(ctx, c.Check); err != nil {
				s.logger.Warn("Dependency health check failed", zap.String("dependency", c.Name()), zap.Error(err))
				resp.Dependencies[c.Name()] = statusUnhealthy + ": " + err.Error()
				resp.Status = StatusDegraded
				continue
			}
			resp.Dependencies[c.Name()] = StatusHealthy
		}
	}
	return resp
}

func (s *SystemService) probe(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return fn(ctx)
}

// Metrics returns headline entity counts. A failing store is reported in
// the body rather than as an HTTP error.
func (s *SystemService) Metrics(ctx context.Context) MetricsResponse {
	resp := MetricsResponse{Timestamp: s.now().UTC()}

	counts, err := s.counter.EntityCounts(ctx)
	if err != nil {
		s.logger.Error("Failed to count entities", zap.Error(err))
		resp.Error = err.Error()
		return resp
	}
	resp.Metrics = &EntityMetrics{
		UsersCount:    counts.Users,
		LeadsCount:    counts.Leads,
		ContactsCount: counts.Contacts,
		DealsCount:    counts.Deals,
		ProductsCount: counts.Products,
	}
	return resp
}

// collectSystemInfo reads host statistics. Fields that cannot be read are
// left zero.
func collectSystemInfo(ctx context.Context) SystemInfo {
	info := SystemInfo{
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		CPUCount:  runtime.NumCPU(),
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
		info.CPUCount = n
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemoryUsage = MemoryUsage{
			Total:     vm.Total,
			Available: vm.Available,
			Percent:   vm.UsedPercent,
		}
	}
	if du, err := disk.UsageWithContext(ctx, "/"); err == nil {
		info.DiskUsage = DiskUsage{
			Total:   du.Total,
			Free:    du.Free,
			Percent: du.UsedPercent,
		}
	}
	return info
}
