package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"pg-backend/internal/cache"
)

type Checker struct {
	db        *pgxpool.Pool
	startedAt time.Time
}

func NewChecker(db *pgxpool.Pool) *Checker {
	return &Checker{db: db, startedAt: time.Now()}
}

// Status is the basic health payload for load balancer probes.
type Status struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	Uptime   string `json:"uptime"`
}

// DetailedStatus adds host resource usage for the admin diagnostics page.
type DetailedStatus struct {
	Status
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
	DiskPercent   float64 `json:"disk_percent"`
}

// Check pings the database and reports overall health. Redis being down
// degrades caching but does not fail the check.
func (c *Checker) Check(ctx context.Context) Status {
	s := Status{
		Status:   "ok",
		Database: "up",
		Redis:    "up",
		Uptime:   time.Since(c.startedAt).Round(time.Second).String(),
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.db.Ping(pingCtx); err != nil {
		s.Status = "degraded"
		s.Database = "down"
	}

	if !cache.IsHealthy() {
		s.Redis = "down"
	}

	return s
}

// CheckDetailed extends Check with CPU, memory and disk usage of the host.
func (c *Checker) CheckDetailed(ctx context.Context) DetailedStatus {
	d := DetailedStatus{Status: c.Check(ctx)}

	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		d.CPUPercent = percentages[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		d.MemoryPercent = vm.UsedPercent
		d.MemoryUsedMB = vm.Used / 1024 / 1024
	}
	if du, err := disk.Usage("/"); err == nil {
		d.DiskPercent = du.UsedPercent
	}

	return d
}
