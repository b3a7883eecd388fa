package app

import (
	"os"
	"time"

	"github.com/greenbean/storefront/internal/session"
	"github.com/greenbean/storefront/pkg/metrics"
	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.UTC
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err = a.sched.AddFunc("@every 30s", a.SchedProcessMonitorTask)
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@hourly", a.SchedPurgeSessions)
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // G115: PID is always within int32 range
	if err != nil {
		return
	}

	cpuuse, err := p.CPUPercent()
	if err == nil {
		metrics.Observe(metrics.ProcessCPU, cpuuse)
	}

	meminfo, err := p.MemoryInfo()
	if err == nil {
		metrics.Observe(metrics.ProcessMemory, float64(meminfo.RSS/1024/1024))
	}
}

// SchedPurgeSessions drops expired server side sessions. Cookie and redis stores expire on their own.
func (a *Application) SchedPurgeSessions() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	store, ok := a.store.(*session.ServerStore)
	if !ok {
		return
	}
	n, err := store.Purge()
	if err != nil {
		zap.L().Warn("purge sessions", zap.Error(err))
		return
	}
	if n > 0 {
		zap.L().Info("expired sessions purged", zap.Int("count", n))
	}
}
