package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"NewsTimeline/internal/ports"
)

// CronScheduler runs a job on a cron expression ("@hourly", "0 */6 * * *").
type CronScheduler struct {
	spec       string
	location   *time.Location
	runOnStart bool

	mu      sync.Mutex
	cron    *cron.Cron
	initial sync.WaitGroup
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler configured via cron expression string.
// When runOnStart is set the job also fires once right after Start.
func NewCronScheduler(spec string, location *time.Location, runOnStart bool) *CronScheduler {
	if location == nil {
		location = time.UTC
	}
	return &CronScheduler{spec: spec, location: location, runOnStart: runOnStart}
}

// Start registers job and begins scheduling. Starting twice is a no-op.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cron != nil {
		return nil
	}

	runner := cron.New(cron.WithLocation(c.location))
	if _, err := runner.AddFunc(c.spec, func() {
		if ctx.Err() != nil {
			return
		}
		job(time.Now())
	}); err != nil {
		return fmt.Errorf("cron schedule %q: %w", c.spec, err)
	}

	runner.Start()
	c.cron = runner

	if c.runOnStart {
		c.initial.Add(1)
		go func() {
			defer c.initial.Done()
			job(time.Now())
		}()
	}
	return nil
}

// Stop halts scheduling and waits for running jobs, including the start-up
// run, or ctx, whichever ends first.
func (c *CronScheduler) Stop(ctx context.Context) error {
	c.mu.Lock()
	runner := c.cron
	c.cron = nil
	c.mu.Unlock()

	if runner == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		<-runner.Stop().Done()
		c.initial.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
