// Package jobs holds background maintenance tasks that run on cron
// schedules alongside the API and concierge processes.
package jobs

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/zulandar/orderdesk/internal/store"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// nextCronDuration parses a 5-field cron expression and returns the duration
// until the next fire time. Returns 0 on parse error.
func nextCronDuration(expr string) time.Duration {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return 0
	}
	next := sched.Next(time.Now())
	d := time.Until(next)
	if d < 0 {
		return 0
	}
	return d
}

// AgentReleaseJob frees support agents that have been marked busy longer
// than the TTL. Without it an agent stays busy forever once an escalation
// ends, since nothing in the conversation flow hands the agent back.
type AgentReleaseJob struct {
	agents *store.AgentStore
	expr   string
	ttl    time.Duration
	out    io.Writer
}

// AgentReleaseOpts holds parameters for creating an AgentReleaseJob.
type AgentReleaseOpts struct {
	Agents *store.AgentStore
	Cron   string        // 5-field cron expression
	TTL    time.Duration // how long an agent may stay busy
	Out    io.Writer     // defaults to os.Stdout
}

// NewAgentReleaseJob creates an AgentReleaseJob with the given options.
func NewAgentReleaseJob(opts AgentReleaseOpts) (*AgentReleaseJob, error) {
	if opts.Agents == nil {
		return nil, fmt.Errorf("jobs: agent store is required")
	}
	if opts.Cron == "" {
		return nil, fmt.Errorf("jobs: cron expression is required")
	}
	if _, err := cronParser.Parse(opts.Cron); err != nil {
		return nil, fmt.Errorf("jobs: parse cron %q: %w", opts.Cron, err)
	}
	if opts.TTL <= 0 {
		return nil, fmt.Errorf("jobs: ttl must be positive")
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &AgentReleaseJob{
		agents: opts.Agents,
		expr:   opts.Cron,
		ttl:    opts.TTL,
		out:    out,
	}, nil
}

// Run blocks, sweeping stale agents on the configured schedule, until the
// context is cancelled.
func (j *AgentReleaseJob) Run(ctx context.Context) {
	timer := time.NewTimer(nextCronDuration(j.expr))
	defer timer.Stop()

	fmt.Fprintf(j.out, "jobs: agent release sweep scheduled (%s, ttl %v)\n", j.expr, j.ttl)
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			j.Sweep()
			timer.Reset(nextCronDuration(j.expr))
		}
	}
}

// Sweep releases every agent busy longer than the TTL and reports the count.
func (j *AgentReleaseJob) Sweep() {
	n, err := j.agents.ReleaseStale(j.ttl)
	if err != nil {
		fmt.Fprintf(j.out, "jobs: agent release sweep: %v\n", err)
		return
	}
	if n > 0 {
		fmt.Fprintf(j.out, "jobs: released %d stale agent(s)\n", n)
	}
}
