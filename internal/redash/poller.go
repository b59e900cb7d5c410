// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package redash

// In this file: the job poller.

import (
	"context"
	"log/slog"
	"runtime/trace"
	"time"
)

const (
	DefaultTimeout      = 60 * time.Second
	DefaultPollInterval = 1 * time.Second
	// minPollInterval is the floor for the poll interval, zero or negative
	// intervals are raised to it.
	minPollInterval = 10 * time.Millisecond
)

// pollState is the state of the poller.
type pollState uint8

const (
	statePolling pollState = iota
	stateSucceeded
	stateFailed
	stateTimedOut
)

// Poller waits for the jobs to reach the terminal status.
type Poller struct {
	r        Requester
	interval time.Duration
	timeout  time.Duration
	lg       *slog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// PollerOption is the Poller option.
type PollerOption func(*Poller)

// WithPollInterval sets the interval between the status checks.
func WithPollInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		p.interval = max(d, minPollInterval)
	}
}

// WithTimeout sets the time allowed for the job to complete.
func WithTimeout(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithPollerLogger sets the poller logger.
func WithPollerLogger(lg *slog.Logger) PollerOption {
	return func(p *Poller) {
		if lg != nil {
			p.lg = lg
		}
	}
}

// withClock replaces the clock and the sleep function, used in tests.
func withClock(now func() time.Time, sleep func(context.Context, time.Duration) error) PollerOption {
	return func(p *Poller) {
		p.now = now
		p.sleep = sleep
	}
}

// NewPoller creates a new Poller that checks the jobs using r.
func NewPoller(r Requester, opts ...PollerOption) *Poller {
	p := &Poller{
		r:        r,
		interval: DefaultPollInterval,
		timeout:  DefaultTimeout,
		lg:       slog.Default(),
		now:      time.Now,
		sleep:    sleepCtx,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// sleepCtx sleeps for d, or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	case <-t.C:
		return nil
	}
}

// Wait polls the job until it reaches the terminal status, and returns it.
// Failed and cancelled jobs are returned without an error, the caller should
// examine the status.  If the job does not complete within the timeout, Wait
// returns *TimeoutError.
func (p *Poller) Wait(ctx context.Context, jobID string) (*Job, error) {
	ctx, task := trace.NewTask(ctx, "redash.Poller.Wait")
	defer task.End()

	lg := p.lg.With("job_id", jobID)
	var (
		start  = p.now()
		state  = statePolling
		job    *Job
		checks int
	)
	for state == statePolling {
		if p.now().Sub(start) >= p.timeout {
			state = stateTimedOut
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, context.Cause(ctx)
		}
		var err error
		job, err = GetJob(ctx, p.r, jobID)
		if err != nil {
			return nil, err
		}
		checks++
		lg.DebugContext(ctx, "job status", "status", job.Status, "check", checks)

		switch job.Status {
		case JobSucceeded:
			state = stateSucceeded
		case JobFailed, JobCancelled:
			state = stateFailed
		default:
			if err := p.sleep(ctx, p.interval); err != nil {
				return nil, err
			}
		}
	}
	if state == stateTimedOut {
		elapsed := p.now().Sub(start)
		lg.WarnContext(ctx, "job timed out", "checks", checks, "elapsed", elapsed, "timeout", p.timeout)
		return nil, &TimeoutError{JobID: jobID, Timeout: p.timeout, Elapsed: elapsed}
	}
	return job, nil
}
