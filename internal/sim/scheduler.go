package sim

import (
	"sync"
	"time"
)

// Identity names the principal allowed to drive scheduled jobs. The hub runs
// jobs under the module's own identity; anything else is rejected before any
// job body executes.
type Identity string

// JobFunc is a single recurring unit of simulation work. dt is the elapsed
// simulated time since the job last ran.
type JobFunc func(now time.Time, dt float64) error

type job struct {
	name    string
	every   time.Duration
	nextDue time.Time
	lastRun time.Time
	run     JobFunc
}

// Scheduler owns a monotonic next-due timestamp per periodic job and runs all
// jobs due at a given instant. It decouples the simulation core from the
// host's periodic-invocation mechanism.
type Scheduler struct {
	mu    sync.Mutex
	owner Identity
	jobs  []*job
}

// NewScheduler creates a scheduler whose jobs may only be driven by owner.
func NewScheduler(owner Identity) *Scheduler {
	return &Scheduler{owner: owner}
}

// Owner reports the identity the scheduler was bound to.
func (s *Scheduler) Owner() Identity {
	if s == nil {
		return ""
	}
	return s.owner
}

// Register adds a recurring job. The first run happens on the first RunDue at
// or after the registration time plus the interval, unless immediate is set.
func (s *Scheduler) Register(name string, every time.Duration, immediate bool, run JobFunc) {
	if s == nil || run == nil || every <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	j := &job{name: name, every: every, run: run}
	if !immediate {
		j.nextDue = time.Now().Add(every)
	}
	s.jobs = append(s.jobs, j)
}

// RunDue executes every job whose next-due timestamp is at or before now.
// A sender other than the owning identity is rejected outright and no job
// runs. The first job error aborts the remaining jobs for this invocation;
// next-due bookkeeping for jobs that already ran is preserved.
func (s *Scheduler) RunDue(now time.Time, sender Identity) error {
	if s == nil {
		return nil
	}
	if sender != s.owner {
		return Unauthorized(string(sender))
	}
	s.mu.Lock()
	due := make([]*job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if !now.Before(j.nextDue) {
			due = append(due, j)
		}
	}
	s.mu.Unlock()

	for _, j := range due {
		dt := j.every.Seconds()
		if !j.lastRun.IsZero() {
			if elapsed := now.Sub(j.lastRun).Seconds(); elapsed > 0 {
				dt = elapsed
			}
		}
		err := j.run(now, dt)
		s.mu.Lock()
		j.lastRun = now
		j.nextDue = now.Add(j.every)
		s.mu.Unlock()
		if err != nil {
			return err
		}
	}
	return nil
}
