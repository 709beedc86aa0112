package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/goexec/pkg/executor"
)

// Task describes a scheduled task.
type Task struct {
	ID       string
	RunAt    time.Time
	Interval time.Duration // Zero for one-time tasks
	Created  time.Time
}

// Scheduler registers callables to be submitted to an executor at absolute
// times, fixed intervals, or cron schedules.
type Scheduler interface {
	// Basic scheduling
	Schedule(id string, c *executor.Callable, runAt time.Time) error
	ScheduleAfter(id string, c *executor.Callable, delay time.Duration) error
	ScheduleRepeating(id string, c *executor.Callable, interval time.Duration) error

	// Cron scheduling
	ScheduleCron(id string, cronExpr string, c *executor.Callable) error

	// Task management
	Cancel(id string) bool
	CancelAll()
	List() []Task

	// Lifecycle
	Start() error
	Stop() <-chan struct{}
}

// Config holds scheduler configuration.
type Config struct {
	Executor     *executor.Executor
	Location     *time.Location // For cron scheduling
	TickInterval time.Duration  // How often to check for ready tasks (default: 50ms)
	MaxTasks     int            // Maximum number of scheduled tasks (default: 10000)

	// OnFire is called with the future of every submitted task. Optional;
	// without it results of fired tasks are discarded.
	OnFire func(id string, future *executor.Future)
}

type scheduledTask struct {
	id           string
	callable     *executor.Callable
	runAt        time.Time
	interval     time.Duration
	cronSchedule cron.Schedule
	created      time.Time
}

type scheduler struct {
	exec         *executor.Executor
	location     *time.Location
	tickInterval time.Duration
	maxTasks     int
	onFire       func(string, *executor.Future)
	cronParser   cron.Parser

	mu      sync.RWMutex
	tasks   map[string]*scheduledTask
	ticker  *time.Ticker
	done    chan struct{}
	stopped chan struct{}
	running bool
}

// New creates a scheduler submitting to exec with default configuration.
func New(exec *executor.Executor) (Scheduler, error) {
	return NewWithConfig(Config{Executor: exec})
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) (Scheduler, error) {
	if cfg.Executor == nil {
		return nil, fmt.Errorf("scheduler: executor cannot be nil")
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	tickInterval := cfg.TickInterval
	if tickInterval <= 0 {
		tickInterval = 50 * time.Millisecond
	}

	maxTasks := cfg.MaxTasks
	if maxTasks <= 0 {
		maxTasks = 10000
	}

	return &scheduler{
		exec:         cfg.Executor,
		location:     location,
		tickInterval: tickInterval,
		maxTasks:     maxTasks,
		onFire:       cfg.OnFire,
		cronParser:   cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		tasks:        make(map[string]*scheduledTask),
	}, nil
}

func (s *scheduler) validate(id string, c *executor.Callable) error {
	if id == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if len(id) > 255 {
		return fmt.Errorf("task ID too long (max 255 characters)")
	}
	if c == nil {
		return fmt.Errorf("callable cannot be nil")
	}
	return nil
}

// register inserts t under the scheduler lock, enforcing uniqueness and the
// task limit.
func (s *scheduler) register(t *scheduledTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[t.id]; exists {
		return fmt.Errorf("task with ID %q already exists, use a different ID or cancel the existing task first", t.id)
	}
	if len(s.tasks) >= s.maxTasks {
		return fmt.Errorf("cannot schedule task: maximum number of tasks (%d) reached", s.maxTasks)
	}

	s.tasks[t.id] = t
	return nil
}

func (s *scheduler) Schedule(id string, c *executor.Callable, runAt time.Time) error {
	if err := s.validate(id, c); err != nil {
		return err
	}
	if runAt.IsZero() {
		return fmt.Errorf("task run time cannot be zero")
	}

	return s.register(&scheduledTask{
		id:       id,
		callable: c,
		runAt:    runAt,
		created:  time.Now(),
	})
}

func (s *scheduler) ScheduleAfter(id string, c *executor.Callable, delay time.Duration) error {
	return s.Schedule(id, c, time.Now().Add(delay))
}

func (s *scheduler) ScheduleRepeating(id string, c *executor.Callable, interval time.Duration) error {
	if err := s.validate(id, c); err != nil {
		return err
	}
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", interval)
	}

	return s.register(&scheduledTask{
		id:       id,
		callable: c,
		runAt:    time.Now(),
		interval: interval,
		created:  time.Now(),
	})
}

func (s *scheduler) ScheduleCron(id string, cronExpr string, c *executor.Callable) error {
	if err := s.validate(id, c); err != nil {
		return err
	}
	if cronExpr == "" {
		return fmt.Errorf("cron expression cannot be empty")
	}

	schedule, err := s.cronParser.Parse(cronExpr)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	now := time.Now().In(s.location)
	return s.register(&scheduledTask{
		id:           id,
		callable:     c,
		runAt:        schedule.Next(now),
		cronSchedule: schedule,
		created:      now,
	})
}

func (s *scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[id]; !exists {
		return false
	}
	delete(s.tasks, id)
	return true
}

func (s *scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make(map[string]*scheduledTask)
}

func (s *scheduler) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		list = append(list, Task{
			ID:       t.id,
			RunAt:    t.runAt,
			Interval: t.interval,
			Created:  t.created,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Start launches the ticker loop. A stopped scheduler may be started
// again; the channels are per run, so a restart never touches the previous
// run's signaling.
func (s *scheduler) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler already running")
	}
	s.running = true
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	s.ticker = time.NewTicker(s.tickInterval)
	s.mu.Unlock()

	go s.run(s.done, s.stopped, s.ticker)
	return nil
}

func (s *scheduler) Stop() <-chan struct{} {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	s.running = false
	done, stopped := s.done, s.stopped
	s.mu.Unlock()

	close(done)
	return stopped
}

func (s *scheduler) run(done, stopped chan struct{}, ticker *time.Ticker) {
	defer close(stopped)
	for {
		select {
		case <-done:
			ticker.Stop()
			return
		case now := <-ticker.C:
			s.fireDue(now)
		}
	}
}

// fireDue submits every due task to the executor and reschedules or
// removes it.
func (s *scheduler) fireDue(now time.Time) {
	s.mu.Lock()
	var due []*scheduledTask
	for _, t := range s.tasks {
		if !t.runAt.After(now) {
			due = append(due, t)
		}
	}
	for _, t := range due {
		switch {
		case t.cronSchedule != nil:
			t.runAt = t.cronSchedule.Next(now.In(s.location))
		case t.interval > 0:
			t.runAt = t.runAt.Add(t.interval)
		default:
			delete(s.tasks, t.id)
		}
	}
	s.mu.Unlock()

	// Submit outside the lock; Submit never blocks on completion.
	for _, t := range due {
		future, err := s.exec.Submit(t.callable)
		if err != nil {
			// Executor shut down; nothing further will fire.
			return
		}
		if s.onFire != nil {
			s.onFire(t.id, future)
		}
	}
}
