package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrQueueFull = errors.New("queue is full")
	ErrDuplicate = errors.New("task already accepted for this key")
	ErrStopped   = errors.New("queue is stopped")
)

// Task is one unit of background work. Key identifies the trigger and period
// (e.g. "pending_reminder:2025-10-07"); a key is accepted at most once per
// retention window. An empty Key disables the check.
type Task struct {
	ID   string
	Key  string
	Name string
	Run  func(ctx context.Context) error
}

type Config struct {
	Workers     int
	Size        int
	TaskTimeout time.Duration
	// Retention is how long an accepted key blocks duplicates.
	Retention time.Duration
}

// Queue runs tasks on a fixed pool of workers. Delivery is at-most-once: a task
// that fails is logged and never retried, and tasks still buffered at Stop are
// dropped.
type Queue struct {
	config Config
	now    func() time.Time

	tasks  chan Task
	wg     sync.WaitGroup
	stopCh chan struct{}

	mu      sync.Mutex
	seen    map[string]time.Time
	stopped bool
}

func New(cfg Config) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.Size <= 0 {
		cfg.Size = 32
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = 2 * time.Minute
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 36 * time.Hour
	}

	return &Queue{
		config: cfg,
		now:    time.Now,
		tasks:  make(chan Task, cfg.Size),
		stopCh: make(chan struct{}),
		seen:   make(map[string]time.Time),
	}
}

// Start launches the workers.
func (q *Queue) Start() {
	for i := 0; i < q.config.Workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	slog.Info("Queue: started", "workers", q.config.Workers, "size", q.config.Size)
}

// Enqueue never blocks. It returns ErrQueueFull, ErrDuplicate or ErrStopped
// when the task is not accepted.
func (q *Queue) Enqueue(task Task) (string, error) {
	if task.Run == nil {
		return "", fmt.Errorf("queue: task %q has no Run function", task.Name)
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		return "", ErrStopped
	}

	now := q.now()
	q.prune(now)
	if task.Key != "" {
		if _, ok := q.seen[task.Key]; ok {
			slog.Warn("Queue: duplicate task dropped", "task", task.Name, "key", task.Key)
			return "", ErrDuplicate
		}
	}

	select {
	case q.tasks <- task:
	default:
		slog.Warn("Queue: full, task dropped", "task", task.Name, "key", task.Key)
		return "", ErrQueueFull
	}

	if task.Key != "" {
		q.seen[task.Key] = now
	}
	return task.ID, nil
}

func (q *Queue) prune(now time.Time) {
	for key, at := range q.seen {
		if now.Sub(at) >= q.config.Retention {
			delete(q.seen, key)
		}
	}
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()

	for {
		select {
		case <-q.stopCh:
			return
		case task := <-q.tasks:
			q.run(id, task)
		}
	}
}

func (q *Queue) run(worker int, task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), q.config.TaskTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			slog.Error("Queue: task panicked", "worker", worker, "task", task.Name, "task_id", task.ID, "panic", p)
		}
	}()

	if err := task.Run(ctx); err != nil {
		slog.Error("Queue: task failed", "worker", worker, "task", task.Name, "task_id", task.ID, "error", err)
		return
	}
	slog.Info("Queue: task done", "worker", worker, "task", task.Name, "task_id", task.ID, "duration", time.Since(start))
}

// Stop waits for running tasks and drops whatever is still buffered.
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	q.mu.Unlock()

	close(q.stopCh)
	q.wg.Wait()

	if dropped := len(q.tasks); dropped > 0 {
		slog.Warn("Queue: dropped buffered tasks on stop", "count", dropped)
	}
	slog.Info("Queue: stopped")
}
