package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kristindyulgeryan/stock-market-app/app/cfg"
	"github.com/kristindyulgeryan/stock-market-app/app/database"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	userRepo      database.UserRepository
	sender        DigestSender
	interval      time.Duration
	workerCount   int
	digestHourUTC int
	nextDigestAt  time.Time
	now           func() time.Time
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	taskQueue     chan TaskInterface
}

func NewScheduler(userRepo database.UserRepository, sender DigestSender) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		userRepo:      userRepo,
		sender:        sender,
		interval:      time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount:   cfg.WorkerCount,
		digestHourUTC: cfg.DigestHourUTC,
		now:           time.Now,
		ctx:           ctx,
		cancel:        cancel,
		taskQueue:     make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.nextDigestAt = nextDigestRun(s.now().UTC(), s.digestHourUTC)
	slog.Info("Digest run scheduled", "next_run_at", s.nextDigestAt)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueDueDigestRun()
			}
		}
	}()

}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// EnqueueDigestRun fans out one SendDigestTask per registered user. Also
// reachable through the API for manual runs, so it never touches the
// scheduler's own run clock.
func (s *Scheduler) EnqueueDigestRun() (int, error) {
	users, err := s.userRepo.GetUsersForDigest()
	if err != nil {
		return 0, fmt.Errorf("failed to load digest recipients: %w", err)
	}

	if len(users) == 0 {
		slog.Debug("No digest recipients found")
		return 0, nil
	}

	enqueued := 0
	for _, user := range users {
		task := NewSendDigestTask(user, s.sender)
		if err := s.EnqueueTask(task); err != nil {
			slog.Warn("Failed to enqueue SendDigestTask", "user", user.Email, "error", err)
			continue
		}
		enqueued++
	}

	slog.Info("Digest run enqueued", "recipients", len(users), "enqueued", enqueued)

	return enqueued, nil
}

func (s *Scheduler) EnqueueWelcomeEmail(user database.User) error {
	task := NewWelcomeEmailTask(user, s.sender)
	if err := s.EnqueueTask(task); err != nil {
		return fmt.Errorf("failed to enqueue WelcomeEmailTask: %w", err)
	}

	return nil
}

func (s *Scheduler) enqueueDueDigestRun() {
	now := s.now().UTC()
	if now.Before(s.nextDigestAt) {
		slog.Debug("Digest run not due yet", "next_run_at", s.nextDigestAt)
		return
	}

	if _, err := s.EnqueueDigestRun(); err != nil {
		slog.Error("Failed to enqueue digest run", "error", err)
	}

	s.nextDigestAt = nextDigestRun(now, s.digestHourUTC)
	slog.Info("Digest run scheduled", "next_run_at", s.nextDigestAt)
}

// nextDigestRun returns the first instant strictly after now that falls on
// hourUTC o'clock UTC.
func nextDigestRun(now time.Time, hourUTC int) time.Time {
	now = now.UTC()
	run := time.Date(now.Year(), now.Month(), now.Day(), hourUTC, 0, 0, 0, time.UTC)
	if !run.After(now) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "user", task.GetUserEmail(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			// The retry goroutine joins the WaitGroup so Stop cannot close
			// the task queue while a re-enqueue is still pending.
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				case <-time.After(retryDelay):
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
