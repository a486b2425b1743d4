package tasks

import (
	"context"

	"github.com/kristindyulgeryan/stock-market-app/app/database"
)

// DigestSender delivers digest and welcome emails for a single user.
// Implemented by digest.Orchestrator.
type DigestSender interface {
	SendDigest(ctx context.Context, user database.User) error
	SendWelcome(ctx context.Context, user database.User) error
}

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application and the HTTP API to manage background email
// delivery. EnqueueDigestRun fans out one SendDigestTask per registered user
// and returns the number of tasks enqueued.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	EnqueueDigestRun() (int, error)
	EnqueueWelcomeEmail(user database.User) error
}
