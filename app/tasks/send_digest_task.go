package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kristindyulgeryan/stock-market-app/app/database"
)

type SendDigestTask struct {
	Task
	user   database.User
	sender DigestSender
}

func NewSendDigestTask(user database.User, sender DigestSender) *SendDigestTask {
	return &SendDigestTask{
		Task:   NewTask(TaskTypeSendDigest, user.Email),
		user:   user,
		sender: sender,
	}
}

func (t *SendDigestTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.sender.SendDigest(ctx, t.user); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}

	slog.Info("Task completed",
		"type", "SendDigest",
		"user", t.UserEmail,
		"duration", t.GetDuration())

	return nil
}
