package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kristindyulgeryan/stock-market-app/app/database"
)

type WelcomeEmailTask struct {
	Task
	user   database.User
	sender DigestSender
}

func NewWelcomeEmailTask(user database.User, sender DigestSender) *WelcomeEmailTask {
	return &WelcomeEmailTask{
		Task:   NewTask(TaskTypeWelcomeEmail, user.Email),
		user:   user,
		sender: sender,
	}
}

func (t *WelcomeEmailTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.sender.SendWelcome(ctx, t.user); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	slog.Info("Task completed",
		"type", "WelcomeEmail",
		"user", t.UserEmail,
		"duration", t.GetDuration())

	return nil
}
