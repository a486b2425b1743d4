package api

import (
	"context"

	"github.com/kristindyulgeryan/stock-market-app/app/database"
	"github.com/kristindyulgeryan/stock-market-app/app/news"
	"github.com/kristindyulgeryan/stock-market-app/app/tasks"
)

type NewsSourceInterface interface {
	GetNews(ctx context.Context, symbols []string) ([]news.Article, error)
}

var _ NewsSourceInterface = (*news.Aggregator)(nil)

type Handler struct {
	userRepo      database.UserRepository
	watchlistRepo database.WatchlistRepository
	newsSource    NewsSourceInterface
	scheduler     tasks.TaskSchedulerInterface
}
