package news

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// ErrMissingAPIKey is returned when no upstream credential is
// configured. It is surfaced at construction time, before any network
// activity happens.
var ErrMissingAPIKey = errors.New("finnhub API key is not set")

// FinnhubClient queries Finnhub for company-scoped and general market
// news through the official SDK. It is stateless and safe for
// concurrent use.
type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey, userAgent string) (*FinnhubClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.UserAgent = userAgent

	return &FinnhubClient{
		client: finnhub.NewAPIClient(cfg).DefaultApi,
	}, nil
}

// CompanyNews fetches news for a single symbol within the inclusive
// from/to date window (YYYY-MM-DD).
func (c *FinnhubClient) CompanyNews(ctx context.Context, symbol, from, to string) ([]RawArticle, error) {
	res, _, err := c.client.CompanyNews(ctx).Symbol(symbol).From(from).To(to).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company news for %s: %w", symbol, err)
	}

	return mapNews(res), nil
}

// MarketNews fetches general market news for the given category.
func (c *FinnhubClient) MarketNews(ctx context.Context, category string) ([]RawArticle, error) {
	res, _, err := c.client.MarketNews(ctx).Category(category).MinId(0).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market news: %w", err)
	}

	return mapNews(res), nil
}

// mapNews converts the SDK's pointer-field responses into the
// aggregator's boundary type. Missing fields map to zero values and are
// rejected later by validArticle.
func mapNews[T finnhub.CompanyNews | finnhub.MarketNews](items []T) []RawArticle {
	articles := make([]RawArticle, 0, len(items))

	for _, item := range items {
		// CompanyNews and MarketNews are field-for-field identical
		// generated structs, so either converts to the other.
		n := finnhub.CompanyNews(item)
		var a RawArticle

		if n.Id != nil {
			a.ID = ArticleID(strconv.FormatInt(*n.Id, 10))
		}
		if n.Headline != nil {
			a.Headline = *n.Headline
		}
		if n.Summary != nil {
			a.Summary = *n.Summary
		}
		if n.Url != nil {
			a.URL = *n.Url
		}
		if n.Source != nil {
			a.Source = *n.Source
		}
		if n.Datetime != nil {
			a.Datetime = *n.Datetime
		}
		if n.Image != nil {
			a.Image = *n.Image
		}
		if n.Related != nil {
			a.Related = *n.Related
		}

		articles = append(articles, a)
	}

	return articles
}
