package news

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

const (
	defaultLookbackDays = 5
	generalCategory     = "general"
)

// Source is the upstream news provider queried by the Aggregator.
type Source interface {
	CompanyNews(ctx context.Context, symbol, from, to string) ([]RawArticle, error)
	MarketNews(ctx context.Context, category string) ([]RawArticle, error)
}

var _ Source = (*FinnhubClient)(nil)

// Aggregator produces a ranked, deduplicated, size-bounded list of news
// articles for a single digest. It holds no state across calls and is
// safe to use from concurrent per-user pipelines.
type Aggregator struct {
	source       Source
	lookbackDays int
	now          func() time.Time
}

func NewAggregator(source Source, lookbackDays int) *Aggregator {
	if lookbackDays <= 0 {
		lookbackDays = defaultLookbackDays
	}

	return &Aggregator{
		source:       source,
		lookbackDays: lookbackDays,
		now:          time.Now,
	}
}

// GetNews returns up to 6 articles for the given watchlist symbols,
// newest first. With one or more symbols it round-robins per-symbol
// queries and absorbs individual fetch failures; with none it falls
// back to a single general-market query whose failure is returned to
// the caller.
func (a *Aggregator) GetNews(ctx context.Context, symbols []string) ([]Article, error) {
	cleaned := normalizeSymbols(symbols)

	if len(cleaned) > 0 {
		from, to := DateRange(a.now(), a.lookbackDays)
		return a.companyNews(ctx, cleaned, from, to), nil
	}

	return a.generalNews(ctx)
}

// collector accumulates articles selected across the round-robin loop.
// Ids are tracked so a story surfaced for one symbol is never picked
// again for another.
type collector struct {
	target   int
	articles []RawArticle
	ids      map[ArticleID]struct{}
}

func newCollector(target int) *collector {
	return &collector{
		target: target,
		ids:    make(map[ArticleID]struct{}),
	}
}

func (c *collector) full() bool {
	return len(c.articles) >= c.target
}

func (c *collector) seen(id ArticleID) bool {
	_, ok := c.ids[id]
	return ok
}

func (c *collector) add(a RawArticle) {
	c.articles = append(c.articles, a)
	c.ids[a.ID] = struct{}{}
}

func (a *Aggregator) companyNews(ctx context.Context, symbols []string, from, to string) []Article {
	plan := planDistribution(len(symbols))
	acc := newCollector(plan.targetNewsCount)

	for round := 0; round < plan.itemsPerSymbol && !acc.full(); round++ {
		for _, symbol := range symbols {
			if acc.full() {
				break
			}

			data, err := a.source.CompanyNews(ctx, symbol, from, to)
			if err != nil {
				// One bad upstream call must not blank the whole digest.
				slog.Error("Failed to fetch company news", "symbol", symbol, "round", round, "error", err)
				continue
			}

			for _, article := range data {
				if validArticle(article) && !acc.seen(article.ID) {
					acc.add(article)
					break
				}
			}
		}
	}

	articles := acc.articles
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Datetime > articles[j].Datetime
	})

	if len(articles) > plan.targetNewsCount {
		articles = articles[:plan.targetNewsCount]
	}

	out := make([]Article, 0, len(articles))
	for i, article := range articles {
		// The digest is labeled by the primary (first) symbol even when
		// articles come from other watched symbols.
		out = append(out, formatArticle(article, true, symbols[0], i))
	}

	return out
}

func (a *Aggregator) generalNews(ctx context.Context) ([]Article, error) {
	data, err := a.source.MarketNews(ctx, generalCategory)
	if err != nil {
		// No secondary source to degrade to; the caller decides what an
		// empty digest means for the user.
		return nil, fmt.Errorf("failed to fetch general market news: %w", err)
	}

	// The general feed is prone to id collisions across unrelated
	// stories, so deduplicate on the full id|url|headline key.
	seen := make(map[string]struct{})
	unique := make([]RawArticle, 0, len(data))
	for _, article := range data {
		if !validArticle(article) {
			continue
		}

		key := fmt.Sprintf("%s|%s|%s", article.ID, article.URL, article.Headline)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, article)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Datetime > unique[j].Datetime
	})

	if len(unique) > targetNewsCount {
		unique = unique[:targetNewsCount]
	}

	out := make([]Article, 0, len(unique))
	for i, article := range unique {
		out = append(out, formatArticle(article, false, "", i))
	}

	return out, nil
}

func normalizeSymbols(symbols []string) []string {
	cleaned := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}
