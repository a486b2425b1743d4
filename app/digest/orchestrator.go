package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kristindyulgeryan/stock-market-app/app/database"
	"github.com/kristindyulgeryan/stock-market-app/app/news"
)

// NewsSource produces the ranked article list for one digest.
type NewsSource interface {
	GetNews(ctx context.Context, symbols []string) ([]news.Article, error)
}

// maxEnrichedArticles bounds how many article pages are fetched for
// full-text extraction per digest.
const maxEnrichedArticles = 3

const articleFetchTimeout = 15 * time.Second

// digestArticle is the per-article payload handed to the summarization
// prompt: the formatted article plus optional extracted page text.
type digestArticle struct {
	news.Article
	Content string `json:"content,omitempty"`
}

// Orchestrator runs the per-user digest pipeline: resolve watchlist
// symbols, aggregate news, summarize, deliver.
type Orchestrator struct {
	watchlists database.WatchlistRepository
	source     NewsSource
	generator  TextGenerator
	mailer     Mailer
	extractor  *news.ContentExtractor
	prompts    *Prompts
	httpClient *http.Client
	userAgent  string
	now        func() time.Time
}

func NewOrchestrator(watchlists database.WatchlistRepository, source NewsSource,
	generator TextGenerator, mailer Mailer, prompts *Prompts, userAgent string) *Orchestrator {
	return &Orchestrator{
		watchlists: watchlists,
		source:     source,
		generator:  generator,
		mailer:     mailer,
		extractor:  news.NewContentExtractor(),
		prompts:    prompts,
		httpClient: &http.Client{Timeout: articleFetchTimeout},
		userAgent:  userAgent,
		now:        time.Now,
	}
}

// SendDigest builds and delivers the daily digest for one user. A
// failed news fetch yields an empty digest rather than no email; a
// failed summarization is returned so the caller can retry.
func (o *Orchestrator) SendDigest(ctx context.Context, user database.User) error {
	symbols, err := o.watchlists.GetSymbolsByEmail(user.Email)
	if err != nil {
		slog.Error("Failed to resolve watchlist symbols", "email", user.Email, "error", err)
		symbols = nil
	}

	articles, err := o.source.GetNews(ctx, symbols)
	if err != nil {
		// General-path fetch failed; the user still gets a (possibly
		// empty) digest.
		slog.Error("Failed to fetch news for user", "email", user.Email, "error", err)
		articles = nil
	}

	payload := o.enrich(ctx, articles)
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode news payload: %w", err)
	}

	prompt := o.prompts.NewsSummary.Render("newsdata", string(data))
	content, err := o.generator.Generate(ctx, NewsSummaryModel, prompt)
	if err != nil {
		return fmt.Errorf("failed to summarize news for %s: %w", user.Email, err)
	}
	if strings.TrimSpace(content) == "" {
		content = "<p>No market news today.</p>"
	}

	body := buildDigestEmail(o.now(), content)
	if err := o.mailer.Send(user.Email, o.prompts.NewsSummary.Subject, body); err != nil {
		return fmt.Errorf("failed to deliver digest: %w", err)
	}

	slog.Info("Digest sent", "email", user.Email, "articles", len(articles))
	return nil
}

// SendWelcome delivers the signup welcome email with a model-generated
// intro. Intro generation failures fall back to a static line; they
// never fail the welcome email itself.
func (o *Orchestrator) SendWelcome(ctx context.Context, user database.User) error {
	profile := fmt.Sprintf("- Country: %s\n- Investment goals: %s\n- Risk tolerance: %s\n- Preferred industry: %s",
		user.Country, user.InvestmentGoals, user.RiskTolerance, user.PreferredIndustry)

	prompt := o.prompts.Welcome.Render("userProfile", profile)
	intro, err := o.generator.Generate(ctx, WelcomeModel, prompt)
	if err != nil {
		slog.Warn("Failed to generate welcome intro", "email", user.Email, "error", err)
		intro = ""
	}
	if strings.TrimSpace(intro) == "" {
		intro = welcomeFallbackIntro
	}

	body := buildWelcomeEmail(user.Name, intro)
	if err := o.mailer.Send(user.Email, o.prompts.Welcome.Subject, body); err != nil {
		return fmt.Errorf("failed to deliver welcome email: %w", err)
	}

	slog.Info("Welcome email sent", "email", user.Email)
	return nil
}

// enrich attaches extracted page text to the first few articles so the
// summarizer has more than one-line summaries to work with. Extraction
// failures are tolerated per article.
func (o *Orchestrator) enrich(ctx context.Context, articles []news.Article) []digestArticle {
	payload := make([]digestArticle, 0, len(articles))

	for i, article := range articles {
		entry := digestArticle{Article: article}

		if i < maxEnrichedArticles {
			text, err := o.extractArticleText(ctx, article.URL)
			if err != nil {
				slog.Debug("Skipping article enrichment", "url", article.URL, "error", err)
			} else {
				entry.Content = text
			}
		}

		payload = append(payload, entry)
	}

	return payload
}

func (o *Orchestrator) extractArticleText(ctx context.Context, pageURL string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, articleFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", o.userAgent)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return "", fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return o.extractor.Run(data, pageURL)
}
