package digest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/kristindyulgeryan/stock-market-app/app/database"
	"github.com/kristindyulgeryan/stock-market-app/app/news"
)

func testDate(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
}

type fakeWatchlists struct {
	symbols map[string][]string
	err     error
}

func (f *fakeWatchlists) AddEntry(userID, symbol, company string) error { return nil }
func (f *fakeWatchlists) RemoveEntry(userID, symbol string) error       { return nil }
func (f *fakeWatchlists) GetEntries(userID string) ([]database.WatchlistEntry, error) {
	return nil, nil
}
func (f *fakeWatchlists) GetEntryCount() (int, error) { return 0, nil }
func (f *fakeWatchlists) GetSymbolsByEmail(email string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.symbols[email], nil
}

type fakeNewsSource struct {
	articles    []news.Article
	err         error
	lastSymbols []string
}

func (f *fakeNewsSource) GetNews(ctx context.Context, symbols []string) ([]news.Article, error) {
	f.lastSymbols = symbols
	return f.articles, f.err
}

type fakeGenerator struct {
	output  string
	err     error
	prompts []string
	models  []string
}

func (f *fakeGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	f.models = append(f.models, model)
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

type fakeMailer struct {
	to      []string
	subject []string
	body    []string
	err     error
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.subject = append(f.subject, subject)
	f.body = append(f.body, htmlBody)
	return nil
}

type blockedTransport struct{}

func (blockedTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("no network in tests")
}

func testUser() database.User {
	return database.User{
		ID:              "u-1",
		Email:           "ada@example.com",
		Name:            "Ada",
		Country:         "UK",
		InvestmentGoals: "Growth",
		RiskTolerance:   "Medium",
	}
}

func newTestOrchestrator(t *testing.T, wl *fakeWatchlists, src *fakeNewsSource,
	gen *fakeGenerator, mailer *fakeMailer) *Orchestrator {
	t.Helper()

	prompts, err := LoadPrompts()
	if err != nil {
		t.Fatalf("LoadPrompts failed: %v", err)
	}

	o := NewOrchestrator(wl, src, gen, mailer, prompts, "Test Agent/1.0")
	o.now = func() time.Time { return testDate(t) }
	o.httpClient = &http.Client{Transport: blockedTransport{}}
	return o
}

func TestSendDigest(t *testing.T) {
	wl := &fakeWatchlists{symbols: map[string][]string{
		"ada@example.com": {"AAPL", "MSFT"},
	}}
	src := &fakeNewsSource{articles: []news.Article{
		{ID: "1", Title: "Apple news", URL: "https://example.com/1", Symbol: "AAPL"},
	}}
	gen := &fakeGenerator{output: "<p>Today in markets...</p>"}
	mailer := &fakeMailer{}

	o := newTestOrchestrator(t, wl, src, gen, mailer)

	if err := o.SendDigest(context.Background(), testUser()); err != nil {
		t.Fatalf("SendDigest failed: %v", err)
	}

	if len(src.lastSymbols) != 2 {
		t.Errorf("Expected watchlist symbols passed to the aggregator, got %v", src.lastSymbols)
	}
	if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], "Apple news") {
		t.Error("Expected summarization prompt to contain the news payload")
	}
	if len(gen.models) != 1 || gen.models[0] != NewsSummaryModel {
		t.Errorf("Expected summary model %s, got %v", NewsSummaryModel, gen.models)
	}
	if len(mailer.to) != 1 || mailer.to[0] != "ada@example.com" {
		t.Errorf("Expected one email to ada@example.com, got %v", mailer.to)
	}
	if !strings.Contains(mailer.body[0], "Today in markets") {
		t.Error("Expected digest body to embed the generated summary")
	}
}

func TestSendDigest_NewsFetchFailureStillSendsEmail(t *testing.T) {
	wl := &fakeWatchlists{}
	src := &fakeNewsSource{err: errors.New("failed to fetch general market news")}
	gen := &fakeGenerator{output: "<p>No market news today.</p>"}
	mailer := &fakeMailer{}

	o := newTestOrchestrator(t, wl, src, gen, mailer)

	if err := o.SendDigest(context.Background(), testUser()); err != nil {
		t.Fatalf("Expected digest to survive a news fetch failure, got %v", err)
	}

	if len(mailer.to) != 1 {
		t.Fatalf("Expected an (empty) digest email despite the fetch failure, got %d sends", len(mailer.to))
	}
}

func TestSendDigest_SummarizerFailureReturnsError(t *testing.T) {
	wl := &fakeWatchlists{}
	src := &fakeNewsSource{}
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	mailer := &fakeMailer{}

	o := newTestOrchestrator(t, wl, src, gen, mailer)

	if err := o.SendDigest(context.Background(), testUser()); err == nil {
		t.Fatal("Expected error when summarization fails")
	}

	if len(mailer.to) != 0 {
		t.Errorf("Expected no email when summarization fails, got %d sends", len(mailer.to))
	}
}

func TestSendDigest_EmptySummaryGetsFallbackContent(t *testing.T) {
	wl := &fakeWatchlists{}
	src := &fakeNewsSource{}
	gen := &fakeGenerator{output: "   "}
	mailer := &fakeMailer{}

	o := newTestOrchestrator(t, wl, src, gen, mailer)

	if err := o.SendDigest(context.Background(), testUser()); err != nil {
		t.Fatalf("SendDigest failed: %v", err)
	}

	if !strings.Contains(mailer.body[0], "No market news today") {
		t.Error("Expected fallback content for an empty model response")
	}
}

func TestSendWelcome(t *testing.T) {
	gen := &fakeGenerator{output: "Glad to have you on board."}
	mailer := &fakeMailer{}

	o := newTestOrchestrator(t, &fakeWatchlists{}, &fakeNewsSource{}, gen, mailer)

	if err := o.SendWelcome(context.Background(), testUser()); err != nil {
		t.Fatalf("SendWelcome failed: %v", err)
	}

	if len(gen.models) != 1 || gen.models[0] != WelcomeModel {
		t.Errorf("Expected welcome model %s, got %v", WelcomeModel, gen.models)
	}
	if !strings.Contains(gen.prompts[0], "Growth") {
		t.Error("Expected welcome prompt to include the user profile")
	}
	if !strings.Contains(mailer.body[0], "Glad to have you on board.") {
		t.Error("Expected welcome email to embed the generated intro")
	}
}

func TestSendWelcome_GeneratorFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	mailer := &fakeMailer{}

	o := newTestOrchestrator(t, &fakeWatchlists{}, &fakeNewsSource{}, gen, mailer)

	if err := o.SendWelcome(context.Background(), testUser()); err != nil {
		t.Fatalf("Expected welcome email despite generator failure, got %v", err)
	}

	if len(mailer.to) != 1 {
		t.Fatalf("Expected one email, got %d", len(mailer.to))
	}
	if !strings.Contains(mailer.body[0], welcomeFallbackIntro) {
		t.Error("Expected fallback intro in the welcome email")
	}
}
