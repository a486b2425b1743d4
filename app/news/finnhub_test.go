package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *FinnhubClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", "test-token")
	cfg.Servers = finnhub.ServerConfigurations{{URL: srv.URL}}

	return &FinnhubClient{client: finnhub.NewAPIClient(cfg).DefaultApi}
}

func TestNewFinnhubClient_MissingAPIKey(t *testing.T) {
	_, err := NewFinnhubClient("", "Test Agent/1.0")

	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestFinnhubClient_CompanyNews(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/company-news" {
			t.Errorf("Expected path '/company-news', got '%s'", r.URL.Path)
		}

		q := r.URL.Query()
		if q.Get("symbol") != "AAPL" {
			t.Errorf("Expected symbol 'AAPL', got '%s'", q.Get("symbol"))
		}
		if q.Get("from") != "2025-03-10" || q.Get("to") != "2025-03-15" {
			t.Errorf("Unexpected date window: from='%s' to='%s'", q.Get("from"), q.Get("to"))
		}
		if r.Header.Get("X-Finnhub-Token") != "test-token" {
			t.Errorf("Expected token header, got '%s'", r.Header.Get("X-Finnhub-Token"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 101, "headline": "First", "summary": "s", "url": "https://example.com/1", "source": "Wire", "datetime": 1741000000},
			{"id": 102, "headline": "Second", "summary": "s", "url": "https://example.com/2", "source": "Wire", "datetime": 1741000100}
		]`))
	})

	articles, err := client.CompanyNews(context.Background(), "AAPL", "2025-03-10", "2025-03-15")
	if err != nil {
		t.Fatalf("CompanyNews failed: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(articles))
	}

	if articles[0].ID != "101" {
		t.Errorf("Expected id '101', got '%s'", articles[0].ID)
	}
	if articles[0].Headline != "First" || articles[0].Datetime != 1741000000 {
		t.Errorf("Unexpected first article: %+v", articles[0])
	}
}

func TestFinnhubClient_MarketNews(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/news" {
			t.Errorf("Expected path '/news', got '%s'", r.URL.Path)
		}

		q := r.URL.Query()
		if q.Get("category") != "general" {
			t.Errorf("Expected category 'general', got '%s'", q.Get("category"))
		}
		if q.Get("minId") != "0" {
			t.Errorf("Expected minId '0', got '%s'", q.Get("minId"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	articles, err := client.MarketNews(context.Background(), "general")
	if err != nil {
		t.Fatalf("MarketNews failed: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("Expected 0 articles, got %d", len(articles))
	}
}

func TestFinnhubClient_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.MarketNews(context.Background(), "general")
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}
}

func TestFinnhubClient_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "not an array"}`))
	})

	_, err := client.MarketNews(context.Background(), "general")
	if err == nil {
		t.Error("Expected error for malformed response body")
	}
}

func TestMapNews(t *testing.T) {
	id := int64(7)
	headline := "Apple expands services"
	url := "https://example.com/apple"
	datetime := int64(1741000000)

	mapped := mapNews([]finnhub.CompanyNews{
		{Id: &id, Headline: &headline, Url: &url, Datetime: &datetime},
		{}, // all fields missing
	})

	if len(mapped) != 2 {
		t.Fatalf("Expected 2 mapped articles, got %d", len(mapped))
	}

	if mapped[0].ID != "7" || mapped[0].Headline != headline || mapped[0].URL != url {
		t.Errorf("Unexpected mapping: %+v", mapped[0])
	}

	// A response entry with no fields maps to a zero article, which the
	// validator then rejects.
	if validArticle(mapped[1]) {
		t.Error("Expected the empty article to fail validation")
	}
}
