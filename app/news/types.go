package news

import (
	"time"
)

// ArticleID carries the upstream article identifier as a string so
// dedup keys stay uniform regardless of the upstream's numeric ids.
type ArticleID string

// RawArticle is a single article as mapped from the upstream news API
// response. The payload is untrusted: fields may be missing or empty,
// and ids can be reused across unrelated stories, so every article goes
// through validArticle before it is used.
type RawArticle struct {
	ID       ArticleID
	Headline string
	Summary  string
	URL      string
	Source   string
	Datetime int64 // unix seconds
	Image    string
	Related  string // comma-joined symbols
}

// Article is the formatted output unit handed to the digest pipeline.
// It is constructed once per aggregation call and never mutated after.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Symbol      string    `json:"symbol,omitempty"` // set only on the symbol-scoped path
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Rank        int       `json:"rank"` // 0-based position in the final output
}
