package news

import "time"

// formatArticle maps a validated RawArticle to the output representation.
// The symbol label is attached only on the personalized (symbol-scoped)
// path; rank is the article's final position after sorting.
func formatArticle(a RawArticle, personalized bool, primarySymbol string, rank int) Article {
	out := Article{
		ID:          string(a.ID),
		Title:       a.Headline,
		Summary:     a.Summary,
		URL:         a.URL,
		Source:      a.Source,
		PublishedAt: time.Unix(a.Datetime, 0).UTC(),
		Thumbnail:   a.Image,
		Rank:        rank,
	}

	if personalized {
		out.Symbol = primarySymbol
	}

	return out
}
