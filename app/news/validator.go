package news

import (
	"net/url"
	"strings"
)

// validArticle reports whether an upstream article is usable: a
// non-empty headline, a well-formed absolute URL, a positive publish
// timestamp and a present id. Invalid articles are silently dropped,
// they never abort an aggregation call.
func validArticle(a RawArticle) bool {
	if strings.TrimSpace(a.Headline) == "" {
		return false
	}

	u, err := url.Parse(a.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return false
	}

	if a.Datetime <= 0 {
		return false
	}

	return a.ID != ""
}
