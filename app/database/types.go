package database

import (
	"time"
)

// User is a digest recipient. Authentication lives with an external
// provider; this record carries only what the email pipeline needs.
type User struct {
	ID                string
	Email             string
	Name              string
	Country           string
	InvestmentGoals   string
	RiskTolerance     string
	PreferredIndustry string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// WatchlistEntry is a single tracked symbol for a user. Symbols are
// stored trimmed and upper-cased; (user_id, symbol) is unique.
type WatchlistEntry struct {
	ID      string
	UserID  string
	Symbol  string
	Company string
	AddedAt time.Time
}
