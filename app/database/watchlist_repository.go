package database

import (
	"fmt"
	"strings"
)

type watchlistRepository struct {
	db *DB
}

func NewWatchlistRepository(db *DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) AddEntry(userID, symbol, company string) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}

	_, err := r.db.Exec(`
		INSERT INTO watchlists (user_id, symbol, company)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, symbol) DO NOTHING
	`, userID, symbol, strings.TrimSpace(company))

	if err != nil {
		return fmt.Errorf("failed to add watchlist entry: %w", err)
	}

	return nil
}

func (r *watchlistRepository) RemoveEntry(userID, symbol string) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	_, err := r.db.Exec(`
		DELETE FROM watchlists
		WHERE user_id = $1 AND symbol = $2
	`, userID, symbol)

	if err != nil {
		return fmt.Errorf("failed to remove watchlist entry: %w", err)
	}

	return nil
}

func (r *watchlistRepository) GetEntries(userID string) ([]WatchlistEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, symbol, company, added_at
		FROM watchlists
		WHERE user_id = $1
		ORDER BY added_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist entries: %w", err)
	}
	defer rows.Close()

	var entries []WatchlistEntry
	for rows.Next() {
		var entry WatchlistEntry
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Symbol, &entry.Company, &entry.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watchlist entries: %w", err)
	}

	return entries, nil
}

// GetSymbolsByEmail resolves a user's watchlist symbols. An unknown
// email or an empty watchlist both yield an empty list, which sends the
// digest pipeline down the general-news path.
func (r *watchlistRepository) GetSymbolsByEmail(email string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT w.symbol
		FROM watchlists w
		JOIN users u ON u.id = w.user_id
		WHERE u.email = $1
		ORDER BY w.added_at ASC
	`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, symbol)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate symbols: %w", err)
	}

	return symbols, nil
}

func (r *watchlistRepository) GetEntryCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM watchlists`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count watchlist entries: %w", err)
	}
	return count, nil
}
