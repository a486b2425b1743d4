package database

import (
	"database/sql"
	"fmt"
)

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user User) (string, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO users (email, name, country, investment_goals, risk_tolerance, preferred_industry)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			country = EXCLUDED.country,
			investment_goals = EXCLUDED.investment_goals,
			risk_tolerance = EXCLUDED.risk_tolerance,
			preferred_industry = EXCLUDED.preferred_industry,
			updated_at = NOW()
		RETURNING id
	`, user.Email, user.Name, user.Country, user.InvestmentGoals,
		user.RiskTolerance, user.PreferredIndustry).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

func (r *userRepository) GetUserByEmail(email string) (*User, error) {
	var user User
	err := r.db.QueryRow(`
		SELECT id, email, name, country, investment_goals, risk_tolerance,
		       preferred_industry, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.Name, &user.Country,
		&user.InvestmentGoals, &user.RiskTolerance, &user.PreferredIndustry,
		&user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetUsersForDigest returns every user eligible for the daily digest.
func (r *userRepository) GetUsersForDigest() ([]User, error) {
	rows, err := r.db.Query(`
		SELECT id, email, name, country, investment_goals, risk_tolerance,
		       preferred_industry, created_at, updated_at
		FROM users
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for digest: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.Country,
			&user.InvestmentGoals, &user.RiskTolerance, &user.PreferredIndustry,
			&user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

func (r *userRepository) GetUserCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
