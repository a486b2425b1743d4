package database

type UserRepository interface {
	CreateUser(user User) (string, error)
	GetUserByEmail(email string) (*User, error)
	GetUsersForDigest() ([]User, error)
	GetUserCount() (int, error)
}

type WatchlistRepository interface {
	AddEntry(userID, symbol, company string) error
	RemoveEntry(userID, symbol string) error
	GetEntries(userID string) ([]WatchlistEntry, error)
	GetSymbolsByEmail(email string) ([]string, error)
	GetEntryCount() (int, error)
}
