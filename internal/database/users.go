package database

import (
	"cryptoalert-telegram-bot/internal/types"
	"database/sql"
	"fmt"
	"log"
)

// IsUserRegistered reports whether a user row exists for the given ID.
func IsUserRegistered(userID int64) (bool, error) {
	query := `SELECT 1 FROM users WHERE user_id = ?;`

	var one int
	err := DB.QueryRow(query, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to check registration for user %d: %w", userID, err)
	}
	return true, nil
}

// RegisterUser inserts a new user row. Users are immutable once created;
// a duplicate ID fails on the primary key.
func RegisterUser(userID int64, username, firstName, lastName string) error {
	query := `
	INSERT INTO users (user_id, username, first_name, last_name)
	VALUES (?, ?, ?, ?);`

	_, err := DB.Exec(query, userID, username, firstName, lastName)
	if err != nil {
		return fmt.Errorf("failed to register user %d: %w", userID, err)
	}

	log.Printf("User registered: ID: %d, Username: %s", userID, username)
	return nil
}

// GetUser fetches a single user row.
func GetUser(userID int64) (*types.User, error) {
	query := `SELECT user_id, username, first_name, last_name, created_at FROM users WHERE user_id = ?;`

	var user types.User
	err := DB.QueryRow(query, userID).Scan(&user.UserID, &user.Username, &user.FirstName, &user.LastName, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %d: %w", userID, err)
	}
	return &user, nil
}
