package database

import (
	"cryptoalert-telegram-bot/internal/types"
	"fmt"
	"log"
)

// InsertAlert saves an alert to the database. The symbol is stored as given;
// callers normalize to lowercase before calling.
func InsertAlert(userID int64, tokenSymbol string, priceThreshold float64, direction string) error {
	query := `
	INSERT INTO alerts (user_id, token_symbol, price_threshold, direction)
	VALUES (?, ?, ?, ?);`

	_, err := DB.Exec(query, userID, tokenSymbol, priceThreshold, direction)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}

	log.Printf("Alert inserted: UserID: %d, Token: %s, Threshold: %f, Direction: %s", userID, tokenSymbol, priceThreshold, direction)
	return nil
}

// GetAllAlerts fetches every alert; used only by the alert scheduler.
func GetAllAlerts() ([]types.Alert, error) {
	query := `SELECT id, user_id, token_symbol, price_threshold, direction, created_at FROM alerts;`

	rows, err := DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []types.Alert
	for rows.Next() {
		var alert types.Alert
		if err := rows.Scan(&alert.ID, &alert.UserID, &alert.TokenSymbol, &alert.PriceThreshold, &alert.Direction, &alert.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		alerts = append(alerts, alert)
	}

	return alerts, rows.Err()
}

// GetAlertsByUser fetches all alerts belonging to a user.
func GetAlertsByUser(userID int64) ([]types.Alert, error) {
	query := `SELECT id, user_id, token_symbol, price_threshold, direction, created_at FROM alerts WHERE user_id = ?;`

	rows, err := DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts for user %d: %w", userID, err)
	}
	defer rows.Close()

	var alerts []types.Alert
	for rows.Next() {
		var alert types.Alert
		if err := rows.Scan(&alert.ID, &alert.UserID, &alert.TokenSymbol, &alert.PriceThreshold, &alert.Direction, &alert.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		alerts = append(alerts, alert)
	}

	return alerts, rows.Err()
}

// DeleteUserAlert removes an alert only if it belongs to the given user.
// Ownership is enforced in the WHERE clause; the return value reports whether
// a row was actually removed.
func DeleteUserAlert(alertID, userID int64) (bool, error) {
	query := `DELETE FROM alerts WHERE id = ? AND user_id = ?;`
	res, err := DB.Exec(query, alertID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete alert %d for user %d: %w", alertID, userID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// DeleteAlert removes a triggered alert unconditionally. The affected-row
// count makes the trigger path race-safe: whoever deletes the row sends the
// notification, everyone else sees false.
func DeleteAlert(alertID int64) (bool, error) {
	query := `DELETE FROM alerts WHERE id = ?;`
	res, err := DB.Exec(query, alertID)
	if err != nil {
		return false, fmt.Errorf("failed to delete alert: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}
