package commands

import (
	"fmt"
	"strings"

	"cryptoalert-telegram-bot/internal/database"
	"cryptoalert-telegram-bot/lib/helpers"
	"cryptoalert-telegram-bot/lib/translation"

	log "github.com/sirupsen/logrus"
)

// CommandRegister handles /register. Users are immutable once created, so a
// repeat registration is rejected here, before any store write.
func CommandRegister(userID int64, username, firstName, lastName string) string {
	registered, err := database.IsUserRegistered(userID)
	if err != nil {
		log.Errorf("registration check failed for user %d: %v", userID, err)
		return translation.Translate("Registration failed\\. Please try again\\.")
	}

	if registered {
		return translation.Translate("You are already registered\\!")
	}

	if err := database.RegisterUser(userID, username, firstName, lastName); err != nil {
		log.Errorf("failed to register user %d: %v", userID, err)
		return translation.Translate("Registration failed\\. Please try again\\.")
	}

	return translation.Translate("You have been successfully registered\\!") + "\n\n" + CommandHelp()
}

// CommandHelp lists the available commands.
func CommandHelp() string {
	return translation.Translate("Here are the available commands:\n" +
		"\\- /register: Register yourself with the bot\\.\n" +
		"\\- /get\\_token: Get cryptocurrency data by token symbol\\.\n" +
		"\\- /set\\_alert: Set a price alert for a token\\.\n" +
		"\\- /list\\_alerts: List all your active price alerts\\.\n" +
		"\\- /remove\\_alert: Remove an active alert by its ID\\.")
}

// CommandListAlerts handles /list_alerts.
func CommandListAlerts(userID int64) string {
	alerts, err := database.GetAlertsByUser(userID)
	if err != nil {
		log.Errorf("failed to fetch alerts for user %d: %v", userID, err)
		return translation.Translate("Failed to fetch your alerts\\. Please try again\\.")
	}

	if len(alerts) == 0 {
		return translation.Translate("You have no active price alerts\\.")
	}

	var alertList strings.Builder
	alertList.WriteString(translation.Translate("*Your active price alerts:*\n\n"))
	for _, alert := range alerts {
		alertList.WriteString(fmt.Sprintf(
			translation.Translate("Alert ID: %d\nToken: %s \\(%s\\)\nThreshold: $%s\nCreated: %s\n\n"),
			alert.ID,
			helpers.EscapeMarkdownV2(strings.ToUpper(alert.TokenSymbol)),
			alert.Direction,
			helpers.FormatPriceUS(alert.PriceThreshold, true),
			helpers.EscapeMarkdownV2(helpers.FormatDate(alert.CreatedAt)),
		))
	}

	return alertList.String()
}

// RemoveAlert deletes one of the user's alerts by ID. Used both for the
// inline form "/remove_alert 7" and for the prompted follow-up message.
func RemoveAlert(userID int64, text string) string {
	alertID, err := parseAlertID(text)
	if err != nil {
		return translation.Translate("Invalid Alert ID\\. Please provide the numeric ID from /list\\_alerts\\.")
	}

	removed, err := database.DeleteUserAlert(alertID, userID)
	if err != nil {
		log.Errorf("failed to remove alert %d for user %d: %v", alertID, userID, err)
		return translation.Translate("Failed to remove the alert\\. Please try again\\.")
	}

	if !removed {
		return translation.Translate("No alert found with the given ID, or it doesn't belong to you\\.")
	}

	return fmt.Sprintf(translation.Translate("Alert with ID %d has been successfully removed\\."), alertID)
}
