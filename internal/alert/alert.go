package alert

import (
	"context"
	"fmt"
	"time"

	"cryptoalert-telegram-bot/internal/database"
	"cryptoalert-telegram-bot/internal/market"
	"cryptoalert-telegram-bot/internal/metrics"
	"cryptoalert-telegram-bot/internal/telegram"
	"cryptoalert-telegram-bot/internal/types"
	"cryptoalert-telegram-bot/lib/helpers"
	"cryptoalert-telegram-bot/lib/translation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Notifier delivers trigger notifications to alert owners.
type Notifier interface {
	SendMessage(m telegram.Message) error
}

// MarketClient resolves token symbols to market snapshots.
type MarketClient interface {
	Lookup(ctx context.Context, symbol string) (*types.TokenSnapshot, error)
}

// CheckAlerts runs one scheduler tick: load all alerts, fetch the current
// price for each, and fire the ones whose threshold condition holds. The
// fetches are sequential; a tick issues one upstream call per alert.
func CheckAlerts(ctx context.Context, bot Notifier, client MarketClient) {
	log.Debug("Checking alerts...")

	alerts, err := database.GetAllAlerts()
	if err != nil {
		log.Errorf("Failed to fetch alerts from the database: %v", err)
		return
	}

	for _, alert := range alerts {
		snapshot, err := client.Lookup(ctx, alert.TokenSymbol)
		if errors.Is(err, market.ErrNotFound) {
			log.Warnf("No market data for token %q (alert ID %d)", alert.TokenSymbol, alert.ID)
			continue
		}
		if err != nil {
			log.Errorf("Market lookup failed for token %q (alert ID %d): %v", alert.TokenSymbol, alert.ID, err)
			continue
		}

		log.Debugf("Checking alert ID: %d | Token: %s | Direction: %s | Target: %.2f | Current: %.2f",
			alert.ID, alert.TokenSymbol, alert.Direction, alert.PriceThreshold, snapshot.PriceUSD)

		if !Triggered(alert, snapshot.PriceUSD) {
			continue
		}

		// Delete first: whoever removes the row owns the notification, so an
		// alert can never notify twice. A send failure after the delete loses
		// the alert; that is logged and counted, not retried.
		removed, err := database.DeleteAlert(alert.ID)
		if err != nil {
			log.Errorf("Failed to delete triggered alert ID %d: %v", alert.ID, err)
			continue
		}
		if !removed {
			log.Debugf("Alert ID %d already removed, skipping notification", alert.ID)
			continue
		}

		metrics.AlertsTriggered.Inc()

		err = bot.SendMessage(telegram.Message{
			ChatID: alert.UserID,
			Text:   TriggerMessage(alert, snapshot),
		})
		if err != nil {
			metrics.NotificationFailures.Inc()
			log.Errorf("Failed to send alert notification for alert ID %d: %v", alert.ID, err)
		} else {
			log.Infof("Alert notification sent to user %d (alert ID %d)", alert.UserID, alert.ID)
		}
	}

	metrics.SchedulerTicks.Inc()
	log.Debug("Alert check completed.")
}

// Triggered reports whether the fetched price satisfies the alert's threshold
// condition. Above alerts fire at or over the threshold, below alerts at or
// under it.
func Triggered(alert types.Alert, price float64) bool {
	switch alert.Direction {
	case types.DirectionBelow:
		return price <= alert.PriceThreshold
	default:
		return price >= alert.PriceThreshold
	}
}

// TriggerMessage formats the notification sent when an alert fires.
func TriggerMessage(alert types.Alert, snapshot *types.TokenSnapshot) string {
	return fmt.Sprintf(
		translation.Translate("🚨 *Price Alert Triggered*\n\n*%s \\(%s\\)*\nCurrent price: $%s\nThreshold: $%s"),
		helpers.EscapeMarkdownV2(snapshot.Name),
		helpers.EscapeMarkdownV2(snapshot.Symbol),
		helpers.FormatPriceUS(snapshot.PriceUSD, true),
		helpers.FormatPriceUS(alert.PriceThreshold, true),
	)
}

// StartAlertService starts the background alert checker, re-running on a
// fixed interval for the process lifetime. A panic inside a tick is logged
// and the service restarted after a delay.
func StartAlertService(bot Notifier, client MarketClient, interval time.Duration) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("Panic recovered in alert checker: %v. Restarting alert checker in 10 seconds...", r)
				time.Sleep(10 * time.Second)
				StartAlertService(bot, client, interval)
			}
		}()

		for {
			CheckAlerts(context.Background(), bot, client)
			time.Sleep(interval)
		}
	}()
	log.Info("Alert service started.")
}
