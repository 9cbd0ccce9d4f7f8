package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cryptoalert-telegram-bot/internal/database"
	"cryptoalert-telegram-bot/internal/market"
	"cryptoalert-telegram-bot/internal/metrics"
	"cryptoalert-telegram-bot/internal/types"
	"cryptoalert-telegram-bot/lib/helpers"
	"cryptoalert-telegram-bot/lib/translation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// MarketClient is the slice of the market API the input handlers need.
type MarketClient interface {
	Lookup(ctx context.Context, symbol string) (*types.TokenSnapshot, error)
}

// HandleTokenInput resolves the free-text follow-up to /get_token.
func HandleTokenInput(ctx context.Context, client MarketClient, text string) string {
	symbol := strings.ToLower(strings.TrimSpace(text))

	snapshot, err := client.Lookup(ctx, symbol)
	if errors.Is(err, market.ErrNotFound) {
		return fmt.Sprintf(translation.Translate("Invalid token symbol: %s"), helpers.EscapeMarkdownV2(symbol))
	}
	if err != nil {
		log.Errorf("market lookup failed for %q: %v", symbol, err)
		return translation.Translate("Market data is currently unavailable\\. Please try again later\\.")
	}

	return FormatTokenSnapshot(snapshot)
}

// FormatTokenSnapshot renders a market snapshot as a MarkdownV2 message.
func FormatTokenSnapshot(s *types.TokenSnapshot) string {
	return fmt.Sprintf(
		translation.Translate("*%s \\(%s\\)*\nPrice: $%s\nMarket Cap: $%s\n24h Volume: $%s\nPrice Change \\(24h\\): %s%%"),
		helpers.EscapeMarkdownV2(strings.ToUpper(s.Name)),
		helpers.EscapeMarkdownV2(strings.ToUpper(s.Symbol)),
		helpers.FormatPriceUS(s.PriceUSD, true),
		helpers.FormatBigUS(s.MarketCap),
		helpers.FormatBigUS(s.Volume24h),
		helpers.EscapeMarkdownV2(fmt.Sprintf("%.2f", s.PriceChange24h)),
	)
}

// HandleAlertInput resolves the free-text follow-up to /set_alert. The symbol
// is validated against the market API before anything is stored; the alert
// direction is fixed from the price observed now.
func HandleAlertInput(ctx context.Context, client MarketClient, userID int64, text string) string {
	symbol, threshold, err := ParseAlertInput(text)
	if err != nil {
		log.Debugf("rejected alert input %q from user %d: %v", text, userID, err)
		return translation.Translate("Invalid input\\. Please provide both the token symbol and a valid price threshold \\(e\\.g\\. bitcoin 50000\\)\\.")
	}

	snapshot, err := client.Lookup(ctx, symbol)
	if errors.Is(err, market.ErrNotFound) {
		return fmt.Sprintf(translation.Translate("Invalid token symbol: %s"), helpers.EscapeMarkdownV2(symbol))
	}
	if err != nil {
		log.Errorf("market lookup failed for %q: %v", symbol, err)
		return translation.Translate("Market data is currently unavailable\\. Please try again later\\.")
	}

	direction := types.DirectionAbove
	if snapshot.PriceUSD >= threshold {
		direction = types.DirectionBelow
	}

	if err := database.InsertAlert(userID, symbol, threshold, direction); err != nil {
		log.Errorf("failed to insert alert for user %d: %v", userID, err)
		return translation.Translate("Failed to set the alert\\. Please try again\\.")
	}

	metrics.AlertsCreated.Inc()
	return fmt.Sprintf(
		translation.Translate("Alert set for *%s* when the price moves %s $%s\\."),
		helpers.EscapeMarkdownV2(strings.ToUpper(symbol)),
		direction,
		helpers.FormatPriceUS(threshold, true),
	)
}

// ParseAlertInput splits free text into a token symbol and a price threshold.
// Exactly two whitespace-separated fields are accepted, the second a positive
// number.
func ParseAlertInput(text string) (string, float64, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	if len(fields) != 2 {
		return "", 0, errors.Errorf("expected 2 fields, got %d", len(fields))
	}

	threshold, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return "", 0, errors.Wrapf(err, "invalid price threshold %q", fields[1])
	}
	if threshold <= 0 {
		return "", 0, errors.Errorf("price threshold must be positive, got %f", threshold)
	}

	return fields[0], threshold, nil
}

func parseAlertID(text string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid alert ID %q", text)
	}
	return id, nil
}
