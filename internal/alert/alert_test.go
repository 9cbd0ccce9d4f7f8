package alert

import (
	"context"
	"testing"

	"cryptoalert-telegram-bot/internal/database"
	"cryptoalert-telegram-bot/internal/market"
	"cryptoalert-telegram-bot/internal/telegram"
	"cryptoalert-telegram-bot/internal/types"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	sent    []telegram.Message
	sendErr error
}

func (f *fakeNotifier) SendMessage(m telegram.Message) error {
	f.sent = append(f.sent, m)
	return f.sendErr
}

type fakeMarket struct {
	snapshots map[string]*types.TokenSnapshot
}

func (f *fakeMarket) Lookup(ctx context.Context, symbol string) (*types.TokenSnapshot, error) {
	if s, ok := f.snapshots[symbol]; ok {
		return s, nil
	}
	return nil, market.ErrNotFound
}

func setupTestDB(t *testing.T) {
	t.Helper()

	err := database.InitDB(":memory:")
	require.NoError(t, err)
	database.DB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		database.CloseDB()
	})
}

func TestTickTriggersAboveAlert(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.InsertAlert(7, "bitcoin", 50000, types.DirectionAbove))

	notifier := &fakeNotifier{}
	client := &fakeMarket{snapshots: map[string]*types.TokenSnapshot{
		"bitcoin": {Name: "Bitcoin", Symbol: "btc", PriceUSD: 60000},
	}}

	CheckAlerts(context.Background(), notifier, client)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(7), notifier.sent[0].ChatID)
	assert.Contains(t, notifier.sent[0].Text, "Price Alert Triggered")

	alerts, err := database.GetAllAlerts()
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestTickLeavesUnreachedAlertAlone(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.InsertAlert(7, "bitcoin", 50000, types.DirectionAbove))

	notifier := &fakeNotifier{}
	client := &fakeMarket{snapshots: map[string]*types.TokenSnapshot{
		"bitcoin": {Name: "Bitcoin", Symbol: "btc", PriceUSD: 45000},
	}}

	CheckAlerts(context.Background(), notifier, client)

	assert.Empty(t, notifier.sent)
	alerts, err := database.GetAllAlerts()
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

func TestTickTriggersBelowAlert(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.InsertAlert(7, "bitcoin", 40000, types.DirectionBelow))

	notifier := &fakeNotifier{}
	client := &fakeMarket{snapshots: map[string]*types.TokenSnapshot{
		"bitcoin": {Name: "Bitcoin", Symbol: "btc", PriceUSD: 35000},
	}}

	CheckAlerts(context.Background(), notifier, client)

	require.Len(t, notifier.sent, 1)
	alerts, err := database.GetAllAlerts()
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestTickSkipsAlertWithoutMarketData(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.InsertAlert(7, "notacoin", 50000, types.DirectionAbove))

	notifier := &fakeNotifier{}
	client := &fakeMarket{snapshots: map[string]*types.TokenSnapshot{}}

	CheckAlerts(context.Background(), notifier, client)

	assert.Empty(t, notifier.sent)
	alerts, err := database.GetAllAlerts()
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

func TestTickRemovesAlertEvenWhenSendFails(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.InsertAlert(7, "bitcoin", 50000, types.DirectionAbove))

	notifier := &fakeNotifier{sendErr: errors.New("telegram down")}
	client := &fakeMarket{snapshots: map[string]*types.TokenSnapshot{
		"bitcoin": {Name: "Bitcoin", Symbol: "btc", PriceUSD: 60000},
	}}

	CheckAlerts(context.Background(), notifier, client)

	// Delete-then-notify: the alert is gone, so it can never notify twice.
	alerts, err := database.GetAllAlerts()
	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.Len(t, notifier.sent, 1)
}

func TestTriggered(t *testing.T) {
	above := types.Alert{Direction: types.DirectionAbove, PriceThreshold: 50000}
	assert.True(t, Triggered(above, 60000))
	assert.True(t, Triggered(above, 50000))
	assert.False(t, Triggered(above, 49999.99))

	below := types.Alert{Direction: types.DirectionBelow, PriceThreshold: 40000}
	assert.True(t, Triggered(below, 35000))
	assert.True(t, Triggered(below, 40000))
	assert.False(t, Triggered(below, 40000.01))
}
