package database

import (
	"testing"

	"cryptoalert-telegram-bot/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndListAlerts(t *testing.T) {
	setupTestDB(t)

	err := InsertAlert(1, "bitcoin", 50000, types.DirectionAbove)
	require.NoError(t, err)

	alerts, err := GetAlertsByUser(1)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "bitcoin", alerts[0].TokenSymbol)
	assert.Equal(t, 50000.0, alerts[0].PriceThreshold)
	assert.Equal(t, types.DirectionAbove, alerts[0].Direction)
	assert.Equal(t, int64(1), alerts[0].UserID)
}

func TestUserMayHoldMultipleAlertsOnOneToken(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, InsertAlert(1, "bitcoin", 50000, types.DirectionAbove))
	require.NoError(t, InsertAlert(1, "bitcoin", 40000, types.DirectionBelow))

	alerts, err := GetAlertsByUser(1)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestGetAllAlertsSpansUsers(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, InsertAlert(1, "bitcoin", 50000, types.DirectionAbove))
	require.NoError(t, InsertAlert(2, "ethereum", 3000, types.DirectionAbove))

	alerts, err := GetAllAlerts()
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestDeleteUserAlertEnforcesOwnership(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, InsertAlert(1, "bitcoin", 50000, types.DirectionAbove))
	alerts, err := GetAlertsByUser(1)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	alertID := alerts[0].ID

	// Another user must not be able to remove it.
	removed, err := DeleteUserAlert(alertID, 2)
	require.NoError(t, err)
	assert.False(t, removed)

	alerts, err = GetAlertsByUser(1)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)

	removed, err = DeleteUserAlert(alertID, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	alerts, err = GetAlertsByUser(1)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestDeleteAlertReportsAffectedRow(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, InsertAlert(1, "bitcoin", 50000, types.DirectionAbove))
	alerts, err := GetAllAlerts()
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	removed, err := DeleteAlert(alerts[0].ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// Second delete of the same row reports nothing removed.
	removed, err = DeleteAlert(alerts[0].ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
