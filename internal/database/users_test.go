package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndCheckUser(t *testing.T) {
	setupTestDB(t)

	registered, err := IsUserRegistered(42)
	require.NoError(t, err)
	assert.False(t, registered)

	err = RegisterUser(42, "satoshi", "Satoshi", "Nakamoto")
	require.NoError(t, err)

	registered, err = IsUserRegistered(42)
	require.NoError(t, err)
	assert.True(t, registered)

	user, err := GetUser(42)
	require.NoError(t, err)
	assert.Equal(t, "satoshi", user.Username)
	assert.Equal(t, "Satoshi", user.FirstName)
}

func TestRegisterDuplicateUserFails(t *testing.T) {
	setupTestDB(t)

	err := RegisterUser(42, "satoshi", "Satoshi", "Nakamoto")
	require.NoError(t, err)

	err = RegisterUser(42, "other", "Other", "Name")
	assert.Error(t, err)

	var count int
	err = DB.QueryRow(`SELECT COUNT(*) FROM users WHERE user_id = 42`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
