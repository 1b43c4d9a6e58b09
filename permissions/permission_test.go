package permissions_test

import (
	"testing"

	"hotel/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.Same(t, data, permissions.Get())

	assert.True(t, data.Public("/v1/availability/search", "POST"))
	assert.True(t, data.Public("/v1/bookings/{id}", "get"))
	assert.False(t, data.Public("/v1/bookings/{id}/status", "PATCH"))

	assert.True(t, data.Allows("/v1/dashboard", "GET", "admin"))
	assert.False(t, data.Allows("/v1/dashboard", "GET", "guest"))
	assert.True(t, data.Allows("/v1/rooms/", "GET", ""), "trailing slash is ignored")
}

func TestParse(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[
		{"path":"/v1/reports","method":"GET","permissions":["admin","auditor"]},
		{"path":"/v1/me","method":"GET"}
	]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"admin", "auditor"}, data.FindPermissions("/v1/reports", "GET").Permissions)
	assert.True(t, data.Allows("/v1/reports", "GET", "auditor"))
	assert.True(t, data.Allows("/v1/me", "GET", "anyone"))
	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/v1/unknown", "GET"))

	open, err := permissions.Parse([]byte(`{"skip":true}`))
	require.NoError(t, err)
	assert.True(t, open.Allows("/v1/reports", "DELETE", ""))

	_, err = permissions.Parse([]byte(`{`))
	assert.Error(t, err)

	var missing *permissions.PermissionData
	assert.False(t, missing.Allows("/v1/rooms", "GET", "admin"))
	assert.False(t, missing.Public("/v1/rooms", "GET"))
}
