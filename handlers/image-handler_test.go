package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateEntriesIncrementsAndStoresEntry(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "test@email.com", "secret", true)
	token := env.token(t, user.ID)

	body := `{"id":1,"imageUrl":"https://example.com/a.jpg","detectionResults":[{"value":0.99}]}`
	resp := env.do(t, "PUT", "/api/image", body, authHeader(token))
	require.Equal(t, 200, resp.status)

	updated := resp.jsonMap(t)
	assert.Equal(t, float64(1), updated["entries"])

	entries := env.users.ImageEntries(user.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://example.com/a.jpg", entries[0].ImageURL)
	assert.JSONEq(t, `[{"value":0.99}]`, string(entries[0].DetectionResults))
}

func TestUpdateEntriesWithoutImageURLOnlyIncrements(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "test@email.com", "secret", true)
	token := env.token(t, user.ID)

	resp := env.do(t, "PUT", "/api/image", `{"id":1}`, authHeader(token))
	require.Equal(t, 200, resp.status)
	assert.Equal(t, float64(1), resp.jsonMap(t)["entries"])
	assert.Empty(t, env.users.ImageEntries(user.ID))
}

func TestUpdateEntriesRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "test@email.com", "secret", true)

	resp := env.do(t, "PUT", "/api/image", `{"id":1,"imageUrl":"x"}`, nil)
	assert.Equal(t, 401, resp.status)
}

func TestUpdateEntriesUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "test@email.com", "secret", true)
	token := env.token(t, user.ID)

	resp := env.do(t, "PUT", "/api/image", `{"id":42,"imageUrl":"x"}`, authHeader(token))
	assert.Equal(t, 404, resp.status)
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "test@email.com", "secret", true)
	token := env.token(t, user.ID)

	resp := env.do(t, "GET", "/api/profile/1", "", authHeader(token))
	require.Equal(t, 200, resp.status)

	body := resp.jsonMap(t)
	assert.Equal(t, float64(user.ID), body["id"])
	assert.Equal(t, "test@email.com", body["email"])
	assert.NotContains(t, body, "isAuthorized")
	assert.NotContains(t, body, "passwordHash")
}

func TestGetProfileRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "test@email.com", "secret", true)

	resp := env.do(t, "GET", "/api/profile/1", "", nil)
	assert.Equal(t, 401, resp.status)
}

func TestListUsersHidesEmails(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "test@email.com", "secret", true)
	env.createUser(t, "bob@email.com", "secret2", false)

	resp := env.do(t, "GET", "/api/", "", nil)
	require.Equal(t, 200, resp.status)

	users := resp.jsonSlice(t)
	require.Len(t, users, 2)
	first := users[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["id"])
	assert.NotContains(t, first, "email")
}
