package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbrain-app/smartbrain-api/apperrors"
)

func TestDetectSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "test@email.com", "secret", true)

	resp := env.do(t, "POST", "/api/clarifai",
		`{"id":1,"imageUrl":"https://samples.clarifai.com/metro-north.jpg"}`, nil)
	require.Equal(t, 200, resp.status)

	boxes := resp.jsonSlice(t)
	require.Len(t, boxes, 1)
	box := boxes[0].(map[string]interface{})
	assert.Equal(t, 0.99, box["value"])
	assert.Equal(t, "0.123", box["topRow"])
	assert.Equal(t, "0.456", box["leftCol"])
	assert.Equal(t, "0.789", box["bottomRow"])
	assert.Equal(t, "0.901", box["rightCol"])

	// The call was charged against the quota.
	require.Len(t, env.ledger.Rows(), 1)
	assert.Equal(t, 1, env.det.calls)
}

func TestDetectLegacyImageURLField(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "test@email.com", "secret", true)

	resp := env.do(t, "POST", "/api/clarifai",
		`{"id":1,"IMAGE_URL":"https://samples.clarifai.com/metro-north.jpg"}`, nil)
	assert.Equal(t, 200, resp.status)
}

func TestDetectMissingImageURL(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "test@email.com", "secret", true)

	resp := env.do(t, "POST", "/api/clarifai", `{"id":1}`, nil)
	assert.Equal(t, 400, resp.status)
	assert.Equal(t, "Image URL is required", resp.jsonMap(t)["error"])

	// Usage is recorded before the handler runs; the malformed request
	// still consumed quota.
	assert.Len(t, env.ledger.Rows(), 1)
}

func TestDetectFailureStillConsumesQuota(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "test@email.com", "secret", true)
	env.det.err = apperrors.Internal("Error processing image: connection refused")

	resp := env.do(t, "POST", "/api/clarifai",
		`{"id":1,"imageUrl":"https://example.com/a.jpg"}`, nil)
	assert.Equal(t, 500, resp.status)
	assert.Len(t, env.ledger.Rows(), 1)
}

func TestDetectNoFaces(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "test@email.com", "secret", true)
	env.det.err = apperrors.Validation("No faces detected in the image")

	resp := env.do(t, "POST", "/api/clarifai",
		`{"id":1,"imageUrl":"https://example.com/a.jpg"}`, nil)
	assert.Equal(t, 400, resp.status)
	assert.Equal(t, "No faces detected in the image", resp.jsonMap(t)["error"])
	assert.Len(t, env.ledger.Rows(), 1)
}

func TestDetectUnauthorizedUserNeverReachesDetector(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "bob@email.com", "secret2", false)

	resp := env.do(t, "POST", "/api/clarifai",
		`{"id":1,"imageUrl":"https://example.com/a.jpg"}`, nil)
	assert.Equal(t, 403, resp.status)
	assert.Empty(t, env.ledger.Rows())
	assert.Zero(t, env.det.calls)
}
