package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartbrain-app/smartbrain-api/apperrors"
	"github.com/smartbrain-app/smartbrain-api/config"
	"github.com/smartbrain-app/smartbrain-api/detector"
	handler "github.com/smartbrain-app/smartbrain-api/handlers"
	"github.com/smartbrain-app/smartbrain-api/models"
	"github.com/smartbrain-app/smartbrain-api/quota"
	"github.com/smartbrain-app/smartbrain-api/router"
	"github.com/smartbrain-app/smartbrain-api/store"
)

const testSecret = "test-secret"

type fakeDetector struct {
	boxes []detector.BoundingBox
	err   error
	calls int
}

func (f *fakeDetector) Detect(_ context.Context, _ string) ([]detector.BoundingBox, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.boxes, nil
}

type testEnv struct {
	app    *fiber.App
	h      *handler.Handler
	users  *store.MemoryUserStore
	ledger *store.MemoryUsageLedger
	logins *store.MemoryLoginHistoryStore
	det    *fakeDetector
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Port:                "3000",
		JWTSecret:           testSecret,
		MaxRequestsPerMonth: config.DefaultMaxRequestsPerMonth,
		ResetDay:            config.DefaultResetDay,
		DetectorTimeout:     time.Second,
	}

	users := store.NewMemoryUserStore()
	ledger := store.NewMemoryUsageLedger()
	logins := store.NewMemoryLoginHistoryStore()
	policy := quota.NewPolicy(users, ledger, cfg.MaxRequestsPerMonth, cfg.ResetDay)
	det := &fakeDetector{boxes: []detector.BoundingBox{
		{Value: 0.99, TopRow: "0.123", LeftCol: "0.456", BottomRow: "0.789", RightCol: "0.901"},
	}}

	h := handler.New(cfg, users, logins, ledger, policy, det)

	app := fiber.New(fiber.Config{ErrorHandler: apperrors.ErrorHandler})
	router.SetupRoutes(app, h)

	return &testEnv{app: app, h: h, users: users, ledger: ledger, logins: logins, det: det}
}

func (e *testEnv) createUser(t *testing.T, email, password string, authorized bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	require.NoError(t, err)

	user := &models.User{
		Name:         "John Doe",
		Email:        email,
		PasswordHash: string(hash),
		IsAuthorized: authorized,
	}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) token(t *testing.T, userID uint) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tokenStr
}

type testResponse struct {
	status int
	raw    []byte
}

func (r testResponse) jsonMap(t *testing.T) map[string]interface{} {
	t.Helper()

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(r.raw, &parsed))
	return parsed
}

func (r testResponse) jsonSlice(t *testing.T) []interface{} {
	t.Helper()

	var parsed []interface{}
	require.NoError(t, json.Unmarshal(r.raw, &parsed))
	return parsed
}

func (e *testEnv) do(t *testing.T, method, target, body string, headers map[string]string) testResponse {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return testResponse{status: resp.StatusCode, raw: raw}
}

func authHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
