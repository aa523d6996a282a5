package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/smartbrain-app/smartbrain-api/models"
	"gorm.io/datatypes"
)

// MemoryUserStore is a map-backed UserStore for tests and local runs.
type MemoryUserStore struct {
	mu      sync.Mutex
	nextID  uint
	users   map[uint]models.User
	entries []models.ImageEntry
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{nextID: 1, users: make(map[uint]models.User)}
}

func (m *MemoryUserStore) ByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *MemoryUserStore) ByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryUserStore) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user.ID = m.nextID
	m.nextID++
	if user.Joined.IsZero() {
		user.Joined = time.Now()
	}
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryUserStore) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MemoryUserStore) AddEntry(_ context.Context, id uint, imageURL string, results datatypes.JSON) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	user.Entries++
	m.users[id] = user

	if imageURL != "" {
		m.entries = append(m.entries, models.ImageEntry{
			ID:               uint(len(m.entries) + 1),
			UserID:           id,
			ImageURL:         imageURL,
			DetectionResults: results,
			CreatedAt:        time.Now(),
		})
	}

	return &user, nil
}

// ImageEntries returns the entries recorded for a user.
func (m *MemoryUserStore) ImageEntries(userID uint) []models.ImageEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.ImageEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// MemoryUsageLedger is a slice-backed UsageLedger for tests.
type MemoryUsageLedger struct {
	mu   sync.Mutex
	rows []models.ApiRequest
}

func NewMemoryUsageLedger() *MemoryUsageLedger {
	return &MemoryUsageLedger{}
}

func (m *MemoryUsageLedger) Record(_ context.Context, userID uint, endpoint string) error {
	m.Add(userID, endpoint, time.Now())
	return nil
}

// Add appends a row with an explicit timestamp so tests can seed usage
// from past periods.
func (m *MemoryUsageLedger) Add(userID uint, endpoint string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows = append(m.rows, models.ApiRequest{
		ID:          uint(len(m.rows) + 1),
		UserID:      userID,
		Endpoint:    endpoint,
		RequestedAt: at,
	})
}

func (m *MemoryUsageLedger) CountSince(_ context.Context, userID uint, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, row := range m.rows {
		if row.UserID == userID && !row.RequestedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// Rows returns a copy of all recorded rows.
func (m *MemoryUsageLedger) Rows() []models.ApiRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.ApiRequest, len(m.rows))
	copy(out, m.rows)
	return out
}

// MemoryLoginHistoryStore is a slice-backed LoginHistoryStore for tests.
type MemoryLoginHistoryStore struct {
	mu   sync.Mutex
	rows []models.LoginHistory
}

func NewMemoryLoginHistoryStore() *MemoryLoginHistoryStore {
	return &MemoryLoginHistoryStore{}
}

func (m *MemoryLoginHistoryStore) Record(_ context.Context, userID uint, ip string, success bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows = append(m.rows, models.LoginHistory{
		ID:        uint(len(m.rows) + 1),
		UserID:    userID,
		IPAddress: ip,
		Success:   success,
		CreatedAt: time.Now(),
	})
	return nil
}

// Rows returns a copy of all recorded attempts.
func (m *MemoryLoginHistoryStore) Rows() []models.LoginHistory {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.LoginHistory, len(m.rows))
	copy(out, m.rows)
	return out
}
