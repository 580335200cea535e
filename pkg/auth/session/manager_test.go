package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/smoralesdev/cartaqr-backend/pkg/config"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) AccessSessionKey(accessID string) string {
	return fmt.Sprintf("sess:%s", accessID)
}

func newTestManager(store *mockStore) *Manager {
	return &Manager{store: store, keyer: store, ttl: time.Hour}
}

func TestManagerCreateHasRevoke(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	manager := newTestManager(store)

	accessID := NewAccessID()
	if accessID == "" {
		t.Fatal("NewAccessID returned empty string")
	}

	ok, err := manager.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("HasSession returned error: %v", err)
	}
	if ok {
		t.Fatal("session should not exist before Create")
	}

	if err := manager.Create(ctx, accessID, "user-1"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	ok, err = manager.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("HasSession returned error: %v", err)
	}
	if !ok {
		t.Fatal("session should exist after Create")
	}

	if err := manager.Revoke(ctx, accessID); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	ok, err = manager.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("HasSession returned error: %v", err)
	}
	if ok {
		t.Fatal("session should be gone after Revoke")
	}
}

func TestManagerRejectsBlankAccessID(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(newMockStore())

	if err := manager.Create(ctx, "  ", "user-1"); err == nil {
		t.Fatal("expected error for blank access id on Create")
	}
	if err := manager.Revoke(ctx, ""); err == nil {
		t.Fatal("expected error for blank access id on Revoke")
	}

	ok, err := manager.HasSession(ctx, "")
	if err != nil {
		t.Fatalf("HasSession returned error: %v", err)
	}
	if ok {
		t.Fatal("blank access id should never have a session")
	}
}

func TestNewManagerRequiresClient(t *testing.T) {
	if _, err := NewManager(nil, config.JWTConfig{SessionTTLMinutes: 60}); err == nil {
		t.Fatal("expected error for nil redis client")
	}
}
