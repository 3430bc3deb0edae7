package redis

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/invoice-system/internal/core/domain"
	"github.com/99minutos/invoice-system/internal/pkg/metrics"
)

type stubSessions struct {
	byToken map[string]string
	lookups int
	err     error
}

func (s *stubSessions) Create(_ context.Context, sess *domain.Session) error {
	if s.err != nil {
		return s.err
	}
	s.byToken[sess.Token] = sess.UserID
	return nil
}

func (s *stubSessions) FindUserID(_ context.Context, token string) (string, error) {
	s.lookups++
	if s.err != nil {
		return "", s.err
	}
	uid, ok := s.byToken[token]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	return uid, nil
}

func setupCache(t *testing.T) (*SessionCache, *stubSessions, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := &stubSessions{byToken: map[string]string{}}
	m := metrics.New(prometheus.NewRegistry())
	return NewSessionCache(store, client, time.Minute, zerolog.New(io.Discard), m), store, mr
}

func TestSessionCache_CreatePrimesCache(t *testing.T) {
	cache, store, mr := setupCache(t)
	ctx := context.Background()

	if err := cache.Create(ctx, &domain.Session{Token: "tok", UserID: "u-1"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if store.byToken["tok"] != "u-1" {
		t.Fatal("session not persisted in wrapped store")
	}
	got, err := mr.Get("session:tok")
	if err != nil || got != "u-1" {
		t.Fatalf("cached value = %q, %v", got, err)
	}
	if ttl := mr.TTL("session:tok"); ttl != time.Minute {
		t.Fatalf("ttl = %v, want 1m", ttl)
	}

	uid, err := cache.FindUserID(ctx, "tok")
	if err != nil || uid != "u-1" {
		t.Fatalf("FindUserID = %q, %v", uid, err)
	}
	if store.lookups != 0 {
		t.Fatalf("expected cache hit, store consulted %d times", store.lookups)
	}
}

func TestSessionCache_CreateStoreFailureSkipsCache(t *testing.T) {
	cache, store, mr := setupCache(t)
	store.err = errors.New("db down")

	if err := cache.Create(context.Background(), &domain.Session{Token: "tok", UserID: "u-1"}); err == nil {
		t.Fatal("expected error")
	}
	if mr.Exists("session:tok") {
		t.Fatal("failed session must not be cached")
	}
}

func TestSessionCache_MissFillsCache(t *testing.T) {
	cache, store, mr := setupCache(t)
	store.byToken["tok"] = "u-1"
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		uid, err := cache.FindUserID(ctx, "tok")
		if err != nil || uid != "u-1" {
			t.Fatalf("FindUserID = %q, %v", uid, err)
		}
	}
	if store.lookups != 1 {
		t.Fatalf("store lookups = %d, want 1", store.lookups)
	}
	if !mr.Exists("session:tok") {
		t.Fatal("expected cache fill")
	}

	mr.FastForward(2 * time.Minute)
	if _, err := cache.FindUserID(ctx, "tok"); err != nil {
		t.Fatalf("FindUserID after expiry: %v", err)
	}
	if store.lookups != 2 {
		t.Fatalf("store lookups after expiry = %d, want 2", store.lookups)
	}
}

func TestSessionCache_UnknownTokenNotCached(t *testing.T) {
	cache, _, mr := setupCache(t)

	_, err := cache.FindUserID(context.Background(), "nope")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if mr.Exists("session:nope") {
		t.Fatal("negative lookups must not be cached")
	}
}

func TestSessionCache_RedisDownFallsThrough(t *testing.T) {
	cache, store, mr := setupCache(t)
	store.byToken["tok"] = "u-1"
	mr.Close()

	uid, err := cache.FindUserID(context.Background(), "tok")
	if err != nil || uid != "u-1" {
		t.Fatalf("FindUserID = %q, %v", uid, err)
	}
	if err := cache.Create(context.Background(), &domain.Session{Token: "t2", UserID: "u-2"}); err != nil {
		t.Fatalf("Create must succeed without redis: %v", err)
	}
}

func TestNewSessionCache_DefaultTTL(t *testing.T) {
	c := NewSessionCache(&stubSessions{}, nil, 0, zerolog.Nop(), nil)
	if c.ttl != DefaultSessionTTL {
		t.Fatalf("ttl = %v, want %v", c.ttl, DefaultSessionTTL)
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("Connect error: %v", err)
	}
	defer client.Close()

	if err := Pinger(client)(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	if _, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatal("expected connect error")
	}
}
