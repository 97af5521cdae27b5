package utils

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Circuit Breaker Tests

func TestBreaker_ExecuteSuccess(t *testing.T) {
	b := NewBreaker("test")

	calls := 0
	err := b.Execute(func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, BreakerClosed, b.State())
}

func TestBreaker_TripsAfterRepeatedFailures(t *testing.T) {
	b := NewBreaker("test")
	b.maxRequests = 3
	b.failureRatio = 0.5

	boom := errors.New("boom")
	for i := 0; i < 3; i++ {
		err := b.Execute(func() error { return boom })
		assert.ErrorIs(t, err, boom)
	}

	assert.Equal(t, BreakerOpen, b.State())

	err := b.Execute(func() error {
		t.Fatal("fn must not run while the breaker is open")
		return nil
	})
	assert.ErrorIs(t, err, ErrBreakerOpen)
}

func TestBreaker_HalfOpenRecovers(t *testing.T) {
	b := NewBreaker("test")
	b.maxRequests = 2
	b.failureRatio = 0.5
	b.timeout = 10 * time.Millisecond

	boom := errors.New("boom")
	for i := 0; i < 2; i++ {
		_ = b.Execute(func() error { return boom })
	}
	require.Equal(t, BreakerOpen, b.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, BreakerHalfOpen, b.State())

	err := b.Execute(func() error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, BreakerClosed, b.State())
}

func TestBreaker_NilRunsFn(t *testing.T) {
	var b *Breaker

	calls := 0
	err := b.Execute(func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

// Random Code Tests

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(8)
	require.NoError(t, err)
	assert.Len(t, code, 16)
	assert.Regexp(t, "^[0-9A-F]+$", code)

	other, err := GenerateCode(8)
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}

// View Cache Tests

func newTestViewCache(t *testing.T) (*ViewCache, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	return NewViewCache(db, time.Minute, slog.Default()), mock
}

func TestViewCache_GetHit(t *testing.T) {
	cache, mock := newTestViewCache(t)
	defer mock.ClearExpect()

	payload, _ := json.Marshal([]string{"a", "b"})
	mock.ExpectGet("view:events").SetVal(string(payload))

	var got []string
	hit := cache.Get(context.Background(), "view:events", &got)

	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestViewCache_GetMiss(t *testing.T) {
	cache, mock := newTestViewCache(t)
	defer mock.ClearExpect()

	mock.ExpectGet("view:events").RedisNil()

	var got []string
	hit := cache.Get(context.Background(), "view:events", &got)

	assert.False(t, hit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestViewCache_SetAndInvalidate(t *testing.T) {
	cache, mock := newTestViewCache(t)
	defer mock.ClearExpect()

	payload, _ := json.Marshal([]int{1, 2, 3})
	mock.ExpectSet("view:infoBoxes", payload, time.Minute).SetVal("OK")
	mock.ExpectDel("view:infoBoxes").SetVal(1)

	cache.Set(context.Background(), "view:infoBoxes", []int{1, 2, 3})
	cache.Invalidate(context.Background(), "view:infoBoxes")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestViewCache_NilIsDisabled(t *testing.T) {
	var cache *ViewCache

	var got []string
	assert.False(t, cache.Get(context.Background(), "view:events", &got))

	// Must not panic.
	cache.Set(context.Background(), "view:events", []string{"x"})
	cache.Invalidate(context.Background(), "view:events")
}
