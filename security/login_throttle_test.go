package security

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func newTestThrottle(t *testing.T) (*LoginThrottle, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	return NewLoginThrottle(db, 3, 5*time.Minute, slog.Default()), mock
}

func TestLoginThrottle_FirstAttemptAllowedAndExpires(t *testing.T) {
	throttle, mock := newTestThrottle(t)
	defer mock.ClearExpect()

	mock.ExpectIncr("login:attempts:mario@example.com").SetVal(1)
	mock.ExpectExpire("login:attempts:mario@example.com", 5*time.Minute).SetVal(true)

	assert.True(t, throttle.Allow(context.Background(), "Mario@example.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginThrottle_BlocksOverBudget(t *testing.T) {
	throttle, mock := newTestThrottle(t)
	defer mock.ClearExpect()

	mock.ExpectIncr("login:attempts:mario@example.com").SetVal(4)

	assert.False(t, throttle.Allow(context.Background(), "mario@example.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginThrottle_FailsOpenWhenRedisIsDown(t *testing.T) {
	throttle, mock := newTestThrottle(t)
	defer mock.ClearExpect()

	mock.ExpectIncr("login:attempts:mario@example.com").SetErr(assert.AnError)

	assert.True(t, throttle.Allow(context.Background(), "mario@example.com"))
}

func TestLoginThrottle_Reset(t *testing.T) {
	throttle, mock := newTestThrottle(t)
	defer mock.ClearExpect()

	mock.ExpectDel("login:attempts:mario@example.com").SetVal(1)

	throttle.Reset(context.Background(), "mario@example.com")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginThrottle_NilAllowsEverything(t *testing.T) {
	var throttle *LoginThrottle

	assert.True(t, throttle.Allow(context.Background(), "mario@example.com"))
	throttle.Reset(context.Background(), "mario@example.com")
}
