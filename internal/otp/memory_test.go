package otp

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "+15551234567")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "+15551234567", "123456", 10*time.Minute))

	v, err := s.Get(ctx, "+15551234567")
	require.NoError(t, err)
	require.Equal(t, "123456", v)

	require.NoError(t, s.Delete(ctx, "+15551234567"))
	_, err = s.Get(ctx, "+15551234567")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "+15551234567", "111111", 10*time.Minute))
	require.NoError(t, s.Set(ctx, "+15551234567", "222222", 10*time.Minute))

	v, err := s.Get(ctx, "+15551234567")
	require.NoError(t, err)
	require.Equal(t, "222222", v)
}

func TestMemoryStoreLazyExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "+15551234567", "123456", 10*time.Minute))

	// just inside the window
	s.now = func() time.Time { return now.Add(10*time.Minute - time.Second) }
	v, err := s.Get(ctx, "+15551234567")
	require.NoError(t, err)
	require.Equal(t, "123456", v)

	// past the window the entry is gone, digits matching or not
	s.now = func() time.Time { return now.Add(10*time.Minute + time.Second) }
	_, err = s.Get(ctx, "+15551234567")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := GenerateCode()
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}
