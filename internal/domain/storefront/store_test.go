package storefront

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreKeepsSessionsApart(t *testing.T) {
	store := NewMemoryStore(scenarioCatalog(t), time.Hour)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "one", func(s *Session) error {
		s.AddToCart("A")
		return nil
	}))
	require.NoError(t, store.Update(ctx, "two", func(s *Session) error {
		s.AddToCart("B")
		s.AddToCart("B")
		return nil
	}))

	var one, two int
	require.NoError(t, store.Update(ctx, "one", func(s *Session) error {
		one = s.Cart().TotalItems()
		return nil
	}))
	require.NoError(t, store.Update(ctx, "two", func(s *Session) error {
		two = s.Cart().TotalItems()
		return nil
	}))

	assert.Equal(t, 1, one)
	assert.Equal(t, 2, two)
	assert.Equal(t, 2, store.Len())
}

func TestMemoryStorePropagatesErrors(t *testing.T) {
	store := NewMemoryStore(scenarioCatalog(t), time.Hour)
	defer store.Close()

	boom := errors.New("boom")
	err := store.Update(context.Background(), "one", func(*Session) error { return boom })
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.Update(ctx, "one", func(*Session) error { return nil }), context.Canceled)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(scenarioCatalog(t), time.Minute)
	defer store.Close()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "one", func(s *Session) error {
		s.SelectVehicle("V")
		return nil
	}))

	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Update(ctx, "one", func(s *Session) error {
		assert.Nil(t, s.Selector().Selected(), "expired session starts over")
		return nil
	}))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(scenarioCatalog(t), time.Hour)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "one", func(s *Session) error {
		s.AddToCart("A")
		return nil
	}))
	require.NoError(t, store.Delete(ctx, "one"))
	assert.ErrorIs(t, store.Delete(ctx, "one"), ErrSessionNotFound)
}

func TestMemoryStoreSerialisesUpdates(t *testing.T) {
	store := NewMemoryStore(scenarioCatalog(t), time.Hour)
	defer store.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, "shared", func(s *Session) error {
				s.AddToCart("A")
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, store.Update(ctx, "shared", func(s *Session) error {
		assert.Equal(t, 50, s.Cart().Quantity("A"))
		return nil
	}))
}

func TestMemoryStoreRunStopsWithContext(t *testing.T) {
	store := NewMemoryStore(scenarioCatalog(t), time.Hour)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
