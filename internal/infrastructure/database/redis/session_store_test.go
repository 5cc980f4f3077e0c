package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
	"github.com/ogtriplek/tyre-storefront/internal/domain/filter"
	"github.com/ogtriplek/tyre-storefront/internal/domain/storefront"
	"github.com/ogtriplek/tyre-storefront/internal/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c, err := catalog.Default()
	require.NoError(t, err)

	return NewSessionStore(client, c, time.Hour, logger.Discard()), mr
}

func TestSessionStorePersistsState(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	brand := "michelin"

	require.NoError(t, store.Update(ctx, "abc", func(s *storefront.Session) error {
		require.True(t, s.SelectVehicle("car-1"))
		s.SetMode(filter.ModePriceLowHigh)
		s.SetSelections(filter.Selections{Brand: &brand})
		require.True(t, s.AddToCart("michelin-primacy-1"))
		require.True(t, s.AddToCart("michelin-primacy-1"))
		return nil
	}))

	assert.True(t, mr.Exists(sessionKey("abc")))
	assert.Equal(t, time.Hour, mr.TTL(sessionKey("abc")))

	require.NoError(t, store.Update(ctx, "abc", func(s *storefront.Session) error {
		require.NotNil(t, s.Selector().Selected())
		assert.Equal(t, "car-1", s.Selector().Selected().ID)
		assert.Equal(t, filter.ModePriceLowHigh, s.Mode())
		assert.Equal(t, 2, s.Cart().Quantity("michelin-primacy-1"))

		view := s.View()
		assert.Equal(t, storefront.StateResults, view.State)
		for _, p := range view.Products {
			assert.Equal(t, "Michelin", p.Brand)
		}
		return nil
	}))
}

func TestSessionStoreFnErrorLeavesStateUntouched(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Update(ctx, "abc", func(s *storefront.Session) error {
		s.AddToCart("michelin-primacy-1")
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(sessionKey("abc")))
}

func TestSessionStoreCorruptStateStartsFresh(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, mr.Set(sessionKey("abc"), "{not json"))

	require.NoError(t, store.Update(context.Background(), "abc", func(s *storefront.Session) error {
		assert.Equal(t, 0, s.Cart().Len())
		return nil
	}))
}

func TestSessionStoreConcurrentAdds(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Update(ctx, "abc", func(s *storefront.Session) error {
				s.AddToCart("yokohama-adv-1")
				return nil
			})
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}

	require.NoError(t, store.Update(ctx, "abc", func(s *storefront.Session) error {
		assert.Equal(t, succeeded, s.Cart().Quantity("yokohama-adv-1"))
		return nil
	}))
}

func TestSessionStoreDelete(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "abc", func(*storefront.Session) error { return nil }))
	require.NoError(t, store.Delete(ctx, "abc"))
	assert.False(t, mr.Exists(sessionKey("abc")))
	assert.ErrorIs(t, store.Delete(ctx, "abc"), storefront.ErrSessionNotFound)
}

func TestSessionStoreExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "abc", func(s *storefront.Session) error {
		s.AddToCart("michelin-primacy-1")
		return nil
	}))
	mr.FastForward(2 * time.Hour)

	require.NoError(t, store.Update(ctx, "abc", func(s *storefront.Session) error {
		assert.Equal(t, 0, s.Cart().Len())
		return nil
	}))
}
