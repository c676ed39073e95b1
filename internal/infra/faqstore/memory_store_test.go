package faqstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

func TestMemoryStoreTopQueries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.IncrementQuery(ctx, "business hours", "Business hours?"))
	require.NoError(t, store.IncrementQuery(ctx, "business hours", "business HOURS"))
	require.NoError(t, store.IncrementQuery(ctx, "reset password", "Reset password"))
	require.NoError(t, store.IncrementQuery(ctx, "refund", ""))
	require.NoError(t, store.IncrementQuery(ctx, "", "ignored"))

	top, err := store.TopQueries(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, []faq.TrendingQuery{
		{Query: "Business hours?", Count: 2},
		{Query: "Reset password", Count: 1},
		{Query: "refund", Count: 1},
	}, top)

	limited, err := store.TopQueries(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestMemoryStoreConcurrentIncrements(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.IncrementQuery(ctx, "hours", "hours")
		}()
	}
	wg.Wait()

	top, err := store.TopQueries(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, int64(50), top[0].Count)
}
