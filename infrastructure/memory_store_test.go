package infrastructure

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-board/domain"
)

func TestMemoryJobStore(t *testing.T) {
	runJobStoreContract(t, func(t *testing.T) domain.JobStore {
		return NewMemoryJobStore()
	})
}

func TestMemoryJobStoreConcurrentCreate(t *testing.T) {
	store := NewMemoryJobStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Create(ctx, domain.JobInput{Title: fmt.Sprintf("Job %d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	page, err := store.List(ctx, "", domain.PageRequest{Page: 0, Size: 100})
	require.NoError(t, err)
	require.Len(t, page.Items, 50)

	for i, job := range page.Items {
		assert.Equal(t, uint(i+1), job.ID)
	}
}

func TestMemoryJobStoreUnboundedPageSize(t *testing.T) {
	store := NewMemoryJobStore()
	ctx := context.Background()
	for _, title := range []string{"One", "Two"} {
		_, err := store.Create(ctx, domain.JobInput{Title: title})
		require.NoError(t, err)
	}

	page, err := store.List(ctx, "", domain.PageRequest{Page: 0, Size: math.MaxInt})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.TotalPages)
	assert.True(t, page.Last)
}
