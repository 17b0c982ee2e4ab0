package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-board/domain"
)

// runJobStoreContract checks the behaviour every JobStore backend shares.
// newStore must return an empty store.
func runJobStoreContract(t *testing.T, newStore func(t *testing.T) domain.JobStore) {
	ctx := context.Background()

	create := func(t *testing.T, store domain.JobStore, title string) domain.Job {
		t.Helper()
		job, err := store.Create(ctx, domain.JobInput{Title: title})
		require.NoError(t, err)
		return job
	}

	all := domain.PageRequest{Page: 0, Size: 100}

	t.Run("ids are unique and stable", func(t *testing.T) {
		store := newStore(t)

		seen := map[uint]string{}
		for i := 0; i < 5; i++ {
			job := create(t, store, fmt.Sprintf("Engineer %d", i))
			require.NotZero(t, job.ID)
			_, dup := seen[job.ID]
			require.False(t, dup, "duplicate id %d", job.ID)
			seen[job.ID] = job.Title
		}

		for id, title := range seen {
			got, err := store.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
			assert.Equal(t, title, got.Title)
		}
	})

	t.Run("unfiltered list counts every job in insertion order", func(t *testing.T) {
		store := newStore(t)

		var ids []uint
		for _, title := range []string{"Zeta", "Alpha", "Mu"} {
			ids = append(ids, create(t, store, title).ID)
		}

		for _, filter := range []string{"", "   "} {
			page, err := store.List(ctx, filter, all)
			require.NoError(t, err)
			assert.Equal(t, int64(3), page.TotalElements)
			require.Len(t, page.Items, 3)
			for i, job := range page.Items {
				assert.Equal(t, ids[i], job.ID)
			}
		}
	})

	t.Run("filter is a case-insensitive substring match", func(t *testing.T) {
		store := newStore(t)
		create(t, store, "Foobar")
		create(t, store, "Senior BarFOO Lead")
		create(t, store, "Go Developer")

		for _, q := range []string{"foo", "FOO", "Foo"} {
			page, err := store.List(ctx, q, all)
			require.NoError(t, err)
			assert.Equal(t, int64(2), page.TotalElements, q)
			require.Len(t, page.Items, 2)
			assert.Equal(t, "Foobar", page.Items[0].Title)
			assert.Equal(t, "Senior BarFOO Lead", page.Items[1].Title)
		}

		create(t, store, "ÉCOLE Teacher")
		create(t, store, "Straßenbahn Driver")
		for _, q := range []string{"école", "ÉCOLE", "École"} {
			page, err := store.List(ctx, q, all)
			require.NoError(t, err)
			require.Len(t, page.Items, 1, q)
			assert.Equal(t, "ÉCOLE Teacher", page.Items[0].Title)
		}

		page, err := store.List(ctx, "STRAßEN", all)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)

		page, err = store.List(ctx, "rust", all)
		require.NoError(t, err)
		assert.Zero(t, page.TotalElements)
		assert.Empty(t, page.Items)
	})

	t.Run("wildcard characters match literally", func(t *testing.T) {
		store := newStore(t)
		create(t, store, "100% remote")
		create(t, store, "1000 remote")
		create(t, store, "data_engineer")
		create(t, store, "dataxengineer")
		create(t, store, "Wow! (C++) [senior]")

		cases := map[string]string{
			"0%":        "100% remote",
			"a_e":       "data_engineer",
			"! (c++) [": "Wow! (C++) [senior]",
		}
		for q, want := range cases {
			page, err := store.List(ctx, q, all)
			require.NoError(t, err)
			require.Len(t, page.Items, 1, q)
			assert.Equal(t, want, page.Items[0].Title)
		}
	})

	t.Run("blank title is rejected and nothing is stored", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Create(ctx, domain.JobInput{Title: "   ", Company: "Acme"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))

		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "title")

		page, err := store.List(ctx, "", all)
		require.NoError(t, err)
		assert.Zero(t, page.TotalElements)
	})

	t.Run("created job is found by search", func(t *testing.T) {
		store := newStore(t)
		create(t, store, "Frontend Developer")

		job, err := store.Create(ctx, domain.JobInput{
			Title:      "Backend Engineer",
			Company:    "Acme",
			SalaryFrom: int64Ptr(100),
			SalaryTo:   int64Ptr(200),
		})
		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", job.Title)
		assert.True(t, job.Active)
		assert.False(t, job.PostedAt.IsZero())

		page, err := store.List(ctx, "backend", all)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		got := page.Items[0]
		assert.Equal(t, job.ID, got.ID)
		assert.Equal(t, "Acme", got.Company)
		require.NotNil(t, got.SalaryFrom)
		require.NotNil(t, got.SalaryTo)
		assert.Equal(t, int64(100), *got.SalaryFrom)
		assert.Equal(t, int64(200), *got.SalaryTo)
		assert.True(t, job.PostedAt.Equal(got.PostedAt))
	})

	t.Run("inactive flag is kept", func(t *testing.T) {
		store := newStore(t)
		inactive := false

		job, err := store.Create(ctx, domain.JobInput{Title: "Archived role", IsActive: &inactive})
		require.NoError(t, err)

		got, err := store.Get(ctx, job.ID)
		require.NoError(t, err)
		assert.False(t, got.Active)
		assert.Nil(t, got.SalaryFrom)
	})

	t.Run("pagination", func(t *testing.T) {
		store := newStore(t)
		for i := 1; i <= 15; i++ {
			create(t, store, fmt.Sprintf("Job %02d", i))
		}

		first, err := store.List(ctx, "", domain.PageRequest{Page: 0, Size: 10})
		require.NoError(t, err)
		assert.Len(t, first.Items, 10)
		assert.True(t, first.First)
		assert.False(t, first.Last)

		second, err := store.List(ctx, "", domain.PageRequest{Page: 1, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(15), second.TotalElements)
		assert.Equal(t, 2, second.TotalPages)
		assert.Equal(t, 1, second.PageNumber)
		assert.Equal(t, 10, second.PageSize)
		require.Len(t, second.Items, 5)
		assert.Equal(t, "Job 11", second.Items[0].Title)
		assert.Equal(t, "Job 15", second.Items[4].Title)
		assert.True(t, second.Last)

		beyond, err := store.List(ctx, "", domain.PageRequest{Page: 5, Size: 10})
		require.NoError(t, err)
		assert.Empty(t, beyond.Items)
		assert.Equal(t, int64(15), beyond.TotalElements)

		filtered, err := store.List(ctx, "job 1", domain.PageRequest{Page: 1, Size: 4})
		require.NoError(t, err)
		assert.Equal(t, int64(6), filtered.TotalElements)
		assert.Equal(t, 2, filtered.TotalPages)
		require.Len(t, filtered.Items, 2)
		assert.Equal(t, "Job 14", filtered.Items[0].Title)
	})

	t.Run("invalid page request", func(t *testing.T) {
		store := newStore(t)

		for _, req := range []domain.PageRequest{{Page: -1, Size: 10}, {Page: 0, Size: 0}, {Page: 0, Size: -3}} {
			_, err := store.List(ctx, "", req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		store := newStore(t)
		create(t, store, "Only job")

		_, err := store.Get(ctx, 9999)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func int64Ptr(v int64) *int64 { return &v }
