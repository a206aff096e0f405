package repository

import (
	"database/sql"
	"etfoverlap/internal/domain"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestSnapshot(id string) domain.FundSnapshot {
	return domain.FundSnapshot{
		FundIdentifier: id,
		FundName:       "Fund " + id,
		Holdings: []domain.Holding{
			{StockIdentifier: "US0378331005", Name: "Apple", Weight: 4.72},
			{StockIdentifier: "US5949181045", Name: "Microsoft", Weight: 4.13},
		},
		HoldingsAvailable: true,
		FetchedAt:         time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
	}
}

// runHoldingsCacheRepositoryTests checks behaviour every backing store
// must share
func runHoldingsCacheRepositoryTests(t *testing.T, newRepo func(clock *fakeClock) HoldingsCacheRepository) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("put then get returns stored snapshot", func(t *testing.T) {
		clock := &fakeClock{t: start}
		repo := newRepo(clock)
		snapshot := newTestSnapshot("IE00B4L5Y983")

		require.NoError(t, repo.Put(snapshot.FundIdentifier, snapshot))

		got, err := repo.Get(snapshot.FundIdentifier)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(&snapshot, got))
	})

	t.Run("missing record is absent", func(t *testing.T) {
		repo := newRepo(&fakeClock{t: start})
		got, err := repo.Get("IE00B5BMR087")
		require.NoError(t, err)
		require.Nil(t, got)

		record, err := repo.Inspect("IE00B5BMR087")
		require.NoError(t, err)
		require.Nil(t, record)
	})

	t.Run("stale record is absent but inspectable", func(t *testing.T) {
		clock := &fakeClock{t: start}
		repo := newRepo(clock)
		snapshot := newTestSnapshot("IE00B4L5Y983")
		require.NoError(t, repo.Put(snapshot.FundIdentifier, snapshot))

		clock.Advance(24 * time.Hour)
		got, err := repo.Get(snapshot.FundIdentifier)
		require.NoError(t, err)
		require.NotNil(t, got, "exactly ttl old is still fresh")

		clock.Advance(time.Second)
		got, err = repo.Get(snapshot.FundIdentifier)
		require.NoError(t, err)
		require.Nil(t, got)

		record, err := repo.Inspect(snapshot.FundIdentifier)
		require.NoError(t, err)
		require.NotNil(t, record)
		require.True(t, record.StoredAt.Equal(start))
		require.True(t, record.IsStale(clock.Now(), DefaultCacheTTL))
	})

	t.Run("put overwrites and refreshes", func(t *testing.T) {
		clock := &fakeClock{t: start}
		repo := newRepo(clock)
		snapshot := newTestSnapshot("IE00B4L5Y983")
		require.NoError(t, repo.Put(snapshot.FundIdentifier, snapshot))

		clock.Advance(25 * time.Hour)
		updated := snapshot.Copy()
		updated.Holdings = updated.Holdings[:1]
		require.NoError(t, repo.Put(snapshot.FundIdentifier, updated))
		require.NoError(t, repo.Put(snapshot.FundIdentifier, updated))

		got, err := repo.Get(snapshot.FundIdentifier)
		require.NoError(t, err)
		require.Equal(t, 1, len(got.Holdings))
	})

	t.Run("expire one", func(t *testing.T) {
		repo := newRepo(&fakeClock{t: start})
		a := newTestSnapshot("IE00B4L5Y983")
		b := newTestSnapshot("IE00B5BMR087")
		require.NoError(t, repo.Put(a.FundIdentifier, a))
		require.NoError(t, repo.Put(b.FundIdentifier, b))

		require.NoError(t, repo.Expire(a.FundIdentifier))

		got, err := repo.Get(a.FundIdentifier)
		require.NoError(t, err)
		require.Nil(t, got)
		got, err = repo.Get(b.FundIdentifier)
		require.NoError(t, err)
		require.NotNil(t, got)
	})

	t.Run("expire all", func(t *testing.T) {
		repo := newRepo(&fakeClock{t: start})
		a := newTestSnapshot("IE00B4L5Y983")
		b := newTestSnapshot("IE00B5BMR087")
		require.NoError(t, repo.Put(a.FundIdentifier, a))
		require.NoError(t, repo.Put(b.FundIdentifier, b))

		require.NoError(t, repo.ExpireAll())

		for _, id := range []string{a.FundIdentifier, b.FundIdentifier} {
			got, err := repo.Get(id)
			require.NoError(t, err)
			require.Nil(t, got)
		}
	})

	t.Run("purge stale only", func(t *testing.T) {
		clock := &fakeClock{t: start}
		repo := newRepo(clock)
		old := newTestSnapshot("IE00B4L5Y983")
		require.NoError(t, repo.Put(old.FundIdentifier, old))

		clock.Advance(20 * time.Hour)
		recent := newTestSnapshot("IE00B5BMR087")
		require.NoError(t, repo.Put(recent.FundIdentifier, recent))

		clock.Advance(5 * time.Hour)
		purged, err := repo.PurgeStale()
		require.NoError(t, err)
		require.Equal(t, int64(1), purged)

		record, err := repo.Inspect(old.FundIdentifier)
		require.NoError(t, err)
		require.Nil(t, record)
		record, err = repo.Inspect(recent.FundIdentifier)
		require.NoError(t, err)
		require.NotNil(t, record)
	})

	t.Run("empty holdings round trip", func(t *testing.T) {
		repo := newRepo(&fakeClock{t: start})
		snapshot := newTestSnapshot("IE00B4L5Y983")
		snapshot.Holdings = []domain.Holding{}
		snapshot.HoldingsAvailable = false
		require.NoError(t, repo.Put(snapshot.FundIdentifier, snapshot))

		got, err := repo.Get(snapshot.FundIdentifier)
		require.NoError(t, err)
		require.NotNil(t, got.Holdings)
		require.Equal(t, 0, len(got.Holdings))
		require.False(t, got.HoldingsAvailable)
	})
}

func TestMemoryHoldingsCacheRepository(t *testing.T) {
	runHoldingsCacheRepositoryTests(t, func(clock *fakeClock) HoldingsCacheRepository {
		return NewMemoryHoldingsCacheRepository(DefaultCacheTTL, clock.Now)
	})

	t.Run("callers cannot mutate cached state", func(t *testing.T) {
		repo := NewMemoryHoldingsCacheRepository(DefaultCacheTTL, nil)
		snapshot := newTestSnapshot("IE00B4L5Y983")
		require.NoError(t, repo.Put(snapshot.FundIdentifier, snapshot))
		snapshot.Holdings[0].Weight = 99

		got, err := repo.Get(snapshot.FundIdentifier)
		require.NoError(t, err)
		require.Equal(t, 4.72, got.Holdings[0].Weight)

		got.Holdings[0].Weight = 50
		again, err := repo.Get(snapshot.FundIdentifier)
		require.NoError(t, err)
		require.Equal(t, 4.72, again.Holdings[0].Weight)
	})
}

func TestSqliteHoldingsCacheRepository(t *testing.T) {
	runHoldingsCacheRepositoryTests(t, func(clock *fakeClock) HoldingsCacheRepository {
		db, err := OpenSqliteDb(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return NewSqliteHoldingsCacheRepository(db, DefaultCacheTTL, clock.Now)
	})

	t.Run("file backed db persists across reopen", func(t *testing.T) {
		path := t.TempDir() + "/cache/etf_cache.db"
		snapshot := newTestSnapshot("IE00B4L5Y983")

		db, err := OpenSqliteDb(path)
		require.NoError(t, err)
		require.NoError(t, NewSqliteHoldingsCacheRepository(db, DefaultCacheTTL, nil).Put(snapshot.FundIdentifier, snapshot))
		require.NoError(t, db.Close())

		db, err = OpenSqliteDb(path)
		require.NoError(t, err)
		defer db.Close()
		got, err := NewSqliteHoldingsCacheRepository(db, DefaultCacheTTL, nil).Get(snapshot.FundIdentifier)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(&snapshot, got))
	})
}

// needs a local postgres with the etf_holdings_cache migration applied
func TestPostgresHoldingsCacheRepository(t *testing.T) {
	connStr := os.Getenv("ETF_OVERLAP_TEST_DB")
	if connStr == "" {
		t.Skip("ETF_OVERLAP_TEST_DB not set")
	}

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	defer db.Close()

	runHoldingsCacheRepositoryTests(t, func(clock *fakeClock) HoldingsCacheRepository {
		repo := NewPostgresHoldingsCacheRepository(db, DefaultCacheTTL, clock.Now)
		require.NoError(t, repo.ExpireAll())
		return repo
	})
}
