package repository

import (
	"database/sql"
	"errors"
	"etfoverlap/internal/domain"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"
)

const sqliteCreateEtfCacheTable = `
CREATE TABLE IF NOT EXISTS etf_cache (
	isin TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	holdings BLOB NOT NULL,
	holdings_available INTEGER NOT NULL,
	fetched_at INTEGER NOT NULL,
	stored_at INTEGER NOT NULL
)`

// OpenSqliteDb opens (creating if needed) the sqlite cache database and
// ensures the schema exists. Use ":memory:" for a throwaway db.
func OpenSqliteDb(path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// every connection would otherwise get its own empty db
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteCreateEtfCacheTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create etf_cache table: %w", err)
	}

	return db, nil
}

type packedHolding struct {
	StockIdentifier string  `msgpack:"i"`
	Name            string  `msgpack:"n"`
	Weight          float64 `msgpack:"w"`
}

func packHoldings(holdings []domain.Holding) ([]byte, error) {
	packed := make([]packedHolding, 0, len(holdings))
	for _, h := range holdings {
		packed = append(packed, packedHolding(h))
	}
	return msgpack.Marshal(packed)
}

func unpackHoldings(b []byte) ([]domain.Holding, error) {
	packed := []packedHolding{}
	if err := msgpack.Unmarshal(b, &packed); err != nil {
		return nil, err
	}
	out := make([]domain.Holding, 0, len(packed))
	for _, p := range packed {
		out = append(out, domain.Holding(p))
	}
	return out, nil
}

type sqliteHoldingsCacheRepositoryHandler struct {
	cacheFreshness
	Db *sql.DB
}

func NewSqliteHoldingsCacheRepository(db *sql.DB, ttl time.Duration, now func() time.Time) HoldingsCacheRepository {
	return sqliteHoldingsCacheRepositoryHandler{
		cacheFreshness: newCacheFreshness(ttl, now),
		Db:             db,
	}
}

func (h sqliteHoldingsCacheRepositoryHandler) Get(fundIdentifier string) (*domain.FundSnapshot, error) {
	record, err := h.Inspect(fundIdentifier)
	if err != nil {
		return nil, err
	}
	if record == nil || !h.isFresh(*record) {
		return nil, nil
	}
	return &record.Snapshot, nil
}

func (h sqliteHoldingsCacheRepositoryHandler) Put(fundIdentifier string, snapshot domain.FundSnapshot) error {
	holdings, err := packHoldings(snapshot.Holdings)
	if err != nil {
		return fmt.Errorf("failed to encode holdings for %s: %w", fundIdentifier, err)
	}

	_, err = h.Db.Exec(`
		INSERT INTO etf_cache (isin, name, holdings, holdings_available, fetched_at, stored_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(isin) DO UPDATE SET
			name = excluded.name,
			holdings = excluded.holdings,
			holdings_available = excluded.holdings_available,
			fetched_at = excluded.fetched_at,
			stored_at = excluded.stored_at`,
		fundIdentifier,
		snapshot.FundName,
		holdings,
		snapshot.HoldingsAvailable,
		snapshot.FetchedAt.UnixNano(),
		h.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to cache holdings for %s: %w", fundIdentifier, err)
	}

	return nil
}

func (h sqliteHoldingsCacheRepositoryHandler) Expire(fundIdentifier string) error {
	_, err := h.Db.Exec(`DELETE FROM etf_cache WHERE isin = ?`, fundIdentifier)
	if err != nil {
		return fmt.Errorf("failed to expire cache for %s: %w", fundIdentifier, err)
	}
	return nil
}

func (h sqliteHoldingsCacheRepositoryHandler) ExpireAll() error {
	_, err := h.Db.Exec(`DELETE FROM etf_cache`)
	if err != nil {
		return fmt.Errorf("failed to expire cache: %w", err)
	}
	return nil
}

func (h sqliteHoldingsCacheRepositoryHandler) Inspect(fundIdentifier string) (*domain.CacheRecord, error) {
	row := h.Db.QueryRow(`
		SELECT name, holdings, holdings_available, fetched_at, stored_at
		FROM etf_cache
		WHERE isin = ?`,
		fundIdentifier,
	)

	var (
		name              string
		packed            []byte
		holdingsAvailable bool
		fetchedAt         int64
		storedAt          int64
	)
	err := row.Scan(&name, &packed, &holdingsAvailable, &fetchedAt, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache for %s: %w", fundIdentifier, err)
	}

	holdings, err := unpackHoldings(packed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cached holdings for %s: %w", fundIdentifier, err)
	}

	return &domain.CacheRecord{
		Key: fundIdentifier,
		Snapshot: domain.FundSnapshot{
			FundIdentifier:    fundIdentifier,
			FundName:          name,
			Holdings:          holdings,
			HoldingsAvailable: holdingsAvailable,
			FetchedAt:         time.Unix(0, fetchedAt).UTC(),
		},
		StoredAt: time.Unix(0, storedAt).UTC(),
	}, nil
}

func (h sqliteHoldingsCacheRepositoryHandler) PurgeStale() (int64, error) {
	result, err := h.Db.Exec(`DELETE FROM etf_cache WHERE stored_at < ?`, h.staleBefore().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to purge stale cache records: %w", err)
	}
	return result.RowsAffected()
}
