package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"etfoverlap/internal/db/models/postgres/public/model"
	"etfoverlap/internal/db/models/postgres/public/table"
	"etfoverlap/internal/domain"
	"fmt"
	"time"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type postgresHoldingsCacheRepositoryHandler struct {
	cacheFreshness
	Db *sql.DB
}

func NewPostgresHoldingsCacheRepository(db *sql.DB, ttl time.Duration, now func() time.Time) HoldingsCacheRepository {
	return postgresHoldingsCacheRepositoryHandler{
		cacheFreshness: newCacheFreshness(ttl, now),
		Db:             db,
	}
}

type jsonHolding struct {
	StockIdentifier string  `json:"isin"`
	Name            string  `json:"name"`
	Weight          float64 `json:"weight"`
}

func (h postgresHoldingsCacheRepositoryHandler) Get(fundIdentifier string) (*domain.FundSnapshot, error) {
	record, err := h.Inspect(fundIdentifier)
	if err != nil {
		return nil, err
	}
	if record == nil || !h.isFresh(*record) {
		return nil, nil
	}
	return &record.Snapshot, nil
}

func (h postgresHoldingsCacheRepositoryHandler) Put(fundIdentifier string, snapshot domain.FundSnapshot) error {
	holdings := make([]jsonHolding, 0, len(snapshot.Holdings))
	for _, hd := range snapshot.Holdings {
		holdings = append(holdings, jsonHolding(hd))
	}
	bytes, err := json.Marshal(holdings)
	if err != nil {
		return fmt.Errorf("failed to encode holdings for %s: %w", fundIdentifier, err)
	}

	m := model.EtfHoldingsCache{
		Isin:              fundIdentifier,
		Name:              snapshot.FundName,
		Holdings:          string(bytes),
		HoldingsAvailable: snapshot.HoldingsAvailable,
		FetchedAt:         snapshot.FetchedAt,
		StoredAt:          h.now(),
	}

	t := table.EtfHoldingsCache
	query := t.
		INSERT(t.AllColumns).
		MODEL(m).
		ON_CONFLICT(t.Isin).DO_UPDATE(
		postgres.SET(
			t.Name.SET(t.EXCLUDED.Name),
			t.Holdings.SET(t.EXCLUDED.Holdings),
			t.HoldingsAvailable.SET(t.EXCLUDED.HoldingsAvailable),
			t.FetchedAt.SET(t.EXCLUDED.FetchedAt),
			t.StoredAt.SET(t.EXCLUDED.StoredAt),
		),
	)

	_, err = query.Exec(h.Db)
	if err != nil {
		return fmt.Errorf("failed to cache holdings for %s: %w", fundIdentifier, err)
	}

	return nil
}

func (h postgresHoldingsCacheRepositoryHandler) Expire(fundIdentifier string) error {
	query := table.EtfHoldingsCache.
		DELETE().
		WHERE(table.EtfHoldingsCache.Isin.EQ(postgres.String(fundIdentifier)))

	_, err := query.Exec(h.Db)
	if err != nil {
		return fmt.Errorf("failed to expire cache for %s: %w", fundIdentifier, err)
	}
	return nil
}

func (h postgresHoldingsCacheRepositoryHandler) ExpireAll() error {
	query := table.EtfHoldingsCache.DELETE().WHERE(postgres.Bool(true))

	_, err := query.Exec(h.Db)
	if err != nil {
		return fmt.Errorf("failed to expire cache: %w", err)
	}
	return nil
}

func (h postgresHoldingsCacheRepositoryHandler) Inspect(fundIdentifier string) (*domain.CacheRecord, error) {
	query := table.EtfHoldingsCache.
		SELECT(table.EtfHoldingsCache.AllColumns).
		WHERE(table.EtfHoldingsCache.Isin.EQ(postgres.String(fundIdentifier)))

	result := model.EtfHoldingsCache{}
	err := query.Query(h.Db, &result)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache for %s: %w", fundIdentifier, err)
	}

	decoded := []jsonHolding{}
	if err := json.Unmarshal([]byte(result.Holdings), &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode cached holdings for %s: %w", fundIdentifier, err)
	}
	holdings := make([]domain.Holding, 0, len(decoded))
	for _, d := range decoded {
		holdings = append(holdings, domain.Holding(d))
	}

	return &domain.CacheRecord{
		Key: result.Isin,
		Snapshot: domain.FundSnapshot{
			FundIdentifier:    result.Isin,
			FundName:          result.Name,
			Holdings:          holdings,
			HoldingsAvailable: result.HoldingsAvailable,
			FetchedAt:         result.FetchedAt,
		},
		StoredAt: result.StoredAt,
	}, nil
}

func (h postgresHoldingsCacheRepositoryHandler) PurgeStale() (int64, error) {
	query := table.EtfHoldingsCache.
		DELETE().
		WHERE(table.EtfHoldingsCache.StoredAt.LT(postgres.TimestampzT(h.staleBefore())))

	result, err := query.Exec(h.Db)
	if err != nil {
		return 0, fmt.Errorf("failed to purge stale cache records: %w", err)
	}
	return result.RowsAffected()
}
