package store

import (
	"context"
	"fmt"
	"time"

	"rankings-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Service on top of a pgx connection pool
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new Postgres-backed ranking store
func NewPostgresStore(connectionString string) (Service, error) {
	return newPostgresStore(connectionString)
}

// newPostgresStore creates the concrete implementation
func newPostgresStore(connectionString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	// Keep cloud connections fresh; silently dropped connections otherwise
	// surface as errors on first use
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	// Disable statement caching to avoid "already exists" errors behind pgbouncer
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec
	config.ConnConfig.StatementCacheCapacity = 0

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.createTableIfNotExists(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create rankings table: %w", err)
	}

	return s, nil
}

// createTableIfNotExists creates the rankings table if it doesn't exist
func (s *PostgresStore) createTableIfNotExists() error {
	query := `
		CREATE TABLE IF NOT EXISTS domain_rankings (
			domain VARCHAR(253) NOT NULL,
			date CHAR(10) NOT NULL,
			rank INTEGER NOT NULL CHECK (rank > 0),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			PRIMARY KEY (domain, date)
		);

		CREATE INDEX IF NOT EXISTS idx_domain_rankings_updated_at
			ON domain_rankings(domain, updated_at DESC);
	`

	_, err := s.pool.Exec(context.Background(), query)
	return err
}

// FindLatestPerDomain batches the freshness lookup into a single query
func (s *PostgresStore) FindLatestPerDomain(ctx context.Context, domains []string) (map[string]time.Time, error) {
	query := `
		SELECT domain, MAX(updated_at)
		FROM domain_rankings
		WHERE domain = ANY($1)
		GROUP BY domain
	`

	rows, err := s.pool.Query(ctx, query, domains)
	if err != nil {
		return nil, fmt.Errorf("%w: latest-per-domain query: %v", models.ErrStore, err)
	}
	defer rows.Close()

	latest := make(map[string]time.Time, len(domains))
	for rows.Next() {
		var domain string
		var updatedAt time.Time
		if err := rows.Scan(&domain, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: latest-per-domain scan: %v", models.ErrStore, err)
		}
		latest[domain] = updatedAt
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: latest-per-domain rows: %v", models.ErrStore, err)
	}

	return latest, nil
}

// FindAllRecords loads the full history for all given domains in one query
func (s *PostgresStore) FindAllRecords(ctx context.Context, domains []string) ([]models.RankingRecord, error) {
	query := `
		SELECT domain, date, rank, updated_at
		FROM domain_rankings
		WHERE domain = ANY($1)
		ORDER BY domain, date ASC
	`

	rows, err := s.pool.Query(ctx, query, domains)
	if err != nil {
		return nil, fmt.Errorf("%w: records query: %v", models.ErrStore, err)
	}
	defer rows.Close()

	var records []models.RankingRecord
	for rows.Next() {
		var rec models.RankingRecord
		if err := rows.Scan(&rec.Domain, &rec.Date, &rec.Rank, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: records scan: %v", models.ErrStore, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: records rows: %v", models.ErrStore, err)
	}

	return records, nil
}

// ReplaceAll deletes and reinserts the domain's history inside one transaction.
// The insert tolerates duplicate (domain, date) pairs from a racing refresh.
func (s *PostgresStore) ReplaceAll(ctx context.Context, domain string, records []models.RankingRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin replace for %s: %v", models.ErrStore, domain, err)
	}
	// Rollback is a no-op once the transaction is committed
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM domain_rankings WHERE domain = $1`, domain); err != nil {
		return fmt.Errorf("%w: delete history for %s: %v", models.ErrStore, domain, err)
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(
			`INSERT INTO domain_rankings (domain, date, rank, updated_at)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (domain, date) DO NOTHING`,
			rec.Domain, rec.Date, rec.Rank, rec.UpdatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range records {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("%w: insert history for %s: %v", models.ErrStore, domain, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("%w: close insert batch for %s: %v", models.ErrStore, domain, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit replace for %s: %v", models.ErrStore, domain, err)
	}

	return nil
}

// Ping checks if the database connection is alive
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
