package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/pkg/errors"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/engine"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
)

// Config holds the PostgreSQL connection configuration.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DefaultConfig returns a database configuration from environment
// variables with local-development defaults.
func DefaultConfig() Config {
	return Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "stockintel"),
		Password: getEnv("DB_PASSWORD", "stockintel"),
		DBName:   getEnv("DB_NAME", "stockintel"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// PostgresStore persists daily bars in PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to PostgreSQL and bootstraps the schema.
func NewPostgresStore(config Config) (*PostgresStore, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
	)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	s := &PostgresStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to migrate schema")
	}

	log.Printf("Connected to database at %s:%d/%s", config.Host, config.Port, config.DBName)
	return s, nil
}

func (s *PostgresStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_bars (
			id           BIGSERIAL PRIMARY KEY,
			symbol       TEXT NOT NULL,
			date         DATE NOT NULL,
			open         DOUBLE PRECISION NOT NULL,
			high         DOUBLE PRECISION NOT NULL,
			low          DOUBLE PRECISION NOT NULL,
			close        DOUBLE PRECISION NOT NULL,
			volume       DOUBLE PRECISION NOT NULL DEFAULT 0,
			daily_return DOUBLE PRECISION NOT NULL DEFAULT 0,
			ma_7         DOUBLE PRECISION,
			volatility   DOUBLE PRECISION NOT NULL DEFAULT 0,
			source       TEXT NOT NULL DEFAULT 'manual',
			batch_id     TEXT,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (symbol, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_bars_symbol_date ON daily_bars (symbol, date)`,
		`CREATE TABLE IF NOT EXISTS ingest_batches (
			id         TEXT PRIMARY KEY,
			symbol     TEXT NOT NULL,
			source     TEXT NOT NULL,
			bar_count  INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Symbols returns all distinct symbols in ascending order.
func (s *PostgresStore) Symbols(ctx context.Context) ([]string, error) {
	symbols := []string{}
	err := s.db.SelectContext(ctx, &symbols,
		`SELECT DISTINCT symbol FROM daily_bars ORDER BY symbol`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query symbols")
	}
	return symbols, nil
}

// History returns the most recent limit bars for a symbol in ascending
// date order. A limit <= 0 returns the full series.
func (s *PostgresStore) History(ctx context.Context, symbol string, limit int) ([]models.DailyBar, error) {
	query := `SELECT id::text, symbol, date, open, high, low, close, volume,
			daily_return, ma_7, volatility, source, batch_id, created_at
		FROM daily_bars WHERE symbol = $1 ORDER BY date DESC`
	args := []interface{}{symbol}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	var rows []barRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrapf(err, "failed to query history for %s", symbol)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", engine.ErrUnknownSymbol, symbol)
	}

	// Newest-first from the database, reversed to chronological order.
	bars := make([]models.DailyBar, len(rows))
	for i, r := range rows {
		bars[len(rows)-1-i] = r.toBar()
	}
	return bars, nil
}

// InsertBars upserts bars keyed on (symbol, date) and returns the number
// of rows written.
func (s *PostgresStore) InsertBars(ctx context.Context, bars []models.DailyBar) (int, error) {
	const query = `
		INSERT INTO daily_bars (
			symbol, date, open, high, low, close, volume,
			daily_return, ma_7, volatility, source, batch_id, created_at
		) VALUES (
			:symbol, :date, :open, :high, :low, :close, :volume,
			:daily_return, :ma_7, :volatility, :source, :batch_id, NOW()
		)
		ON CONFLICT (symbol, date) DO UPDATE SET
			open = EXCLUDED.open,
			high = EXCLUDED.high,
			low = EXCLUDED.low,
			close = EXCLUDED.close,
			volume = EXCLUDED.volume,
			daily_return = EXCLUDED.daily_return,
			ma_7 = EXCLUDED.ma_7,
			volatility = EXCLUDED.volatility,
			source = EXCLUDED.source,
			batch_id = EXCLUDED.batch_id
	`

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	count := 0
	for i := range bars {
		if _, err := tx.NamedExecContext(ctx, query, &bars[i]); err != nil {
			return count, errors.Wrapf(err, "failed to insert bar %s/%s",
				bars[i].Symbol, bars[i].DateString())
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return count, errors.Wrap(err, "failed to commit bars")
	}
	return count, nil
}

// InsertBatch records an ingest batch.
func (s *PostgresStore) InsertBatch(ctx context.Context, batch *models.IngestBatch) error {
	const query = `
		INSERT INTO ingest_batches (id, symbol, source, bar_count, created_at)
		VALUES (:id, :symbol, :source, :bar_count, NOW())
	`
	if _, err := s.db.NamedExecContext(ctx, query, batch); err != nil {
		return errors.Wrapf(err, "failed to insert batch %s", batch.ID)
	}
	return nil
}

// DeleteSymbol removes all bars for a symbol.
func (s *PostgresStore) DeleteSymbol(ctx context.Context, symbol string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM daily_bars WHERE symbol = $1`, symbol); err != nil {
		return errors.Wrapf(err, "failed to delete bars for %s", symbol)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s.db != nil {
		log.Printf("Closing database connection")
		return s.db.Close()
	}
	return nil
}

// barRow mirrors the daily_bars schema; ma_7 and batch_id are nullable.
type barRow struct {
	ID          string          `db:"id"`
	Symbol      string          `db:"symbol"`
	Date        time.Time       `db:"date"`
	Open        float64         `db:"open"`
	High        float64         `db:"high"`
	Low         float64         `db:"low"`
	Close       float64         `db:"close"`
	Volume      float64         `db:"volume"`
	DailyReturn float64         `db:"daily_return"`
	MA7         sql.NullFloat64 `db:"ma_7"`
	Volatility  float64         `db:"volatility"`
	Source      string          `db:"source"`
	BatchID     sql.NullString  `db:"batch_id"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (r barRow) toBar() models.DailyBar {
	bar := models.DailyBar{
		ID:          r.ID,
		Symbol:      r.Symbol,
		Date:        r.Date,
		Open:        r.Open,
		High:        r.High,
		Low:         r.Low,
		Close:       r.Close,
		Volume:      r.Volume,
		DailyReturn: r.DailyReturn,
		Volatility:  r.Volatility,
		Source:      models.DataSource(r.Source),
		BatchID:     r.BatchID.String,
		CreatedAt:   r.CreatedAt,
	}
	if r.MA7.Valid {
		ma := r.MA7.Float64
		bar.MA7 = &ma
	}
	return bar
}
