// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"trade-journal/internal/errors"
	"trade-journal/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Trades table for closed, journaled trades
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		trade_date DATETIME NOT NULL,
		entry_time TEXT,
		exit_time TEXT,
		symbol TEXT NOT NULL,
		setup_name TEXT,
		trade_type TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_price REAL,
		exit_price REAL,
		stop_loss REAL NOT NULL,
		quantity INTEGER NOT NULL,
		pnl REAL NOT NULL,
		currency TEXT NOT NULL,
		pnl_base REAL,
		exchange_rate REAL,
		r_factor REAL NOT NULL,
		rule_followed INTEGER,
		rule_violations TEXT,
		session TEXT,
		market_condition TEXT,
		emotion_entry TEXT,
		emotion_exit TEXT,
		mistake_tag TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(trade_date);
	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
	CREATE INDEX IF NOT EXISTS idx_trades_setup ON trades(setup_name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveTrade validates and persists a trade, replacing any existing row with
// the same id.
func (s *SQLiteStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	if err := trade.Validate(); err != nil {
		return err
	}

	violations, _ := json.Marshal(trade.RuleViolations)
	var ruleFollowed interface{}
	if trade.RuleFollowed != nil {
		if *trade.RuleFollowed {
			ruleFollowed = 1
		} else {
			ruleFollowed = 0
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO trades (
			id, trade_date, entry_time, exit_time, symbol, setup_name,
			trade_type, direction, entry_price, exit_price, stop_loss, quantity,
			pnl, currency, pnl_base, exchange_rate, r_factor,
			rule_followed, rule_violations, session, market_condition,
			emotion_entry, emotion_exit, mistake_tag)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, trade.ID, trade.Date, trade.EntryTime, trade.ExitTime, trade.Symbol, trade.SetupName,
		trade.Type, trade.Direction, trade.EntryPrice, trade.ExitPrice, trade.StopLoss, trade.Quantity,
		trade.PnL, trade.Currency, trade.PnLBase, trade.ExchangeRate, trade.RFactor,
		ruleFollowed, string(violations), trade.Session, trade.MarketCondition,
		trade.EmotionEntry, trade.EmotionExit, trade.MistakeTag)
	if err != nil {
		return errors.NewDataError("trade", trade.ID, "failed to save trade", err)
	}
	return nil
}

const tradeColumns = `id, trade_date, entry_time, exit_time, symbol, setup_name,
	trade_type, direction, entry_price, exit_price, stop_loss, quantity,
	pnl, currency, pnl_base, exchange_rate, r_factor,
	rule_followed, rule_violations, session, market_condition,
	emotion_entry, emotion_exit, mistake_tag`

// GetTrades retrieves trades matching the filter, oldest first.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trades WHERE 1=1"
	args := []interface{}{}

	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if filter.Setup != "" {
		query += " AND setup_name = ?"
		args = append(args, filter.Setup)
	}
	if filter.Session != "" {
		query += " AND session = ?"
		args = append(args, filter.Session)
	}
	if !filter.StartDate.IsZero() {
		query += " AND trade_date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND trade_date <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY trade_date ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, *trade)
	}
	return trades, rows.Err()
}

// GetTradeByID retrieves a single trade.
func (s *SQLiteStore) GetTradeByID(ctx context.Context, id string) (*models.Trade, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+tradeColumns+" FROM trades WHERE id = ?", id)
	trade, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTradeNotFound
	}
	if err != nil {
		return nil, err
	}
	return trade, nil
}

// DeleteTrade removes a trade by id.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM trades WHERE id = ?", id)
	if err != nil {
		return errors.NewDataError("trade", id, "failed to delete trade", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.ErrTradeNotFound
	}
	return nil
}

// CountTrades returns the number of stored trades.
func (s *SQLiteStore) CountTrades(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trades").Scan(&count)
	return count, err
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row scanner) (*models.Trade, error) {
	var t models.Trade
	var entryTime, exitTime, setupName, violationsJSON sql.NullString
	var session, condition, emotionEntry, emotionExit, mistakeTag sql.NullString
	var entryPrice, exitPrice, pnlBase, exchangeRate sql.NullFloat64
	var ruleFollowed sql.NullInt64

	err := row.Scan(&t.ID, &t.Date, &entryTime, &exitTime, &t.Symbol, &setupName,
		&t.Type, &t.Direction, &entryPrice, &exitPrice, &t.StopLoss, &t.Quantity,
		&t.PnL, &t.Currency, &pnlBase, &exchangeRate, &t.RFactor,
		&ruleFollowed, &violationsJSON, &session, &condition,
		&emotionEntry, &emotionExit, &mistakeTag)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan trade: %w", err)
	}

	t.EntryTime = entryTime.String
	t.ExitTime = exitTime.String
	t.SetupName = setupName.String
	t.Session = models.Session(session.String)
	t.MarketCondition = models.MarketCondition(condition.String)
	t.EmotionEntry = models.Emotion(emotionEntry.String)
	t.EmotionExit = models.Emotion(emotionExit.String)
	t.MistakeTag = mistakeTag.String
	if entryPrice.Valid {
		t.EntryPrice = &entryPrice.Float64
	}
	if exitPrice.Valid {
		t.ExitPrice = &exitPrice.Float64
	}
	if pnlBase.Valid {
		t.PnLBase = &pnlBase.Float64
	}
	if exchangeRate.Valid {
		t.ExchangeRate = exchangeRate.Float64
	}
	if ruleFollowed.Valid {
		followed := ruleFollowed.Int64 == 1
		t.RuleFollowed = &followed
	}
	if violationsJSON.String != "" {
		json.Unmarshal([]byte(violationsJSON.String), &t.RuleViolations)
	}
	return &t, nil
}
