package botlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store 管理机器人活动日志，方便后续排查/可视化。
// 独立于业务库，走单独的 SQLite 文件，append-only。
type Store struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// Record 代表一条机器人活动日志。
type Record struct {
	ID        int64  `json:"id"`
	Timestamp int64  `json:"ts"`
	BotID     string `json:"bot_id"`
	Exchange  string `json:"exchange"`
	Action    string `json:"action"`
	Status    string `json:"status"`
	Metadata  string `json:"metadata,omitempty"`
}

// Query 用于筛选日志列表。
type Query struct {
	BotID    string
	Exchange string
	Limit    int
	Offset   int
}

// Open 初始化 SQLite 存储。
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("bot log path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bot_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts INTEGER NOT NULL,
			bot_id TEXT,
			exchange TEXT,
			action TEXT,
			status TEXT,
			metadata TEXT,
			created_at INTEGER NOT NULL
		);
		`,
		`CREATE INDEX IF NOT EXISTS idx_bot_logs_ts ON bot_logs(ts);`,
		`CREATE INDEX IF NOT EXISTS idx_bot_logs_bot ON bot_logs(bot_id);`,
		`CREATE INDEX IF NOT EXISTS idx_bot_logs_exchange ON bot_logs(exchange);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Append 写入一条日志并返回其 ID。
func (s *Store) Append(ctx context.Context, rec Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return 0, fmt.Errorf("bot log store closed")
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().UTC().Unix()
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO bot_logs (ts, bot_id, exchange, action, status, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp, rec.BotID, rec.Exchange, rec.Action, rec.Status, rec.Metadata,
		time.Now().UTC().Unix(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// List 按时间倒序返回日志。
func (s *Store) List(ctx context.Context, q Query) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, fmt.Errorf("bot log store closed")
	}
	if q.Limit <= 0 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	where := "1=1"
	args := []any{}
	if q.BotID != "" {
		where += " AND bot_id = ?"
		args = append(args, q.BotID)
	}
	if q.Exchange != "" {
		where += " AND exchange = ?"
		args = append(args, q.Exchange)
	}
	args = append(args, q.Limit, q.Offset)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ts, bot_id, exchange, action, status, metadata
		 FROM bot_logs WHERE `+where+`
		 ORDER BY ts DESC, id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []Record
	for rows.Next() {
		var rec Record
		var botID, exchange, action, status, metadata sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &botID, &exchange, &action, &status, &metadata); err != nil {
			return nil, err
		}
		rec.BotID = botID.String
		rec.Exchange = exchange.String
		rec.Action = action.String
		rec.Status = status.String
		rec.Metadata = metadata.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close 关闭底层 DB。
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
