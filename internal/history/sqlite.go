// Package history persists per-request audit summaries of completed
// predictions. Two backends implement domain.PredictionStore: SQLite for
// single-node deployments (the default) and Postgres for shared ones.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hemoscan-screening-server/internal/domain"
)

// SQLiteStore implements domain.PredictionStore using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite prediction store. It creates the
// database file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrency under parallel request handling.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// scanner is an interface for sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*domain.PredictionRecord, error) {
	record := &domain.PredictionRecord{}
	var mode, gender, severity, riskLevel string

	err := s.Scan(
		&record.ID, &record.RequestID, &mode, &record.Age, &gender,
		&record.Hemoglobin, &severity, &record.Confidence,
		&record.RiskScore, &riskLevel, &record.AlertCount, &record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Mode = domain.Mode(mode)
	record.Gender = domain.Gender(gender)
	record.SeverityLabel = domain.Severity(severity)
	record.RiskLevel = domain.RiskLevel(riskLevel)
	return record, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS predictions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		request_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		age INTEGER NOT NULL,
		gender TEXT NOT NULL,
		hemoglobin REAL NOT NULL,
		severity_label TEXT NOT NULL,
		confidence REAL NOT NULL,
		risk_score INTEGER NOT NULL,
		risk_level TEXT NOT NULL,
		alert_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_predictions_request_id ON predictions(request_id);
	CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at);
	CREATE INDEX IF NOT EXISTS idx_predictions_severity ON predictions(severity_label);
	`

	_, err := db.Exec(schema)
	return err
}

// Save stores one prediction summary.
func (s *SQLiteStore) Save(ctx context.Context, record *domain.PredictionRecord) error {
	now := time.Now()
	record.CreatedAt = now

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO predictions (
			request_id, mode, age, gender, hemoglobin,
			severity_label, confidence, risk_score, risk_level, alert_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.RequestID,
		string(record.Mode),
		record.Age,
		string(record.Gender),
		record.Hemoglobin,
		string(record.SeverityLabel),
		record.Confidence,
		record.RiskScore,
		string(record.RiskLevel),
		record.AlertCount,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert ID: %w", err)
	}
	record.ID = id

	return nil
}

// List returns prediction summaries, newest first, with pagination.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*domain.PredictionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, request_id, mode, age, gender, hemoglobin,
			severity_label, confidence, risk_score, risk_level, alert_count, created_at
		FROM predictions
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var result []*domain.PredictionRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

// Count returns the total number of stored prediction summaries.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM predictions").Scan(&count)
	return count, err
}

// Close closes the store and releases resources.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
