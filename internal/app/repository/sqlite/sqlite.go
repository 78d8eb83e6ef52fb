package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"audiosense/internal/app/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcription (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    file_name TEXT NOT NULL,
    format TEXT NOT NULL,
    segment_count INTEGER NOT NULL DEFAULT 0,
    audio_duration REAL NOT NULL DEFAULT 0,
    transcription TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    has_error INTEGER NOT NULL DEFAULT 0,
    error_message TEXT NOT NULL DEFAULT ''
);`

// SQLiteDAO stores transcription records in a local sqlite database.
type SQLiteDAO struct {
	db *sql.DB
}

// NewSQLiteDB opens (creating if needed) the database at dbPath and ensures
// the schema exists.
func NewSQLiteDB(dbPath string) (*SQLiteDAO, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteDAO{db: db}, nil
}

// NewWithDB wraps an existing handle; used by tests.
func NewWithDB(db *sql.DB) *SQLiteDAO {
	return &SQLiteDAO{db: db}
}

func (d *SQLiteDAO) Close() error {
	return d.db.Close()
}

func (d *SQLiteDAO) Record(rec model.TranscriptionRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO transcription
		 (file_name, format, segment_count, audio_duration, transcription, created_at, has_error, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.FileName, rec.Format, rec.SegmentCount, rec.AudioDuration,
		rec.Transcription, rec.CreatedAt, rec.HasError, rec.ErrorMessage)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

func (d *SQLiteDAO) GetRecent(limit int) ([]model.TranscriptionRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, file_name, format, segment_count, audio_duration, transcription, created_at, has_error, error_message
		 FROM transcription ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (d *SQLiteDAO) GetAll() ([]model.TranscriptionRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, file_name, format, segment_count, audio_duration, transcription, created_at, has_error, error_message
		 FROM transcription ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]model.TranscriptionRecord, error) {
	var records []model.TranscriptionRecord
	for rows.Next() {
		var rec model.TranscriptionRecord
		if err := rows.Scan(&rec.ID, &rec.FileName, &rec.Format, &rec.SegmentCount,
			&rec.AudioDuration, &rec.Transcription, &rec.CreatedAt,
			&rec.HasError, &rec.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
