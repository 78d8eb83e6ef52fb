package sqlite

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiosense/internal/app/model"
	"audiosense/internal/app/repository"
)

var recordColumns = []string{
	"id", "file_name", "format", "segment_count", "audio_duration",
	"transcription", "created_at", "has_error", "error_message",
}

// TestSQLiteDAO_Interface verifies SQLiteDAO implements TranscriptionDAO
func TestSQLiteDAO_Interface(t *testing.T) {
	var _ repository.TranscriptionDAO = (*SQLiteDAO)(nil)
}

func TestSQLiteDAO_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dao := NewWithDB(db)
	mock.ExpectClose()

	assert.NoError(t, dao.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteDAO_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dao := NewWithDB(db)
	created := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transcription")).
		WithArgs("memo.m4a", "m4a", 3, 5400.0, "hello world", created, 0, "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = dao.Record(model.TranscriptionRecord{
		FileName:      "memo.m4a",
		Format:        "m4a",
		SegmentCount:  3,
		AudioDuration: 5400.0,
		Transcription: "hello world",
		CreatedAt:     created,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteDAO_RecordFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dao := NewWithDB(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transcription")).
		WillReturnError(errors.New("disk I/O error"))

	err = dao.Record(model.TranscriptionRecord{FileName: "memo.m4a", Format: "m4a"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insert failed")
}

func TestSQLiteDAO_RecordStoresFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dao := NewWithDB(db)
	created := time.Date(2026, 8, 31, 11, 30, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transcription")).
		WithArgs("broken.mp3", "mp3", 0, 0.0, "", created, 1, "audio decode failed").
		WillReturnResult(sqlmock.NewResult(2, 1))

	err = dao.Record(model.TranscriptionRecord{
		FileName:     "broken.mp3",
		Format:       "mp3",
		CreatedAt:    created,
		HasError:     1,
		ErrorMessage: "audio decode failed",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteDAO_GetRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dao := NewWithDB(db)
	now := time.Now()

	rows := sqlmock.NewRows(recordColumns).
		AddRow(2, "second.mp3", "mp3", 1, 120.0, "later text", now, 0, "").
		AddRow(1, "first.m4a", "m4a", 2, 3600.0, "earlier text", now.Add(-time.Hour), 0, "")

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(10).
		WillReturnRows(rows)

	records, err := dao.GetRecent(10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "second.mp3", records[0].FileName)
	assert.Equal(t, 1, records[1].ID)
	assert.Equal(t, 3600.0, records[1].AudioDuration)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteDAO_GetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dao := NewWithDB(db)
	now := time.Now()

	rows := sqlmock.NewRows(recordColumns).
		AddRow(1, "a.mp3", "mp3", 1, 60.0, "a", now.Add(-time.Hour), 0, "").
		AddRow(2, "b.wav", "wav", 1, 90.0, "b", now, 1, "remote transcription service error")

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at ASC")).
		WillReturnRows(rows)

	records, err := dao.GetAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[1].HasError)
	assert.Equal(t, "remote transcription service error", records[1].ErrorMessage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteDAO_GetAllQueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dao := NewWithDB(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WillReturnError(errors.New("database is locked"))

	records, err := dao.GetAll()
	assert.Error(t, err)
	assert.Nil(t, records)
}
