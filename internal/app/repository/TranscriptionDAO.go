package repository

import (
	"audiosense/internal/app/model"
)

// TranscriptionDAO persists one record per pipeline invocation so past runs
// can be listed and exported. The pipeline core itself never touches this;
// only the CLI layer records results.
type TranscriptionDAO interface {
	Close() error

	Record(rec model.TranscriptionRecord) error

	GetRecent(limit int) ([]model.TranscriptionRecord, error)

	GetAll() ([]model.TranscriptionRecord, error)
}
