// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/database"
	"github.com/eibon93/vcelstva-hub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// ApiaryRepository defines the interface for apiary data operations
type ApiaryRepository interface {
	database.Repository
	Create(ctx context.Context, apiary *models.Apiary) error
	Get(ctx context.Context, id string) (*models.Apiary, error)
	Update(ctx context.Context, apiary *models.Apiary) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.Apiary, error)
}

// HiveRepository defines the interface for hive data operations
type HiveRepository interface {
	database.Repository
	Create(ctx context.Context, hive *models.Hive) error
	Get(ctx context.Context, id string) (*models.Hive, error)
	Update(ctx context.Context, hive *models.Hive) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.Hive, error)
	ListByApiary(ctx context.Context, apiaryID string) ([]*models.Hive, error)
}

// HiveNoteRepository defines the interface for hive inspection notes
type HiveNoteRepository interface {
	database.Repository
	Create(ctx context.Context, note *models.HiveNote) error
	List(ctx context.Context, hiveID string, offset, limit int) ([]*models.HiveNote, error)
	Delete(ctx context.Context, id string) error
	DeleteByHive(ctx context.Context, hiveID string) error
}

// DeviceRepository defines the interface for device data operations.
// DeviceLookup is the read-only subset used on the ingestion hot path; the
// redis cache wraps exactly this subset.
type DeviceLookup interface {
	GetByIdentifier(ctx context.Context, identifier string) (*models.Device, error)
}

type DeviceRepository interface {
	database.Repository
	DeviceLookup
	Create(ctx context.Context, device *models.Device) error
	Get(ctx context.Context, id string) (*models.Device, error)
	Update(ctx context.Context, device *models.Device) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.Device, error)
}

// ConnectionRepository manages the time-indexed sensor connection history.
type ConnectionRepository interface {
	database.Repository
	Create(ctx context.Context, conn *models.SensorConnection, tx database.Transaction) error
	// ActiveForDevice returns every connection record of the device that
	// covers the given instant (started before it and not yet ended, or
	// ended at or after it).
	ActiveForDevice(ctx context.Context, deviceID string, at time.Time) ([]*models.SensorConnection, error)
	// OpenForDevice returns the records with a NULL end instant.
	OpenForDevice(ctx context.Context, deviceID string) ([]*models.SensorConnection, error)
	Close(ctx context.Context, id string, at time.Time, tx database.Transaction) error
	DeleteByDevice(ctx context.Context, deviceID string) error
}

// MeasurementRepository persists and queries sensor readings.
type MeasurementRepository interface {
	database.Repository
	// InsertBatch writes all measurements of one message in a single
	// transaction; a failure leaves no partial writes.
	InsertBatch(ctx context.Context, measurements []*models.Measurement) error
	List(ctx context.Context, filters models.MeasurementFilters) ([]*models.Measurement, error)
	// LastValue returns the most recent value recorded for the sensor
	// under the given assignment, or nil if none exists.
	LastValue(ctx context.Context, deviceID string, sensorID int, apiaryID string, hiveID *string) (*float64, error)
	// ClearAssignment detaches measurements recorded at or after the
	// given instant under a now-stale assignment. Returns rows changed.
	ClearAssignment(ctx context.Context, deviceID string, sensorID int, apiaryID string, hiveID *string, since time.Time) (int64, error)
	// AssignUnassigned attaches unassigned measurements recorded at or
	// after the given instant to the new assignment. Returns rows changed.
	AssignUnassigned(ctx context.Context, deviceID string, sensorID int, apiaryID string, hiveID *string, since time.Time) (int64, error)
	DeleteByDevice(ctx context.Context, deviceID string) error
}
