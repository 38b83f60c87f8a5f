// FilePath: internal/repository/timescale/timescale.measurement.go
package timescale

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/database"
	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type MeasurementRepo struct {
	TimeScaleBaseRepo
}

func NewMeasurementRepository(db database.DB) *MeasurementRepo {
	repo := &TimeScaleBaseRepo{db: db}
	return &MeasurementRepo{TimeScaleBaseRepo: *repo}
}

// InsertBatch writes every measurement of one message in a single
// transaction. A failure on any row rolls back the whole batch.
func (r *MeasurementRepo) InsertBatch(ctx context.Context, measurements []*models.Measurement) error {
	if len(measurements) == 0 {
		return nil
	}

	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return errors.NewDatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	query := `
		INSERT INTO measurements (
			id, device_id, sensor_id, apiary_id, hive_id,
			value, measured_at
		) VALUES (
			:id, :device_id, :sensor_id, :apiary_id, :hive_id,
			:value, :measured_at
		)`

	for _, m := range measurements {
		if _, err := tx.NamedExecContext(ctx, query, m); err != nil {
			return errors.NewDatabaseError("failed to insert measurement", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewDatabaseError("failed to commit measurement batch", err)
	}

	nuts.L.Debugf("[MeasurementRepo] Inserted batch of %d measurements for device %s",
		len(measurements), measurements[0].DeviceID)
	return nil
}

func (r *MeasurementRepo) List(ctx context.Context, filters models.MeasurementFilters) ([]*models.Measurement, error) {
	query := `SELECT * FROM measurements WHERE 1=1`
	args := []interface{}{}

	if filters.DeviceID != "" {
		args = append(args, filters.DeviceID)
		query += fmt.Sprintf(` AND device_id = $%d`, len(args))
	}
	if filters.SensorID != 0 {
		args = append(args, filters.SensorID)
		query += fmt.Sprintf(` AND sensor_id = $%d`, len(args))
	}
	if filters.ApiaryID != "" {
		args = append(args, filters.ApiaryID)
		query += fmt.Sprintf(` AND apiary_id = $%d`, len(args))
	}
	if filters.HiveID != "" {
		args = append(args, filters.HiveID)
		query += fmt.Sprintf(` AND hive_id = $%d`, len(args))
	}
	if filters.Start != nil {
		args = append(args, *filters.Start)
		query += fmt.Sprintf(` AND measured_at >= $%d`, len(args))
	}
	if filters.End != nil {
		args = append(args, *filters.End)
		query += fmt.Sprintf(` AND measured_at <= $%d`, len(args))
	}

	limit := filters.Limit
	if limit <= 0 || limit > 10000 {
		limit = 1000
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY measured_at DESC LIMIT $%d`, len(args))

	measurements := []*models.Measurement{}
	err := r.db.GetDB().SelectContext(ctx, &measurements, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list measurements", err)
	}

	return measurements, nil
}

// LastValue returns the most recent value stored for the sensor under the
// given assignment, or nil when no measurement exists yet.
func (r *MeasurementRepo) LastValue(ctx context.Context, deviceID string, sensorID int, apiaryID string, hiveID *string) (*float64, error) {
	query := `
		SELECT value FROM measurements
		WHERE device_id = $1 AND sensor_id = $2 AND apiary_id = $3
		  AND hive_id IS NOT DISTINCT FROM $4
		ORDER BY measured_at DESC
		LIMIT 1`

	var value float64
	err := r.db.GetDB().GetContext(ctx, &value, query, deviceID, sensorID, apiaryID, hiveID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.NewDatabaseError("failed to get last value", err)
	}
	return &value, nil
}

// ClearAssignment detaches measurements recorded at or after the given
// instant under a now-stale assignment. Covers the latency window between
// a physical disconnect and its database record.
func (r *MeasurementRepo) ClearAssignment(ctx context.Context, deviceID string, sensorID int, apiaryID string, hiveID *string, since time.Time) (int64, error) {
	query := `
		UPDATE measurements SET apiary_id = NULL, hive_id = NULL
		WHERE device_id = $1 AND sensor_id = $2 AND apiary_id = $3
		  AND hive_id IS NOT DISTINCT FROM $4
		  AND measured_at >= $5`

	result, err := r.db.GetDB().ExecContext(ctx, query, deviceID, sensorID, apiaryID, hiveID, since)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to clear measurement assignment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDatabaseError("failed to get rows affected", err)
	}

	return rows, nil
}

// AssignUnassigned attaches unassigned measurements recorded at or after
// the given instant to a newly created connection.
func (r *MeasurementRepo) AssignUnassigned(ctx context.Context, deviceID string, sensorID int, apiaryID string, hiveID *string, since time.Time) (int64, error) {
	query := `
		UPDATE measurements SET apiary_id = $3, hive_id = $4
		WHERE device_id = $1 AND sensor_id = $2
		  AND apiary_id IS NULL AND hive_id IS NULL
		  AND measured_at >= $5`

	result, err := r.db.GetDB().ExecContext(ctx, query, deviceID, sensorID, apiaryID, hiveID, since)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to assign measurements", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDatabaseError("failed to get rows affected", err)
	}

	return rows, nil
}

func (r *MeasurementRepo) DeleteByDevice(ctx context.Context, deviceID string) error {
	query := `DELETE FROM measurements WHERE device_id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, deviceID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete measurements", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	nuts.L.Infof("[MeasurementRepo] Deleted %d measurements for device %s", rows, deviceID)
	return nil
}
