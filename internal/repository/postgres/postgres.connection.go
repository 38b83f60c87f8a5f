// FilePath: internal/repository/postgres/postgres.connection.go
package postgres

import (
	"context"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/database"
	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type ConnectionRepo struct {
	PostgresBaseRepo
}

func NewConnectionRepository(db database.DB) *ConnectionRepo {
	repo := &PostgresBaseRepo{db: db}
	return &ConnectionRepo{PostgresBaseRepo: *repo}
}

func (r *ConnectionRepo) Create(ctx context.Context, conn *models.SensorConnection, tx database.Transaction) error {
	query := `
		INSERT INTO sensor_connections (
			id, device_id, sensor_id, apiary_id, hive_id,
			started_at, ended_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	args := []interface{}{
		conn.ID, conn.DeviceID, conn.SensorID, conn.ApiaryID, conn.HiveID,
		conn.StartedAt, conn.EndedAt,
	}

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, args...)
	} else {
		_, err = r.db.GetDB().ExecContext(ctx, query, args...)
	}
	if err != nil {
		return errors.NewDatabaseError("failed to create sensor connection", err)
	}
	return nil
}

func (r *ConnectionRepo) ActiveForDevice(ctx context.Context, deviceID string, at time.Time) ([]*models.SensorConnection, error) {
	conns := []*models.SensorConnection{}
	query := `
		SELECT * FROM sensor_connections
		WHERE device_id = $1
		  AND started_at <= $2
		  AND (ended_at IS NULL OR $2 <= ended_at)
		ORDER BY started_at`

	err := r.db.GetDB().SelectContext(ctx, &conns, query, deviceID, at)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to query active connections", err)
	}

	return conns, nil
}

func (r *ConnectionRepo) OpenForDevice(ctx context.Context, deviceID string) ([]*models.SensorConnection, error) {
	conns := []*models.SensorConnection{}
	query := `SELECT * FROM sensor_connections WHERE device_id = $1 AND ended_at IS NULL`

	err := r.db.GetDB().SelectContext(ctx, &conns, query, deviceID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to query open connections", err)
	}

	return conns, nil
}

func (r *ConnectionRepo) Close(ctx context.Context, id string, at time.Time, tx database.Transaction) error {
	query := `UPDATE sensor_connections SET ended_at = $1 WHERE id = $2 AND ended_at IS NULL`

	var err error
	var rows int64
	if tx != nil {
		result, txErr := tx.ExecContext(ctx, query, at, id)
		if txErr == nil {
			rows, _ = result.RowsAffected()
		}
		err = txErr
	} else {
		result, execErr := r.db.GetDB().ExecContext(ctx, query, at, id)
		if execErr == nil {
			rows, _ = result.RowsAffected()
		}
		err = execErr
	}
	if err != nil {
		return errors.NewDatabaseError("failed to close sensor connection", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("open sensor connection not found", nil)
	}

	return nil
}

func (r *ConnectionRepo) DeleteByDevice(ctx context.Context, deviceID string) error {
	query := `DELETE FROM sensor_connections WHERE device_id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, deviceID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete sensor connections", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	nuts.L.Infof("[ConnectionRepo] Deleted %d connections for device %s", rows, deviceID)
	return nil
}
