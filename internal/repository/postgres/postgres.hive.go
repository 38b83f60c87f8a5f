// FilePath: internal/repository/postgres/postgres.hive.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/eibon93/vcelstva-hub/internal/database"
	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type HiveRepo struct {
	PostgresBaseRepo
}

func NewHiveRepository(db database.DB) *HiveRepo {
	repo := &PostgresBaseRepo{db: db}
	return &HiveRepo{PostgresBaseRepo: *repo}
}

func (r *HiveRepo) Create(ctx context.Context, hive *models.Hive) error {
	query := `
		INSERT INTO hives (
			id, apiary_id, name, description, queen_year,
			created_at, updated_at
		) VALUES (
			:id, :apiary_id, :name, :description, :queen_year,
			:created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, hive)
	if err != nil {
		return errors.NewDatabaseError("failed to create hive", err)
	}
	return nil
}

func (r *HiveRepo) Get(ctx context.Context, id string) (*models.Hive, error) {
	hive := &models.Hive{}
	query := `SELECT * FROM hives WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, hive, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("hive not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get hive", err)
	}
	return hive, nil
}

func (r *HiveRepo) Update(ctx context.Context, hive *models.Hive) error {
	query := `
		UPDATE hives SET
			apiary_id = :apiary_id,
			name = :name,
			description = :description,
			queen_year = :queen_year,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, hive)
	if err != nil {
		return errors.NewDatabaseError("failed to update hive", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("hive not found", nil)
	}

	return nil
}

func (r *HiveRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM hives WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete hive", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("hive not found", nil)
	}

	return nil
}

func (r *HiveRepo) List(ctx context.Context, offset, limit int) ([]*models.Hive, error) {
	hives := []*models.Hive{}
	query := `SELECT * FROM hives ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := r.db.GetDB().SelectContext(ctx, &hives, query, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list hives", err)
	}

	return hives, nil
}

func (r *HiveRepo) ListByApiary(ctx context.Context, apiaryID string) ([]*models.Hive, error) {
	hives := []*models.Hive{}
	query := `SELECT * FROM hives WHERE apiary_id = $1 ORDER BY created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &hives, query, apiaryID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list hives", err)
	}

	nuts.L.Debugf("[HiveRepo] Listed %d hives for apiary %s", len(hives), apiaryID)
	return hives, nil
}
