// FilePath: internal/repository/postgres/postgres.hivenotes.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/eibon93/vcelstva-hub/internal/database"
	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type HiveNoteRepo struct {
	PostgresBaseRepo
}

func NewHiveNoteRepository(db database.DB) *HiveNoteRepo {
	repo := &PostgresBaseRepo{db: db}
	return &HiveNoteRepo{PostgresBaseRepo: *repo}
}

func (r *HiveNoteRepo) Create(ctx context.Context, note *models.HiveNote) error {
	query := `
		INSERT INTO hive_notes (
			id, hive_id, author, text, created_at
		) VALUES (
			:id, :hive_id, :author, :text, :created_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, note)
	if err != nil {
		return errors.NewDatabaseError("failed to create hive note", err)
	}
	return nil
}

func (r *HiveNoteRepo) Get(ctx context.Context, id string) (*models.HiveNote, error) {
	note := &models.HiveNote{}
	query := `SELECT * FROM hive_notes WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, note, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("hive note not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get hive note", err)
	}
	return note, nil
}

func (r *HiveNoteRepo) List(ctx context.Context, hiveID string, offset, limit int) ([]*models.HiveNote, error) {
	notes := []*models.HiveNote{}
	query := `SELECT * FROM hive_notes WHERE hive_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	err := r.db.GetDB().SelectContext(ctx, &notes, query, hiveID, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list hive notes", err)
	}

	return notes, nil
}

func (r *HiveNoteRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM hive_notes WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete hive note", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("hive note not found", nil)
	}

	return nil
}

func (r *HiveNoteRepo) DeleteByHive(ctx context.Context, hiveID string) error {
	query := `DELETE FROM hive_notes WHERE hive_id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, hiveID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete hive notes", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	nuts.L.Infof("[HiveNoteRepo] Deleted %d notes for hive %s", rows, hiveID)
	return nil
}
