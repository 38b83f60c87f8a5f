// FilePath: internal/repository/postgres/postgres.apiary.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/eibon93/vcelstva-hub/internal/database"
	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
)

type ApiaryRepo struct {
	PostgresBaseRepo
}

func NewApiaryRepository(db database.DB) *ApiaryRepo {
	repo := &PostgresBaseRepo{db: db}
	return &ApiaryRepo{PostgresBaseRepo: *repo}
}

func (r *ApiaryRepo) Create(ctx context.Context, apiary *models.Apiary) error {
	query := `
		INSERT INTO apiaries (
			id, name, description, registration_code,
			latitude, longitude, created_at, updated_at
		) VALUES (
			:id, :name, :description, :registration_code,
			:latitude, :longitude, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, apiary)
	if err != nil {
		return errors.NewDatabaseError("failed to create apiary", err)
	}
	return nil
}

func (r *ApiaryRepo) Get(ctx context.Context, id string) (*models.Apiary, error) {
	apiary := &models.Apiary{}
	query := `SELECT * FROM apiaries WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, apiary, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("apiary not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get apiary", err)
	}
	return apiary, nil
}

func (r *ApiaryRepo) Update(ctx context.Context, apiary *models.Apiary) error {
	query := `
		UPDATE apiaries SET
			name = :name,
			description = :description,
			registration_code = :registration_code,
			latitude = :latitude,
			longitude = :longitude,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, apiary)
	if err != nil {
		return errors.NewDatabaseError("failed to update apiary", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("apiary not found", nil)
	}

	return nil
}

func (r *ApiaryRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM apiaries WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete apiary", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("apiary not found", nil)
	}

	return nil
}

func (r *ApiaryRepo) List(ctx context.Context, offset, limit int) ([]*models.Apiary, error) {
	apiaries := []*models.Apiary{}
	query := `SELECT * FROM apiaries ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := r.db.GetDB().SelectContext(ctx, &apiaries, query, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list apiaries", err)
	}

	return apiaries, nil
}
