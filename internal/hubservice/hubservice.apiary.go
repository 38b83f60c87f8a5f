// FilePath: internal/hubservice/hubservice.apiary.go
package hubservice

import (
	"context"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// CreateApiary creates a new apiary with proper validation and initialization
func (s *HubService) CreateApiary(ctx context.Context, apiary *models.Apiary) error {
	if apiary.Name == "" {
		return errors.NewValidationError("apiary name is required", nil)
	}

	if apiary.ID == "" {
		apiary.ID = nuts.NID("ap", 12)
	}
	now := time.Now()
	apiary.CreatedAt = now
	apiary.UpdatedAt = now

	nuts.L.Infof("[ApiaryService] Creating new apiary: %s (%s)", apiary.Name, apiary.ID)
	return s.Apiaries.Create(ctx, apiary)
}

// GetApiary retrieves an apiary by ID
func (s *HubService) GetApiary(ctx context.Context, id string) (*models.Apiary, error) {
	return s.Apiaries.Get(ctx, id)
}

// UpdateApiary updates an existing apiary
func (s *HubService) UpdateApiary(ctx context.Context, apiary *models.Apiary) error {
	existing, err := s.Apiaries.Get(ctx, apiary.ID)
	if err != nil {
		return err
	}
	if apiary.Name == "" {
		return errors.NewValidationError("apiary name is required", nil)
	}

	apiary.CreatedAt = existing.CreatedAt
	apiary.UpdatedAt = time.Now()

	nuts.L.Infof("[ApiaryService] Updating apiary %s", apiary.ID)
	return s.Apiaries.Update(ctx, apiary)
}

// DeleteApiary deletes an apiary. An apiary still hosting hives cannot be
// deleted; the hives must be deleted or moved first.
func (s *HubService) DeleteApiary(ctx context.Context, id string) error {
	if _, err := s.Apiaries.Get(ctx, id); err != nil {
		return err
	}
	hives, err := s.Hives.ListByApiary(ctx, id)
	if err != nil {
		return err
	}
	if len(hives) > 0 {
		return errors.NewValidationError("apiary still hosts hives", nil)
	}

	nuts.L.Infof("[ApiaryService] Deleting apiary: %s", id)
	return s.Apiaries.Delete(ctx, id)
}

// ListApiaries retrieves a paginated list of apiaries
func (s *HubService) ListApiaries(ctx context.Context, offset, limit int) ([]*models.Apiary, error) {
	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Apiaries.List(ctx, offset, limit)
}
