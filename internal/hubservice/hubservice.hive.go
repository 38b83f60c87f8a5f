// FilePath: internal/hubservice/hubservice.hive.go
package hubservice

import (
	"context"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// CreateHive creates a new hive with proper validation and initialization
func (s *HubService) CreateHive(ctx context.Context, hive *models.Hive) error {
	if hive.Name == "" {
		return errors.NewValidationError("hive name is required", nil)
	}
	// The hosting apiary must exist.
	if _, err := s.Apiaries.Get(ctx, hive.ApiaryID); err != nil {
		return err
	}

	if hive.ID == "" {
		hive.ID = nuts.NID("hv", 12)
	}
	now := time.Now()
	hive.CreatedAt = now
	hive.UpdatedAt = now

	nuts.L.Infof("[HiveService] Creating new hive: %s (%s) at apiary %s", hive.Name, hive.ID, hive.ApiaryID)
	return s.Hives.Create(ctx, hive)
}

// GetHive retrieves a hive by ID
func (s *HubService) GetHive(ctx context.Context, id string) (*models.Hive, error) {
	return s.Hives.Get(ctx, id)
}

// UpdateHive updates an existing hive. Moving a hive to another apiary is a
// plain apiary_id change; the measurement history keeps its old assignment.
func (s *HubService) UpdateHive(ctx context.Context, hive *models.Hive) error {
	existing, err := s.Hives.Get(ctx, hive.ID)
	if err != nil {
		return err
	}
	if hive.Name == "" {
		return errors.NewValidationError("hive name is required", nil)
	}
	if hive.ApiaryID != existing.ApiaryID {
		if _, err := s.Apiaries.Get(ctx, hive.ApiaryID); err != nil {
			return err
		}
	}

	hive.CreatedAt = existing.CreatedAt
	hive.UpdatedAt = time.Now()

	nuts.L.Infof("[HiveService] Updating hive %s", hive.ID)
	return s.Hives.Update(ctx, hive)
}

// DeleteHive handles hive deletion with cascading cleanup
func (s *HubService) DeleteHive(ctx context.Context, id string) error {
	if _, err := s.Hives.Get(ctx, id); err != nil {
		return err
	}

	nuts.L.Infof("[HiveService] Deleting hive: %s", id)
	return s.Cleanup.DeleteHive(ctx, id)
}

// ListHives retrieves a paginated list of hives
func (s *HubService) ListHives(ctx context.Context, offset, limit int) ([]*models.Hive, error) {
	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Hives.List(ctx, offset, limit)
}

// ListHivesByApiary retrieves all hives hosted at one apiary
func (s *HubService) ListHivesByApiary(ctx context.Context, apiaryID string) ([]*models.Hive, error) {
	if _, err := s.Apiaries.Get(ctx, apiaryID); err != nil {
		return nil, err
	}
	return s.Hives.ListByApiary(ctx, apiaryID)
}

// CreateHiveNote attaches an inspection note to a hive
func (s *HubService) CreateHiveNote(ctx context.Context, hiveID string, note *models.HiveNote) error {
	if _, err := s.Hives.Get(ctx, hiveID); err != nil {
		return err
	}
	if note.Text == "" {
		return errors.NewValidationError("note text is required", nil)
	}

	note.ID = nuts.NID("hn", 12)
	note.HiveID = hiveID
	note.CreatedAt = time.Now()

	nuts.L.Infof("[HiveService] Creating note %s for hive %s", note.ID, hiveID)
	return s.HiveNotes.Create(ctx, note)
}

// ListHiveNotes retrieves a paginated list of notes for a hive
func (s *HubService) ListHiveNotes(ctx context.Context, hiveID string, offset, limit int) ([]*models.HiveNote, error) {
	if _, err := s.Hives.Get(ctx, hiveID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}
	return s.HiveNotes.List(ctx, hiveID, offset, limit)
}

// DeleteHiveNote removes a single note
func (s *HubService) DeleteHiveNote(ctx context.Context, id string) error {
	return s.HiveNotes.Delete(ctx, id)
}
