// FilePath: internal/cleanup/cleanup.go
package cleanup

import (
	"context"
	"fmt"

	"github.com/eibon93/vcelstva-hub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// CleanupService coordinates deletion of hierarchical data: a device drags
// its measurements and connection history along, a hive drags its notes.
type CleanupService struct {
	devices      repository.DeviceRepository
	connections  repository.ConnectionRepository
	measurements repository.MeasurementRepository
	hives        repository.HiveRepository
	notes        repository.HiveNoteRepository
	events       *nuts.EventEmitter
}

// New creates a new CleanupService
func New(
	devices repository.DeviceRepository,
	connections repository.ConnectionRepository,
	measurements repository.MeasurementRepository,
	hives repository.HiveRepository,
	notes repository.HiveNoteRepository,
) *CleanupService {
	return &CleanupService{
		devices:      devices,
		connections:  connections,
		measurements: measurements,
		hives:        hives,
		notes:        notes,
		events:       nuts.NewEventEmitter(),
	}
}

// DeleteDevice deletes a device together with its measurement history and
// connection records. Measurements live in the measurement store and cannot
// share a transaction with the device row; they go first so a partial
// failure leaves the device resolvable and the deletion retryable.
func (s *CleanupService) DeleteDevice(ctx context.Context, deviceID string) error {
	if err := s.measurements.DeleteByDevice(ctx, deviceID); err != nil {
		return fmt.Errorf("failed to delete measurements: %w", err)
	}
	s.events.Emit("measurements.deleted", deviceID)

	if err := s.connections.DeleteByDevice(ctx, deviceID); err != nil {
		return fmt.Errorf("failed to delete connections: %w", err)
	}
	s.events.Emit("connections.deleted", deviceID)

	if err := s.devices.Delete(ctx, deviceID); err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}
	s.events.Emit("device.deleted", deviceID)
	return nil
}

// DeleteHive deletes a hive and all its inspection notes in one
// transaction. Measurements referencing the hive keep their historic
// assignment.
func (s *CleanupService) DeleteHive(ctx context.Context, hiveID string) error {
	tx, err := s.hives.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	if err := s.notes.DeleteByHive(ctx, hiveID); err != nil {
		return fmt.Errorf("failed to delete notes: %w", err)
	}
	s.events.Emit("notes.deleted", hiveID)

	if err := s.hives.Delete(ctx, hiveID); err != nil {
		return fmt.Errorf("failed to delete hive: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.events.Emit("hive.deleted", hiveID)
	return nil
}

// OnCleanup registers a callback for cleanup events
func (s *CleanupService) OnCleanup(event string, handler func(id string)) {
	s.events.On(event, "cleanup_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}

// Events exposes the emitter so other components can observe deletions.
func (s *CleanupService) Events() *nuts.EventEmitter {
	return s.events
}
