// FilePath: internal/hubservice/hubservice.go
package hubservice

import (
	"context"

	"github.com/eibon93/vcelstva-hub/internal/cleanup"
	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/repository"
)

// DeviceCacheInvalidator drops a cached device lookup after the device row
// changed. The redis device cache implements it; a nil invalidator is fine.
type DeviceCacheInvalidator interface {
	Invalidate(ctx context.Context, identifier string)
}

// HubService contains all repositories and service-wide dependencies
type HubService struct {
	Apiaries     repository.ApiaryRepository
	Hives        repository.HiveRepository
	HiveNotes    repository.HiveNoteRepository
	Devices      repository.DeviceRepository
	Connections  repository.ConnectionRepository
	Measurements repository.MeasurementRepository
	Cleanup      *cleanup.CleanupService
	cache        DeviceCacheInvalidator
}

// New creates a new HubService instance
func New(
	apiaries repository.ApiaryRepository,
	hives repository.HiveRepository,
	notes repository.HiveNoteRepository,
	devices repository.DeviceRepository,
	connections repository.ConnectionRepository,
	measurements repository.MeasurementRepository,
	cache DeviceCacheInvalidator,
) *HubService {
	svc := &HubService{
		Apiaries:     apiaries,
		Hives:        hives,
		HiveNotes:    notes,
		Devices:      devices,
		Connections:  connections,
		Measurements: measurements,
		cache:        cache,
	}
	svc.Cleanup = cleanup.New(devices, connections, measurements, hives, notes)
	return svc
}

// Validate checks if all required repositories are initialized
func (s *HubService) Validate() error {
	if s.Apiaries == nil {
		return ErrMissingRepository("apiaries")
	}
	if s.Hives == nil {
		return ErrMissingRepository("hives")
	}
	if s.HiveNotes == nil {
		return ErrMissingRepository("hiveNotes")
	}
	if s.Devices == nil {
		return ErrMissingRepository("devices")
	}
	if s.Connections == nil {
		return ErrMissingRepository("connections")
	}
	if s.Measurements == nil {
		return ErrMissingRepository("measurements")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}

func (s *HubService) invalidateDevice(ctx context.Context, identifier string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, identifier)
	}
}
