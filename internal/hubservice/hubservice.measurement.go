// FilePath: internal/hubservice/hubservice.measurement.go
package hubservice

import (
	"context"

	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
)

// ListMeasurements queries stored readings. At least one of device, apiary
// or hive must narrow the query; unbounded scans over the whole history are
// refused.
func (s *HubService) ListMeasurements(ctx context.Context, filters models.MeasurementFilters) ([]*models.Measurement, error) {
	if filters.DeviceID == "" && filters.ApiaryID == "" && filters.HiveID == "" {
		return nil, errors.NewValidationError("at least one of device_id, apiary_id or hive_id is required", nil)
	}
	if filters.Start != nil && filters.End != nil && filters.End.Before(*filters.Start) {
		return nil, errors.NewValidationError("end precedes start", nil)
	}
	if filters.Limit <= 0 || filters.Limit > 10000 {
		filters.Limit = 1000 // Default limit
	}
	return s.Measurements.List(ctx, filters)
}

// LatestMeasurement returns the most recent reading matching the filters,
// or a not-found error when nothing has been recorded yet.
func (s *HubService) LatestMeasurement(ctx context.Context, filters models.MeasurementFilters) (*models.Measurement, error) {
	if filters.DeviceID == "" && filters.ApiaryID == "" && filters.HiveID == "" {
		return nil, errors.NewValidationError("at least one of device_id, apiary_id or hive_id is required", nil)
	}
	filters.Limit = 1
	measurements, err := s.Measurements.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	if len(measurements) == 0 {
		return nil, errors.NewNotFoundError("no measurements recorded", nil)
	}
	return measurements[0], nil
}

// ListDeviceTypes returns the static device type catalog.
func (s *HubService) ListDeviceTypes() []*models.DeviceType {
	return models.DeviceTypes()
}
