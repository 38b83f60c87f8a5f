// FilePath: internal/hubservice/hubservice.device.go
package hubservice

import (
	"context"
	"fmt"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ConnectRequest describes where a device is being installed: the target
// apiary, and for each hive slot the device's sensors use, the hive sitting
// on that slot. Slots left out stay unconnected. A nil At means "now".
type ConnectRequest struct {
	ApiaryID string                      `json:"apiary_id"`
	Hives    map[models.Placement]string `json:"hives,omitempty"`
	At       *time.Time                  `json:"at,omitempty"`
}

// CreateDevice creates a new device with proper validation and initialization
func (s *HubService) CreateDevice(ctx context.Context, device *models.Device) error {
	if device.Identifier == "" {
		return errors.NewValidationError("device identifier is required", nil)
	}
	if device.Name == "" {
		return errors.NewValidationError("device name is required", nil)
	}
	if models.DeviceTypeByID(device.DeviceTypeID) == nil {
		return errors.NewValidationError(fmt.Sprintf("unknown device type %d", device.DeviceTypeID), nil)
	}

	if device.ID == "" {
		device.ID = nuts.NID("dev", 12)
	}
	now := time.Now()
	device.CreatedAt = now
	device.UpdatedAt = now

	nuts.L.Infof("[DeviceService] Creating new device: %s (%s), type %d", device.Identifier, device.ID, device.DeviceTypeID)
	return s.Devices.Create(ctx, device)
}

// GetDevice retrieves a device by ID
func (s *HubService) GetDevice(ctx context.Context, id string) (*models.Device, error) {
	return s.Devices.Get(ctx, id)
}

// UpdateDevice updates a device's name and token. Identifier and type are
// immutable after creation and silently carried over from the stored row.
func (s *HubService) UpdateDevice(ctx context.Context, device *models.Device) error {
	existing, err := s.Devices.Get(ctx, device.ID)
	if err != nil {
		return err
	}
	if device.Name == "" {
		return errors.NewValidationError("device name is required", nil)
	}

	device.Identifier = existing.Identifier
	device.DeviceTypeID = existing.DeviceTypeID
	device.CreatedAt = existing.CreatedAt
	device.UpdatedAt = time.Now()

	if err := s.Devices.Update(ctx, device); err != nil {
		return err
	}
	s.invalidateDevice(ctx, existing.Identifier)
	nuts.L.Infof("[DeviceService] Updated device %s", device.ID)
	return nil
}

// DeleteDevice handles device deletion with cascading cleanup
func (s *HubService) DeleteDevice(ctx context.Context, id string) error {
	device, err := s.Devices.Get(ctx, id)
	if err != nil {
		return err
	}

	nuts.L.Infof("[DeviceService] Deleting device: %s", id)
	if err := s.Cleanup.DeleteDevice(ctx, id); err != nil {
		return err
	}
	s.invalidateDevice(ctx, device.Identifier)
	return nil
}

// ListDevices retrieves a paginated list of devices
func (s *HubService) ListDevices(ctx context.Context, offset, limit int) ([]*models.Device, error) {
	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Devices.List(ctx, offset, limit)
}

// ActiveConnections returns the connection records of a device covering the
// given instant.
func (s *HubService) ActiveConnections(ctx context.Context, deviceID string, at time.Time) ([]*models.SensorConnection, error) {
	if _, err := s.Devices.Get(ctx, deviceID); err != nil {
		return nil, err
	}
	return s.Connections.ActiveForDevice(ctx, deviceID, at)
}

// ConnectDevice routes a device's sensors to an apiary and its hives from
// the given instant on. Any previously open connection records are closed
// at that instant. Measurements that arrived around the move under a stale
// or missing assignment are re-tagged afterwards, so telemetry ingested
// between the physical move and this call ends up on the right hive.
func (s *HubService) ConnectDevice(ctx context.Context, deviceID string, req ConnectRequest) ([]*models.SensorConnection, error) {
	device, err := s.Devices.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	deviceType := models.DeviceTypeByID(device.DeviceTypeID)
	if deviceType == nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("unknown device type %d", device.DeviceTypeID), nil)
	}
	if _, err := s.Apiaries.Get(ctx, req.ApiaryID); err != nil {
		return nil, err
	}

	for placement, hiveID := range req.Hives {
		if !placementUsedBy(deviceType, placement) {
			return nil, errors.NewValidationError(
				fmt.Sprintf("device type %d has no sensors on slot %s", deviceType.ID, placement), nil)
		}
		hive, err := s.Hives.Get(ctx, hiveID)
		if err != nil {
			return nil, err
		}
		if hive.ApiaryID != req.ApiaryID {
			return nil, errors.NewValidationError(
				fmt.Sprintf("hive %s is not at apiary %s", hiveID, req.ApiaryID), nil)
		}
	}

	at := time.Now()
	if req.At != nil {
		at = *req.At
	}

	created := make([]*models.SensorConnection, 0, len(deviceType.Sensors))
	for _, sensor := range deviceType.Sensors {
		record := &models.SensorConnection{
			ID:        nuts.NID("cn", 12),
			DeviceID:  device.ID,
			SensorID:  sensor.ID,
			ApiaryID:  req.ApiaryID,
			StartedAt: at,
		}
		if sensor.Placement != models.PlacementApiary {
			hiveID, ok := req.Hives[sensor.Placement]
			if !ok {
				continue // slot not in use, sensor stays unconnected
			}
			record.HiveID = &hiveID
		}
		created = append(created, record)
	}

	closed, err := s.closeOpenConnections(ctx, device.ID, at, created)
	if err != nil {
		return nil, err
	}

	s.retagAfterMove(ctx, device.ID, closed, created, at)
	nuts.L.Infof("[DeviceService] Connected device %s to apiary %s: %d sensors routed, %d records closed",
		device.ID, req.ApiaryID, len(created), len(closed))
	return created, nil
}

// DisconnectDevice closes every open connection record of the device at the
// given instant and detaches measurements recorded at or after it.
func (s *HubService) DisconnectDevice(ctx context.Context, deviceID string, at *time.Time) error {
	device, err := s.Devices.Get(ctx, deviceID)
	if err != nil {
		return err
	}
	instant := time.Now()
	if at != nil {
		instant = *at
	}

	closed, err := s.closeOpenConnections(ctx, device.ID, instant, nil)
	if err != nil {
		return err
	}

	s.retagAfterMove(ctx, device.ID, closed, nil, instant)
	nuts.L.Infof("[DeviceService] Disconnected device %s: %d records closed", device.ID, len(closed))
	return nil
}

// closeOpenConnections ends all open records at the given instant and
// writes the replacement records in the same transaction.
func (s *HubService) closeOpenConnections(ctx context.Context, deviceID string, at time.Time, replacements []*models.SensorConnection) ([]*models.SensorConnection, error) {
	open, err := s.Connections.OpenForDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	for _, record := range open {
		if at.Before(record.StartedAt) {
			return nil, errors.NewValidationError(
				fmt.Sprintf("instant precedes open connection %s started at %s", record.ID, record.StartedAt.Format(time.RFC3339)), nil)
		}
	}

	tx, err := s.Connections.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	for _, record := range open {
		if err := s.Connections.Close(ctx, record.ID, at, tx); err != nil {
			return nil, err
		}
	}
	for _, record := range replacements {
		if err := s.Connections.Create(ctx, record, tx); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.NewDatabaseError("failed to commit connection changes", err)
	}
	return open, nil
}

// retagAfterMove re-tags measurements around a connect/disconnect: rows
// recorded at or after the instant under a now-closed assignment lose it,
// rows recorded unassigned gain the new one. Retagging failures are logged,
// not returned; the connection history is already committed and a re-run of
// the move fixes stragglers.
func (s *HubService) retagAfterMove(ctx context.Context, deviceID string, closed, created []*models.SensorConnection, at time.Time) {
	for _, record := range closed {
		n, err := s.Measurements.ClearAssignment(ctx, deviceID, record.SensorID, record.ApiaryID, record.HiveID, at)
		if err != nil {
			nuts.L.Errorf("[DeviceService] Failed to detach measurements for sensor %d: %v", record.SensorID, err)
			continue
		}
		if n > 0 {
			nuts.L.Infof("[DeviceService] Detached %d measurements of sensor %d recorded after %s", n, record.SensorID, at.Format(time.RFC3339))
		}
	}
	for _, record := range created {
		n, err := s.Measurements.AssignUnassigned(ctx, deviceID, record.SensorID, record.ApiaryID, record.HiveID, at)
		if err != nil {
			nuts.L.Errorf("[DeviceService] Failed to attach measurements for sensor %d: %v", record.SensorID, err)
			continue
		}
		if n > 0 {
			nuts.L.Infof("[DeviceService] Attached %d measurements of sensor %d recorded after %s", n, record.SensorID, at.Format(time.RFC3339))
		}
	}
}

func placementUsedBy(deviceType *models.DeviceType, placement models.Placement) bool {
	for _, sensor := range deviceType.Sensors {
		if sensor.Placement == placement {
			return true
		}
	}
	return false
}
