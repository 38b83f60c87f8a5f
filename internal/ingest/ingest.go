// FilePath: internal/ingest/ingest.go
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
	"github.com/eibon93/vcelstva-hub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// Adapter ingests one protocol message. data is the decoded JSON body of a
// callback request; token is the credential extracted from the Authorization
// header, empty when the header was absent.
type Adapter interface {
	Insert(ctx context.Context, data map[string]any, token string) error
}

// core carries the collaborators shared by all protocol adapters and the
// persistence step that turns a sensor→value map into measurement rows.
type core struct {
	devices      repository.DeviceLookup
	connections  repository.ConnectionRepository
	measurements repository.MeasurementRepository
	verifyTokens bool
}

// checkToken compares the presented token against the device's configured
// one. Verification is a deployment policy; when disabled every token is
// accepted.
func (c *core) checkToken(device *models.Device, token string) error {
	if !c.verifyTokens {
		return nil
	}
	if device.Token == "" || device.Token != token {
		return errors.NewTokenError(fmt.Sprintf("token mismatch for device %s", device.Identifier), nil)
	}
	return nil
}

// insert validates the sensor→value map against the device type, resolves
// each sensor's assignment at the message instant and persists all values
// as one atomic batch. No rows are written if any sensor fails validation.
func (c *core) insert(ctx context.Context, device *models.Device, deviceType *models.DeviceType, at time.Time, values map[int]float64) error {
	if len(values) == 0 {
		nuts.L.Debugf("[Ingest] Device %s sent no decodable values", device.Identifier)
		return nil
	}

	sensorIDs := make([]int, 0, len(values))
	for sensorID := range values {
		if deviceType.SensorByID(sensorID) == nil {
			return errors.NewConfigurationError(
				fmt.Sprintf("invalid sensor %d for device type %d", sensorID, deviceType.ID), nil)
		}
		sensorIDs = append(sensorIDs, sensorID)
	}
	sort.Ints(sensorIDs)

	active, err := c.activeConnections(ctx, device.ID, at)
	if err != nil {
		return err
	}

	measurements := make([]*models.Measurement, 0, len(sensorIDs))
	for _, sensorID := range sensorIDs {
		m := &models.Measurement{
			ID:         nuts.NID("ms", 12),
			DeviceID:   device.ID,
			SensorID:   sensorID,
			Value:      values[sensorID],
			MeasuredAt: at,
		}
		if conn := active[sensorID]; conn != nil {
			apiaryID := conn.ApiaryID
			m.ApiaryID = &apiaryID
			m.HiveID = conn.HiveID
		}
		measurements = append(measurements, m)
	}

	if err := c.measurements.InsertBatch(ctx, measurements); err != nil {
		return err
	}
	nuts.L.Infof("[Ingest] Stored %d measurements for device %s at %s",
		len(measurements), device.Identifier, at.Format(time.RFC3339))
	return nil
}

// activeConnections returns the connection covering the given instant for
// each sensor of the device. Two records covering the same instant for one
// sensor mean the history is corrupt, so ingestion stops.
func (c *core) activeConnections(ctx context.Context, deviceID string, at time.Time) (map[int]*models.SensorConnection, error) {
	records, err := c.connections.ActiveForDevice(ctx, deviceID, at)
	if err != nil {
		return nil, err
	}
	active := make(map[int]*models.SensorConnection, len(records))
	for _, record := range records {
		if _, ok := active[record.SensorID]; ok {
			return nil, errors.NewConfigurationError(
				fmt.Sprintf("multiple active connections for device %s sensor %d", deviceID, record.SensorID), nil)
		}
		active[record.SensorID] = record
	}
	return active, nil
}

// numericValue extracts a JSON field as float64. Handlers decode bodies
// with UseNumber, so numbers arrive as json.Number; plain float64 is also
// accepted for callers constructing maps directly.
func numericValue(data map[string]any, key string) (float64, bool, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false, errors.NewValidationError(fmt.Sprintf("field %s is not numeric", key), err)
		}
		return f, true, nil
	case float64:
		return v, true, nil
	case int:
		return float64(v), true, nil
	default:
		return 0, false, errors.NewValidationError(fmt.Sprintf("field %s is not numeric", key), nil)
	}
}

// integerValue extracts a JSON field as an integer, rejecting fractional
// values.
func integerValue(data map[string]any, key string) (int, bool, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, false, errors.NewValidationError(fmt.Sprintf("field %s is not an integer", key), err)
		}
		return n, true, nil
	case int:
		return v, true, nil
	case float64:
		if v != float64(int(v)) {
			return 0, false, errors.NewValidationError(fmt.Sprintf("field %s is not an integer", key), nil)
		}
		return int(v), true, nil
	default:
		return 0, false, errors.NewValidationError(fmt.Sprintf("field %s is not an integer", key), nil)
	}
}

// stringValue extracts a JSON field as a string.
func stringValue(data map[string]any, key string) (string, bool) {
	raw, ok := data[key]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}
