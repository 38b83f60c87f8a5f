// FilePath: internal/ingest/ingest.generic.go
package ingest

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
	"github.com/eibon93/vcelstva-hub/internal/repository"
)

// GenericAdapter ingests push messages that carry one reading per named
// JSON attribute. Only device types listed in models.GenericAdapterTypeIDs
// are accepted on this path.
type GenericAdapter struct {
	core
}

// NewGenericAdapter creates the adapter for the generic push protocol.
func NewGenericAdapter(devices repository.DeviceLookup, connections repository.ConnectionRepository, measurements repository.MeasurementRepository, verifyTokens bool) *GenericAdapter {
	return &GenericAdapter{core{
		devices:      devices,
		connections:  connections,
		measurements: measurements,
		verifyTokens: verifyTokens,
	}}
}

// Insert processes one generic message. Sensors whose attribute is missing
// from the body are skipped; an attribute present with a non-numeric value
// rejects the whole message.
func (a *GenericAdapter) Insert(ctx context.Context, data map[string]any, token string) error {
	at, err := a.resolveTime(data)
	if err != nil {
		return err
	}

	identifier, ok := stringValue(data, "device")
	if !ok || identifier == "" {
		return errors.NewValidationError("missing device identifier", nil)
	}
	device, err := a.devices.GetByIdentifier(ctx, identifier)
	if errors.IsNotFound(err) {
		return errors.NewValidationError(fmt.Sprintf("unknown device %s", identifier), err)
	}
	if err != nil {
		return err
	}
	deviceType := models.DeviceTypeByID(device.DeviceTypeID)
	if deviceType == nil {
		return errors.NewConfigurationError(fmt.Sprintf("unknown device type %d", device.DeviceTypeID), nil)
	}
	if !slices.Contains(models.GenericAdapterTypeIDs, deviceType.ID) {
		return errors.NewValidationError(fmt.Sprintf("unknown device %s", identifier), nil)
	}
	if err := a.checkToken(device, token); err != nil {
		return err
	}

	values := make(map[int]float64)
	for _, sensor := range deviceType.Sensors {
		if sensor.Attr == "" {
			continue
		}
		value, present, err := numericValue(data, sensor.Attr)
		if err != nil {
			return err
		}
		if present {
			values[sensor.ID] = value
		}
	}

	return a.insert(ctx, device, deviceType, at, values)
}

func (a *GenericAdapter) resolveTime(data map[string]any) (time.Time, error) {
	raw, ok := stringValue(data, "time")
	if !ok || raw == "" {
		return time.Time{}, errors.NewValidationError("missing time field", nil)
	}
	// Zone designator required; zone-less timestamps are rejected.
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.NewValidationError(fmt.Sprintf("malformed time %q", raw), err)
	}
	return at, nil
}
