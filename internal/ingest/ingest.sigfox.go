// FilePath: internal/ingest/ingest.sigfox.go
package ingest

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
	"github.com/eibon93/vcelstva-hub/internal/repository"
	"github.com/eibon93/vcelstva-hub/internal/telemetry"
)

var sigfoxPayloadPattern = regexp.MustCompile(`^[0-9A-Fa-f]{0,24}$`)

// SigfoxAdapter ingests Sigfox backend callbacks: a hex payload decoded by
// the device type's binary decoder, merged with values derived from the
// transport itself (average SNR, sequence number, lost-message count).
type SigfoxAdapter struct {
	core
}

// NewSigfoxAdapter creates the adapter for Sigfox callbacks.
func NewSigfoxAdapter(devices repository.DeviceLookup, connections repository.ConnectionRepository, measurements repository.MeasurementRepository, verifyTokens bool) *SigfoxAdapter {
	return &SigfoxAdapter{core{
		devices:      devices,
		connections:  connections,
		measurements: measurements,
		verifyTokens: verifyTokens,
	}}
}

// Insert processes one Sigfox message. Transport-derived values are
// computed first; decoded payload values are merged in without overwriting
// them.
func (a *SigfoxAdapter) Insert(ctx context.Context, data map[string]any, token string) error {
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
	if deviceType.Technology != models.TechSigfox {
		return errors.NewValidationError(fmt.Sprintf("unknown device %s", identifier), nil)
	}
	if err := a.checkToken(device, token); err != nil {
		return err
	}

	payload, err := a.resolvePayload(data)
	if err != nil {
		return err
	}
	decoder, err := telemetry.DecoderForType(deviceType.ID)
	if err != nil {
		return err
	}
	decoded := decoder.Decode(payload)

	values, err := a.transportValues(ctx, data, device, deviceType, at)
	if err != nil {
		return err
	}
	for sensorID, value := range decoded {
		if _, ok := values[sensorID]; !ok {
			values[sensorID] = value
		}
	}

	return a.insert(ctx, device, deviceType, at, values)
}

func (a *SigfoxAdapter) resolveTime(data map[string]any) (time.Time, error) {
	epoch, present, err := integerValue(data, "time")
	if err != nil {
		return time.Time{}, err
	}
	if !present {
		return time.Time{}, errors.NewValidationError("missing time field", nil)
	}
	return time.Unix(int64(epoch), 0).UTC(), nil
}

func (a *SigfoxAdapter) resolvePayload(data map[string]any) (string, error) {
	payload, _ := stringValue(data, "data")
	if !sigfoxPayloadPattern.MatchString(payload) {
		return "", errors.NewValidationError(fmt.Sprintf("malformed payload %q", payload), nil)
	}
	if len(payload) < 24 {
		payload = strings.Repeat("0", 24-len(payload)) + payload
	}
	return payload, nil
}

// transportValues derives measurements from the Sigfox transport metadata.
// Each is recorded only if the device type carries a sensor for the
// quantity; the lost-message count additionally needs a previously stored
// sequence number under the sequence sensor's current assignment.
func (a *SigfoxAdapter) transportValues(ctx context.Context, data map[string]any, device *models.Device, deviceType *models.DeviceType, at time.Time) (map[int]float64, error) {
	values := make(map[int]float64)

	if sensor := deviceType.SensorByQuantity(models.QuantityAvgSnr); sensor != nil {
		avgSnr, present, err := numericValue(data, "avgSnr")
		if err != nil {
			return nil, err
		}
		if present {
			values[sensor.ID] = avgSnr
		}
	}

	seqSensor := deviceType.SensorByQuantity(models.QuantitySequenceNumber)
	if seqSensor == nil {
		return values, nil
	}
	seq, present, err := integerValue(data, "seqNumber")
	if err != nil {
		return nil, err
	}
	if !present {
		return values, nil
	}
	values[seqSensor.ID] = float64(seq)

	lostSensor := deviceType.SensorByQuantity(models.QuantityLostMessageCount)
	if lostSensor == nil {
		return values, nil
	}
	lost, err := a.lostMessages(ctx, device, seqSensor.ID, seq, at)
	if err != nil {
		return nil, err
	}
	if lost != nil {
		values[lostSensor.ID] = float64(*lost)
	}
	return values, nil
}

// lostMessages reads the last stored sequence number under the sequence
// sensor's assignment active at the message instant and counts the gap.
// Nil when no connection covers that instant or there is no prior value
// to compare against.
func (a *SigfoxAdapter) lostMessages(ctx context.Context, device *models.Device, seqSensorID, seq int, at time.Time) (*int, error) {
	active, err := a.activeConnections(ctx, device.ID, at)
	if err != nil {
		return nil, err
	}
	conn := active[seqSensorID]
	if conn == nil {
		return nil, nil
	}
	last, err := a.measurements.LastValue(ctx, device.ID, seqSensorID, conn.ApiaryID, conn.HiveID)
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, nil
	}
	lost := telemetry.LostMessages(int(*last), seq)
	return &lost, nil
}
