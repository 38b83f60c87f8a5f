// FilePath: internal/telemetry/decoder.go

// Package telemetry implements the binary payload decoders for the hive
// scale protocols and the sequence-number bookkeeping shared by the
// Sigfox ingestion path.
package telemetry

import (
	"fmt"

	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
)

// Decoder turns a hex-encoded binary payload into measured values keyed by
// sensor id. Decoders never fail: unreadable or sentinel-marked fields are
// simply omitted from the result.
type Decoder interface {
	Decode(payload string) map[int]float64
}

// DecoderForType returns the payload decoder registered for a device type.
// An unmapped type is a configuration defect; ingestion must fail loudly
// rather than silently skip decoding.
func DecoderForType(deviceTypeID int) (Decoder, error) {
	switch deviceTypeID {
	case models.DeviceTypeGenericScale:
		return GenericDecoder{}, nil
	case models.DeviceTypeAceLogicScale:
		return AceLogicDecoder{}, nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("missing decoder for device type %d", deviceTypeID), nil)
	}
}
