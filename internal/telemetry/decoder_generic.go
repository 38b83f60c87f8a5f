// FilePath: internal/telemetry/decoder_generic.go
package telemetry

import (
	"strconv"

	"github.com/eibon93/vcelstva-hub/internal/models"
)

// GenericDecoder decodes the 12-byte frame of the generic hive scale:
//
//	+----+----+----+----+----+----+----+----+----+----+----+----+
//	|    W1   | T11| T12| H1 |    W2   | T21| T22| H2 | T0 |  R |
//	+---------+----+----+----+---------+----+----+----+----+----+
//
// W1/W2 are the weights of hive 1 and 2 (uint16, hundredths of kg, 65535
// marks a missing reading), T11..T22 the inner temperatures (uint8, half
// degrees offset by 100, 255 missing), H1/H2 the inner humidities (uint8
// percent, anything above 100 ignored) and T0 the shared outer
// temperature. The trailing byte is vendor reserve.
type GenericDecoder struct{}

// Decode expects 24 hex characters (callers left-pad shorter payloads) and
// returns values for at most the nine sensors of the protocol.
func (GenericDecoder) Decode(payload string) map[int]float64 {
	result := make(map[int]float64, 9)

	putWeight(result, models.SensorGenericWeight1, hexAt(payload, 0, 4))
	putTemperature(result, models.SensorGenericInnerTemp11, hexAt(payload, 4, 2))
	putTemperature(result, models.SensorGenericInnerTemp12, hexAt(payload, 6, 2))
	putHumidity(result, models.SensorGenericHumidity1, hexAt(payload, 8, 2))
	putWeight(result, models.SensorGenericWeight2, hexAt(payload, 10, 4))
	putTemperature(result, models.SensorGenericInnerTemp21, hexAt(payload, 14, 2))
	putTemperature(result, models.SensorGenericInnerTemp22, hexAt(payload, 16, 2))
	putHumidity(result, models.SensorGenericHumidity2, hexAt(payload, 18, 2))
	putTemperature(result, models.SensorGenericOuterTemp, hexAt(payload, 20, 2))

	return result
}

// hexAt parses a hex substring of the payload, returning -1 when the
// payload is too short or not valid hex.
func hexAt(payload string, offset, length int) int64 {
	if offset+length > len(payload) {
		return -1
	}
	x, err := strconv.ParseInt(payload[offset:offset+length], 16, 32)
	if err != nil {
		return -1
	}
	return x
}

func putWeight(result map[int]float64, sensorID int, x int64) {
	if x < 0 || x >= 65535 {
		return
	}
	result[sensorID] = float64(x) / 100
}

func putTemperature(result map[int]float64, sensorID int, x int64) {
	if x < 0 || x >= 255 {
		return
	}
	result[sensorID] = float64(x-100) / 2
}

func putHumidity(result map[int]float64, sensorID int, x int64) {
	if x < 0 || x > 100 {
		return
	}
	result[sensorID] = float64(x)
}
