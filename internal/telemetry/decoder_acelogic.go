// FilePath: internal/telemetry/decoder_acelogic.go
package telemetry

import (
	"math"
	"strconv"

	"github.com/eibon93/vcelstva-hub/internal/models"
)

// AceLogicDecoder decodes the vendor payload of the AceLogic hive scale.
// Only the last 12 hex characters carry data, in the layout WWWTTTHHHTTT:
// four readings of 3 hex digits each, 2 digits integer base plus 1 digit
// fractional part in fifteenths. Temperatures are transmitted offset by
// 127. The protocol has no invalid-value sentinel, so the result always
// holds all four sensors.
type AceLogicDecoder struct{}

func (AceLogicDecoder) Decode(payload string) map[int]float64 {
	if len(payload) > 12 {
		payload = payload[len(payload)-12:]
	}

	weight := hexGroup(payload, 0)
	temperature1 := hexGroup(payload, 3) - 127
	humidity := hexGroup(payload, 6)
	temperature2 := hexGroup(payload, 9) - 127

	return map[int]float64{
		models.SensorAceLogicWeight:     weight,
		models.SensorAceLogicInnerTemp1: temperature1,
		models.SensorAceLogicInnerTemp2: temperature2,
		models.SensorAceLogicHumidity:   humidity,
	}
}

// hexGroup combines 2 hex digits of integer base with 1 hex digit of
// fractional part, rounded to one decimal place.
func hexGroup(payload string, offset int) float64 {
	base := parseHex(payload, offset, 2)
	point := parseHex(payload, offset+2, 1)
	return float64(base) + math.Round(float64(point)/15*10)/10
}

func parseHex(payload string, offset, length int) int64 {
	if offset+length > len(payload) {
		return 0
	}
	x, err := strconv.ParseInt(payload[offset:offset+length], 16, 32)
	if err != nil {
		return 0
	}
	return x
}
