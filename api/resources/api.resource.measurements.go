// FilePath: api/resources/api.resource.measurements.go
package resources

import (
	"net/http"
	"reflect"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/hubservice"
	"github.com/eibon93/vcelstva-hub/internal/models"
	"github.com/gorilla/schema"
	nuts "github.com/vaudience/go-nuts"
)

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(time.Time{}, func(value string) reflect.Value {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(t)
	})
	return d
}()

// MeasurementHandlers encapsulates the measurement query handlers
type MeasurementHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Query measurements
// @Description List stored readings filtered by device, sensor, apiary, hive and time range
// @Tags measurements
// @Produce json
// @Param device_id query string false "Device ID"
// @Param sensor_id query int false "Sensor ID"
// @Param apiary_id query string false "Apiary ID"
// @Param hive_id query string false "Hive ID"
// @Param start query string false "RFC3339 range start"
// @Param end query string false "RFC3339 range end"
// @Param limit query int false "Row limit"
// @Success 200 {array} models.Measurement
// @Failure 400 {object} errors.APIError
// @Router /measurements [get]
func (h *MeasurementHandlers) ListMeasurements(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var filters models.MeasurementFilters
	if err := queryDecoder.Decode(&filters, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("malformed query parameters", err).WithRequestID(requestID))
		return
	}

	measurements, err := h.hubservice.ListMeasurements(r.Context(), filters)
	if err != nil {
		respondServiceError(w, requestID, "failed to list measurements", err)
		return
	}

	respondWithJSON(w, http.StatusOK, measurements)
}

// @Summary Latest measurement
// @Description Return the most recent reading matching the filters
// @Tags measurements
// @Produce json
// @Param device_id query string false "Device ID"
// @Param sensor_id query int false "Sensor ID"
// @Param apiary_id query string false "Apiary ID"
// @Param hive_id query string false "Hive ID"
// @Success 200 {object} models.Measurement
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /measurements/latest [get]
func (h *MeasurementHandlers) LatestMeasurement(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var filters models.MeasurementFilters
	if err := queryDecoder.Decode(&filters, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("malformed query parameters", err).WithRequestID(requestID))
		return
	}

	measurement, err := h.hubservice.LatestMeasurement(r.Context(), filters)
	if err != nil {
		respondServiceError(w, requestID, "failed to get latest measurement", err)
		return
	}

	respondWithJSON(w, http.StatusOK, measurement)
}
