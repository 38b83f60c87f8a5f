// FilePath: api/resources/api.resource.devices.go
package resources

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/hubservice"
	"github.com/eibon93/vcelstva-hub/internal/models"
	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
)

// DeviceHandlers encapsulates the device-related HTTP handlers
type DeviceHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Create a new device
// @Description Register a telemetry device; identifier and type are immutable afterwards
// @Tags devices
// @Accept json
// @Produce json
// @Param device body models.Device true "Device details"
// @Success 201 {object} models.Device
// @Failure 400 {object} errors.APIError
// @Router /devices [post]
func (h *DeviceHandlers) CreateDevice(w http.ResponseWriter, r *http.Request) {
	var device models.Device
	requestID := nuts.NID("req", 12)

	if err := json.NewDecoder(r.Body).Decode(&device); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateDevice(r.Context(), &device); err != nil {
		respondServiceError(w, requestID, "failed to create device", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, device)
}

// @Summary Get a device by ID
// @Description Get detailed information about a specific device
// @Tags devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} models.Device
// @Failure 404 {object} errors.APIError
// @Router /devices/{id} [get]
func (h *DeviceHandlers) GetDevice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	device, err := h.hubservice.GetDevice(r.Context(), id)
	if err != nil {
		respondServiceError(w, requestID, "failed to get device", err)
		return
	}

	respondWithJSON(w, http.StatusOK, device)
}

// @Summary List devices
// @Description Get a paginated list of devices
// @Tags devices
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Device
// @Router /devices [get]
func (h *DeviceHandlers) ListDevices(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	devices, err := h.hubservice.ListDevices(r.Context(), offset, limit)
	if err != nil {
		respondServiceError(w, requestID, "failed to list devices", err)
		return
	}

	respondWithJSON(w, http.StatusOK, devices)
}

// @Summary Update a device
// @Description Update a device's name or token
// @Tags devices
// @Accept json
// @Produce json
// @Param id path string true "Device ID"
// @Param device body models.Device true "Updated device details"
// @Success 200 {object} models.Device
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /devices/{id} [put]
func (h *DeviceHandlers) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var device models.Device
	if err := json.NewDecoder(r.Body).Decode(&device); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	device.ID = id
	if err := h.hubservice.UpdateDevice(r.Context(), &device); err != nil {
		respondServiceError(w, requestID, "failed to update device", err)
		return
	}

	respondWithJSON(w, http.StatusOK, device)
}

// @Summary Delete a device
// @Description Delete a device with its measurements and connection history
// @Tags devices
// @Param id path string true "Device ID"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /devices/{id} [delete]
func (h *DeviceHandlers) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteDevice(r.Context(), id); err != nil {
		respondServiceError(w, requestID, "failed to delete device", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary List device types
// @Description Get the static catalog of supported device types and their sensors
// @Tags devices
// @Produce json
// @Success 200 {array} models.DeviceType
// @Router /device-types [get]
func (h *DeviceHandlers) ListDeviceTypes(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.hubservice.ListDeviceTypes())
}

// @Summary Connect a device
// @Description Route the device's sensors to an apiary and its hives from a given instant
// @Tags devices
// @Accept json
// @Produce json
// @Param id path string true "Device ID"
// @Param request body hubservice.ConnectRequest true "Target apiary and hive slots"
// @Success 200 {array} models.SensorConnection
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /devices/{id}/connect [post]
func (h *DeviceHandlers) ConnectDevice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var req hubservice.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	connections, err := h.hubservice.ConnectDevice(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, requestID, "failed to connect device", err)
		return
	}

	respondWithJSON(w, http.StatusOK, connections)
}

// @Summary Disconnect a device
// @Description Close all open connection records of the device at a given instant
// @Tags devices
// @Accept json
// @Param id path string true "Device ID"
// @Success 204
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /devices/{id}/disconnect [post]
func (h *DeviceHandlers) DisconnectDevice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var req struct {
		At *time.Time `json:"at,omitempty"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
			return
		}
	}

	if err := h.hubservice.DisconnectDevice(r.Context(), id, req.At); err != nil {
		respondServiceError(w, requestID, "failed to disconnect device", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary List connection records
// @Description Get the device's connection records covering an instant (default now)
// @Tags devices
// @Produce json
// @Param id path string true "Device ID"
// @Param at query string false "RFC3339 instant, default now"
// @Success 200 {array} models.SensorConnection
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /devices/{id}/connections [get]
func (h *DeviceHandlers) ListConnections(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	at := time.Now()
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondWithError(w, errors.NewValidationError("malformed at parameter", err).WithRequestID(requestID))
			return
		}
		at = parsed
	}

	connections, err := h.hubservice.ActiveConnections(r.Context(), id, at)
	if err != nil {
		respondServiceError(w, requestID, "failed to list connections", err)
		return
	}

	respondWithJSON(w, http.StatusOK, connections)
}
