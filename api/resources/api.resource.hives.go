// FilePath: api/resources/api.resource.hives.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/hubservice"
	"github.com/eibon93/vcelstva-hub/internal/models"
	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
)

// HiveHandlers encapsulates the hive-related HTTP handlers
type HiveHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Create a new hive
// @Description Create a new hive at an existing apiary
// @Tags hives
// @Accept json
// @Produce json
// @Param hive body models.Hive true "Hive details"
// @Success 201 {object} models.Hive
// @Failure 400 {object} errors.APIError
// @Router /hives [post]
func (h *HiveHandlers) CreateHive(w http.ResponseWriter, r *http.Request) {
	var hive models.Hive
	requestID := nuts.NID("req", 12)

	if err := json.NewDecoder(r.Body).Decode(&hive); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateHive(r.Context(), &hive); err != nil {
		respondServiceError(w, requestID, "failed to create hive", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, hive)
}

// @Summary Get a hive by ID
// @Description Get detailed information about a specific hive
// @Tags hives
// @Produce json
// @Param id path string true "Hive ID"
// @Success 200 {object} models.Hive
// @Failure 404 {object} errors.APIError
// @Router /hives/{id} [get]
func (h *HiveHandlers) GetHive(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	hive, err := h.hubservice.GetHive(r.Context(), id)
	if err != nil {
		respondServiceError(w, requestID, "failed to get hive", err)
		return
	}

	respondWithJSON(w, http.StatusOK, hive)
}

// @Summary List hives
// @Description Get a paginated list of hives
// @Tags hives
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Hive
// @Router /hives [get]
func (h *HiveHandlers) ListHives(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	hives, err := h.hubservice.ListHives(r.Context(), offset, limit)
	if err != nil {
		respondServiceError(w, requestID, "failed to list hives", err)
		return
	}

	respondWithJSON(w, http.StatusOK, hives)
}

// @Summary Update a hive
// @Description Update an existing hive's details
// @Tags hives
// @Accept json
// @Produce json
// @Param id path string true "Hive ID"
// @Param hive body models.Hive true "Updated hive details"
// @Success 200 {object} models.Hive
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /hives/{id} [put]
func (h *HiveHandlers) UpdateHive(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var hive models.Hive
	if err := json.NewDecoder(r.Body).Decode(&hive); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	hive.ID = id
	if err := h.hubservice.UpdateHive(r.Context(), &hive); err != nil {
		respondServiceError(w, requestID, "failed to update hive", err)
		return
	}

	respondWithJSON(w, http.StatusOK, hive)
}

// @Summary Delete a hive
// @Description Delete a hive and its inspection notes
// @Tags hives
// @Param id path string true "Hive ID"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /hives/{id} [delete]
func (h *HiveHandlers) DeleteHive(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteHive(r.Context(), id); err != nil {
		respondServiceError(w, requestID, "failed to delete hive", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Add an inspection note
// @Description Attach a free-form inspection note to a hive
// @Tags hives
// @Accept json
// @Produce json
// @Param id path string true "Hive ID"
// @Param note body models.HiveNote true "Note details"
// @Success 201 {object} models.HiveNote
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /hives/{id}/notes [post]
func (h *HiveHandlers) CreateHiveNote(w http.ResponseWriter, r *http.Request) {
	hiveID := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var note models.HiveNote
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateHiveNote(r.Context(), hiveID, &note); err != nil {
		respondServiceError(w, requestID, "failed to create note", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, note)
}

// @Summary List inspection notes
// @Description Get a paginated list of a hive's inspection notes
// @Tags hives
// @Produce json
// @Param id path string true "Hive ID"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.HiveNote
// @Failure 404 {object} errors.APIError
// @Router /hives/{id}/notes [get]
func (h *HiveHandlers) ListHiveNotes(w http.ResponseWriter, r *http.Request) {
	hiveID := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	notes, err := h.hubservice.ListHiveNotes(r.Context(), hiveID, offset, limit)
	if err != nil {
		respondServiceError(w, requestID, "failed to list notes", err)
		return
	}

	respondWithJSON(w, http.StatusOK, notes)
}

// @Summary Delete an inspection note
// @Description Remove a single inspection note
// @Tags hives
// @Param id path string true "Hive ID"
// @Param noteId path string true "Note ID"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /hives/{id}/notes/{noteId} [delete]
func (h *HiveHandlers) DeleteHiveNote(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["noteId"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteHiveNote(r.Context(), noteID); err != nil {
		respondServiceError(w, requestID, "failed to delete note", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
