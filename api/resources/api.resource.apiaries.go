// FilePath: api/resources/api.resource.apiaries.go
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

// ApiaryHandlers encapsulates the apiary-related HTTP handlers
type ApiaryHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Create a new apiary
// @Description Create a new apiary with the provided details
// @Tags apiaries
// @Accept json
// @Produce json
// @Param apiary body models.Apiary true "Apiary details"
// @Success 201 {object} models.Apiary
// @Failure 400 {object} errors.APIError
// @Router /apiaries [post]
func (h *ApiaryHandlers) CreateApiary(w http.ResponseWriter, r *http.Request) {
	var apiary models.Apiary
	requestID := nuts.NID("req", 12)

	if err := json.NewDecoder(r.Body).Decode(&apiary); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateApiary(r.Context(), &apiary); err != nil {
		respondServiceError(w, requestID, "failed to create apiary", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, apiary)
}

// @Summary Get an apiary by ID
// @Description Get detailed information about a specific apiary
// @Tags apiaries
// @Produce json
// @Param id path string true "Apiary ID"
// @Success 200 {object} models.Apiary
// @Failure 404 {object} errors.APIError
// @Router /apiaries/{id} [get]
func (h *ApiaryHandlers) GetApiary(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	apiary, err := h.hubservice.GetApiary(r.Context(), id)
	if err != nil {
		respondServiceError(w, requestID, "failed to get apiary", err)
		return
	}

	respondWithJSON(w, http.StatusOK, apiary)
}

// @Summary List apiaries
// @Description Get a paginated list of apiaries
// @Tags apiaries
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Apiary
// @Router /apiaries [get]
func (h *ApiaryHandlers) ListApiaries(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	apiaries, err := h.hubservice.ListApiaries(r.Context(), offset, limit)
	if err != nil {
		respondServiceError(w, requestID, "failed to list apiaries", err)
		return
	}

	respondWithJSON(w, http.StatusOK, apiaries)
}

// @Summary Update an apiary
// @Description Update an existing apiary's details
// @Tags apiaries
// @Accept json
// @Produce json
// @Param id path string true "Apiary ID"
// @Param apiary body models.Apiary true "Updated apiary details"
// @Success 200 {object} models.Apiary
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /apiaries/{id} [put]
func (h *ApiaryHandlers) UpdateApiary(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var apiary models.Apiary
	if err := json.NewDecoder(r.Body).Decode(&apiary); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	apiary.ID = id
	if err := h.hubservice.UpdateApiary(r.Context(), &apiary); err != nil {
		respondServiceError(w, requestID, "failed to update apiary", err)
		return
	}

	respondWithJSON(w, http.StatusOK, apiary)
}

// @Summary Delete an apiary
// @Description Delete an apiary that no longer hosts hives
// @Tags apiaries
// @Param id path string true "Apiary ID"
// @Success 204
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /apiaries/{id} [delete]
func (h *ApiaryHandlers) DeleteApiary(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteApiary(r.Context(), id); err != nil {
		respondServiceError(w, requestID, "failed to delete apiary", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary List hives at an apiary
// @Description Get all hives hosted at the apiary
// @Tags apiaries
// @Produce json
// @Param id path string true "Apiary ID"
// @Success 200 {array} models.Hive
// @Failure 404 {object} errors.APIError
// @Router /apiaries/{id}/hives [get]
func (h *ApiaryHandlers) ListHives(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	hives, err := h.hubservice.ListHivesByApiary(r.Context(), id)
	if err != nil {
		respondServiceError(w, requestID, "failed to list hives", err)
		return
	}

	respondWithJSON(w, http.StatusOK, hives)
}
