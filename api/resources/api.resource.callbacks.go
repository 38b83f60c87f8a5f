// FilePath: api/resources/api.resource.callbacks.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/eibon93/vcelstva-hub/api/middleware"
	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/ingest"
	nuts "github.com/vaudience/go-nuts"
)

// CallbackHandlers receives telemetry callbacks from device backends.
type CallbackHandlers struct {
	generic ingest.Adapter
	sigfox  ingest.Adapter
}

// @Summary Ingest a generic push message
// @Description Accept one reading from a push device as named JSON attributes
// @Tags callbacks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /callbacks/generic [post]
func (h *CallbackHandlers) Generic(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.generic, "generic")
}

// @Summary Ingest a Sigfox backend callback
// @Description Accept a hex payload message relayed by the Sigfox backend
// @Tags callbacks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /callbacks/sigfox [post]
func (h *CallbackHandlers) Sigfox(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.sigfox, "sigfox")
}

func (h *CallbackHandlers) handle(w http.ResponseWriter, r *http.Request, adapter ingest.Adapter, protocol string) {
	requestID := nuts.NID("req", 12)

	// Numbers stay json.Number so the adapters can tell integers apart
	// from floats.
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	data := make(map[string]any)
	if err := decoder.Decode(&data); err != nil {
		respondWithError(w, errors.NewValidationError("malformed content", err).WithRequestID(requestID))
		return
	}

	token := middleware.TokenFromContext(r.Context())
	if err := adapter.Insert(r.Context(), data, token); err != nil {
		respondServiceError(w, requestID, "failed to ingest message", err)
		return
	}

	nuts.L.Debugf("[API] Ingested %s callback (%s)", protocol, requestID)
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
