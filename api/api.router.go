// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/eibon93/vcelstva-hub/api/middleware"
	"github.com/eibon93/vcelstva-hub/api/resources"
	"github.com/eibon93/vcelstva-hub/internal/hubservice"
	"github.com/eibon93/vcelstva-hub/internal/ingest"
	"github.com/gorilla/mux"
)

type Router struct {
	router    *mux.Router
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService, generic, sigfox ingest.Adapter) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: resources.NewResources(svc, generic, sigfox),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		r.resources.HealthCheck(w, req)
	}).Methods(http.MethodGet)

	// Device callbacks. The token middleware only extracts and validates
	// the Authorization header shape; the adapters decide whether the
	// token is checked against the device.
	callbacks := api.PathPrefix("/callbacks").Subrouter()
	callbacks.Use(middleware.DeviceToken)
	callbacks.HandleFunc("/generic", r.resources.Callbacks.Generic).Methods(http.MethodPost)
	callbacks.HandleFunc("/sigfox", r.resources.Callbacks.Sigfox).Methods(http.MethodPost)

	// Apiaries
	apiaries := api.PathPrefix("/apiaries").Subrouter()
	apiaries.HandleFunc("", r.resources.Apiaries.ListApiaries).Methods(http.MethodGet)
	apiaries.HandleFunc("", r.resources.Apiaries.CreateApiary).Methods(http.MethodPost)
	apiaries.HandleFunc("/{id}", r.resources.Apiaries.GetApiary).Methods(http.MethodGet)
	apiaries.HandleFunc("/{id}", r.resources.Apiaries.UpdateApiary).Methods(http.MethodPut)
	apiaries.HandleFunc("/{id}", r.resources.Apiaries.DeleteApiary).Methods(http.MethodDelete)
	apiaries.HandleFunc("/{id}/hives", r.resources.Apiaries.ListHives).Methods(http.MethodGet)

	// Hives
	hives := api.PathPrefix("/hives").Subrouter()
	hives.HandleFunc("", r.resources.Hives.ListHives).Methods(http.MethodGet)
	hives.HandleFunc("", r.resources.Hives.CreateHive).Methods(http.MethodPost)
	hives.HandleFunc("/{id}", r.resources.Hives.GetHive).Methods(http.MethodGet)
	hives.HandleFunc("/{id}", r.resources.Hives.UpdateHive).Methods(http.MethodPut)
	hives.HandleFunc("/{id}", r.resources.Hives.DeleteHive).Methods(http.MethodDelete)
	hives.HandleFunc("/{id}/notes", r.resources.Hives.ListHiveNotes).Methods(http.MethodGet)
	hives.HandleFunc("/{id}/notes", r.resources.Hives.CreateHiveNote).Methods(http.MethodPost)
	hives.HandleFunc("/{id}/notes/{noteId}", r.resources.Hives.DeleteHiveNote).Methods(http.MethodDelete)

	// Devices
	api.HandleFunc("/device-types", r.resources.Devices.ListDeviceTypes).Methods(http.MethodGet)
	devices := api.PathPrefix("/devices").Subrouter()
	devices.HandleFunc("", r.resources.Devices.ListDevices).Methods(http.MethodGet)
	devices.HandleFunc("", r.resources.Devices.CreateDevice).Methods(http.MethodPost)
	devices.HandleFunc("/{id}", r.resources.Devices.GetDevice).Methods(http.MethodGet)
	devices.HandleFunc("/{id}", r.resources.Devices.UpdateDevice).Methods(http.MethodPut)
	devices.HandleFunc("/{id}", r.resources.Devices.DeleteDevice).Methods(http.MethodDelete)
	devices.HandleFunc("/{id}/connect", r.resources.Devices.ConnectDevice).Methods(http.MethodPost)
	devices.HandleFunc("/{id}/disconnect", r.resources.Devices.DisconnectDevice).Methods(http.MethodPost)
	devices.HandleFunc("/{id}/connections", r.resources.Devices.ListConnections).Methods(http.MethodGet)

	// Measurements
	api.HandleFunc("/measurements", r.resources.Measurements.ListMeasurements).Methods(http.MethodGet)
	api.HandleFunc("/measurements/latest", r.resources.Measurements.LatestMeasurement).Methods(http.MethodGet)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
