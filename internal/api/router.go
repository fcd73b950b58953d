package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"worksim.service/internal/api/handler"
	core "worksim.service/internal/core"
	"worksim.service/internal/ports/repository"
)

// NewRouter sets up the gorilla/mux router and defines all API routes.
func NewRouter(service *core.RhythmService, activities repository.ActivityRepository) *mux.Router {

	rhythmHandler := handler.RhythmHandler{
		Service:    service,
		Activities: activities,
	}

	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/employees/{employeeId}/clock-history", rhythmHandler.GetClockHistory).Methods(http.MethodGet)
	api.HandleFunc("/clock-events/today", rhythmHandler.GetTodayClockEvents).Methods(http.MethodGet)
	api.HandleFunc("/activities", rhythmHandler.GetActivityFeed).Methods(http.MethodGet)
	api.HandleFunc("/ticks/{processor}", rhythmHandler.RunProcessor).Methods(http.MethodPost)
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Service is operational."))
	}).Methods(http.MethodGet)

	return r
}
