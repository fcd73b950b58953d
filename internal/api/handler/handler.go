package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	core "worksim.service/internal/core"
	"worksim.service/internal/ports/repository"
)

type RhythmHandler struct {
	Service    *core.RhythmService
	Activities repository.ActivityRepository
}

// GetClockHistory returns an employee's ledger events from the last N days,
// newest first. Days defaults to 7.
func (h *RhythmHandler) GetClockHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["employeeId"]
	if employeeID == "" {
		http.Error(w, "employeeId is required", http.StatusBadRequest)
		return
	}

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "days must be a non-negative integer", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	events, err := h.Service.GetEmployeeClockHistory(r.Context(), employeeID, days)
	if err != nil {
		http.Error(w, "Service error reading clock history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, events)
}

// GetTodayClockEvents returns every ledger event for the current simulated day.
func (h *RhythmHandler) GetTodayClockEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.GetAllClockEventsToday(r.Context())
	if err != nil {
		http.Error(w, "Service error reading today's clock events", http.StatusInternalServerError)
		return
	}
	writeJSON(w, events)
}

// GetActivityFeed returns the newest persisted narrations.
func (h *RhythmHandler) GetActivityFeed(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	feed, err := h.Activities.ListRecent(r.Context(), limit)
	if err != nil {
		http.Error(w, "Service error reading activity feed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, feed)
}

// RunProcessor triggers a single processor out of band, mainly for operators
// poking at a stuck simulation. The scheduler remains the normal driver.
func (h *RhythmHandler) RunProcessor(w http.ResponseWriter, r *http.Request) {
	var (
		result any
		err    error
	)

	switch mux.Vars(r)["processor"] {
	case "arrivals":
		result, err = h.Service.ProcessMorningArrivals(r.Context())
	case "departures":
		result, err = h.Service.ProcessEndOfDayDepartures(r.Context())
	case "commute":
		result, err = h.Service.ProcessCommutingEmployees(r.Context())
	case "bedtime":
		result, err = h.Service.ProcessBedtime(r.Context())
	case "wakeup":
		result, err = h.Service.ProcessWakeUp(r.Context())
	case "enforce":
		result, err = h.Service.EnforceSleepRules(r.Context())
	default:
		http.Error(w, "Unknown processor", http.StatusNotFound)
		return
	}

	if err != nil {
		http.Error(w, "Processor run failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
