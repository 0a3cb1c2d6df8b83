package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erin-happyrobot/ryder-RLM/internal/models"
	"github.com/erin-happyrobot/ryder-RLM/internal/service"
)

// ScheduleHandler handles schedule-appointment HTTP requests
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
	log             *slog.Logger
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *service.ScheduleService, log *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		log:             log,
	}
}

// ScheduleAppointment handles POST /schedule-appointment
func (h *ScheduleHandler) ScheduleAppointment(w http.ResponseWriter, r *http.Request) {
	var req models.ScheduleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode schedule request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	resp, err := h.scheduleService.Schedule(r.Context(), req)
	if err != nil {
		h.writeRelayError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, resp, h.log)
	h.log.Info("schedule request relayed",
		"order_number", req.ClientOrderNumber,
		"upstream_status", resp.StatusCode,
		"success", resp.Success,
	)
}

// ScheduleAppointmentCustom handles POST /schedule-appointment-custom.
// The caller's payload is forwarded upstream untouched.
func (h *ScheduleHandler) ScheduleAppointmentCustom(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.log.Error("failed to decode custom payload", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	resp, err := h.scheduleService.ScheduleCustom(r.Context(), payload)
	if err != nil {
		h.writeRelayError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, resp, h.log)
	h.log.Info("custom payload relayed", "upstream_status", resp.StatusCode, "success", resp.Success)
}

// writeRelayError maps relay failures to HTTP responses. Both missing
// credential and transport failures are server-side errors; normalization
// never fails by construction.
func (h *ScheduleHandler) writeRelayError(w http.ResponseWriter, err error) {
	h.log.Error("failed to relay schedule request", "error", err)

	if errors.Is(err, service.ErrMissingCredential) {
		WriteError(w, http.StatusInternalServerError, "API_HEADER_KEY not found in environment variables. Please check your .env file.", h.log)
		return
	}

	WriteError(w, http.StatusInternalServerError, "Error making request to RLM API: "+err.Error(), h.log)
}
