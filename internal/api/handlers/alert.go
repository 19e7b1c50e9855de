package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bundleguard/bundleguard/internal/api/dto"
	"github.com/bundleguard/bundleguard/internal/domain/alert"
	"github.com/bundleguard/bundleguard/internal/domain/device"
	"github.com/bundleguard/bundleguard/internal/domain/usage"
	"github.com/bundleguard/bundleguard/internal/pkg/errors"
	"github.com/bundleguard/bundleguard/internal/pkg/logger"
	"github.com/bundleguard/bundleguard/internal/pkg/utils"
	"github.com/bundleguard/bundleguard/internal/pkg/validator"
	"github.com/bundleguard/bundleguard/internal/services"
)

type AlertHandler struct {
	service         alert.Service
	analysisService *services.AnalysisService
	deviceService   device.Service
	logger          *logger.Logger
	validator       *validator.Validator
}

func NewAlertHandler(
	service alert.Service,
	analysisService *services.AnalysisService,
	deviceService device.Service,
	log *logger.Logger,
	val *validator.Validator,
) *AlertHandler {
	return &AlertHandler{
		service:         service,
		analysisService: analysisService,
		deviceService:   deviceService,
		logger:          log,
		validator:       val,
	}
}

// List returns stored alerts with pagination and filtering
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)

	filter := alert.Filter{
		Type:     r.URL.Query().Get("type"),
		Severity: r.URL.Query().Get("severity"),
		AppName:  r.URL.Query().Get("appName"),
		DeviceID: r.URL.Query().Get("deviceId"),
	}

	alerts, total, err := h.service.List(r.Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to list alerts", err))
		return
	}

	dtos := make([]dto.AlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = dto.FromAlert(a)
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, params.Page, params.PageSize, total))
}

// Get returns a single alert by ID
func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			utils.WriteError(w, appErr)
		} else {
			utils.WriteError(w, errors.Internal("Failed to get alert", err))
		}
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromAlert(a))
}

// Delete removes an alert
func (h *AlertHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			utils.WriteError(w, appErr)
		} else {
			utils.WriteError(w, errors.Internal("Failed to delete alert", err))
		}
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Alert deleted successfully", nil)
}

// GetSummary returns alert counts grouped by severity
func (h *AlertHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to get summary", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, summary)
}

// Spikes runs the spike analysis over stored usage for a device or all of a
// user's devices. Query parameters: deviceId or userId (one required),
// threshold (MB, optional) and sensitivity (optional).
func (h *AlertHandler) Spikes(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("deviceId")
	userID := r.URL.Query().Get("userId")

	var deviceIDs []string
	switch {
	case deviceID != "":
		deviceIDs = []string{deviceID}
	case userID != "":
		devices, err := h.deviceService.ListByUser(r.Context(), userID)
		if err != nil {
			utils.WriteError(w, errors.Internal("Failed to list user devices", err))
			return
		}
		for _, d := range devices {
			deviceIDs = append(deviceIDs, d.ID)
		}
	default:
		utils.WriteError(w, errors.BadRequest("deviceId or userId query parameter is required"))
		return
	}

	if len(deviceIDs) == 0 {
		utils.WriteSuccess(w, http.StatusOK, dto.AnalyzeResponse{Alerts: []dto.AlertDTO{}, Analyzed: true})
		return
	}

	opts := services.AnalysisOptions{Sensitivity: r.URL.Query().Get("sensitivity")}
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		mb, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || mb <= 0 {
			utils.WriteError(w, errors.BadRequest("threshold must be a positive integer (MB)"))
			return
		}
		opts.ThresholdMB = mb
	}

	result, err := h.analysisService.AnalyzeDevices(r.Context(), deviceIDs, time.Now(), opts)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to analyze usage", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toAnalyzeResponse(result))
}

// Analyze runs the spike analysis over caller-supplied samples
func (h *AlertHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	opts := services.AnalysisOptions{}
	if req.Config != nil {
		opts.Sensitivity = req.Config.Sensitivity
		opts.ThresholdMB = req.Config.ThresholdMB
	}

	result := h.analysisService.AnalyzeSamples(toSamples(req.Samples), toSamples(req.HistoricalSamples), time.Now(), opts)

	utils.WriteSuccess(w, http.StatusOK, toAnalyzeResponse(result))
}

func toSamples(dtos []dto.SampleDTO) []usage.Sample {
	samples := make([]usage.Sample, len(dtos))
	for i, s := range dtos {
		samples[i] = usage.Sample{
			Timestamp: s.Timestamp,
			BytesUsed: s.BytesUsed,
			AppName:   s.AppName,
		}
	}
	return samples
}

func toAnalyzeResponse(result *services.AnalysisResult) dto.AnalyzeResponse {
	dtos := make([]dto.AlertDTO, len(result.Alerts))
	for i := range result.Alerts {
		dtos[i] = dto.FromAlert(&result.Alerts[i])
	}
	return dto.AnalyzeResponse{
		Alerts:   dtos,
		Analyzed: result.Analyzed,
		Stats:    result.Stats,
	}
}
