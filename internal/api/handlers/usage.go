package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bundleguard/bundleguard/internal/api/dto"
	"github.com/bundleguard/bundleguard/internal/domain/usage"
	"github.com/bundleguard/bundleguard/internal/pkg/errors"
	"github.com/bundleguard/bundleguard/internal/pkg/logger"
	"github.com/bundleguard/bundleguard/internal/pkg/utils"
	"github.com/bundleguard/bundleguard/internal/pkg/validator"
)

type UsageHandler struct {
	service   usage.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewUsageHandler(service usage.Service, log *logger.Logger, val *validator.Validator) *UsageHandler {
	return &UsageHandler{service: service, logger: log, validator: val}
}

// IngestBatch stores a batch of usage records for a device
func (h *UsageHandler) IngestBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.IngestUsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	records := make([]*usage.Record, len(req.Records))
	for i, rec := range req.Records {
		records[i] = &usage.Record{
			DeviceID:  req.DeviceID,
			Timestamp: rec.Timestamp,
			RxBytes:   rec.RxBytes,
			TxBytes:   rec.TxBytes,
			AppName:   rec.AppName,
		}
	}

	n, err := h.service.Ingest(r.Context(), records)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			utils.WriteError(w, appErr)
		} else {
			utils.WriteError(w, errors.Internal("Failed to ingest usage", err))
		}
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.IngestUsageResponse{Ingested: n})
}

// Summary returns today's usage aggregates for a device
func (h *UsageHandler) Summary(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("deviceId")
	if deviceID == "" {
		utils.WriteError(w, errors.BadRequest("deviceId query parameter is required"))
		return
	}

	summary, err := h.service.GetSummary(r.Context(), []string{deviceID}, time.Now())
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to get usage summary", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, summary)
}
