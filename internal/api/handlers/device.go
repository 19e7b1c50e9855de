package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bundleguard/bundleguard/internal/api/dto"
	"github.com/bundleguard/bundleguard/internal/domain/device"
	"github.com/bundleguard/bundleguard/internal/pkg/errors"
	"github.com/bundleguard/bundleguard/internal/pkg/logger"
	"github.com/bundleguard/bundleguard/internal/pkg/utils"
	"github.com/bundleguard/bundleguard/internal/pkg/validator"
)

type DeviceHandler struct {
	service   device.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewDeviceHandler(service device.Service, log *logger.Logger, val *validator.Validator) *DeviceHandler {
	return &DeviceHandler{service: service, logger: log, validator: val}
}

// Register creates a new device
func (h *DeviceHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	d := &device.Device{
		UserID:   req.UserID,
		Name:     req.Name,
		Platform: req.Platform,
	}

	if err := h.service.Register(r.Context(), d); err != nil {
		utils.WriteError(w, errors.Internal("Failed to register device", err))
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, toDeviceDTO(d))
}

// Get returns a device by ID
func (h *DeviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			utils.WriteError(w, appErr)
		} else {
			utils.WriteError(w, errors.Internal("Failed to get device", err))
		}
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toDeviceDTO(d))
}

// List returns devices, optionally filtered by user
func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	var devices []*device.Device
	var err error
	if userID != "" {
		devices, err = h.service.ListByUser(r.Context(), userID)
	} else {
		devices, err = h.service.ListAll(r.Context())
	}
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to list devices", err))
		return
	}

	dtos := make([]dto.DeviceDTO, len(devices))
	for i, d := range devices {
		dtos[i] = toDeviceDTO(d)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

func toDeviceDTO(d *device.Device) dto.DeviceDTO {
	return dto.DeviceDTO{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		Platform:  d.Platform,
		CreatedAt: d.CreatedAt,
		LastSeen:  d.LastSeen,
	}
}
